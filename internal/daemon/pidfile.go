package daemon

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type PIDFile struct {
	path string
}

// PIDPath returns the pid file that guards the daemon bound to socketPath.
func PIDPath(socketPath string) string {
	return socketPath + ".pid"
}

func NewPIDFile(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Write records the current process, replacing a stale file. A symlink at
// path is refused.
func (p *PIDFile) Write() error {
	f, err := os.OpenFile(p.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if os.IsExist(err) {
		info, lerr := os.Lstat(p.path)
		if lerr == nil && info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("pid file %s is a symlink", p.path)
		}
		os.Remove(p.path)
		f, err = os.OpenFile(p.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	}
	if err != nil {
		return fmt.Errorf("create pid file: %w", err)
	}
	defer f.Close()

	_, err = f.WriteString(strconv.Itoa(os.Getpid()))
	return err
}

// Read returns 0 when no pid has been recorded.
func (p *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return 0, nil
	}

	pid, err := strconv.Atoi(content)
	if err != nil {
		return 0, fmt.Errorf("invalid pid in %s: %w", p.path, err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("invalid pid %d in %s", pid, p.path)
	}
	return pid, nil
}

// Running reports the recorded pid and whether that process is alive.
func (p *PIDFile) Running() (int, bool) {
	pid, err := p.Read()
	if err != nil || pid == 0 {
		return 0, false
	}
	return pid, processExists(pid)
}

func (p *PIDFile) Remove() error {
	if info, err := os.Lstat(p.path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("refusing to remove pid file %s: is a symlink", p.path)
	}
	return os.Remove(p.path)
}

func (p *PIDFile) Path() string {
	return p.path
}
