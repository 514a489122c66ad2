package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alucardeht/constitution-mcp/pkg/constitution"
)

const dirName = ".constitution-mcp"

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DataConfig points at an external dataset. An empty Dir selects the
// dataset embedded in the binary.
type DataConfig struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
}

type Config struct {
	SocketPath     string        `yaml:"socket_path"`
	MaxConnections int           `yaml:"max_connections"`
	ToolTimeout    time.Duration `yaml:"tool_timeout"`
	// MetricsAddr enables the daemon's Prometheus endpoint, e.g. "127.0.0.1:9464".
	MetricsAddr string     `yaml:"metrics_addr"`
	Log         LogConfig  `yaml:"log"`
	Data        DataConfig `yaml:"data"`
}

func Default() *Config {
	return &Config{
		SocketPath:     filepath.Join(BaseDir(), "daemon.sock"),
		MaxConnections: 100,
		ToolTimeout:    30 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Data: DataConfig{
			Pattern: constitution.DefaultPattern,
		},
	}
}

func BaseDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), dirName)
	}
	return filepath.Join(homeDir, dirName)
}

func DefaultPath() string {
	return filepath.Join(BaseDir(), "config.yaml")
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path reads DefaultPath if it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SocketPath == "" {
		return errors.New("socket_path must not be empty")
	}
	if c.MaxConnections <= 0 {
		return fmt.Errorf("max_connections must be positive, got %d", c.MaxConnections)
	}
	if c.ToolTimeout <= 0 {
		return fmt.Errorf("tool_timeout must be positive, got %s", c.ToolTimeout)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(filepath.Dir(c.SocketPath), 0700)
}

// OpenDataset loads the configured dataset.
func (c *Config) OpenDataset() (*constitution.Dataset, error) {
	if c.Data.Dir == "" {
		return constitution.Default(), nil
	}
	return constitution.LoadDir(c.Data.Dir, c.Data.Pattern)
}
