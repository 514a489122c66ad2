package protocol

import (
	"bufio"
	"io"
	"sync"
)

// FlushWriter buffers writes and flushes on demand. It is safe for
// concurrent use.
type FlushWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

func NewFlushWriter(w io.Writer) *FlushWriter {
	return &FlushWriter{w: bufio.NewWriter(w)}
}

func (f *FlushWriter) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.w.Write(p)
}

func (f *FlushWriter) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.w.Flush()
}
