package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/alucardeht/constitution-mcp/internal/logger"
	"github.com/alucardeht/constitution-mcp/internal/mcp"
	"github.com/alucardeht/constitution-mcp/internal/metrics"
	"github.com/alucardeht/constitution-mcp/internal/tools"
)

const DefaultMaxConnections = 100

type Options struct {
	SocketPath     string
	MaxConnections int
	ToolTimeout    time.Duration
	// PIDFile, when set, guards against a second daemon on the same host.
	PIDFile string
	// MetricsAddr, when set, serves Prometheus metrics over HTTP at
	// /metrics on this TCP address.
	MetricsAddr string
}

// Daemon serves the MCP method set over a unix socket. Each connection
// gets its own JSON-RPC stream and its own MCP session.
type Daemon struct {
	opts     Options
	registry *tools.Registry
	log      *slog.Logger

	listener      net.Listener
	metricsServer *http.Server
	metricsAddr   net.Addr
	pidFile       *PIDFile

	connMu      sync.Mutex
	connections map[*jsonrpc2.Conn]struct{}
	wg          sync.WaitGroup

	shutdown     chan struct{}
	shutdownOnce sync.Once
}

func New(registry *tools.Registry, opts Options) *Daemon {
	if opts.MaxConnections <= 0 {
		opts.MaxConnections = DefaultMaxConnections
	}
	if opts.ToolTimeout <= 0 {
		opts.ToolTimeout = mcp.DefaultToolTimeout
	}
	return &Daemon{
		opts:        opts,
		registry:    registry,
		log:         logger.ForComponent("daemon"),
		connections: make(map[*jsonrpc2.Conn]struct{}),
		shutdown:    make(chan struct{}),
	}
}

// Start binds the socket and begins accepting connections in the
// background.
func (d *Daemon) Start() error {
	if d.opts.PIDFile != "" {
		pf := NewPIDFile(d.opts.PIDFile)
		if pid, alive := pf.Running(); alive {
			return fmt.Errorf("daemon already running (pid %d)", pid)
		}
		if err := pf.Write(); err != nil {
			return err
		}
		d.pidFile = pf
	}

	listener, err := listenSocket(d.opts.SocketPath)
	if err != nil {
		d.releasePIDFile()
		return err
	}
	d.listener = listener

	if d.opts.MetricsAddr != "" {
		if err := d.startMetrics(); err != nil {
			listener.Close()
			os.Remove(d.opts.SocketPath)
			d.releasePIDFile()
			return err
		}
	}

	d.log.Info("daemon listening",
		"socket", d.opts.SocketPath,
		"max_connections", d.opts.MaxConnections,
		"tools", d.registry.Len())

	d.wg.Add(1)
	go d.acceptConnections()
	return nil
}

// Serve starts the daemon and blocks until ctx is cancelled.
func (d *Daemon) Serve(ctx context.Context) error {
	if err := d.Start(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-d.shutdown:
	}
	d.Shutdown()
	return nil
}

func (d *Daemon) startMetrics() error {
	ln, err := net.Listen("tcp", d.opts.MetricsAddr)
	if err != nil {
		return fmt.Errorf("metrics listen on %s: %w", d.opts.MetricsAddr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	d.metricsServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	d.metricsAddr = ln.Addr()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.metricsServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.log.Error("metrics server failed", "error", err)
		}
	}()

	d.log.Info("serving metrics", "addr", d.metricsAddr.String())
	return nil
}

func (d *Daemon) acceptConnections() {
	defer d.wg.Done()

	for {
		conn, err := d.listener.Accept()
		if err != nil {
			select {
			case <-d.shutdown:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			d.log.Warn("accept failed", "error", err)
			continue
		}

		if !d.admit() {
			d.log.Warn("connection limit reached, rejecting client",
				"max_connections", d.opts.MaxConnections)
			metrics.ConnectionRejected()
			conn.Close()
			continue
		}

		d.serveConnection(conn)
	}
}

func (d *Daemon) admit() bool {
	d.connMu.Lock()
	defer d.connMu.Unlock()
	return len(d.connections) < d.opts.MaxConnections
}

func (d *Daemon) serveConnection(conn net.Conn) {
	sessionID := uuid.NewString()[:8]
	session := mcp.NewSession(d.registry, d.opts.ToolTimeout, sessionID)
	stream := jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{})
	jc := jsonrpc2.NewConn(context.Background(), stream, jsonrpc2.HandlerWithError(
		func(ctx context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
			return dispatch(ctx, session, req)
		}))

	d.connMu.Lock()
	d.connections[jc] = struct{}{}
	active := len(d.connections)
	d.connMu.Unlock()

	metrics.SetActiveConnections(active)
	d.log.Debug("client connected", "session", sessionID, "active", active)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		<-jc.DisconnectNotify()

		d.connMu.Lock()
		delete(d.connections, jc)
		active := len(d.connections)
		d.connMu.Unlock()

		metrics.SetActiveConnections(active)
		d.log.Debug("client disconnected", "session", sessionID, "active", active)
	}()

	// Shutdown may have swept the table before this connection was added.
	select {
	case <-d.shutdown:
		jc.Close()
	default:
	}
}

// dispatch adapts a jsonrpc2 request onto an MCP session.
func dispatch(ctx context.Context, session *mcp.Handler, req *jsonrpc2.Request) (interface{}, error) {
	mreq := &mcp.Request{
		JSONRPC: "2.0",
		Method:  req.Method,
	}
	if req.Params != nil {
		mreq.Params = *req.Params
	}
	if !req.Notif {
		if req.ID.IsString {
			mreq.ID = req.ID.Str
		} else {
			mreq.ID = req.ID.Num
		}
	}

	resp := session.Handle(ctx, mreq)
	if resp == nil {
		return nil, nil
	}
	if resp.Error != nil {
		return nil, &jsonrpc2.Error{
			Code:    int64(resp.Error.Code),
			Message: resp.Error.Message,
		}
	}
	return resp.Result, nil
}

// Shutdown stops accepting, closes every client and waits for their
// goroutines. It is safe to call more than once.
func (d *Daemon) Shutdown() {
	d.shutdownOnce.Do(func() {
		close(d.shutdown)

		if d.listener != nil {
			d.listener.Close()
		}

		d.connMu.Lock()
		for jc := range d.connections {
			jc.Close()
		}
		d.connMu.Unlock()

		if d.metricsServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := d.metricsServer.Shutdown(ctx); err != nil {
				d.log.Warn("metrics server shutdown", "error", err)
			}
			cancel()
		}

		d.wg.Wait()

		if d.listener != nil {
			if err := os.Remove(d.opts.SocketPath); err != nil && !os.IsNotExist(err) {
				d.log.Warn("failed to remove socket", "error", err)
			}
		}
		d.releasePIDFile()

		d.log.Info("daemon stopped")
	})
}

func (d *Daemon) releasePIDFile() {
	if d.pidFile == nil {
		return
	}
	if err := d.pidFile.Remove(); err != nil && !os.IsNotExist(err) {
		d.log.Warn("failed to remove pid file", "error", err)
	}
	d.pidFile = nil
}

func (d *Daemon) SocketPath() string {
	return d.opts.SocketPath
}

// MetricsAddr returns the bound metrics address, or nil when metrics are
// disabled.
func (d *Daemon) MetricsAddr() net.Addr {
	return d.metricsAddr
}

func (d *Daemon) ActiveConnections() int {
	d.connMu.Lock()
	defer d.connMu.Unlock()
	return len(d.connections)
}
