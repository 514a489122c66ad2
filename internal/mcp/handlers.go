package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/alucardeht/constitution-mcp/internal/logger"
	"github.com/alucardeht/constitution-mcp/internal/metrics"
	"github.com/alucardeht/constitution-mcp/internal/tools"
	"github.com/alucardeht/constitution-mcp/pkg/protocol"
	"github.com/alucardeht/constitution-mcp/pkg/version"
)

const DefaultToolTimeout = 30 * time.Second

type Handler struct {
	registry    *tools.Registry
	toolTimeout time.Duration
	log         *slog.Logger

	mu          sync.Mutex
	initialized bool
	clientInfo  ClientInfo
}

type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func NewHandler(registry *tools.Registry, toolTimeout time.Duration) *Handler {
	return NewSession(registry, toolTimeout, "")
}

// NewSession is NewHandler with every log line tagged by sessionID.
func NewSession(registry *tools.Registry, toolTimeout time.Duration, sessionID string) *Handler {
	if toolTimeout <= 0 {
		toolTimeout = DefaultToolTimeout
	}
	log := logger.ForComponent("mcp")
	if sessionID != "" {
		log = log.With("session", sessionID)
	}
	return &Handler{
		registry:    registry,
		toolTimeout: toolTimeout,
		log:         log,
	}
}

// Handle dispatches one request. It returns nil for notifications, which
// must not be answered.
func (h *Handler) Handle(ctx context.Context, req *Request) *Response {
	if strings.HasPrefix(req.Method, "notifications/") {
		h.handleNotification(req)
		return nil
	}

	resp := &Response{
		JSONRPC: protocol.Version,
		ID:      req.ID,
	}

	var (
		result interface{}
		err    error
	)

	switch req.Method {
	case "initialize":
		result, err = h.handleInitialize(req)
	case "ping":
		result = map[string]interface{}{}
	case "tools/list":
		result = h.handleListTools()
	case "tools/call":
		result, err = h.handleCallTool(ctx, req)
	default:
		err = &protocol.JSONRPCError{
			Code:    protocol.CodeMethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
	}

	if err != nil {
		resp.Error = toRPCError(err)
		return resp
	}

	resp.Result = result
	return resp
}

func toRPCError(err error) *protocol.JSONRPCError {
	if rpcErr, ok := err.(*protocol.JSONRPCError); ok {
		return rpcErr
	}
	return &protocol.JSONRPCError{
		Code:    tools.CodeOf(err),
		Message: err.Error(),
	}
}

func (h *Handler) handleInitialize(req *Request) (interface{}, error) {
	var initReq InitializeRequest
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &initReq); err != nil {
			return nil, &protocol.JSONRPCError{
				Code:    protocol.CodeInvalidParams,
				Message: fmt.Sprintf("failed to parse initialize request: %v", err),
			}
		}
	}

	h.mu.Lock()
	h.clientInfo = initReq.ClientInfo
	h.mu.Unlock()

	h.log.Info("client connected",
		"client", initReq.ClientInfo.Name,
		"client_version", initReq.ClientInfo.Version,
		"protocol", initReq.ProtocolVersion)

	return InitializeResponse{
		ProtocolVersion: negotiateProtocolVersion(initReq.ProtocolVersion),
		Capabilities: map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		ServerInfo: ServerInfo{
			Name:    version.Name,
			Title:   version.DisplayName,
			Version: version.Version,
		},
	}, nil
}

func negotiateProtocolVersion(clientVersion string) string {
	for _, v := range version.SupportedProtocolVersions {
		if clientVersion == v {
			return v
		}
	}

	return version.ProtocolVersion
}

func (h *Handler) handleListTools() interface{} {
	toolsList := h.registry.List()
	toolsData := make([]protocol.Tool, len(toolsList))

	for i, t := range toolsList {
		tool := protocol.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.Schema(),
		}

		if annotated, ok := t.(tools.AnnotatedTool); ok {
			tool.Title = annotated.Title()
			tool.Annotations = annotated.Annotations()
		}

		toolsData[i] = tool
	}

	return ListToolsResponse{Tools: toolsData}
}

func (h *Handler) handleNotification(req *Request) {
	if req.Method == "notifications/initialized" {
		h.mu.Lock()
		h.initialized = true
		h.mu.Unlock()
	}
	h.log.Debug("notification", "method", req.Method)
}

// Initialized reports whether the client has sent notifications/initialized.
func (h *Handler) Initialized() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.initialized
}

func (h *Handler) handleCallTool(ctx context.Context, req *Request) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool execution panicked: %v", r)
			h.log.Error("tool panic recovered",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	var callReq CallToolRequest
	if err := json.Unmarshal(req.Params, &callReq); err != nil {
		return nil, &protocol.JSONRPCError{
			Code:    protocol.CodeInvalidParams,
			Message: fmt.Sprintf("failed to parse tool call request: %v", err),
		}
	}

	if callReq.Name == "" {
		return nil, &protocol.JSONRPCError{
			Code:    protocol.CodeInvalidParams,
			Message: "tool name is required",
		}
	}

	start := time.Now()
	out, err := h.registry.ExecuteWithTimeout(ctx, callReq.Name, callReq.Arguments, h.toolTimeout)
	elapsed := time.Since(start)

	code := 0
	if err != nil {
		code = tools.CodeOf(err)
	}
	label := callReq.Name
	if code == protocol.CodeMethodNotFound {
		label = "unknown"
	}
	metrics.ObserveToolCall(label, code, elapsed)
	h.log.Debug("tool call",
		"tool", callReq.Name,
		"latency_ms", elapsed.Milliseconds(),
		"error", err)
	if err != nil {
		return nil, err
	}

	text, err := RenderText(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return protocol.CallToolResult{
		Content: []protocol.TextContent{{Type: "text", Text: text}},
	}, nil
}

// RenderText passes strings through unchanged and JSON-encodes anything else.
func RenderText(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
