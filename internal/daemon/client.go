package daemon

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/alucardeht/constitution-mcp/internal/mcp"
	"github.com/alucardeht/constitution-mcp/pkg/protocol"
	"github.com/alucardeht/constitution-mcp/pkg/version"
)

// Client talks to a running daemon. Remote failures come back as
// *jsonrpc2.Error carrying the MCP error code.
type Client struct {
	conn *jsonrpc2.Conn
}

type clientHandler struct{}

// Handle ignores server-initiated messages; the daemon never sends any.
func (clientHandler) Handle(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) {}

func Dial(ctx context.Context, socketPath string) (*Client, error) {
	conn, err := dialSocket(ctx, socketPath)
	if err != nil {
		return nil, err
	}

	stream := jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{})
	return &Client{
		conn: jsonrpc2.NewConn(context.Background(), stream, clientHandler{}),
	}, nil
}

// Initialize runs the MCP handshake.
func (c *Client) Initialize(ctx context.Context) (*mcp.InitializeResponse, error) {
	params := map[string]interface{}{
		"protocolVersion": version.ProtocolVersion,
		"clientInfo": mcp.ClientInfo{
			Name:    version.Name + "-cli",
			Version: version.Version,
		},
	}

	var result mcp.InitializeResponse
	if err := c.conn.Call(ctx, "initialize", params, &result); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	if err := c.conn.Notify(ctx, "notifications/initialized", struct{}{}); err != nil {
		return nil, fmt.Errorf("initialized notification: %w", err)
	}
	return &result, nil
}

func (c *Client) ListTools(ctx context.Context) ([]protocol.Tool, error) {
	var result mcp.ListToolsResponse
	if err := c.conn.Call(ctx, "tools/list", struct{}{}, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// CallTool invokes a tool and returns its text content.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	if args == nil {
		args = map[string]interface{}{}
	}
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}

	var result protocol.CallToolResult
	if err := c.conn.Call(ctx, "tools/call", params, &result); err != nil {
		return "", err
	}

	parts := make([]string, len(result.Content))
	for i, content := range result.Content {
		parts[i] = content.Text
	}
	return strings.Join(parts, "\n"), nil
}

// Close closes the connection and waits for its reader to stop.
func (c *Client) Close() error {
	err := c.conn.Close()
	<-c.conn.DisconnectNotify()
	return err
}
