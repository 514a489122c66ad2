package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alucardeht/constitution-mcp/pkg/protocol"
)

type HealthTool struct {
	startTime time.Time
	articles  func() int
	tools     func() int
}

// NewHealthTool reports uptime along with the live article and tool counts.
func NewHealthTool(articles, tools func() int) *HealthTool {
	return &HealthTool{
		startTime: time.Now(),
		articles:  articles,
		tools:     tools,
	}
}

func (t *HealthTool) Name() string {
	return "health"
}

func (t *HealthTool) Description() string {
	return "Check server health status"
}

func (t *HealthTool) Title() string {
	return "Health Check"
}

func (t *HealthTool) Annotations() map[string]bool {
	return ReadOnlyAnnotations()
}

func (t *HealthTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {},
		"required": []
	}`)
}

func (t *HealthTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	resp := protocol.HealthResponse{
		Status: "healthy",
		Uptime: int64(time.Since(t.startTime).Seconds()),
	}
	if t.articles != nil {
		resp.Articles = t.articles()
	}
	if t.tools != nil {
		resp.Tools = t.tools()
	}
	return resp, nil
}
