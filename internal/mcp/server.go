package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/alucardeht/constitution-mcp/internal/tools"
	"github.com/alucardeht/constitution-mcp/pkg/protocol"
)

const maxLineSize = 4 * 1024 * 1024

type Server struct {
	handler *Handler
}

func NewServer(registry *tools.Registry, toolTimeout time.Duration) *Server {
	return &Server{
		handler: NewHandler(registry, toolTimeout),
	}
}

func (s *Server) HandleRequest(ctx context.Context, req *Request) *Response {
	return s.handler.Handle(ctx, req)
}

// ProcessStream serves newline-delimited JSON-RPC messages until reader
// is exhausted or ctx is cancelled.
func (s *Server) ProcessStream(ctx context.Context, reader io.Reader, writer io.Writer) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	out := protocol.NewFlushWriter(writer)
	encoder := json.NewEncoder(out)

	write := func(resp *Response) error {
		if err := encoder.Encode(resp); err != nil {
			return err
		}
		return out.Flush()
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			resp := &Response{
				JSONRPC: protocol.Version,
				Error: &protocol.JSONRPCError{
					Code:    protocol.CodeParseError,
					Message: "Parse error",
				},
			}
			if err := write(resp); err != nil {
				return err
			}
			continue
		}

		resp := s.HandleRequest(ctx, &req)
		if resp == nil || req.IsNotification() {
			continue
		}
		if err := write(resp); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func (s *Server) Handler() *Handler {
	return s.handler
}
