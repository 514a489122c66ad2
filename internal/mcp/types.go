package mcp

import (
	"encoding/json"

	"github.com/alucardeht/constitution-mcp/pkg/protocol"
)

type Request = protocol.JSONRPCRequest
type Response = protocol.JSONRPCResponse

type InitializeRequest struct {
	ProtocolVersion string     `json:"protocolVersion"`
	ClientInfo      ClientInfo `json:"clientInfo"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Version string `json:"version"`
}

type InitializeResponse struct {
	ProtocolVersion string      `json:"protocolVersion"`
	Capabilities    interface{} `json:"capabilities"`
	ServerInfo      ServerInfo  `json:"serverInfo"`
}

type ListToolsResponse struct {
	Tools []protocol.Tool `json:"tools"`
}

type CallToolRequest struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}
