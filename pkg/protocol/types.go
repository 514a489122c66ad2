package protocol

import "encoding/json"

const Version = "2.0"

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`

	// hasID records an "id" member on the wire, which may be null.
	hasID bool
}

func (r *JSONRPCRequest) UnmarshalJSON(data []byte) error {
	type wire JSONRPCRequest
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	_, w.hasID = members["id"]

	*r = JSONRPCRequest(w)
	return nil
}

// IsNotification reports whether the request expects no response. A
// request carrying "id": null is answered.
func (r *JSONRPCRequest) IsNotification() bool {
	return r.ID == nil && !r.hasID
}

// JSONRPCResponse always carries "id", which is null when the request
// id could not be read.
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      interface{}   `json:"id"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
}

type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *JSONRPCError) Error() string {
	return e.Message
}

type Tool struct {
	Name        string          `json:"name"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
	Annotations map[string]bool `json:"annotations,omitempty"`
}

type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type CallToolResult struct {
	Content []TextContent `json:"content"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   int64  `json:"uptime"`
	Articles int    `json:"articles"`
	Tools    int    `json:"tools"`
}
