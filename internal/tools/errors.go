package tools

import (
	"errors"
	"fmt"

	"github.com/alucardeht/constitution-mcp/pkg/constitution"
	"github.com/alucardeht/constitution-mcp/pkg/protocol"
)

// ToolError carries the JSON-RPC error code a failure should be reported with.
type ToolError struct {
	Code    int
	Message string
	err     error
}

func (e *ToolError) Error() string {
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.err
}

func NewToolNotFoundError(name string) *ToolError {
	return &ToolError{
		Code:    protocol.CodeMethodNotFound,
		Message: fmt.Sprintf("Tool not found: %s", name),
	}
}

// NewToolExecutionError classifies err: invalid arguments become
// invalid-params errors, everything else an internal error.
func NewToolExecutionError(name string, err error) *ToolError {
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}

	code := protocol.CodeInternalError
	if errors.Is(err, constitution.ErrInvalidArgument) {
		code = protocol.CodeInvalidParams
	}

	return &ToolError{
		Code:    code,
		Message: fmt.Sprintf("Error executing tool %s: %v", name, err),
		err:     err,
	}
}

// CodeOf returns the JSON-RPC code for err.
func CodeOf(err error) int {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Code
	}
	return protocol.CodeInternalError
}
