package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestNotification(t *testing.T) {
	tests := []struct {
		name  string
		input string
		notif bool
	}{
		{"numeric id", `{"jsonrpc":"2.0","id":7,"method":"ping"}`, false},
		{"string id", `{"jsonrpc":"2.0","id":"a","method":"ping"}`, false},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"ping"}`, false},
		{"no id", `{"jsonrpc":"2.0","method":"notifications/initialized"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req JSONRPCRequest
			require.NoError(t, json.Unmarshal([]byte(tt.input), &req))
			assert.Equal(t, tt.notif, req.IsNotification())
			assert.Equal(t, "ping" == req.Method, !tt.notif)
		})
	}

	var req JSONRPCRequest
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &req))
}

func TestResponseAlwaysCarriesID(t *testing.T) {
	data, err := json.Marshal(JSONRPCResponse{
		JSONRPC: Version,
		Error:   &JSONRPCError{Code: CodeParseError, Message: "Parse error"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"Parse error"}}`, string(data))
}
