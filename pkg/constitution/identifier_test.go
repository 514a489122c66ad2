package constitution

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"int", 21, "21"},
		{"int64", int64(14), "14"},
		{"uint8", uint8(7), "7"},
		{"uint64", uint64(395), "395"},
		{"integral float", 21.0, "21"},
		{"fractional float", 14.5, "14.5"},
		{"negative", -3, "-3"},
		{"string", "21A", "21A"},
		{"empty string", "", ""},
		{"json number", json.Number("51"), "51"},
		{"identifier passthrough", Text("300A"), "300A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseIdentifier(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
		})
	}
}

func TestParseIdentifierRejectsOtherTypes(t *testing.T) {
	inputs := []any{
		nil,
		true,
		[]int{21},
		map[string]any{"number": 21},
		struct{}{},
		math.NaN(),
		json.Number("twenty"),
	}

	for _, input := range inputs {
		_, err := ParseIdentifier(input)
		assert.ErrorIs(t, err, ErrInvalidArgument, "input %#v", input)
	}
}

func TestParseKeyword(t *testing.T) {
	kw, err := ParseKeyword("equality")
	require.NoError(t, err)
	assert.Equal(t, "equality", kw)

	for _, input := range []any{nil, 42, 3.5, []string{"a"}, false} {
		_, err := ParseKeyword(input)
		assert.ErrorIs(t, err, ErrInvalidArgument, "input %#v", input)
	}
}

func TestIdentifierForms(t *testing.T) {
	var id Identifier = Number(21)
	assert.Equal(t, "21", id.String())

	id = Text("21A")
	assert.Equal(t, "21A", id.String())
}
