package articles

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alucardeht/constitution-mcp/internal/tools"
	"github.com/alucardeht/constitution-mcp/pkg/constitution"
)

func newQuery(t *testing.T) *constitution.Query {
	t.Helper()
	ds, err := constitution.NewDataset("We, the people", []constitution.Article{
		{Number: "14", Title: "Equality before law", Description: "Equal protection of the laws."},
		{Number: "21", Title: "Protection of life and personal liberty", Description: "Procedure established by law."},
		{Number: "21A", Title: "Right to education", Description: "Free and compulsory education."},
	})
	require.NoError(t, err)
	return constitution.New(ds)
}

func execute(t *testing.T, tool tools.Tool, args string) (interface{}, error) {
	t.Helper()
	return tool.Execute(context.Background(), json.RawMessage(args))
}

func TestGetTools(t *testing.T) {
	list := GetTools(newQuery(t))

	names := []string{
		"constitution_preamble",
		"constitution_article",
		"constitution_list",
		"constitution_search",
		"constitution_summary",
		"constitution_count",
		"constitution_search_title",
	}
	require.Len(t, list, len(names))

	for i, tool := range list {
		assert.Equal(t, names[i], tool.Name())
		assert.NotEmpty(t, tool.Description())
		assert.True(t, json.Valid(tool.Schema()), "schema of %s", tool.Name())

		annotated, ok := tool.(tools.AnnotatedTool)
		require.True(t, ok, "%s should be annotated", tool.Name())
		assert.True(t, annotated.Annotations()["readOnlyHint"])
	}
}

func TestArticleTool(t *testing.T) {
	tool := NewArticleTool(newQuery(t))

	tests := []struct {
		args string
		want string
	}{
		{`{"number": 14}`, "Article 14: Equality before law - Equal protection of the laws."},
		{`{"number": "21A"}`, "Article 21A: Right to education - Free and compulsory education."},
		{`{"number": 21.0}`, "Article 21: Protection of life and personal liberty - Procedure established by law."},
		{`{"number": 9999}`, constitution.ArticleNotFound},
	}
	for _, tt := range tests {
		got, err := execute(t, tool, tt.args)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, got, tt.args)
	}
}

func TestNumberToolsRejectWrongTypes(t *testing.T) {
	q := newQuery(t)
	for _, tool := range []tools.Tool{NewArticleTool(q), NewSummaryTool(q)} {
		for _, args := range []string{`{}`, `{"number": true}`, `{"number": null}`, `{"number": [21]}`, `[1]`} {
			_, err := execute(t, tool, args)
			assert.ErrorIs(t, err, constitution.ErrInvalidArgument, "%s %s", tool.Name(), args)
		}
	}
}

func TestKeywordToolsRejectWrongTypes(t *testing.T) {
	q := newQuery(t)
	for _, tool := range []tools.Tool{NewSearchTool(q), NewSearchTitleTool(q)} {
		for _, args := range []string{`{}`, `{"keyword": 5}`, `{"keyword": {"a": 1}}`} {
			_, err := execute(t, tool, args)
			assert.ErrorIs(t, err, constitution.ErrInvalidArgument, "%s %s", tool.Name(), args)
		}
	}
}

func TestSummaryTool(t *testing.T) {
	got, err := execute(t, NewSummaryTool(newQuery(t)), `{"number": 21}`)
	require.NoError(t, err)
	assert.Equal(t, "Article 21 - Protection of life and personal liberty", got)
}

func TestSearchTools(t *testing.T) {
	q := newQuery(t)

	got, err := execute(t, NewSearchTool(q), `{"keyword": "LAW"}`)
	require.NoError(t, err)
	assert.Equal(t, "Article 14: Equality before law\nArticle 21: Protection of life and personal liberty", got)

	got, err = execute(t, NewSearchTitleTool(q), `{"keyword": "LAW"}`)
	require.NoError(t, err)
	assert.Equal(t, "Article 14: Equality before law", got)

	got, err = execute(t, NewSearchTitleTool(q), `{"keyword": "compulsory"}`)
	require.NoError(t, err)
	assert.Equal(t, constitution.NoTitleMatches, got)
}

func TestNoArgumentTools(t *testing.T) {
	q := newQuery(t)

	got, err := execute(t, NewPreambleTool(q), `{}`)
	require.NoError(t, err)
	assert.Equal(t, "We, the people", got)

	got, err = execute(t, NewCountTool(q), `{}`)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = execute(t, NewListTool(q), ``)
	require.NoError(t, err)
	assert.Equal(t, q.List(), got)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, tool := range GetTools(newQuery(t)) {
		_, err := tool.Execute(ctx, json.RawMessage(`{"number": 1, "keyword": "a"}`))
		assert.ErrorIs(t, err, context.Canceled, tool.Name())
	}
}

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry(newQuery(t))
	require.NoError(t, err)

	assert.Equal(t, 8, registry.Len())
	_, ok := registry.Get("health")
	assert.True(t, ok)

	got, err := registry.Execute(context.Background(), "constitution_summary", json.RawMessage(`{"number":"14"}`))
	require.NoError(t, err)
	assert.Equal(t, "Article 14 - Equality before law", got)
}
