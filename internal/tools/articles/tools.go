package articles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/alucardeht/constitution-mcp/internal/tools"
	"github.com/alucardeht/constitution-mcp/pkg/constitution"
)

func GetTools(q *constitution.Query) []tools.Tool {
	return []tools.Tool{
		NewPreambleTool(q),
		NewArticleTool(q),
		NewListTool(q),
		NewSearchTool(q),
		NewSummaryTool(q),
		NewCountTool(q),
		NewSearchTitleTool(q),
	}
}

const (
	noArgsSchema = `{
		"type": "object",
		"properties": {}
	}`

	numberSchema = `{
		"type": "object",
		"properties": {
			"number": {
				"type": ["integer", "string"],
				"description": "Article number, e.g. 14 or \"21A\""
			}
		},
		"required": ["number"]
	}`

	keywordSchema = `{
		"type": "object",
		"properties": {
			"keyword": {
				"type": "string",
				"description": "Text to look for, case-insensitive"
			}
		},
		"required": ["keyword"]
	}`
)

// decodeArgs keeps numbers as json.Number so integer identifiers are not
// rounded through float64.
func decodeArgs(input json.RawMessage) (map[string]any, error) {
	args := map[string]any{}
	if len(bytes.TrimSpace(input)) == 0 {
		return args, nil
	}

	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		return nil, fmt.Errorf("%w: arguments must be a JSON object: %v", constitution.ErrInvalidArgument, err)
	}
	return args, nil
}

func identifierArg(ctx context.Context, input json.RawMessage) (constitution.Identifier, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	args, err := decodeArgs(input)
	if err != nil {
		return nil, err
	}
	return constitution.ParseIdentifier(args["number"])
}

func keywordArg(ctx context.Context, input json.RawMessage) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	args, err := decodeArgs(input)
	if err != nil {
		return "", err
	}
	return constitution.ParseKeyword(args["keyword"])
}

type PreambleTool struct {
	query *constitution.Query
}

func NewPreambleTool(q *constitution.Query) *PreambleTool {
	return &PreambleTool{query: q}
}

func (t *PreambleTool) Name() string {
	return "constitution_preamble"
}

func (t *PreambleTool) Description() string {
	return "Get the Preamble of the Constitution of India"
}

func (t *PreambleTool) Title() string {
	return "Preamble"
}

func (t *PreambleTool) Annotations() map[string]bool {
	return tools.ReadOnlyAnnotations()
}

func (t *PreambleTool) Schema() json.RawMessage {
	return json.RawMessage(noArgsSchema)
}

func (t *PreambleTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return t.query.Preamble(), nil
}

type ArticleTool struct {
	query *constitution.Query
}

func NewArticleTool(q *constitution.Query) *ArticleTool {
	return &ArticleTool{query: q}
}

func (t *ArticleTool) Name() string {
	return "constitution_article"
}

func (t *ArticleTool) Description() string {
	return `Get the full text of an article by its number.

Returns "Article {number}: {title} - {description}", or "Article not found."
when no article has that number. Inserted articles use their letter suffix, e.g. "21A".`
}

func (t *ArticleTool) Title() string {
	return "Get Article"
}

func (t *ArticleTool) Annotations() map[string]bool {
	return tools.ReadOnlyAnnotations()
}

func (t *ArticleTool) Schema() json.RawMessage {
	return json.RawMessage(numberSchema)
}

func (t *ArticleTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := identifierArg(ctx, input)
	if err != nil {
		return nil, err
	}
	return t.query.Article(id), nil
}

type ListTool struct {
	query *constitution.Query
}

func NewListTool(q *constitution.Query) *ListTool {
	return &ListTool{query: q}
}

func (t *ListTool) Name() string {
	return "constitution_list"
}

func (t *ListTool) Description() string {
	return "List every article number and title, one per line, in constitutional order"
}

func (t *ListTool) Title() string {
	return "List Articles"
}

func (t *ListTool) Annotations() map[string]bool {
	return tools.ReadOnlyAnnotations()
}

func (t *ListTool) Schema() json.RawMessage {
	return json.RawMessage(noArgsSchema)
}

func (t *ListTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return t.query.List(), nil
}

type SearchTool struct {
	query *constitution.Query
}

func NewSearchTool(q *constitution.Query) *SearchTool {
	return &SearchTool{query: q}
}

func (t *SearchTool) Name() string {
	return "constitution_search"
}

func (t *SearchTool) Description() string {
	return `Find articles whose title or text contains a keyword.

Matching is a case-insensitive substring test. Results keep constitutional
order, one "Article {number}: {title}" per line.`
}

func (t *SearchTool) Title() string {
	return "Search Articles"
}

func (t *SearchTool) Annotations() map[string]bool {
	return tools.ReadOnlyAnnotations()
}

func (t *SearchTool) Schema() json.RawMessage {
	return json.RawMessage(keywordSchema)
}

func (t *SearchTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	keyword, err := keywordArg(ctx, input)
	if err != nil {
		return nil, err
	}
	return t.query.SearchKeyword(keyword), nil
}

type SummaryTool struct {
	query *constitution.Query
}

func NewSummaryTool(q *constitution.Query) *SummaryTool {
	return &SummaryTool{query: q}
}

func (t *SummaryTool) Name() string {
	return "constitution_summary"
}

func (t *SummaryTool) Description() string {
	return `Get a one-line summary of an article: "Article {number} - {title}"`
}

func (t *SummaryTool) Title() string {
	return "Article Summary"
}

func (t *SummaryTool) Annotations() map[string]bool {
	return tools.ReadOnlyAnnotations()
}

func (t *SummaryTool) Schema() json.RawMessage {
	return json.RawMessage(numberSchema)
}

func (t *SummaryTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := identifierArg(ctx, input)
	if err != nil {
		return nil, err
	}
	return t.query.Summary(id), nil
}

type CountTool struct {
	query *constitution.Query
}

func NewCountTool(q *constitution.Query) *CountTool {
	return &CountTool{query: q}
}

func (t *CountTool) Name() string {
	return "constitution_count"
}

func (t *CountTool) Description() string {
	return "Count the articles in the dataset"
}

func (t *CountTool) Title() string {
	return "Count Articles"
}

func (t *CountTool) Annotations() map[string]bool {
	return tools.ReadOnlyAnnotations()
}

func (t *CountTool) Schema() json.RawMessage {
	return json.RawMessage(noArgsSchema)
}

func (t *CountTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return t.query.Count(), nil
}

type SearchTitleTool struct {
	query *constitution.Query
}

func NewSearchTitleTool(q *constitution.Query) *SearchTitleTool {
	return &SearchTitleTool{query: q}
}

func (t *SearchTitleTool) Name() string {
	return "constitution_search_title"
}

func (t *SearchTitleTool) Description() string {
	return "Find articles whose title contains a keyword (case-insensitive)"
}

func (t *SearchTitleTool) Title() string {
	return "Search Titles"
}

func (t *SearchTitleTool) Annotations() map[string]bool {
	return tools.ReadOnlyAnnotations()
}

func (t *SearchTitleTool) Schema() json.RawMessage {
	return json.RawMessage(keywordSchema)
}

func (t *SearchTitleTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	keyword, err := keywordArg(ctx, input)
	if err != nil {
		return nil, err
	}
	return t.query.SearchTitle(keyword), nil
}

// NewRegistry returns a registry holding the health tool and every
// article tool bound to q.
func NewRegistry(q *constitution.Query) (*tools.Registry, error) {
	registry := tools.NewRegistry()

	health := tools.NewHealthTool(q.Count, registry.Len)
	if err := registry.Register(health); err != nil {
		return nil, err
	}
	if err := registry.RegisterAll(GetTools(q)...); err != nil {
		return nil, fmt.Errorf("articles: %w", err)
	}

	return registry, nil
}
