package constitution

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

const (
	ArticleNotFound  = "Article not found."
	NoKeywordMatches = "No articles found containing that keyword."
	NoTitleMatches   = "No articles found containing that keyword in title."
)

// Query answers lookups over one dataset. The zero value is not usable;
// construct with New.
type Query struct {
	ds *Dataset
}

// New returns a Query over ds. Use Default for the embedded dataset.
func New(ds *Dataset) *Query {
	return &Query{ds: ds}
}

func (q *Query) Preamble() string {
	return q.ds.PreambleText()
}

// Article formats the full text of one article:
// "Article {number}: {title} - {description}". A nil id finds nothing.
func (q *Query) Article(id Identifier) string {
	a, ok := q.find(id)
	if !ok {
		return ArticleNotFound
	}
	return fmt.Sprintf("Article %s: %s - %s", a.Number, a.Title, a.Description)
}

// Summary formats "Article {number} - {title}".
func (q *Query) Summary(id Identifier) string {
	a, ok := q.find(id)
	if !ok {
		return ArticleNotFound
	}
	return fmt.Sprintf("Article %s - %s", a.Number, a.Title)
}

// List returns one heading line per article in dataset order, or an empty
// string for an empty dataset.
func (q *Query) List() string {
	lines := make([]string, 0, len(q.ds.entries))
	for _, e := range q.ds.entries {
		lines = append(lines, heading(e.article))
	}
	return strings.Join(lines, "\n")
}

func (q *Query) Count() int {
	return q.ds.Len()
}

// SearchKeyword lists articles whose title or description contains the
// keyword, ignoring case.
func (q *Query) SearchKeyword(keyword string) string {
	return q.search(keyword, true, NoKeywordMatches)
}

// SearchTitle lists articles whose title contains the keyword, ignoring case.
func (q *Query) SearchTitle(keyword string) string {
	return q.search(keyword, false, NoTitleMatches)
}

// Matches returns the articles a keyword search would list.
func (q *Query) Matches(keyword string, includeDescription bool) []Article {
	needle := cases.Fold().String(keyword)

	var out []Article
	for _, e := range q.ds.entries {
		if strings.Contains(e.foldedTitle, needle) ||
			(includeDescription && strings.Contains(e.foldedBody, needle)) {
			out = append(out, e.article)
		}
	}
	return out
}

func (q *Query) search(keyword string, includeDescription bool, none string) string {
	matches := q.Matches(keyword, includeDescription)
	if len(matches) == 0 {
		return none
	}

	lines := make([]string, len(matches))
	for i, a := range matches {
		lines[i] = heading(a)
	}
	return strings.Join(lines, "\n")
}

func (q *Query) find(id Identifier) (Article, bool) {
	if id == nil {
		return Article{}, false
	}
	return q.ds.lookup(id.String())
}

func heading(a Article) string {
	return fmt.Sprintf("Article %s: %s", a.Number, a.Title)
}
