package constitution

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// PreambleNotFound is returned by PreambleText when the dataset carries no preamble.
const PreambleNotFound = "Preamble not found."

// Article is one numbered provision. Number is kept as text so that
// inserted articles such as "21A" compare correctly.
type Article struct {
	Number      string `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// entry pairs an article with its case-folded fields so searches do not
// refold the whole dataset on every call.
type entry struct {
	article     Article
	foldedTitle string
	foldedBody  string
}

// Dataset is the immutable collection of articles plus the preamble.
// It is safe for concurrent use because nothing writes to it after construction.
type Dataset struct {
	preamble string
	entries  []entry
	byNumber map[string]int
}

// NewDataset builds a dataset from an ordered list of articles. Article
// numbers must be non-empty and unique.
func NewDataset(preamble string, articles []Article) (*Dataset, error) {
	ds := &Dataset{
		preamble: preamble,
		entries:  make([]entry, 0, len(articles)),
		byNumber: make(map[string]int, len(articles)),
	}

	fold := cases.Fold()
	for i, a := range articles {
		if a.Number == "" {
			return nil, fmt.Errorf("article at position %d has no number", i)
		}
		if _, dup := ds.byNumber[a.Number]; dup {
			return nil, fmt.Errorf("duplicate article number %q", a.Number)
		}

		ds.byNumber[a.Number] = len(ds.entries)
		ds.entries = append(ds.entries, entry{
			article:     a,
			foldedTitle: fold.String(a.Title),
			foldedBody:  fold.String(a.Description),
		})
	}

	return ds, nil
}

// PreambleText returns the trimmed preamble, or PreambleNotFound.
func (d *Dataset) PreambleText() string {
	text := strings.TrimSpace(d.preamble)
	if text == "" {
		return PreambleNotFound
	}
	return text
}

// AllArticles returns the articles in dataset order. The slice is a copy.
func (d *Dataset) AllArticles() []Article {
	out := make([]Article, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.article
	}
	return out
}

// Len returns the number of articles.
func (d *Dataset) Len() int {
	return len(d.entries)
}

func (d *Dataset) lookup(number string) (Article, bool) {
	i, ok := d.byNumber[number]
	if !ok {
		return Article{}, false
	}
	return d.entries[i].article, true
}

var defaultDataset = sync.OnceValue(func() *Dataset {
	ds, err := LoadEmbedded()
	if err != nil {
		panic(fmt.Sprintf("constitution: embedded dataset is invalid: %v", err))
	}
	return ds
})

// Default returns the embedded dataset, loading it on first use.
func Default() *Dataset {
	return defaultDataset()
}
