package constitution

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/unicode/norm"
)

// DefaultPattern selects dataset documents inside a source directory.
const DefaultPattern = "*.json"

//go:embed data/*.json
var embedded embed.FS

// document is the on-disk shape of one dataset file. A dataset may be
// split across several documents; only one of them may set the preamble.
type document struct {
	Preamble string    `json:"preamble"`
	Articles []Article `json:"articles"`
}

// LoadEmbedded loads the dataset compiled into the binary.
func LoadEmbedded() (*Dataset, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub, DefaultPattern)
}

// LoadDir loads a dataset from the files under dir that match pattern.
func LoadDir(dir, pattern string) (*Dataset, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("dataset dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset dir %s is not a directory", dir)
	}
	return Load(os.DirFS(dir), pattern)
}

// Load merges every file in fsys matching the doublestar pattern, in
// lexical path order, into one dataset.
func Load(fsys fs.FS, pattern string) (*Dataset, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid dataset pattern %q", pattern)
	}

	paths, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no dataset files match %q", pattern)
	}
	sort.Strings(paths)

	var (
		preamble     string
		preambleFrom string
		articles     []Article
	)

	for _, path := range paths {
		doc, err := readDocument(fsys, path)
		if err != nil {
			return nil, err
		}

		if doc.Preamble != "" {
			if preambleFrom != "" {
				return nil, fmt.Errorf("%s: preamble already defined in %s", path, preambleFrom)
			}
			preamble = doc.Preamble
			preambleFrom = path
		}

		articles = append(articles, doc.Articles...)
	}

	ds, err := NewDataset(preamble, articles)
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}
	return ds, nil
}

func readDocument(fsys fs.FS, path string) (*document, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	doc.Preamble = norm.NFC.String(doc.Preamble)
	for i := range doc.Articles {
		a := &doc.Articles[i]
		a.Number = norm.NFC.String(a.Number)
		a.Title = norm.NFC.String(a.Title)
		a.Description = norm.NFC.String(a.Description)
	}

	return &doc, nil
}
