package constitution

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(body)}
}

func TestLoadMergesFilesInPathOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"02_rights.json":   file(`{"articles":[{"number":"14","title":"Equality before law","description":"d14"}]}`),
		"00_preamble.json": file(`{"preamble":"We, the people"}`),
		"01_union.json":    file(`{"articles":[{"number":"1","title":"Name and territory of the Union","description":"d1"}]}`),
		"README.md":        file(`not a dataset`),
	}

	ds, err := Load(fsys, "*.json")
	require.NoError(t, err)

	articles := ds.AllArticles()
	require.Len(t, articles, 2)
	assert.Equal(t, "1", articles[0].Number)
	assert.Equal(t, "14", articles[1].Number)
	assert.Equal(t, "We, the people", ds.PreambleText())
}

func TestLoadRecursivePattern(t *testing.T) {
	fsys := fstest.MapFS{
		"parts/iii/rights.json": file(`{"articles":[{"number":"21","title":"t","description":"d"}]}`),
		"parts/i/union.json":    file(`{"articles":[{"number":"1","title":"t","description":"d"}]}`),
		"top.json":              file(`{"articles":[{"number":"99","title":"t","description":"d"}]}`),
	}

	ds, err := Load(fsys, "parts/**/*.json")
	require.NoError(t, err)

	articles := ds.AllArticles()
	require.Len(t, articles, 2)
	assert.Equal(t, "1", articles[0].Number)
	assert.Equal(t, "21", articles[1].Number)
	assert.Equal(t, PreambleNotFound, ds.PreambleText())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		pattern string
		wantErr string
	}{
		{
			name:    "no matching files",
			fsys:    fstest.MapFS{"a.txt": file("x")},
			pattern: "*.json",
			wantErr: "no dataset files match",
		},
		{
			name:    "invalid pattern",
			fsys:    fstest.MapFS{},
			pattern: "[",
			wantErr: "invalid dataset pattern",
		},
		{
			name:    "malformed json",
			fsys:    fstest.MapFS{"a.json": file(`{"articles": [`)},
			pattern: "*.json",
			wantErr: "parse a.json",
		},
		{
			name:    "unknown field",
			fsys:    fstest.MapFS{"a.json": file(`{"chapters": []}`)},
			pattern: "*.json",
			wantErr: "parse a.json",
		},
		{
			name: "second preamble",
			fsys: fstest.MapFS{
				"a.json": file(`{"preamble":"one"}`),
				"b.json": file(`{"preamble":"two"}`),
			},
			pattern: "*.json",
			wantErr: "b.json: preamble already defined in a.json",
		},
		{
			name: "duplicate numbers across files",
			fsys: fstest.MapFS{
				"a.json": file(`{"articles":[{"number":"5","title":"t","description":"d"}]}`),
				"b.json": file(`{"articles":[{"number":"5","title":"t","description":"d"}]}`),
			},
			pattern: "*.json",
			wantErr: `duplicate article number "5"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fsys, tt.pattern)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadNormalizesToNFC(t *testing.T) {
	// "e" followed by a combining acute accent.
	fsys := fstest.MapFS{
		"a.json": file(`{"articles":[{"number":"1","title":"Cafe\u0301","description":"d"}]}`),
	}

	ds, err := Load(fsys, "")
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", ds.AllArticles()[0].Title)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.json"),
		[]byte(`{"preamble":"p","articles":[{"number":"1","title":"t","description":"d"}]}`), 0644))

	ds, err := LoadDir(dir, DefaultPattern)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	_, err = LoadDir(filepath.Join(dir, "missing"), DefaultPattern)
	assert.Error(t, err)

	_, err = LoadDir(filepath.Join(dir, "data.json"), DefaultPattern)
	assert.ErrorContains(t, err, "not a directory")
}

func TestLoadEmbedded(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, 503, ds.Len())
	assert.Contains(t, ds.PreambleText(), "SOVEREIGN SOCIALIST SECULAR DEMOCRATIC REPUBLIC")

	articles := ds.AllArticles()
	assert.Equal(t, "1", articles[0].Number)
	assert.Equal(t, "395", articles[len(articles)-1].Number)
}
