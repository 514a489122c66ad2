package constitution

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/cases"
)

func TestGetPreamble(t *testing.T) {
	preamble := GetPreamble()

	assert.True(t, strings.HasPrefix(preamble, "WE, THE PEOPLE OF INDIA"))
	assert.True(t, strings.HasSuffix(preamble, "THIS CONSTITUTION."))
	assert.Equal(t, strings.TrimSpace(preamble), preamble)
}

func TestGetArticle(t *testing.T) {
	assert.Equal(t,
		"Article 14: Equality before law - The State shall not deny to any person equality before the law or the equal protection of the laws within the territory of India.",
		GetArticle(Number(14)))
	assert.Equal(t, GetArticle(Number(14)), GetArticle(Text("14")))
	assert.Equal(t, ArticleNotFound, GetArticle(Number(9999)))

	for _, a := range Default().AllArticles() {
		got := GetArticle(Text(a.Number))
		assert.Contains(t, got, a.Title)
		assert.Contains(t, got, a.Description)
	}
}

func TestGetArticleSummary(t *testing.T) {
	assert.Equal(t, "Article 21 - Protection of life and personal liberty", GetArticleSummary(Number(21)))
	assert.Equal(t, "Article 21A - Right to education", GetArticleSummary(Text("21A")))
	assert.Equal(t, ArticleNotFound, GetArticleSummary(Text("999Z")))
	assert.Equal(t, ArticleNotFound, GetArticleSummary(nil))
}

func TestEveryArticleNumberIsPresent(t *testing.T) {
	for n := 1; n <= 395; n++ {
		assert.NotEqual(t, ArticleNotFound, GetArticleSummary(Number(n)), "article %d", n)
	}

	assert.Equal(t, "Article 32A - Constitutional validity of State laws not to be considered in proceedings under article 32", GetArticleSummary(Text("32A")))
	assert.Equal(t, "Article 55 - Manner of election of President", GetArticleSummary(Number(55)))
	assert.Contains(t, GetArticle(Number(370)), "Jammu and Kashmir")
	assert.Contains(t, GetArticle(Text("243ZT")), "co-operative societies")
}

func TestCountTotalArticles(t *testing.T) {
	assert.Equal(t, len(Default().AllArticles()), CountTotalArticles())
	assert.Equal(t, CountTotalArticles(), len(strings.Split(ListArticles(), "\n")))
}

func TestListArticlesKeepsDatasetOrder(t *testing.T) {
	lines := strings.Split(ListArticles(), "\n")
	articles := Default().AllArticles()
	require.Len(t, lines, len(articles))

	for i, a := range articles {
		assert.Equal(t, "Article "+a.Number+": "+a.Title, lines[i])
	}
}

func TestSearchKeywordNotFound(t *testing.T) {
	assert.Equal(t, NoKeywordMatches, SearchKeyword("zzzznotfound"))
	assert.Equal(t, NoTitleMatches, SearchByTitle("zzzznotfound"))
}

func TestSearchProperties(t *testing.T) {
	keywords := []string{"equality", "PRESIDENT", "writ", "Supreme Court", "education", "emergency", "panchayat"}
	listed := lineSet(ListArticles())
	fold := cases.Fold()

	for _, kw := range keywords {
		t.Run(kw, func(t *testing.T) {
			needle := fold.String(kw)

			var wantAny, wantTitle []string
			for _, a := range Default().AllArticles() {
				line := "Article " + a.Number + ": " + a.Title
				inTitle := strings.Contains(fold.String(a.Title), needle)
				if inTitle || strings.Contains(fold.String(a.Description), needle) {
					wantAny = append(wantAny, line)
				}
				if inTitle {
					wantTitle = append(wantTitle, line)
				}
			}
			require.NotEmpty(t, wantAny, "keyword should match the embedded dataset")

			got := SearchKeyword(kw)
			assert.Equal(t, strings.Join(wantAny, "\n"), got)
			for line := range lineSet(got) {
				assert.Contains(t, listed, line)
			}

			byTitle := SearchByTitle(kw)
			if len(wantTitle) == 0 {
				assert.Equal(t, NoTitleMatches, byTitle)
				return
			}
			assert.Equal(t, strings.Join(wantTitle, "\n"), byTitle)
			assert.Equal(t, byTitle, SearchByTitle(kw))

			anyLines := lineSet(got)
			for line := range lineSet(byTitle) {
				assert.Contains(t, anyLines, line)
			}
		})
	}
}

func lineSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(s, "\n") {
		set[line] = struct{}{}
	}
	return set
}
