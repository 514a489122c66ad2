// Package constitution provides read-only lookups over the Indian
// Constitution: the Preamble and the numbered articles.
//
// The package-level functions query the dataset embedded in the binary.
// Use New with a dataset from Load or LoadDir to query other data.
//
//	fmt.Println(constitution.GetArticleSummary(constitution.Number(21)))
//	// Article 21 - Protection of life and personal liberty
//
// Lookups that find nothing return fixed sentinel strings such as
// ArticleNotFound rather than an error.
package constitution

// GetPreamble returns the Preamble text.
func GetPreamble() string {
	return New(Default()).Preamble()
}

// GetArticle returns "Article {number}: {title} - {description}" or ArticleNotFound.
func GetArticle(id Identifier) string {
	return New(Default()).Article(id)
}

// ListArticles returns every article heading, one per line.
func ListArticles() string {
	return New(Default()).List()
}

// SearchKeyword returns headings of articles mentioning keyword in the
// title or description, or NoKeywordMatches.
func SearchKeyword(keyword string) string {
	return New(Default()).SearchKeyword(keyword)
}

// GetArticleSummary returns "Article {number} - {title}" or ArticleNotFound.
func GetArticleSummary(id Identifier) string {
	return New(Default()).Summary(id)
}

// CountTotalArticles returns the number of articles in the embedded dataset.
func CountTotalArticles() int {
	return New(Default()).Count()
}

// SearchByTitle returns headings of articles whose title contains
// keyword, or NoTitleMatches.
func SearchByTitle(keyword string) string {
	return New(Default()).SearchTitle(keyword)
}
