package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxKeywords caps the number of keywords extracted from a query.
const MaxKeywords = 10

// Articles, pronouns, auxiliary verbs and the filler words students wrap
// around a request. Tokens of two runes or fewer are dropped before this
// set is consulted.
var defaultStopWords = []string{
	// articles and determiners
	"the", "this", "that", "these", "those", "any", "some", "all",
	// pronouns
	"you", "your", "yours", "him", "his", "her", "hers", "its", "our", "ours",
	"they", "them", "their", "mine", "what", "whats", "which", "who", "whom",
	// auxiliaries
	"are", "was", "were", "been", "being", "has", "have", "had", "does", "did",
	"can", "could", "will", "would", "should", "shall", "may", "might", "must",
	// fillers
	"and", "but", "for", "with", "from", "about", "into", "please", "show",
	"help", "want", "get", "give", "find", "list", "need",
}

// extractKeywords lower-cases text, strips punctuation and returns up to max
// tokens, in order, that are longer than two runes and not stop words.
func extractKeywords(text string, stopWords map[string]struct{}, max int) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, text)

	keywords := make([]string, 0, max)
	for _, word := range strings.Fields(cleaned) {
		if len(keywords) == max {
			break
		}
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}
