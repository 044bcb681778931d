package classifier

import (
	"strings"

	"github.com/gita-guidance-search-api/internal/taxonomy"
)

// ClassifyKeywords maps free text to taxonomy categories by case-insensitive
// substring matching against the trigger table. It is total: when nothing
// matches, the result is the designated default category, so ranking always
// has something to query.
func ClassifyKeywords(text string) []taxonomy.Slug {
	lowered := strings.ToLower(text)

	var matched []taxonomy.Slug
	for _, slug := range taxonomy.Order {
		for _, kw := range taxonomy.Keywords[slug] {
			if strings.Contains(lowered, kw) {
				matched = append(matched, slug)
				break
			}
		}
	}

	if len(matched) == 0 {
		matched = []taxonomy.Slug{taxonomy.DefaultSlug}
	}
	return matched
}
