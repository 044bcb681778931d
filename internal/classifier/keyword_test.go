package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gita-guidance-search-api/internal/taxonomy"
)

func TestClassifyKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []taxonomy.Slug
	}{
		{
			name: "anxiety keyword",
			text: "I'm struggling with anxiety",
			want: []taxonomy.Slug{taxonomy.Anxiety},
		},
		{
			name: "case insensitive",
			text: "I AM SO WORRIED ABOUT EVERYTHING",
			want: []taxonomy.Slug{taxonomy.Anxiety},
		},
		{
			name: "multiple categories",
			text: "I feel angry at my family all the time",
			want: []taxonomy.Slug{taxonomy.Relationships, taxonomy.Anger},
		},
		{
			name: "no match falls back to default",
			text: "xyzzy quux",
			want: []taxonomy.Slug{taxonomy.DefaultSlug},
		},
		{
			name: "empty text falls back to default",
			text: "",
			want: []taxonomy.Slug{taxonomy.DefaultSlug},
		},
		{
			name: "keyword inside a longer word",
			text: "the indecision is killing me",
			want: []taxonomy.Slug{taxonomy.DecisionMaking},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyKeywords(tt.text))
		})
	}
}

// The classifier is total: whatever the input, the result is never empty.
func TestClassifyKeywordsNeverEmpty(t *testing.T) {
	inputs := []string{
		"", " ", "hello", "12345", "!!!???",
		"a very long rambling story about nothing in particular that matches no trigger",
		"ANXIETY fear confusion anger",
	}
	for _, in := range inputs {
		assert.NotEmpty(t, ClassifyKeywords(in), "input %q produced an empty category set", in)
	}
}

func TestClassifyKeywordsReturnsOnlyKnownSlugs(t *testing.T) {
	for _, slug := range ClassifyKeywords("I am afraid and confused and angry about my team") {
		assert.True(t, taxonomy.IsKnown(slug))
	}
}
