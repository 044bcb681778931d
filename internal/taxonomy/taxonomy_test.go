package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderHasNoDuplicates(t *testing.T) {
	seen := make(map[Slug]bool)
	for _, s := range Order {
		assert.False(t, seen[s], "duplicate slug %q in Order", s)
		seen[s] = true
	}
}

func TestEveryKeywordCategoryIsKnown(t *testing.T) {
	for slug := range Keywords {
		assert.True(t, IsKnown(slug), "keyword table references unknown slug %q", slug)
	}
}

func TestEveryCategoryHasKeywords(t *testing.T) {
	for _, slug := range Order {
		assert.NotEmpty(t, Keywords[slug], "category %q has no trigger keywords", slug)
	}
}

func TestDefaultSlugIsKnown(t *testing.T) {
	require.True(t, IsKnown(DefaultSlug))
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		in   []Slug
		want []Slug
	}{
		{
			name: "drops unknown slugs",
			in:   []Slug{Anxiety, "unknown_slug", Fear},
			want: []Slug{Anxiety, Fear},
		},
		{
			name: "deduplicates preserving first occurrence",
			in:   []Slug{Fear, Anxiety, Fear},
			want: []Slug{Fear, Anxiety},
		},
		{
			name: "all unknown yields empty",
			in:   []Slug{"nope", "also-nope"},
			want: []Slug{},
		},
		{
			name: "empty input",
			in:   nil,
			want: []Slug{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(tt.in))
		})
	}
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"anxiety", "fear"}, Strings([]Slug{Anxiety, Fear}))
}
