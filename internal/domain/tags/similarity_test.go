package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "golang", b: "golang", want: 1},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "one empty", a: "go", b: "", want: 0},
		{name: "single runes differ", a: "a", b: "b", want: 0},
		{name: "disjoint", a: "ab", b: "cd", want: 0},
		{name: "night nacht", a: "night", b: "nacht", want: 0.25},
		{name: "hyphen vs space", a: "machine-learning", b: "machine learning", want: 26.0 / 30.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, Similarity(tt.b, tt.a), 1e-9)
		})
	}
}

func TestFindSimilarTag(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		existing  []string
		want      string
		found     bool
	}{
		{
			name:      "plural collapses to exact match",
			candidate: "Images",
			existing:  []string{"image"},
			want:      "image",
			found:     true,
		},
		{
			name:      "exact match keeps existing spelling",
			candidate: "machine learning",
			existing:  []string{"golang", "Machine Learning"},
			want:      "Machine Learning",
			found:     true,
		},
		{
			name:      "fuzzy match above threshold",
			candidate: "machine-learning",
			existing:  []string{"machine learning"},
			want:      "machine learning",
			found:     true,
		},
		{
			name:      "fuzzy match picks best score",
			candidate: "postgresql",
			existing:  []string{"mysql", "postgres"},
			want:      "postgres",
			found:     true,
		},
		{
			name:      "below threshold",
			candidate: "javascript",
			existing:  []string{"java"},
			found:     false,
		},
		{
			name:      "acronym does not merge with expansion",
			candidate: "ai",
			existing:  []string{"artificial intelligence"},
			found:     false,
		},
		{
			name:      "reactjs stays distinct from react",
			candidate: "react",
			existing:  []string{"reactjs"},
			found:     false,
		},
		{
			name:      "empty existing list",
			candidate: "anything",
			existing:  nil,
			found:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindSimilarTag(tt.candidate, tt.existing, DefaultSimilarityThreshold)

			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindSimilarTag_ThresholdIsInclusive(t *testing.T) {
	score := Similarity("machine-learning", "machine learning")

	got, ok := FindSimilarTag("machine-learning", []string{"machine learning"}, score)

	assert.True(t, ok)
	assert.Equal(t, "machine learning", got)
}
