package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessTags(t *testing.T) {
	tests := []struct {
		name     string
		newTags  []string
		existing []string
		want     []string
	}{
		{
			name:     "no new tags",
			newTags:  nil,
			existing: []string{"go", "rust"},
			want:     []string{},
		},
		{
			name:     "empty tags skipped",
			newTags:  []string{"", "  ", "Go"},
			existing: nil,
			want:     []string{"go"},
		},
		{
			name:     "duplicates collapse",
			newTags:  []string{"Images", "image", "IMAGE "},
			existing: nil,
			want:     []string{"image"},
		},
		{
			name:     "short last word stays trimmed",
			newTags:  []string{"vitamin s", "Vitamin  S "},
			existing: nil,
			want:     []string{"vitamin s"},
		},
		{
			name:     "existing spelling wins",
			newTags:  []string{"machine-learning", "Databases"},
			existing: []string{"Machine Learning", "database"},
			want:     []string{"Machine Learning", "database"},
		},
		{
			name:     "unrelated tags added normalized",
			newTags:  []string{"The Frameworks", "rust"},
			existing: []string{"golang"},
			want:     []string{"framework", "rust"},
		},
		{
			name:     "acronyms and expansion stay distinct",
			newTags:  []string{"AI", "a.i.", "artificial intelligence"},
			existing: nil,
			want:     []string{"ai", "a.i.", "artificial intelligence"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProcessTags(tt.newTags, tt.existing, DefaultSimilarityThreshold)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessTags_ArtificialIntelligenceSurvives(t *testing.T) {
	got := ProcessTags([]string{"AI", "a.i.", "artificial intelligence"}, []string{}, DefaultSimilarityThreshold)

	assert.Contains(t, got, "artificial intelligence")
	assert.Contains(t, got, "ai")
}

func TestProcessTags_Idempotent(t *testing.T) {
	first := ProcessTags(
		[]string{"Images", "machine-learning", "Kubernetes", "the Databases", "AI"},
		[]string{"Machine Learning"},
		DefaultSimilarityThreshold,
	)
	require.NotEmpty(t, first)

	again := ProcessTags(first, first, DefaultSimilarityThreshold)

	assert.Equal(t, first, again)
}

func TestSet(t *testing.T) {
	s := NewSet()
	s.Add("b")
	s.Add("a")
	s.Add("b")

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))
	assert.Equal(t, []string{"b", "a"}, s.Slice())
}

func TestPlanMerges(t *testing.T) {
	merges := PlanMerges([]string{"machine learning", "golang", "machine-learning", "Images", "image"}, DefaultSimilarityThreshold)

	require.Len(t, merges, 2)
	assert.Equal(t, "machine-learning", merges[0].From)
	assert.Equal(t, "machine learning", merges[0].Into)
	assert.Equal(t, "image", merges[1].From)
	assert.Equal(t, "Images", merges[1].Into)
	assert.InDelta(t, 1.0, merges[1].Score, 1e-9)
}
