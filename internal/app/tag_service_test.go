package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

func (d *deps) tagService() *TagService {
	return NewTagService(TagServiceConfig{
		Bookmarks:  d.bookmarks,
		Vocabulary: d.vocab,
		Enricher:   d.enricher(),
		Workers:    2,
		Logger:     discardLogger(),
	})
}

// walkOver makes WalkUser visit items.
func (d *deps) walkOver(userID string, items ...*domain.Bookmark) {
	d.bookmarks.EXPECT().WalkUser(mock.Anything, userID, mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, fn func(*domain.Bookmark) error) error {
			for _, b := range items {
				if err := fn(b); err != nil {
					return err
				}
			}

			return nil
		})
}

var vocabStats = []domain.TagStat{
	{Name: "kubernetes", Count: 6},
	{Name: "python", Count: 3},
	{Name: "kubernete", Count: 2},
}

func TestTagService_ConsolidateTags_DryRun(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, true)
	d.vocab.EXPECT().Stats(mock.Anything, "usr_1").Return(vocabStats, nil)

	res, err := d.tagService().ConsolidateTags(context.Background(), "usr_1", true)

	require.NoError(t, err)
	assert.True(t, res.DryRun)
	require.Len(t, res.Merges, 1)
	assert.Equal(t, "kubernete", res.Merges[0].From)
	assert.Equal(t, "kubernetes", res.Merges[0].Into)
	assert.Equal(t, 2, res.Merges[0].Affected)
	assert.GreaterOrEqual(t, res.Merges[0].Similarity, 0.85)
	assert.Zero(t, res.Rewritten)
}

func TestTagService_ConsolidateTags_Rewrites(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, true)
	d.vocab.EXPECT().Stats(mock.Anything, "usr_1").Return(vocabStats, nil)

	both := testBookmark("bm_1", "kubernete", "kubernetes")
	typo := testBookmark("bm_2", "python", "kubernete")
	clean := testBookmark("bm_3", "python")
	d.walkOver("usr_1", both, typo, clean)

	d.bookmarks.EXPECT().Update(mock.Anything, both).Return(nil).Once()
	d.bookmarks.EXPECT().Update(mock.Anything, typo).Return(nil).Once()
	d.search.EXPECT().Index(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil).Times(2)

	res, err := d.tagService().ConsolidateTags(context.Background(), "usr_1", false)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Rewritten)
	assert.Equal(t, []string{"kubernetes"}, both.Tags)
	assert.Equal(t, []string{"python", "kubernetes"}, typo.Tags)
	assert.Equal(t, []string{"python"}, clean.Tags)
}

func TestTagService_ConsolidateTags_NothingToMerge(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, true)
	d.vocab.EXPECT().Stats(mock.Anything, "usr_1").Return([]domain.TagStat{{Name: "go", Count: 1}}, nil)

	res, err := d.tagService().ConsolidateTags(context.Background(), "usr_1", false)

	require.NoError(t, err)
	assert.Empty(t, res.Merges)
}

func TestTagService_RenameTag(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, false)

	tagged := testBookmark("bm_1", "go lang", "web")
	d.walkOver("usr_1", tagged, testBookmark("bm_2", "web"))
	d.bookmarks.EXPECT().Update(mock.Anything, tagged).Return(nil).Once()

	n, err := d.tagService().RenameTag(context.Background(), "usr_1", "Go  Lang", "Golang")

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"golang", "web"}, tagged.Tags)
}

func TestTagService_RenameTag_Errors(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		check    func(error) bool
	}{
		{name: "empty source", from: " ", to: "go", check: domain.IsValidation},
		{name: "empty target", from: "go", to: "", check: domain.IsValidation},
		{name: "same after normalizing", from: "Databases", to: "database", check: domain.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t)

			_, err := d.tagService().RenameTag(context.Background(), "usr_1", tt.from, tt.to)
			assert.True(t, tt.check(err))
		})
	}

	t.Run("unused tag", func(t *testing.T) {
		d := newDeps(t)
		d.walkOver("usr_1", testBookmark("bm_1", "web"))

		_, err := d.tagService().RenameTag(context.Background(), "usr_1", "rust", "rustlang")
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestReplaceTags(t *testing.T) {
	got := replaceTags([]string{"a", "b", "c", "d"}, map[string]string{"b": "a", "d": "e"})

	assert.Equal(t, []string{"a", "c", "e"}, got)
}
