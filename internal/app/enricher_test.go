package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

func TestEnricher_Enrich(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(true, true)

	stored := testBookmark("bm_1", "golang")
	stored.Title = ""
	stored.Status = domain.AnalysisPending

	d.bookmarks.EXPECT().Get(mock.Anything, "usr_1", "bm_1").Return(stored, nil)
	d.fetcher.EXPECT().Fetch(mock.Anything, stored.URL).Return(&domain.PageContent{
		Title:    "Channels in depth",
		ImageURL: "https://example.com/cover.png",
		Content:  "Channels are typed conduits.",
	}, nil)
	d.vocab.EXPECT().Tags(mock.Anything, "usr_1").Return([]string{"golang", "concurrency"}, nil).Once()
	d.users.EXPECT().Get(mock.Anything, "usr_1").Return(plainUser(), nil)
	d.analyzer.EXPECT().Analyze(mock.Anything, stored.URL, "Channels are typed conduits.", serverDefault).
		Return(domain.AnalysisResult{
			Summary:  "Channels explained.",
			Tags:     []string{"Concurrency", "channels"},
			Category: domain.CategoryArticle,
		})
	d.bookmarks.EXPECT().Update(mock.Anything, stored).Return(nil).Once()
	d.search.EXPECT().Index(mock.Anything, stored).Return(nil).Once()

	err := d.enricher().Enrich(context.Background(), EnrichmentJob{UserID: "usr_1", BookmarkID: "bm_1"})

	require.NoError(t, err)
	assert.Equal(t, "Channels in depth", stored.Title)
	assert.Equal(t, "https://example.com/cover.png", stored.ImageURL)
	assert.Equal(t, []string{"golang", "concurrency", "channel"}, stored.Tags)
	assert.Equal(t, domain.AnalysisComplete, stored.Status)
}

func TestEnricher_Enrich_BookmarkGone(t *testing.T) {
	d := newDeps(t)

	d.bookmarks.EXPECT().Get(mock.Anything, "usr_1", "bm_1").Return(nil, domain.NewNotFoundError("bookmark", "bm_1"))

	assert.NoError(t, d.enricher().Enrich(context.Background(), EnrichmentJob{UserID: "usr_1", BookmarkID: "bm_1"}))
}

func TestEnricher_Enrich_MarksFailed(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(true, true)

	stored := testBookmark("bm_1")
	stored.Status = domain.AnalysisPending

	d.bookmarks.EXPECT().Get(mock.Anything, "usr_1", "bm_1").Return(stored, nil)
	d.fetcher.EXPECT().Fetch(mock.Anything, stored.URL).Return(nil, errors.New("timeout"))
	d.vocab.EXPECT().Tags(mock.Anything, "usr_1").Return(nil, errors.New("store closed"))
	d.bookmarks.EXPECT().Update(mock.Anything, stored).Return(nil).Once()

	err := d.enricher().Enrich(context.Background(), EnrichmentJob{UserID: "usr_1", BookmarkID: "bm_1"})

	require.Error(t, err)
	assert.Equal(t, domain.AnalysisFailed, stored.Status)
}

func TestEnricher_ProviderConfigFor(t *testing.T) {
	tests := []struct {
		name string
		user *domain.User
		err  error
		want domain.ProviderConfig
	}{
		{name: "no own key", user: plainUser(), want: serverDefault},
		{name: "lookup failure", err: errors.New("store closed"), want: serverDefault},
		{
			name: "own key",
			user: &domain.User{ID: "usr_1", AISettings: domain.AISettings{Provider: domain.ProviderGemini, APIKey: "g-key", Model: "gemini-pro"}},
			want: domain.ProviderConfig{Provider: domain.ProviderGemini, APIKey: "g-key", Model: "gemini-pro"},
		},
		{
			name: "own key without provider",
			user: &domain.User{ID: "usr_1", AISettings: domain.AISettings{APIKey: "k"}},
			want: domain.ProviderConfig{Provider: domain.ProviderOpenAI, APIKey: "k"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t)
			d.users.EXPECT().Get(mock.Anything, "usr_1").Return(tt.user, tt.err)

			assert.Equal(t, tt.want, d.enricher().ProviderConfigFor(context.Background(), "usr_1"))
		})
	}
}

func TestEnricher_Threshold(t *testing.T) {
	tests := []struct {
		name string
		flag float64
		want float64
	}{
		{name: "override", flag: 0.9, want: 0.9},
		{name: "zero", flag: 0, want: 0.85},
		{name: "above one", flag: 1.5, want: 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t)
			d.flags.EXPECT().GetFloat(mock.Anything, ports.FlagTagSimilarityThreshold, mock.Anything).Return(tt.flag)

			assert.InDelta(t, tt.want, d.enricher().Threshold(context.Background()), 1e-9)
		})
	}
}

func TestEnricher_Vocabulary_MemoizedPerRequest(t *testing.T) {
	d := newDeps(t)
	d.vocab.EXPECT().Tags(mock.Anything, "usr_1").Return([]string{"go"}, nil).Once()

	e := d.enricher()
	ctx := withRequestContext(context.Background())

	for range 3 {
		vocab, err := e.Vocabulary(ctx, "usr_1")
		require.NoError(t, err)
		assert.Equal(t, []string{"go"}, vocab)
	}
}

func TestAnalysis_Apply_KeepsUserFields(t *testing.T) {
	b := testBookmark("bm_1")
	b.Title = "Mine"
	b.SiteName = ""

	a := &Analysis{
		Page:   &domain.PageContent{Title: "Theirs", SiteName: "Example", Content: "text"},
		Result: domain.AnalysisResult{Summary: "s", Category: domain.CategoryVideo},
		Tags:   []string{"talk"},
	}

	a.Apply(b)

	assert.Equal(t, "Mine", b.Title)
	assert.Equal(t, "Example", b.SiteName)
	assert.Equal(t, "text", b.Excerpt)
	assert.Equal(t, domain.CategoryVideo, b.Category)
	assert.Equal(t, []string{"talk"}, b.Tags)
}

func TestAnalysisText(t *testing.T) {
	in := AnalyzeInput{Title: " Title ", Description: ""}

	assert.Equal(t, "body", analysisText(&domain.PageContent{Content: "body"}, in))
	assert.Equal(t, "Title", analysisText(nil, in))
	assert.Equal(t, "Title\n\nPage title\n\nPage description",
		analysisText(&domain.PageContent{Title: "Page title", Description: "Page description", Content: "  "}, in))
}
