package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

const postURL = "https://example.com/post"

func TestBookmarkService_Create_Inline(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, true)

	d.bookmarks.EXPECT().FindByURL(mock.Anything, "usr_1", postURL).
		Return(nil, domain.NewNotFoundError("bookmark", postURL))
	d.fetcher.EXPECT().Fetch(mock.Anything, postURL).Return(&domain.PageContent{
		URL:      postURL,
		Title:    "Writing Go services",
		SiteName: "Example",
		Content:  "Body text about services.",
	}, nil)
	d.vocab.EXPECT().Tags(mock.Anything, "usr_1").Return([]string{"golang"}, nil).Once()
	d.users.EXPECT().Get(mock.Anything, "usr_1").Return(plainUser(), nil)
	d.analyzer.EXPECT().Analyze(mock.Anything, postURL, "Body text about services.", serverDefault).
		Return(domain.AnalysisResult{
			Summary:  "How to write Go services.",
			Tags:     []string{"golang", "Testing"},
			Category: domain.CategoryArticle,
		})
	d.bookmarks.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil)
	d.search.EXPECT().Index(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil)

	svc := d.bookmarkService(nil)

	// Tracking parameters are stripped before the duplicate check.
	b, err := svc.Create(context.Background(), CreateBookmarkInput{
		UserID: "usr_1",
		URL:    postURL + "?utm_source=feed",
		Tags:   []string{"Golang"},
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(b.ID, "bm_"))
	assert.Equal(t, postURL, b.URL)
	assert.Equal(t, "Writing Go services", b.Title)
	assert.Equal(t, "Example", b.SiteName)
	assert.Equal(t, "How to write Go services.", b.Summary)
	assert.Equal(t, []string{"golang", "testing"}, b.Tags)
	assert.Equal(t, domain.AnalysisComplete, b.Status)
	assert.Equal(t, "Body text about services.", b.Excerpt)
}

func TestBookmarkService_Create_DuplicateURL(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, true)

	d.bookmarks.EXPECT().FindByURL(mock.Anything, "usr_1", postURL).Return(testBookmark("bm_existing"), nil)

	_, err := d.bookmarkService(nil).Create(context.Background(), CreateBookmarkInput{UserID: "usr_1", URL: postURL})

	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "bm_existing", conflict.Details)
}

func TestBookmarkService_Create_Queued(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(true, true)

	d.bookmarks.EXPECT().FindByURL(mock.Anything, "usr_1", postURL).
		Return(nil, domain.NewNotFoundError("bookmark", postURL))
	d.vocab.EXPECT().Tags(mock.Anything, "usr_1").Return([]string{"databases"}, nil)
	d.bookmarks.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil)
	d.search.EXPECT().Index(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil)

	queue := &recordingQueue{}

	b, err := d.bookmarkService(queue).Create(context.Background(), CreateBookmarkInput{
		UserID: "usr_1",
		URL:    postURL,
		Tags:   []string{"Database", "  "},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisPending, b.Status)
	assert.Equal(t, postURL, b.Title)
	// The user's existing spelling wins over the submitted one.
	assert.Equal(t, []string{"databases"}, b.Tags)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, EnrichmentJob{UserID: "usr_1", BookmarkID: b.ID}, queue.jobs[0])
}

func TestBookmarkService_Create_FullQueueStaysPending(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(true, false)

	d.bookmarks.EXPECT().FindByURL(mock.Anything, "usr_1", postURL).
		Return(nil, domain.NewNotFoundError("bookmark", postURL))
	d.vocab.EXPECT().Tags(mock.Anything, "usr_1").Return(nil, nil)
	d.bookmarks.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil)

	b, err := d.bookmarkService(&recordingQueue{err: ErrQueueFull}).Create(context.Background(),
		CreateBookmarkInput{UserID: "usr_1", URL: postURL})

	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisPending, b.Status)
}

func TestBookmarkService_Create_FetchFailureDegrades(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, false)

	d.bookmarks.EXPECT().FindByURL(mock.Anything, "usr_1", postURL).
		Return(nil, domain.NewNotFoundError("bookmark", postURL))
	d.fetcher.EXPECT().Fetch(mock.Anything, postURL).Return(nil, errors.New("connection refused"))
	d.vocab.EXPECT().Tags(mock.Anything, "usr_1").Return(nil, nil)
	d.users.EXPECT().Get(mock.Anything, "usr_1").Return(plainUser(), nil)
	d.analyzer.EXPECT().Analyze(mock.Anything, postURL, "My title\n\nMy notes on it", serverDefault).
		Return(domain.AnalysisResult{Summary: "Summary from metadata.", Tags: []string{}, Category: domain.CategoryResearch})
	d.bookmarks.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil)

	b, err := d.bookmarkService(nil).Create(context.Background(), CreateBookmarkInput{
		UserID:      "usr_1",
		URL:         postURL,
		Title:       "My title",
		Description: "My notes on it",
	})

	require.NoError(t, err)
	assert.Equal(t, "My title", b.Title)
	assert.Equal(t, "Summary from metadata.", b.Summary)
	assert.Equal(t, domain.CategoryResearch, b.Category)
	assert.Empty(t, b.Excerpt)
	assert.Equal(t, domain.AnalysisComplete, b.Status)
}

func TestBookmarkService_Create_IndexFailureRollsBack(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(true, true)

	d.bookmarks.EXPECT().FindByURL(mock.Anything, "usr_1", postURL).
		Return(nil, domain.NewNotFoundError("bookmark", postURL))
	d.vocab.EXPECT().Tags(mock.Anything, "usr_1").Return(nil, nil)
	d.bookmarks.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil)
	d.search.EXPECT().Index(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(errors.New("index closed"))
	d.bookmarks.EXPECT().Delete(mock.Anything, "usr_1", mock.AnythingOfType("string")).Return(nil).Once()

	queue := &recordingQueue{}

	_, err := d.bookmarkService(queue).Create(context.Background(), CreateBookmarkInput{UserID: "usr_1", URL: postURL})

	require.Error(t, err)

	stage, ok := StageOf(err)
	require.True(t, ok)
	assert.Equal(t, StageArchive, stage)
	assert.Empty(t, queue.jobs)
}

func TestBookmarkService_Create_Validation(t *testing.T) {
	tooManyTags := make([]string, MaxUserTags+1)
	for i := range tooManyTags {
		tooManyTags[i] = "t" + strings.Repeat("x", i)
	}

	tests := []struct {
		name  string
		input CreateBookmarkInput
		field string
	}{
		{name: "empty url", input: CreateBookmarkInput{UserID: "usr_1", URL: "  "}, field: "url"},
		{
			name:  "long title",
			input: CreateBookmarkInput{UserID: "usr_1", URL: postURL, Title: strings.Repeat("é", MaxTitleRunes+1)},
			field: "title",
		},
		{
			name:  "long notes",
			input: CreateBookmarkInput{UserID: "usr_1", URL: postURL, Notes: strings.Repeat("n", MaxNotesRunes+1)},
			field: "notes",
		},
		{name: "too many tags", input: CreateBookmarkInput{UserID: "usr_1", URL: postURL, Tags: tooManyTags}, field: "tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t)
			d.stubFlags(false, true)

			_, err := d.bookmarkService(nil).Create(context.Background(), tt.input)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestBookmarkService_Create_UnknownFolder(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, true)

	d.folders.EXPECT().Get(mock.Anything, "usr_1", "fld_missing").
		Return(nil, domain.NewNotFoundError("folder", "fld_missing"))

	_, err := d.bookmarkService(nil).Create(context.Background(), CreateBookmarkInput{
		UserID:   "usr_1",
		URL:      postURL,
		FolderID: "fld_missing",
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "folder_id", verr.Field)
}

func TestBookmarkService_List_Pagination(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, true)

	items := []*domain.Bookmark{testBookmark("bm_3"), testBookmark("bm_2"), testBookmark("bm_1")}
	items[0].CreatedAt = testNow.Add(2 * time.Minute)
	items[1].CreatedAt = testNow.Add(time.Minute)

	d.bookmarks.EXPECT().
		List(mock.Anything, "usr_1", domain.BookmarkFilter{}, (*domain.PageCursor)(nil), 3).
		Return(items, nil).Once()

	svc := d.bookmarkService(nil)

	page, err := svc.List(context.Background(), ListBookmarksInput{UserID: "usr_1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Bookmarks, 2)
	require.NotEmpty(t, page.NextCursor)

	want := &domain.PageCursor{CreatedAt: items[1].CreatedAt, ID: "bm_2"}
	d.bookmarks.EXPECT().
		List(mock.Anything, "usr_1", domain.BookmarkFilter{}, want, 3).
		Return(items[2:], nil).Once()

	next, err := svc.List(context.Background(), ListBookmarksInput{UserID: "usr_1", Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, next.Bookmarks, 1)
	assert.Empty(t, next.NextCursor)
}

func TestBookmarkService_List_NormalizesFilter(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, true)

	d.bookmarks.EXPECT().
		List(mock.Anything, "usr_1", domain.BookmarkFilter{Tag: "database", Category: domain.CategoryVideo}, (*domain.PageCursor)(nil), DefaultPageSize+1).
		Return(nil, nil)

	page, err := d.bookmarkService(nil).List(context.Background(), ListBookmarksInput{
		UserID: "usr_1",
		Filter: domain.BookmarkFilter{Tag: " Databases ", Category: "video"},
	})

	require.NoError(t, err)
	assert.Empty(t, page.Bookmarks)
}

func TestBookmarkService_List_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input ListBookmarksInput
		field string
	}{
		{name: "unknown category", input: ListBookmarksInput{Filter: domain.BookmarkFilter{Category: "Podcast"}}, field: "category"},
		{name: "bad cursor encoding", input: ListBookmarksInput{Cursor: "%%%"}, field: "cursor"},
		{name: "cursor without id", input: ListBookmarksInput{Cursor: "MTIz"}, field: "cursor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t)
			tt.input.UserID = "usr_1"

			_, err := d.bookmarkService(nil).List(context.Background(), tt.input)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCursor_RoundTrip(t *testing.T) {
	b := testBookmark("bm_abc")
	b.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC)

	cursor, err := DecodeCursor(EncodeCursor(b))

	require.NoError(t, err)
	assert.Equal(t, &domain.PageCursor{CreatedAt: b.CreatedAt, ID: "bm_abc"}, cursor)

	empty, err := DecodeCursor("")
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestBookmarkService_Update(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, true)

	d.bookmarks.EXPECT().Get(mock.Anything, "usr_1", "bm_1").Return(testBookmark("bm_1", "old"), nil)
	d.vocab.EXPECT().Tags(mock.Anything, "usr_1").Return([]string{"kubernetes"}, nil)
	d.bookmarks.EXPECT().Update(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil)
	d.search.EXPECT().Index(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil)

	title := "  Renamed  "
	newTags := []string{"Kubernetes", "The Operators"}
	favorite := true

	b, err := d.bookmarkService(nil).Update(context.Background(), UpdateBookmarkInput{
		UserID:   "usr_1",
		ID:       "bm_1",
		Title:    &title,
		Tags:     &newTags,
		Favorite: &favorite,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", b.Title)
	assert.Equal(t, []string{"kubernetes", "operator"}, b.Tags)
	assert.True(t, b.Favorite)
}

func TestBookmarkService_Update_BlankTitleFallsBackToURL(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, false)

	d.bookmarks.EXPECT().Get(mock.Anything, "usr_1", "bm_1").Return(testBookmark("bm_1"), nil)
	d.bookmarks.EXPECT().Update(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil)

	blank := " "

	b, err := d.bookmarkService(nil).Update(context.Background(), UpdateBookmarkInput{UserID: "usr_1", ID: "bm_1", Title: &blank})

	require.NoError(t, err)
	assert.Equal(t, b.URL, b.Title)
}

func TestBookmarkService_Update_NotFound(t *testing.T) {
	d := newDeps(t)

	d.bookmarks.EXPECT().Get(mock.Anything, "usr_2", "bm_1").Return(nil, domain.NewNotFoundError("bookmark", "bm_1"))

	_, err := d.bookmarkService(nil).Update(context.Background(), UpdateBookmarkInput{UserID: "usr_2", ID: "bm_1"})

	assert.True(t, domain.IsNotFound(err))
}

func TestBookmarkService_Delete(t *testing.T) {
	t.Run("removes the search entry", func(t *testing.T) {
		d := newDeps(t)
		d.stubFlags(false, true)

		d.bookmarks.EXPECT().Delete(mock.Anything, "usr_1", "bm_1").Return(nil)
		d.search.EXPECT().Remove(mock.Anything, "bm_1").Return(errors.New("index closed"))

		assert.NoError(t, d.bookmarkService(nil).Delete(context.Background(), "usr_1", "bm_1"))
	})

	t.Run("search disabled", func(t *testing.T) {
		d := newDeps(t)
		d.stubFlags(false, false)

		d.bookmarks.EXPECT().Delete(mock.Anything, "usr_1", "bm_1").Return(nil)

		assert.NoError(t, d.bookmarkService(nil).Delete(context.Background(), "usr_1", "bm_1"))
	})

	t.Run("missing bookmark", func(t *testing.T) {
		d := newDeps(t)

		d.bookmarks.EXPECT().Delete(mock.Anything, "usr_1", "bm_1").Return(domain.NewNotFoundError("bookmark", "bm_1"))

		err := d.bookmarkService(nil).Delete(context.Background(), "usr_1", "bm_1")
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestBookmarkService_Reanalyze_Queued(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(true, true)

	d.bookmarks.EXPECT().Get(mock.Anything, "usr_1", "bm_1").Return(testBookmark("bm_1"), nil)
	d.bookmarks.EXPECT().Update(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil)

	queue := &recordingQueue{}

	b, err := d.bookmarkService(queue).Reanalyze(context.Background(), "usr_1", "bm_1")

	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisPending, b.Status)
	assert.Len(t, queue.jobs, 1)
}

func TestBookmarkService_Reanalyze_QueueFull(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(true, true)

	d.bookmarks.EXPECT().Get(mock.Anything, "usr_1", "bm_1").Return(testBookmark("bm_1"), nil)
	d.bookmarks.EXPECT().Update(mock.Anything, mock.AnythingOfType("*domain.Bookmark")).Return(nil)

	_, err := d.bookmarkService(&recordingQueue{err: ErrQueueFull}).Reanalyze(context.Background(), "usr_1", "bm_1")

	assert.True(t, domain.IsUnavailable(err))
}

func TestBookmarkService_Reanalyze_Inline(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, false)

	stored := testBookmark("bm_1", "golang")
	stored.Status = domain.AnalysisFailed

	d.bookmarks.EXPECT().Get(mock.Anything, "usr_1", "bm_1").Return(stored, nil)
	d.fetcher.EXPECT().Fetch(mock.Anything, stored.URL).Return(&domain.PageContent{Content: "Fresh content."}, nil)
	d.vocab.EXPECT().Tags(mock.Anything, "usr_1").Return([]string{"golang"}, nil)
	d.users.EXPECT().Get(mock.Anything, "usr_1").Return(plainUser(), nil)
	d.analyzer.EXPECT().Analyze(mock.Anything, stored.URL, "Fresh content.", serverDefault).
		Return(domain.AnalysisResult{Summary: "Fresh summary.", Tags: []string{"concurrency"}, Category: domain.CategoryArticle})
	d.bookmarks.EXPECT().Update(mock.Anything, stored).Return(nil)

	b, err := d.bookmarkService(nil).Reanalyze(context.Background(), "usr_1", "bm_1")

	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisComplete, b.Status)
	assert.Equal(t, "Fresh summary.", b.Summary)
	assert.Equal(t, []string{"golang", "concurrency"}, b.Tags)
}

func TestBookmarkService_Search(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, true)

	d.search.EXPECT().Search(mock.Anything, "usr_1", "kubernetes", DefaultPageSize).Return([]domain.SearchHit{
		{ID: "bm_1", Score: 2.5, Fragments: map[string][]string{"title": {"<mark>Kubernetes</mark> operators"}}},
		{ID: "bm_gone", Score: 1.2},
	}, nil)
	d.bookmarks.EXPECT().Get(mock.Anything, "usr_1", "bm_1").Return(testBookmark("bm_1"), nil)
	d.bookmarks.EXPECT().Get(mock.Anything, "usr_1", "bm_gone").Return(nil, domain.NewNotFoundError("bookmark", "bm_gone"))

	matches, err := d.bookmarkService(nil).Search(context.Background(), "usr_1", " kubernetes ", 0)

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "bm_1", matches[0].Bookmark.ID)
	assert.InDelta(t, 2.5, matches[0].Score, 1e-9)
	assert.Contains(t, matches[0].Highlights["title"][0], "<mark>")
}

func TestBookmarkService_Search_Rejects(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		d := newDeps(t)
		d.stubFlags(false, false)

		_, err := d.bookmarkService(nil).Search(context.Background(), "usr_1", "go", 10)
		assert.True(t, domain.IsUnavailable(err))
	})

	t.Run("empty query", func(t *testing.T) {
		d := newDeps(t)
		d.stubFlags(false, true)

		_, err := d.bookmarkService(nil).Search(context.Background(), "usr_1", "   ", 10)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestBookmarkService_Analyze_Preview(t *testing.T) {
	d := newDeps(t)
	d.stubFlags(false, true)

	video := "https://www.youtube.com/watch?v=abc"

	d.fetcher.EXPECT().Fetch(mock.Anything, video).Return(&domain.PageContent{
		Title:    "A talk",
		SiteName: "YouTube",
		Content:  "Transcript.",
	}, nil)
	d.vocab.EXPECT().Tags(mock.Anything, "usr_1").Return(nil, nil)
	d.users.EXPECT().Get(mock.Anything, "usr_1").Return(plainUser(), nil)
	d.analyzer.EXPECT().Analyze(mock.Anything, video, "Transcript.", serverDefault).
		Return(domain.AnalysisResult{Summary: "A talk.", Tags: []string{"Conference Talks"}, Category: domain.CategoryVideo})

	preview, err := d.bookmarkService(nil).Analyze(context.Background(), "usr_1", video)

	require.NoError(t, err)
	assert.Equal(t, video, preview.URL)
	assert.Equal(t, "A talk", preview.Title)
	assert.Equal(t, "YouTube", preview.SiteName)
	assert.Equal(t, domain.CategoryVideo, preview.Category)
	assert.Equal(t, []string{"conference talk"}, preview.Tags)
}
