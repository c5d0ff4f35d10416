package domain

import "time"

// AnalysisStatus tracks where a bookmark is in the enrichment pipeline.
type AnalysisStatus string

// Analysis states.
const (
	AnalysisPending  AnalysisStatus = "pending"
	AnalysisComplete AnalysisStatus = "complete"
	AnalysisFailed   AnalysisStatus = "failed"
)

// Bookmark is a saved URL owned by a user.
type Bookmark struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	FolderID    string         `json:"folder_id,omitempty"`
	URL         string         `json:"url"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Summary     string         `json:"summary"`
	Category    Category       `json:"category"`
	Tags        []string       `json:"tags"`
	Favorite    bool           `json:"favorite"`
	ImageURL    string         `json:"image_url,omitempty"`
	SiteName    string         `json:"site_name,omitempty"`
	Excerpt     string         `json:"excerpt,omitempty"`
	Status      AnalysisStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ApplyAnalysis copies an analysis result onto the bookmark.
// Tags are expected to be processed against the owner's vocabulary already.
func (b *Bookmark) ApplyAnalysis(result AnalysisResult, tags []string) {
	b.Summary = result.Summary
	b.Category = result.Category
	b.Tags = tags
	b.Status = AnalysisComplete
}

// HasTag reports whether the bookmark carries tag.
func (b *Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

// BookmarkFilter narrows a bookmark listing. Zero values match everything.
type BookmarkFilter struct {
	Tag      string
	Category Category
	FolderID string
	Favorite *bool
}

// Matches reports whether b satisfies the filter.
func (f BookmarkFilter) Matches(b *Bookmark) bool {
	if f.Tag != "" && !b.HasTag(f.Tag) {
		return false
	}

	if f.Category != "" && b.Category != f.Category {
		return false
	}

	if f.FolderID != "" && b.FolderID != f.FolderID {
		return false
	}

	if f.Favorite != nil && b.Favorite != *f.Favorite {
		return false
	}

	return true
}

// Folder groups bookmarks for a user.
type Folder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagStat reports how often a tag is used across a user's bookmarks.
type TagStat struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// TagMerge describes folding one tag into another.
type TagMerge struct {
	From       string  `json:"from"`
	Into       string  `json:"into"`
	Similarity float64 `json:"similarity"`
	Affected   int     `json:"affected"`
}

// PageCursor marks a position in a newest-first bookmark listing.
type PageCursor struct {
	CreatedAt time.Time
	ID        string
}

// SearchHit is one full-text search match.
type SearchHit struct {
	ID        string              `json:"id"`
	Score     float64             `json:"score"`
	Fragments map[string][]string `json:"fragments,omitempty"`
}
