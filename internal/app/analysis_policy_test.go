package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

func TestCategoryForURL(t *testing.T) {
	tests := []struct {
		url   string
		want  domain.Category
		found bool
	}{
		{url: "https://www.youtube.com/watch?v=1", want: domain.CategoryVideo, found: true},
		{url: "https://youtu.be/abc", want: domain.CategoryVideo, found: true},
		{url: "https://player.vimeo.com/video/1", want: domain.CategoryVideo, found: true},
		{url: "https://arxiv.org/pdf/2301.00001", want: domain.CategoryResearch, found: true},
		{url: "https://doi.org/10.1145/3318464", want: domain.CategoryResearch, found: true},
		{url: "https://papers.ssrn.com/sol3/papers.cfm", want: domain.CategoryResearch, found: true},
		{url: "youtube.com/watch?v=1", want: domain.CategoryVideo, found: true},
		{url: "www.youtu.be/abc", want: domain.CategoryVideo, found: true},
		{url: "arxiv.org/abs/1", want: domain.CategoryResearch, found: true},
		{url: "example.com/arxiv.org", found: false},
		{url: "https://example.com/youtube.com", found: false},
		{url: "https://notyoutube.com", found: false},
		{url: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := CategoryForURL(tt.url)

			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCategoryAnswer(t *testing.T) {
	assert.Equal(t, domain.CategoryVideo, ParseCategoryAnswer("Video"))
	assert.Equal(t, domain.CategoryVideo, ParseCategoryAnswer(" video.\n"))
	assert.Equal(t, domain.CategoryResearch, ParseCategoryAnswer(`"Research"`))
	assert.Equal(t, domain.CategoryArticle, ParseCategoryAnswer("Article"))
	assert.Equal(t, domain.CategoryArticle, ParseCategoryAnswer("Tutorial"))
	assert.Equal(t, domain.CategoryArticle, ParseCategoryAnswer(""))
}

func TestParseTagResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "plain array", raw: `["Go", " Rust "]`, want: []string{"go", "rust"}},
		{name: "fenced json", raw: "```json\n[\"kubernetes\"]\n```", want: []string{"kubernetes"}},
		{name: "bare fence", raw: "```[\"go\"]```", want: []string{"go"}},
		{name: "object form", raw: `{"tags": ["ml", "python"]}`, want: []string{"ml", "python"}},
		{name: "empty array", raw: `[]`, want: []string{}},
		{name: "generic terms dropped", raw: `["Article", "blog", "golang"]`, want: []string{"golang"}},
		{name: "duplicates dropped", raw: `["go", "Go", "GO"]`, want: []string{"go"}},
		{
			name: "overlong dropped",
			raw:  `["this tag is definitely much longer than fifty characters in total", "ok"]`,
			want: []string{"ok"},
		},
		{name: "capped", raw: `["a1","b2","c3","d4","e5","f6","g7"]`, want: []string{"a1", "b2", "c3", "d4", "e5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTagResponse(tt.raw, 5)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTagResponse_Invalid(t *testing.T) {
	for _, raw := range []string{"", "go, rust", `{"labels": ["x"]}`, `[1, 2]`, "```\n```"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseTagResponse(raw, 5)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrParse))
		})
	}
}

func TestFailedAnalysis(t *testing.T) {
	result := FailedAnalysis(domain.NewConfigurationError("openai", "missing API key"))

	assert.Equal(t, `Error: ai provider "openai" configuration: missing API key`, result.Summary)
	assert.Equal(t, []string{}, result.Tags)
	assert.Equal(t, domain.CategoryArticle, result.Category)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "héllo", Excerpt("  héllo wörld ", 5))
	assert.Equal(t, "short", Excerpt("short", 100))
	assert.Equal(t, "no limit", Excerpt("no limit", 0))
}
