package app

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/domain/urlclean"
)

// Fixed strings substituted when a step cannot produce a value.
const (
	FallbackSummary     = "Summary generation failed."
	NoSummaryAvailable  = "No summary available."
	FailedSummaryPrefix = "Error: "
)

// maxTagRunes is the longest tag accepted from a provider.
const maxTagRunes = 50

var videoHosts = []string{
	"youtube.com", "youtube-nocookie.com", "youtu.be", "vimeo.com", "dailymotion.com",
	"twitch.tv", "tiktok.com", "bilibili.com", "loom.com",
}

var researchHosts = []string{
	"arxiv.org", "doi.org", "scholar.google.com", "semanticscholar.org", "researchgate.net",
	"pubmed.ncbi.nlm.nih.gov", "ncbi.nlm.nih.gov", "biorxiv.org", "medrxiv.org", "ssrn.com",
	"dl.acm.org", "ieeexplore.ieee.org", "link.springer.com", "sciencedirect.com", "jstor.org",
	"openreview.net", "paperswithcode.com", "aclanthology.org",
}

// genericTags are too broad to help anyone find a bookmark again.
var genericTags = map[string]struct{}{
	"article": {}, "articles": {}, "blog": {}, "blog post": {}, "post": {}, "website": {},
	"web": {}, "webpage": {}, "web page": {}, "page": {}, "content": {}, "information": {},
	"info": {}, "general": {}, "misc": {}, "miscellaneous": {}, "other": {}, "internet": {},
	"online": {}, "link": {}, "bookmark": {}, "resource": {}, "resources": {}, "url": {},
	"text": {}, "read": {}, "reading": {},
}

// FailedAnalysis is the fully defaulted result returned when no provider can be used.
func FailedAnalysis(err error) domain.AnalysisResult {
	return domain.AnalysisResult{
		Summary:  FailedSummaryPrefix + err.Error(),
		Tags:     []string{},
		Category: domain.CategoryArticle,
	}
}

// CategoryForURL classifies well-known hosts without asking a provider.
func CategoryForURL(rawURL string) (domain.Category, bool) {
	host := urlclean.Host(rawURL)
	if host == "" {
		return "", false
	}

	for _, h := range videoHosts {
		if urlclean.MatchesHost(host, h) {
			return domain.CategoryVideo, true
		}
	}

	for _, h := range researchHosts {
		if urlclean.MatchesHost(host, h) {
			return domain.CategoryResearch, true
		}
	}

	return "", false
}

// ParseCategoryAnswer maps a provider answer onto a category, defaulting to Article.
func ParseCategoryAnswer(answer string) domain.Category {
	answer = strings.TrimFunc(answer, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})

	if c, ok := domain.ParseCategory(answer); ok {
		return c
	}

	return domain.CategoryArticle
}

// ParseTagResponse decodes a provider's structured tag list. The response may
// be a JSON array of strings or an object with a "tags" array, optionally
// wrapped in a Markdown code fence. Any other shape is a *domain.ParseError.
func ParseTagResponse(raw string, maxTags int) ([]string, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return nil, domain.NewParseError("tag response", errors.New("empty response"))
	}

	var list []string
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		var wrapped struct {
			Tags []string `json:"tags"`
		}

		if objErr := json.Unmarshal([]byte(body), &wrapped); objErr != nil || wrapped.Tags == nil {
			return nil, domain.NewParseError("tag response", err)
		}

		list = wrapped.Tags
	}

	return filterTags(list, maxTags), nil
}

func filterTags(raw []string, maxTags int) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || utf8.RuneCountInString(t) > maxTagRunes {
			continue
		}

		if _, generic := genericTags[t]; generic {
			continue
		}

		if _, dup := seen[t]; dup {
			continue
		}

		seen[t] = struct{}{}
		out = append(out, t)

		if maxTags > 0 && len(out) == maxTags {
			break
		}
	}

	return out
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}

	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}

// Excerpt returns at most n runes of s, trimmed.
func Excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}

	runes := []rune(s)

	return strings.TrimSpace(string(runes[:n]))
}
