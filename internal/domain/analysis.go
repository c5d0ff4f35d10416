package domain

import "strings"

// Category is the fixed classification of bookmarked content.
type Category string

// Supported categories. Article is the default.
const (
	CategoryArticle  Category = "Article"
	CategoryVideo    Category = "Video"
	CategoryResearch Category = "Research"
)

// Categories lists every valid category.
func Categories() []Category {
	return []Category{CategoryArticle, CategoryVideo, CategoryResearch}
}

// ParseCategory matches s against the known categories, ignoring case.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}

	return "", false
}

// ProviderKind selects which LLM backend performs analysis.
type ProviderKind string

// Supported providers.
const (
	ProviderOpenAI ProviderKind = "openai"
	ProviderGemini ProviderKind = "gemini"
)

// ProviderKinds lists the supported providers.
func ProviderKinds() []ProviderKind {
	return []ProviderKind{ProviderOpenAI, ProviderGemini}
}

// Valid reports whether k is one of the supported providers.
func (k ProviderKind) Valid() bool {
	return k == ProviderOpenAI || k == ProviderGemini
}

// ProviderConfig names the active provider and carries its credential.
type ProviderConfig struct {
	Provider ProviderKind
	APIKey   string
	// Model overrides the provider's default model when set.
	Model string
}

// AnalysisResult is the transient output of a content analysis.
// It is decomposed into bookmark fields and never stored as is.
type AnalysisResult struct {
	Summary  string
	Tags     []string
	Category Category
}

// PageContent is what the content fetcher extracts from a page.
type PageContent struct {
	URL         string
	FinalURL    string
	Title       string
	Description string
	SiteName    string
	ImageURL    string
	Content     string
}
