// Package ports declares the interfaces the application layer depends on.
// Adapters under internal/adapters implement them.
//
// Conventions:
//   - context.Context comes first on anything that can block
//   - methods accept and return domain types, never adapter DTOs
//   - failures are reported with domain errors (ErrNotFound, ErrConflict, ...)
package ports

import (
	"context"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// AIProvider is one LLM backend. Implementations shape requests and unwrap
// responses only; analysis policy lives in the application layer.
type AIProvider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// GenerateSummary returns a short prose summary of text.
	GenerateSummary(ctx context.Context, text string) (string, error)

	// GenerateTags returns the provider's raw structured tag response.
	GenerateTags(ctx context.Context, text, url string) (string, error)

	// Classify returns the provider's free-form category answer.
	Classify(ctx context.Context, text, url string) (string, error)
}

// ProviderFactory builds a provider for a selection.
// It returns a *domain.ConfigurationError when the selection is unusable.
type ProviderFactory interface {
	Provider(cfg domain.ProviderConfig) (AIProvider, error)
}

// Analyzer produces an analysis for fetched content. It never fails; errors
// are folded into fallback values.
type Analyzer interface {
	Analyze(ctx context.Context, url, content string, cfg domain.ProviderConfig) domain.AnalysisResult
}

// ContentFetcher retrieves a page and extracts its readable content.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.PageContent, error)
}
