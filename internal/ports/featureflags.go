package ports

import "context"

// Flag names evaluated by the application layer.
const (
	// FlagAsyncAnalysis queues analysis on the enrichment pool instead of
	// running it inside the create request.
	FlagAsyncAnalysis = "async_analysis"

	// FlagTagSimilarityThreshold overrides the tag merge threshold.
	FlagTagSimilarityThreshold = "tag_similarity_threshold"

	// FlagSearchEnabled toggles writes to and reads from the search index.
	FlagSearchEnabled = "search_enabled"
)

// FeatureFlags evaluates runtime switches. Every getter falls back to
// defaultValue when the flag is unset or has the wrong type.
type FeatureFlags interface {
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool
	GetString(ctx context.Context, flag string, defaultValue string) string
	GetInt(ctx context.Context, flag string, defaultValue int) int
	GetFloat(ctx context.Context, flag string, defaultValue float64) float64
}
