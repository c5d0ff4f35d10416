package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/platform/config"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
	"github.com/jsamuelsen/bookmark-service/internal/platform/telemetry"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// Analysis step names used in logs and metrics.
const (
	stepSummary  = "summary"
	stepTags     = "tags"
	stepCategory = "category"
)

// Dispatcher runs summary, tag and category generation against one provider.
// It implements ports.Analyzer.
type Dispatcher struct {
	providers ports.ProviderFactory
	metrics   *telemetry.AnalysisMetrics
	logger    *slog.Logger
	limits    ExcerptLimits
}

// ExcerptLimits bounds the content sent to each step, in runes.
type ExcerptLimits struct {
	Summary  int
	Tags     int
	Category int
	MaxTags  int
}

// DefaultExcerptLimits mirrors the configuration defaults.
func DefaultExcerptLimits() ExcerptLimits {
	return ExcerptLimits{
		Summary:  config.DefaultSummaryExcerptRunes,
		Tags:     config.DefaultTagsExcerptRunes,
		Category: config.DefaultCategoryExcerptRunes,
		MaxTags:  config.DefaultMaxTags,
	}
}

// DispatcherConfig contains the dispatcher's dependencies.
type DispatcherConfig struct {
	Providers ports.ProviderFactory
	Metrics   *telemetry.AnalysisMetrics
	Logger    *slog.Logger
	Limits    ExcerptLimits
}

// NewDispatcher creates a dispatcher. It panics without a provider factory.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Providers == nil {
		panic("app: dispatcher requires a provider factory")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	limits := cfg.Limits
	if limits == (ExcerptLimits{}) {
		limits = DefaultExcerptLimits()
	}

	return &Dispatcher{
		providers: cfg.Providers,
		metrics:   cfg.Metrics,
		logger:    logger.With(slog.String("component", "app.Dispatcher")),
		limits:    limits,
	}
}

type categoryDecision struct {
	category     domain.Category
	shortCircuit bool
}

// Analyze always returns a well-formed result. A provider that cannot be
// built yields FailedAnalysis; a failing step yields that step's fallback
// while the other steps keep their values.
func (d *Dispatcher) Analyze(ctx context.Context, url, content string, cfg domain.ProviderConfig) domain.AnalysisResult {
	logger := d.logger.With(slog.String("provider", string(cfg.Provider)), slog.String("url", url))

	provider, err := d.providers.Provider(cfg)
	if err != nil {
		d.metrics.Run(string(cfg.Provider), telemetry.OutcomeConfigError)
		logger.WarnContext(ctx, "analysis skipped, provider unusable", slog.Any("error", err))

		return FailedAnalysis(err)
	}

	name := provider.Name()

	summary, tags, category := ParallelPartial3(ctx,
		func(ctx context.Context) (string, error) {
			return d.summarize(ctx, provider, content)
		},
		func(ctx context.Context) ([]string, error) {
			return d.generateTags(ctx, provider, url, content)
		},
		func(ctx context.Context) (categoryDecision, error) {
			return d.categorize(ctx, provider, url, content)
		},
	)

	result := domain.AnalysisResult{
		Summary:  FallbackSummary,
		Tags:     []string{},
		Category: domain.CategoryArticle,
	}
	failed := 0

	if d.settle(ctx, logger, name, stepSummary, summary.Err, false) {
		result.Summary = summary.Value
	} else {
		failed++
	}

	if d.settle(ctx, logger, name, stepTags, tags.Err, false) {
		result.Tags = tags.Value
	} else {
		failed++
	}

	if d.settle(ctx, logger, name, stepCategory, category.Err, category.Value.shortCircuit) {
		result.Category = category.Value.category
	} else {
		failed++
	}

	outcome := telemetry.OutcomeSuccess
	if failed > 0 {
		outcome = telemetry.OutcomeFallback
	}

	d.metrics.Run(name, outcome)
	logger.DebugContext(ctx, "analysis complete",
		slog.String("category", string(result.Category)),
		slog.Int("tags", len(result.Tags)),
		slog.Int("fallbacks", failed),
	)

	return result
}

// settle records a step's outcome and reports whether its value is usable.
func (d *Dispatcher) settle(ctx context.Context, logger *slog.Logger, provider, step string, err error, shortCircuit bool) bool {
	switch {
	case err != nil:
		d.metrics.Step(provider, step, telemetry.OutcomeFallback)
		logger.WarnContext(ctx, "analysis step failed, using fallback",
			slog.String("step", step),
			slog.Any("error", err),
		)

		return false
	case shortCircuit:
		d.metrics.Step(provider, step, telemetry.OutcomeShortCircuit)
	default:
		d.metrics.Step(provider, step, telemetry.OutcomeSuccess)
	}

	return true
}

func (d *Dispatcher) summarize(ctx context.Context, p ports.AIProvider, content string) (string, error) {
	summary, err := p.GenerateSummary(ctx, Excerpt(content, d.limits.Summary))
	if err != nil {
		return "", err
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return NoSummaryAvailable, nil
	}

	return summary, nil
}

func (d *Dispatcher) generateTags(ctx context.Context, p ports.AIProvider, url, content string) ([]string, error) {
	raw, err := p.GenerateTags(ctx, Excerpt(content, d.limits.Tags), url)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "raw tag response", slog.String("body", raw))

	return ParseTagResponse(raw, d.limits.MaxTags)
}

func (d *Dispatcher) categorize(ctx context.Context, p ports.AIProvider, url, content string) (categoryDecision, error) {
	if c, ok := CategoryForURL(url); ok {
		return categoryDecision{category: c, shortCircuit: true}, nil
	}

	answer, err := p.Classify(ctx, Excerpt(content, d.limits.Category), url)
	if err != nil {
		return categoryDecision{}, err
	}

	return categoryDecision{category: ParseCategoryAnswer(answer)}, nil
}
