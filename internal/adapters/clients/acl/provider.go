package acl

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
)

// Operation names reported in ProviderCallError.
const (
	opSummary  = "generate summary"
	opTags     = "generate tags"
	opClassify = "classify"
)

// completer sends one system + user exchange and returns the reply text.
// It is the only part that differs between providers.
type completer interface {
	complete(ctx context.Context, system, user string) (string, error)
}

// Provider adapts a completer to ports.AIProvider.
type Provider struct {
	name      string
	completer completer
	logger    *slog.Logger
}

func newProvider(name string, c completer, logger *slog.Logger) *Provider {
	return &Provider{name: name, completer: c, logger: logger}
}

// Name implements ports.AIProvider.
func (p *Provider) Name() string {
	return p.name
}

// GenerateSummary implements ports.AIProvider.
func (p *Provider) GenerateSummary(ctx context.Context, text string) (string, error) {
	return p.run(ctx, opSummary, summarySystemPrompt, summaryPrompt(text))
}

// GenerateTags implements ports.AIProvider. The reply is returned unparsed.
func (p *Provider) GenerateTags(ctx context.Context, text, url string) (string, error) {
	return p.run(ctx, opTags, tagsSystemPrompt, tagsPrompt(text, url))
}

// Classify implements ports.AIProvider.
func (p *Provider) Classify(ctx context.Context, text, url string) (string, error) {
	return p.run(ctx, opClassify, classifySystemPrompt, classifyPrompt(text, url))
}

func (p *Provider) run(ctx context.Context, operation, system, user string) (string, error) {
	p.logger.Log(ctx, logging.LevelTrace, "provider request",
		slog.String("operation", operation),
		slog.Int("prompt_bytes", len(user)),
	)

	reply, err := p.completer.complete(ctx, system, user)
	if err != nil {
		return "", domain.NewProviderCallError(p.name, operation, err)
	}

	p.logger.Log(ctx, logging.LevelTrace, "provider response",
		slog.String("operation", operation),
		slog.String("body", reply),
	)

	return reply, nil
}
