package acl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/clients"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// Endpoint is the shared client and default model for one provider kind.
type Endpoint struct {
	Client *clients.Client
	Model  string
}

// ProviderRegistryConfig contains the configured provider endpoints.
// A kind without an endpoint is reported as a configuration error.
type ProviderRegistryConfig struct {
	OpenAI *Endpoint
	Gemini *Endpoint
	Logger *slog.Logger
}

// ProviderRegistry builds providers for per-request selections. The HTTP
// clients, and with them the circuit breakers, are shared by every user of a
// kind; only the credential and model vary per call.
//
// It implements ports.ProviderFactory and ports.OptionalChecker.
type ProviderRegistry struct {
	endpoints map[domain.ProviderKind]*Endpoint
	logger    *slog.Logger
}

// NewProviderRegistry creates a registry over the configured endpoints.
func NewProviderRegistry(cfg ProviderRegistryConfig) *ProviderRegistry {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	endpoints := make(map[domain.ProviderKind]*Endpoint, 2)
	if cfg.OpenAI != nil && cfg.OpenAI.Client != nil {
		endpoints[domain.ProviderOpenAI] = cfg.OpenAI
	}

	if cfg.Gemini != nil && cfg.Gemini.Client != nil {
		endpoints[domain.ProviderGemini] = cfg.Gemini
	}

	return &ProviderRegistry{
		endpoints: endpoints,
		logger:    logger.With(slog.String("component", "acl.ProviderRegistry")),
	}
}

var (
	_ ports.ProviderFactory  = (*ProviderRegistry)(nil)
	_ ports.OptionalChecker = (*ProviderRegistry)(nil)
)

// Provider implements ports.ProviderFactory. It makes no network calls.
func (r *ProviderRegistry) Provider(cfg domain.ProviderConfig) (ports.AIProvider, error) {
	kind := domain.ProviderKind(strings.ToLower(strings.TrimSpace(string(cfg.Provider))))
	if kind == "" {
		return nil, domain.NewConfigurationError("", "no provider selected")
	}

	if !kind.Valid() {
		return nil, domain.NewConfigurationError(string(kind), "unsupported provider")
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, domain.NewConfigurationError(string(kind), "missing API key")
	}

	ep, ok := r.endpoints[kind]
	if !ok {
		return nil, domain.NewConfigurationError(string(kind), "provider is not enabled on this server")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = ep.Model
	}

	if model == "" {
		return nil, domain.NewConfigurationError(string(kind), "no model configured")
	}

	base := newTransport(ep.Client, string(kind))
	logger := r.logger.With(slog.String("provider", string(kind)), slog.String("model", model))

	switch kind {
	case domain.ProviderGemini:
		return newProvider(string(kind), &geminiCompleter{transport: base, apiKey: apiKey, model: model}, logger), nil
	default:
		return newProvider(string(kind), &openAICompleter{transport: base, apiKey: apiKey, model: model}, logger), nil
	}
}

// Name implements ports.HealthChecker.
func (r *ProviderRegistry) Name() string {
	return "ai-providers"
}

// Optional implements ports.OptionalChecker. Bookmarks are still saved with
// fallback analysis while providers are down.
func (r *ProviderRegistry) Optional() bool { return true }

// Check implements ports.HealthChecker. Providers are billed per call, so the
// check inspects circuit state instead of probing the APIs.
func (r *ProviderRegistry) Check(_ context.Context) error {
	var open []string

	for _, kind := range domain.ProviderKinds() {
		ep, ok := r.endpoints[kind]
		if !ok {
			continue
		}

		if ep.Client.CircuitState() == clients.StateOpen {
			open = append(open, string(kind))
		}
	}

	if len(open) > 0 {
		return domain.NewUnavailableError("ai-providers", fmt.Sprintf("circuit open: %s", strings.Join(open, ", ")))
	}

	return nil
}
