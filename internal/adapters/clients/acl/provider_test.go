package acl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/clients"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEndpoint(t *testing.T, handler http.HandlerFunc, model string) *Endpoint {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := clients.New(testConfig(server.URL))
	require.NoError(t, err)

	return &Endpoint{Client: client, Model: model}
}

func TestProviderRegistry_ConfigurationErrors(t *testing.T) {
	var calls atomic.Int32
	ep := newEndpoint(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}, "gpt-test")

	registry := NewProviderRegistry(ProviderRegistryConfig{OpenAI: ep, Logger: quietLogger()})

	tests := []struct {
		name string
		cfg  domain.ProviderConfig
	}{
		{name: "nothing selected", cfg: domain.ProviderConfig{}},
		{name: "unknown kind", cfg: domain.ProviderConfig{Provider: "claude", APIKey: "k"}},
		{name: "missing key", cfg: domain.ProviderConfig{Provider: domain.ProviderOpenAI}},
		{name: "blank key", cfg: domain.ProviderConfig{Provider: domain.ProviderOpenAI, APIKey: "   "}},
		{name: "kind not enabled", cfg: domain.ProviderConfig{Provider: domain.ProviderGemini, APIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := registry.Provider(tt.cfg)

			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, domain.IsConfiguration(err))

			var cfgErr *domain.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}

	assert.Equal(t, int32(0), calls.Load())
}

func TestProviderRegistry_SelectsProviderCaseInsensitively(t *testing.T) {
	registry := NewProviderRegistry(ProviderRegistryConfig{
		OpenAI: newEndpoint(t, func(http.ResponseWriter, *http.Request) {}, "gpt-test"),
		Gemini: newEndpoint(t, func(http.ResponseWriter, *http.Request) {}, "gemini-test"),
	})

	p, err := registry.Provider(domain.ProviderConfig{Provider: " Gemini ", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	p, err = registry.Provider(domain.ProviderConfig{Provider: "OPENAI", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
}

func TestOpenAIProvider_GenerateSummary(t *testing.T) {
	var got openAIRequest
	var auth, path string

	ep := newEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  A page about Go.  "}}]}`))
	}, "gpt-default")

	registry := NewProviderRegistry(ProviderRegistryConfig{OpenAI: ep, Logger: quietLogger()})

	p, err := registry.Provider(domain.ProviderConfig{Provider: domain.ProviderOpenAI, APIKey: "sk-user", Model: "gpt-override"})
	require.NoError(t, err)

	summary, err := p.GenerateSummary(context.Background(), "Go is a language.")
	require.NoError(t, err)

	assert.Equal(t, "A page about Go.", summary)
	assert.Equal(t, "Bearer sk-user", auth)
	assert.Equal(t, "/chat/completions", path)
	assert.Equal(t, "gpt-override", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, summarySystemPrompt, got.Messages[0].Content)
	assert.Contains(t, got.Messages[1].Content, "Go is a language.")
}

func TestOpenAIProvider_GenerateTagsReturnsRawReply(t *testing.T) {
	ep := newEndpoint(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[\"go\",\"testing\"]"}}]}`))
	}, "gpt-default")

	p, err := NewProviderRegistry(ProviderRegistryConfig{OpenAI: ep}).
		Provider(domain.ProviderConfig{Provider: domain.ProviderOpenAI, APIKey: "k"})
	require.NoError(t, err)

	raw, err := p.GenerateTags(context.Background(), "text", "https://go.dev")
	require.NoError(t, err)
	assert.Equal(t, `["go","testing"]`, raw)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized key",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"Incorrect API key provided"}}`,
			check: func(t *testing.T, err error) {
				assert.True(t, domain.IsForbidden(err))
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{}`,
			check: func(t *testing.T, err error) {
				assert.True(t, domain.IsUnavailable(err))
			},
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"choices":[]}`,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, domain.ErrParse))
			},
		},
		{
			name:   "garbage body",
			status: http.StatusOK,
			body:   `not json`,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, domain.ErrParse))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep := newEndpoint(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, "gpt-default")

			p, err := NewProviderRegistry(ProviderRegistryConfig{OpenAI: ep}).
				Provider(domain.ProviderConfig{Provider: domain.ProviderOpenAI, APIKey: "k"})
			require.NoError(t, err)

			_, err = p.Classify(context.Background(), "text", "https://example.com")
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrProviderCall))

			var callErr *domain.ProviderCallError
			require.True(t, errors.As(err, &callErr))
			assert.Equal(t, "openai", callErr.Provider)
			assert.Equal(t, opClassify, callErr.Operation)

			tt.check(t, err)
		})
	}
}

func TestGeminiProvider_Classify(t *testing.T) {
	var got geminiRequest
	var key, path string

	ep := newEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get("x-goog-api-key")
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Vid"},{"text":"eo\n"}]}}]}`))
	}, "gemini-default")

	p, err := NewProviderRegistry(ProviderRegistryConfig{Gemini: ep}).
		Provider(domain.ProviderConfig{Provider: domain.ProviderGemini, APIKey: "g-key"})
	require.NoError(t, err)

	answer, err := p.Classify(context.Background(), "a talk recording", "https://example.com/talk")
	require.NoError(t, err)

	assert.Equal(t, "Video", answer)
	assert.Equal(t, "g-key", key)
	assert.Equal(t, "/models/gemini-default:generateContent", path)
	require.Len(t, got.SystemInstruction.Parts, 1)
	assert.Equal(t, classifySystemPrompt, got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 1)
	assert.True(t, strings.Contains(got.Contents[0].Parts[0].Text, "https://example.com/talk"))
}

func TestGeminiProvider_BlockedPrompt(t *testing.T) {
	ep := newEndpoint(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	}, "gemini-default")

	p, err := NewProviderRegistry(ProviderRegistryConfig{Gemini: ep}).
		Provider(domain.ProviderConfig{Provider: domain.ProviderGemini, APIKey: "g-key"})
	require.NoError(t, err)

	_, err = p.GenerateSummary(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAFETY")
	assert.True(t, errors.Is(err, domain.ErrProviderCall))
}

func TestProviderRegistry_Check(t *testing.T) {
	ep := newEndpoint(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "gpt-default")

	registry := NewProviderRegistry(ProviderRegistryConfig{OpenAI: ep})
	assert.Equal(t, "ai-providers", registry.Name())
	require.NoError(t, registry.Check(context.Background()))

	p, err := registry.Provider(domain.ProviderConfig{Provider: domain.ProviderOpenAI, APIKey: "k"})
	require.NoError(t, err)

	// testConfig opens the circuit after five consecutive failures.
	for range 5 {
		_, _ = p.GenerateSummary(context.Background(), "text")
	}

	err = registry.Check(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Contains(t, err.Error(), "openai")
}

func TestPrompts_CarryInputs(t *testing.T) {
	assert.Contains(t, summaryPrompt("body text"), "body text")
	assert.Contains(t, tagsPrompt("body text", "https://a.example"), "https://a.example")
	assert.Contains(t, classifyPrompt("body text", "https://a.example"), "body text")
}
