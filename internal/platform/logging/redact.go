package logging

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	jwtPattern       = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)
	authHeader       = regexp.MustCompile(`(?i)^(bearer|basic)\s+\S+`)
	openAIKeyPattern = regexp.MustCompile(`^sk-[A-Za-z0-9_-]{16,}$`)
	geminiKeyPattern = regexp.MustCompile(`^AIza[0-9A-Za-z_-]{30,}$`)
)

// sensitiveFields are attribute and struct field names whose values never
// reach a log line.
var sensitiveFields = []string{
	"password", "PasswordHash", "password_hash",
	"token", "accessToken", "access_token", "refreshToken", "refresh_token",
	"apiKey", "api_key", "APIKey", "x-goog-api-key",
	"authorization", "Authorization", "cookie", "secret",
}

// RedactOptions returns the masq rules: credential-bearing field names,
// anything prefixed "secret", JWTs, auth headers and provider API keys.
func RedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(sensitiveFields)+5)
	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	return append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(authHeader),
		masq.WithRegex(openAIKeyPattern),
		masq.WithRegex(geminiKeyPattern),
	)
}

// NewReplaceAttr returns a slog ReplaceAttr that applies RedactOptions
// plus extra.
func NewReplaceAttr(extra ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(RedactOptions(), extra...)...)
}

// redacting applies a ReplaceAttr to handlers that have no hook for one,
// such as the charm console handler.
type redacting struct {
	next    slog.Handler
	replace func([]string, slog.Attr) slog.Attr
	groups  []string
}

func newRedacting(next slog.Handler) *redacting {
	return &redacting{next: next, replace: NewReplaceAttr()}
}

func (h *redacting) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

//nolint:gocritic // slog.Handler passes records by value
func (h *redacting) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(h.replace(h.groups, a))
		return true
	})

	return h.next.Handle(ctx, clean)
}

func (h *redacting) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = h.replace(h.groups, a)
	}

	return &redacting{next: h.next.WithAttrs(clean), replace: h.replace, groups: h.groups}
}

func (h *redacting) WithGroup(name string) slog.Handler {
	groups := append(append([]string(nil), h.groups...), name)

	return &redacting{next: h.next.WithGroup(name), replace: h.replace, groups: groups}
}
