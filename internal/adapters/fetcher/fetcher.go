// Package fetcher retrieves web pages and reduces them to the metadata and
// readable text that analysis needs.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/platform/config"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

const serviceName = "content-fetcher"

// Config configures a Fetcher. Zero values use the package defaults.
type Config struct {
	Timeout         time.Duration
	MaxBodyBytes    int64
	MaxContentRunes int
	UserAgent       string

	// Transport is wrapped with otelhttp. Defaults to a clone of
	// http.DefaultTransport.
	Transport http.RoundTripper

	Logger *slog.Logger
}

// Fetcher implements ports.ContentFetcher over plain HTTP GETs.
type Fetcher struct {
	http            *http.Client
	maxBodyBytes    int64
	maxContentRunes int
	userAgent       string
	logger          *slog.Logger
}

var _ ports.ContentFetcher = (*Fetcher)(nil)

// New creates a fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultFetcherTimeout
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = config.DefaultFetcherMaxBodyBytes
	}

	if cfg.MaxContentRunes <= 0 {
		cfg.MaxContentRunes = config.DefaultFetcherMaxContentRunes
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = config.DefaultUserAgent
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport.(*http.Transport).Clone()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Fetcher{
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: otelhttp.NewTransport(base,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return "fetch " + r.URL.Host
				}),
			),
		},
		maxBodyBytes:    cfg.MaxBodyBytes,
		maxContentRunes: cfg.MaxContentRunes,
		userAgent:       cfg.UserAgent,
		logger:          logger.With(slog.String("component", "fetcher.Fetcher")),
	}
}

// Fetch downloads rawURL and extracts its metadata and readable content.
// Transport failures and non-2xx answers are reported as
// domain.UnavailableError; non-HTML documents as domain.ValidationError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.PageContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, domain.NewValidationError("url", err.Error())
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,text/plain;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	start := time.Now()

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, domain.NewUnavailableError(serviceName, fmt.Sprintf("fetching %s: %v", rawURL, err))
	}
	defer func() { _ = resp.Body.Close() }()

	logger := logging.FromContext(ctx)
	logger.DebugContext(ctx, "page fetched",
		slog.String("url", rawURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, domain.NewUnavailableError(serviceName, fmt.Sprintf("fetching %s: HTTP %d", rawURL, resp.StatusCode))
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	contentType := resp.Header.Get("Content-Type")
	page := &domain.PageContent{URL: rawURL, FinalURL: finalURL}

	kind := mediaType(contentType)
	if kind != "" && kind != "text/html" && kind != "application/xhtml+xml" && kind != "text/plain" {
		return nil, domain.NewValidationError("url", fmt.Sprintf("unsupported content type %q", contentType))
	}

	// Transcode to UTF-8 from the header charset, a <meta> declaration or a
	// sniffed guess, in that order.
	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodyBytes), contentType)
	if err != nil {
		return nil, domain.NewUnavailableError(serviceName, fmt.Sprintf("reading %s: %v", rawURL, err))
	}

	switch kind {
	case "text/html", "application/xhtml+xml", "":
		doc, err := html.Parse(body)
		if err != nil {
			return nil, domain.NewParseError("html document", err)
		}

		extractPage(doc, page)
	case "text/plain":
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, domain.NewUnavailableError(serviceName, fmt.Sprintf("reading %s: %v", rawURL, err))
		}

		page.Content = cleanText(string(raw))
	}

	page.Content = truncateRunes(page.Content, f.maxContentRunes)

	if page.SiteName == "" && resp.Request != nil {
		page.SiteName = strings.TrimPrefix(resp.Request.URL.Hostname(), "www.")
	}

	page.ImageURL = resolveURL(finalURL, page.ImageURL)

	return page, nil
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}

	return mt
}
