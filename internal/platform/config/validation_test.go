package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "test-service",
			Version:     "1.0.0",
			Environment: "local",
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    90 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  60 * time.Second,
			MaxRequestSize:  1048576,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Client: ClientConfig{
			Timeout: 30 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      2.0,
				JitterFactor:    0.25,
			},
			CircuitBreaker: CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 3,
			},
			Transport: TransportConfig{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		Auth: AuthConfig{
			JWTSecret:       "0123456789abcdef0123456789abcdef",
			Issuer:          "bookmark-service",
			Audience:        "bookmark-service-api",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
			StateCapacity:   1000,
		},
		AI: AIConfig{
			DefaultProvider: "openai",
			OpenAI:          ProviderEndpointConfig{BaseURL: "https://api.openai.com/v1", Model: "gpt-4o-mini"},
			Gemini:          ProviderEndpointConfig{BaseURL: "https://generativelanguage.googleapis.com/v1beta", Model: "gemini-1.5-flash"},
		},
		Analysis: AnalysisConfig{
			SummaryExcerptRunes:  4000,
			TagsExcerptRunes:     3000,
			CategoryExcerptRunes: 1500,
			MaxTags:              5,
			Workers:              2,
			QueueSize:            16,
		},
		Fetcher: FetcherConfig{
			Timeout:         30 * time.Second,
			MaxBodyBytes:    1 << 20,
			MaxContentRunes: 10000,
			UserAgent:       "test-agent",
		},
		Storage: StorageConfig{InMemory: true},
		Search:  SearchConfig{InMemory: true},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing app name", func(c *Config) { c.App.Name = "" }, "app.name is required"},
		{"unknown environment", func(c *Config) { c.App.Environment = "staging" }, "app.environment must be one of: local dev qa prod test"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port must be at most 65535"},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, "server.port is required"},
		{"short read timeout", func(c *Config) { c.Server.ReadTimeout = time.Millisecond }, "server.read_timeout must be at least 1s"},
		{"zero body limit", func(c *Config) { c.Server.MaxRequestSize = 0 }, "server.max_request_size is required"},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level must be one of: trace debug info warn error"},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "log.format must be one of: json text pretty"},
		{
			"log file without path",
			func(c *Config) { c.Log.File = LogFileConfig{Enabled: true} },
			"log.file.path is required when enabled=true",
		},
		{
			"oversized log file",
			func(c *Config) { c.Log.File = LogFileConfig{Path: "x.log", MaxSizeMB: 4096} },
			"log.file.max_size must be at most 1024",
		},
		{
			"telemetry without endpoint",
			func(c *Config) { c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "bm"} },
			"telemetry.endpoint is required when enabled=true",
		},
		{
			"telemetry endpoint not a url",
			func(c *Config) { c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "bm", Endpoint: "collector"} },
			"telemetry.endpoint must be a valid URL",
		},
		{"sampling above one", func(c *Config) { c.Telemetry.SamplingRate = 1.5 }, "telemetry.sampling_rate must be at most 1"},
		{"short jwt secret", func(c *Config) { c.Auth.JWTSecret = "short" }, "auth.jwt_secret must be at least 32"},
		{"missing issuer", func(c *Config) { c.Auth.Issuer = "" }, "auth.issuer is required"},
		{
			"refresh shorter than access",
			func(c *Config) { c.Auth.RefreshTokenTTL = 5 * time.Minute },
			"auth.refresh_token_ttl must be at least auth.access_token_ttl",
		},
		{"bcrypt cost too high", func(c *Config) { c.Auth.BcryptCost = 40 }, "auth.bcrypt_cost must be at most 31"},
		{"unknown provider", func(c *Config) { c.AI.DefaultProvider = "claude" }, "ai.default_provider must be one of: openai gemini"},
		{"bad gemini url", func(c *Config) { c.AI.Gemini.BaseURL = "not a url" }, "ai.gemini.base_url must be a valid URL"},
		{"missing openai model", func(c *Config) { c.AI.OpenAI.Model = "" }, "ai.openai.model is required"},
		{"too many tags", func(c *Config) { c.Analysis.MaxTags = 50 }, "analysis.max_tags must be at most 20"},
		{"tiny summary excerpt", func(c *Config) { c.Analysis.SummaryExcerptRunes = 50 }, "analysis.summary_excerpt_runes must be at least 200"},
		{"tiny fetch body", func(c *Config) { c.Fetcher.MaxBodyBytes = 10 }, "fetcher.max_body_bytes must be at least 1024"},
		{"disk storage without path", func(c *Config) { c.Storage = StorageConfig{} }, "storage.path is required unless in_memory=true"},
		{"disk index without path", func(c *Config) { c.Search = SearchConfig{} }, "search.path is required unless in_memory=true"},
		{
			"rate limit without rps",
			func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true, Burst: 1, TTL: time.Minute, MaxKeys: 1} },
			"ratelimit.requests_per_second is required when enabled=true",
		},
		{
			"negative rps",
			func(c *Config) {
				c.RateLimit = RateLimitConfig{Enabled: true, RequestsPerSecond: -1, Burst: 1, TTL: time.Minute, MaxKeys: 1}
			},
			"ratelimit.requests_per_second must be greater than 0",
		},
		{"short client timeout", func(c *Config) { c.Client.Timeout = time.Millisecond }, "client.timeout must be at least 100ms"},
		{"too many attempts", func(c *Config) { c.Client.Retry.MaxAttempts = 11 }, "client.retry.max_attempts must be at most 10"},
		{"flat backoff", func(c *Config) { c.Client.Retry.Multiplier = 1.0 }, "client.retry.multiplier must be at least 1.1"},
		{"jitter above one", func(c *Config) { c.Client.Retry.JitterFactor = 2 }, "client.retry.jitter_factor must be at most 1"},
		{"zero breaker failures", func(c *Config) { c.Client.CircuitBreaker.MaxFailures = 0 }, "client.circuit_breaker.max_failures is required"},
		{
			"short breaker timeout",
			func(c *Config) { c.Client.CircuitBreaker.Timeout = 100 * time.Millisecond },
			"client.circuit_breaker.timeout must be at least 1s",
		},
		{
			"zero idle conns",
			func(c *Config) { c.Client.Transport.MaxIdleConns = 0 },
			"client.transport.max_idle_conns is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_Validate_AcceptsEveryEnvironment(t *testing.T) {
	for _, env := range []string{"local", "dev", "qa", "prod", "test"} {
		t.Run(env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = env
			cfg.Storage = StorageConfig{Path: "/var/lib/bookmarks/badger"}

			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestConfig_Validate_CrossSectionRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   []string
	}{
		{
			name: "dev secret in prod",
			mutate: func(c *Config) {
				c.App.Environment = "prod"
				c.Auth.JWTSecret = DevJWTSecret
				c.Storage = StorageConfig{Path: "/data"}
			},
			want: []string{"auth.jwt_secret must be set in prod"},
		},
		{
			name:   "in-memory storage in prod",
			mutate: func(c *Config) { c.App.Environment = "prod" },
			want:   []string{"storage.in_memory is not allowed in prod"},
		},
		{
			name:   "request timeout beyond write timeout",
			mutate: func(c *Config) { c.Server.RequestTimeout = 2 * time.Minute },
			want:   []string{"server.request_timeout (2m0s) must not exceed server.write_timeout (1m30s)"},
		},
		{
			name: "excerpts longer than fetched content",
			mutate: func(c *Config) {
				c.Fetcher.MaxContentRunes = 2000
			},
			want: []string{
				"analysis.summary_excerpt_runes (4000) must not exceed fetcher.max_content_runes (2000)",
				"analysis.tags_excerpt_runes (3000) must not exceed fetcher.max_content_runes (2000)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestConfig_Validate_DevSecretOutsideProd(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = DevJWTSecret

	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_ReportsAllProblemsSorted(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Host = ""
	cfg.App.Version = ""
	cfg.App.Name = ""

	err := cfg.Validate()

	require.Error(t, err)
	assert.Equal(t, "config validation failed:\n"+
		"  app.name is required\n"+
		"  app.version is required\n"+
		"  server.host is required", err.Error())
}

func TestToSnake(t *testing.T) {
	tests := map[string]string{
		"Enabled":        "enabled",
		"AccessTokenTTL": "access_token_ttl",
		"InMemory":       "in_memory",
		"MaxIdleConns":   "max_idle_conns",
		"JWTSecret":      "jwt_secret",
		"already_snake":  "already_snake",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, toSnake(in))
		})
	}
}

func TestFieldKey(t *testing.T) {
	assert.Equal(t, "server.port", fieldKey("Config.server.port"))
	assert.Equal(t, "Config", fieldKey("Config"))
}

func TestParamKeys(t *testing.T) {
	assert.Equal(t, "enabled=true", paramKeys("Enabled true"))
	assert.Equal(t, "json text pretty", paramKeys("json text pretty"))
	assert.Equal(t, "5", paramKeys("5"))
}
