// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultClientRetryMaxAttempts is the default number of retry attempts.
	DefaultClientRetryMaxAttempts = 3

	// DefaultClientRetryMultiplier is the default exponential backoff multiplier.
	DefaultClientRetryMultiplier = 2.0

	// DefaultClientRetryJitterFactor is the default jitter percentage (±25%).
	DefaultClientRetryJitterFactor = 0.25

	// DefaultClientCircuitMaxFailures is the default failures before circuit opens.
	DefaultClientCircuitMaxFailures = 5

	// DefaultClientCircuitHalfOpenLimit is the default successes to close circuit.
	DefaultClientCircuitHalfOpenLimit = 3

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultTransportIdleConnTimeout is the default idle connection timeout.
	DefaultTransportIdleConnTimeout = 90 * time.Second

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	DefaultAuthStateCapacity      = 100_000
	DefaultSummaryExcerptRunes    = 4000
	DefaultTagsExcerptRunes       = 3000
	DefaultCategoryExcerptRunes   = 1500
	DefaultMaxTags                = 5
	DefaultAnalysisWorkers        = 4
	DefaultAnalysisQueueSize      = 256
	DefaultFetcherMaxBodyBytes    = 5 << 20
	DefaultFetcherMaxContentRunes = 20000
	DefaultFetcherTimeout         = 30 * time.Second
	DefaultRateLimitRPS           = 5.0
	DefaultRateLimitBurst         = 20
	DefaultRateLimitMaxKeys       = 10_000
	DefaultTagSimilarityThreshold = 0.85
)

// DefaultAppName names the service in logs, traces and tokens.
const DefaultAppName = "bookmark-service"

// DevJWTSecret is only acceptable outside prod; Validate rejects it there.
const DevJWTSecret = "local-development-secret-do-not-deploy"

// DefaultUserAgent is sent by the content fetcher. Some sites refuse
// requests without a browser-like agent.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36 bookmark-service"

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Auth      AuthConfig      `koanf:"auth"      validate:"required"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	AI        AIConfig        `koanf:"ai"        validate:"required"`
	Analysis  AnalysisConfig  `koanf:"analysis"  validate:"required"`
	Fetcher   FetcherConfig   `koanf:"fetcher"   validate:"required"`
	Storage   StorageConfig   `koanf:"storage"`
	Search    SearchConfig    `koanf:"search"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Features  map[string]any  `koanf:"features"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// AuthConfig contains token and password settings.
type AuthConfig struct {
	JWTSecret       string        `koanf:"jwt_secret"        validate:"required,min=32"`
	Issuer          string        `koanf:"issuer"            validate:"required"`
	Audience        string        `koanf:"audience"          validate:"required"`
	AccessTokenTTL  time.Duration `koanf:"access_token_ttl"  validate:"required,min=1m"`
	RefreshTokenTTL time.Duration `koanf:"refresh_token_ttl" validate:"required,min=1m,gtefield=AccessTokenTTL"`
	StateCapacity   int           `koanf:"state_capacity"    validate:"required,min=1"`
	BcryptCost      int           `koanf:"bcrypt_cost"       validate:"omitempty,min=4,max=31"`
}

// ClientConfig contains HTTP client settings for the AI providers.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// AIConfig selects the server-wide default provider and configures each backend.
// Users may bring their own key, which takes precedence over these defaults.
type AIConfig struct {
	DefaultProvider string                 `koanf:"default_provider" validate:"required,oneof=openai gemini"`
	OpenAI          ProviderEndpointConfig `koanf:"openai"           validate:"required"`
	Gemini          ProviderEndpointConfig `koanf:"gemini"           validate:"required"`
}

// ProviderEndpointConfig configures one AI backend.
type ProviderEndpointConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Model   string `koanf:"model"    validate:"required"`
	APIKey  string `koanf:"api_key"`
}

// AnalysisConfig bounds the content sent to providers and sizes the enrichment pool.
type AnalysisConfig struct {
	SummaryExcerptRunes  int `koanf:"summary_excerpt_runes"  validate:"required,min=200"`
	TagsExcerptRunes     int `koanf:"tags_excerpt_runes"     validate:"required,min=200"`
	CategoryExcerptRunes int `koanf:"category_excerpt_runes" validate:"required,min=200"`
	MaxTags              int `koanf:"max_tags"               validate:"required,min=1,max=20"`
	Workers              int `koanf:"workers"                validate:"required,min=1,max=64"`
	QueueSize            int `koanf:"queue_size"             validate:"required,min=1"`
}

// FetcherConfig controls outbound page fetches.
type FetcherConfig struct {
	Timeout         time.Duration `koanf:"timeout"           validate:"required,min=1s"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"    validate:"required,min=1024"`
	MaxContentRunes int           `koanf:"max_content_runes" validate:"required,min=200"`
	UserAgent       string        `koanf:"user_agent"        validate:"required"`
}

// StorageConfig locates the badger database.
type StorageConfig struct {
	Path     string `koanf:"path"      validate:"required_unless=InMemory true"`
	InMemory bool   `koanf:"in_memory"`
}

// SearchConfig locates the bleve index.
type SearchConfig struct {
	Path     string `koanf:"path"      validate:"required_unless=InMemory true"`
	InMemory bool   `koanf:"in_memory"`
}

// RateLimitConfig sizes the per-client token buckets.
type RateLimitConfig struct {
	Enabled           bool          `koanf:"enabled"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"required_if=Enabled true,omitempty,gt=0"`
	Burst             int           `koanf:"burst"               validate:"required_if=Enabled true,omitempty,min=1"`
	TTL               time.Duration `koanf:"ttl"                 validate:"required_if=Enabled true,omitempty,min=1s"`
	MaxKeys           int           `koanf:"max_keys"            validate:"required_if=Enabled true,omitempty,min=1"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        DefaultAppName,
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "90s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",
		"server.request_timeout":  "75s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/bookmark-service.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  DefaultAppName,
		"telemetry.sampling_rate": 1.0,

		"auth.jwt_secret":        DevJWTSecret,
		"auth.issuer":            DefaultAppName,
		"auth.audience":          DefaultAppName + "-api",
		"auth.access_token_ttl":  "15m",
		"auth.refresh_token_ttl": "168h",
		"auth.state_capacity":    DefaultAuthStateCapacity,
		"auth.bcrypt_cost":       0,

		"client.timeout":                           "30s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "200ms",
		"client.retry.max_interval":                "5s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"ai.default_provider": "openai",
		"ai.openai.base_url":  "https://api.openai.com/v1",
		"ai.openai.model":     "gpt-4o-mini",
		"ai.openai.api_key":   "",
		"ai.gemini.base_url":  "https://generativelanguage.googleapis.com/v1beta",
		"ai.gemini.model":     "gemini-1.5-flash",
		"ai.gemini.api_key":   "",

		"analysis.summary_excerpt_runes":  DefaultSummaryExcerptRunes,
		"analysis.tags_excerpt_runes":     DefaultTagsExcerptRunes,
		"analysis.category_excerpt_runes": DefaultCategoryExcerptRunes,
		"analysis.max_tags":               DefaultMaxTags,
		"analysis.workers":                DefaultAnalysisWorkers,
		"analysis.queue_size":             DefaultAnalysisQueueSize,

		"fetcher.timeout":           "30s",
		"fetcher.max_body_bytes":    DefaultFetcherMaxBodyBytes,
		"fetcher.max_content_runes": DefaultFetcherMaxContentRunes,
		"fetcher.user_agent":        DefaultUserAgent,

		"storage.path":      "./data/badger",
		"storage.in_memory": false,

		"search.path":      "./data/search.bleve",
		"search.in_memory": false,

		"ratelimit.enabled":             true,
		"ratelimit.requests_per_second": DefaultRateLimitRPS,
		"ratelimit.burst":               DefaultRateLimitBurst,
		"ratelimit.ttl":                 "10m",
		"ratelimit.max_keys":            DefaultRateLimitMaxKeys,

		"features.async_analysis":           false,
		"features.search_enabled":           true,
		"features.tag_similarity_threshold": DefaultTagSimilarityThreshold,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	err = k.Load(env.Provider("APP_", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps APP_SERVER_PORT to server.port. Keys that contain underscores
// use a double underscore as the separator: APP_AI__OPENAI__API_KEY maps to
// ai.openai.api_key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "APP_"))
	if strings.Contains(key, "__") {
		return strings.ReplaceAll(key, "__", ".")
	}

	return strings.ReplaceAll(key, "_", ".")
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist, that's fine
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
