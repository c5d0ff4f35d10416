// Package flags serves feature flags from the features section of the
// configuration.
package flags

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// Static implements ports.FeatureFlags over a fixed map. Values may be native
// YAML types or strings coming from environment overrides.
type Static struct {
	mu    sync.RWMutex
	flags map[string]any
}

// New copies features into a Static provider. Keys are case-insensitive.
func New(features map[string]any) *Static {
	flags := make(map[string]any, len(features))
	for k, v := range features {
		flags[strings.ToLower(k)] = v
	}

	return &Static{flags: flags}
}

// Set overrides a flag at runtime.
func (s *Static) Set(flag string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flags[strings.ToLower(flag)] = value
}

func (s *Static) lookup(flag string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.flags[strings.ToLower(flag)]

	return v, ok
}

// IsEnabled implements ports.FeatureFlags.
func (s *Static) IsEnabled(_ context.Context, flag string, defaultValue bool) bool {
	v, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return defaultValue
		}

		return parsed
	default:
		return defaultValue
	}
}

// GetString implements ports.FeatureFlags.
func (s *Static) GetString(_ context.Context, flag string, defaultValue string) string {
	v, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	if str, ok := v.(string); ok {
		return str
	}

	return defaultValue
}

// GetInt implements ports.FeatureFlags.
func (s *Static) GetInt(_ context.Context, flag string, defaultValue int) int {
	v, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}

	return defaultValue
}

// GetFloat implements ports.FeatureFlags.
func (s *Static) GetFloat(_ context.Context, flag string, defaultValue float64) float64 {
	v, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return parsed
		}
	}

	return defaultValue
}
