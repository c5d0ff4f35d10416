package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their koanf key so messages match the YAML
// and APP_ variables an operator actually edits.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" {
			return f.Name
		}

		return name
	})

	return v
}

// Validate checks field constraints first, then the rules that span sections.
// The service refuses to start on any failure.
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("config validation: %w", err)
		}

		for _, fe := range fieldErrs {
			problems = append(problems, describe(fe))
		}
	}

	problems = append(problems, c.crossChecks()...)
	if len(problems) == 0 {
		return nil
	}

	sort.Strings(problems)

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(problems, "\n  "))
}

// crossChecks covers constraints struct tags cannot express.
func (c *Config) crossChecks() []string {
	var out []string

	if c.App.Environment == "prod" {
		if c.Auth.JWTSecret == DevJWTSecret {
			out = append(out, "auth.jwt_secret must be set in prod")
		}

		if c.Storage.InMemory {
			out = append(out, "storage.in_memory is not allowed in prod")
		}
	}

	if c.Server.RequestTimeout > 0 && c.Server.WriteTimeout > 0 &&
		c.Server.RequestTimeout > c.Server.WriteTimeout {
		out = append(out, fmt.Sprintf("server.request_timeout (%s) must not exceed server.write_timeout (%s)",
			c.Server.RequestTimeout, c.Server.WriteTimeout))
	}

	if limit := c.Fetcher.MaxContentRunes; limit > 0 {
		excerpts := map[string]int{
			"analysis.summary_excerpt_runes":  c.Analysis.SummaryExcerptRunes,
			"analysis.tags_excerpt_runes":     c.Analysis.TagsExcerptRunes,
			"analysis.category_excerpt_runes": c.Analysis.CategoryExcerptRunes,
		}
		for key, n := range excerpts {
			if n > limit {
				out = append(out, fmt.Sprintf("%s (%d) must not exceed fetcher.max_content_runes (%d)", key, n, limit))
			}
		}
	}

	return out
}

var fieldMessages = map[string]string{
	"required":        "is required",
	"required_if":     "is required when %s",
	"required_unless": "is required unless %s",
	"min":             "must be at least %s",
	"max":             "must be at most %s",
	"gt":              "must be greater than %s",
	"oneof":           "must be one of: %s",
	"url":             "must be a valid URL",
}

func describe(fe validator.FieldError) string {
	key := fieldKey(fe.Namespace())

	switch tag := fe.Tag(); tag {
	case "gtefield":
		return fmt.Sprintf("%s must be at least %s", key, siblingKey(fe))
	default:
		msg, ok := fieldMessages[tag]
		if !ok {
			return fmt.Sprintf("%s failed %q", key, tag)
		}

		if strings.Contains(msg, "%s") {
			msg = fmt.Sprintf(msg, paramKeys(fe.Param()))
		}

		return key + " " + msg
	}
}

// fieldKey turns "Config.server.max_request_size" into "server.max_request_size".
func fieldKey(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}

// siblingKey resolves a gtefield parameter, which names the Go field, to the
// neighbouring koanf key.
func siblingKey(fe validator.FieldError) string {
	parent := fieldKey(fe.Namespace())
	if i := strings.LastIndex(parent, "."); i >= 0 {
		parent = parent[:i+1]
	} else {
		parent = ""
	}

	return parent + toSnake(fe.Param())
}

// paramKeys rewrites "Enabled true" style parameters to "enabled=true".
func paramKeys(param string) string {
	fields := strings.Fields(param)
	if len(fields) != 2 || !isExported(fields[0]) {
		return param
	}

	return toSnake(fields[0]) + "=" + fields[1]
}

func isExported(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

// toSnake converts Go identifiers such as AccessTokenTTL to access_token_ttl.
func toSnake(s string) string {
	var b strings.Builder

	for i, r := range s {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := s[i-1] >= 'a' && s[i-1] <= 'z'
			nextLower := i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z'
			if prevLower || (nextLower && s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
		}

		if upper {
			r += 'a' - 'A'
		}

		b.WriteRune(r)
	}

	return b.String()
}
