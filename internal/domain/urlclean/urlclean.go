// Package urlclean canonicalizes user-submitted bookmark URLs.
package urlclean

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// trackingParams are query keys removed during cleaning. Keys with the utm_
// prefix are removed as well.
var trackingParams = map[string]struct{}{
	"fbclid":  {},
	"gclid":   {},
	"dclid":   {},
	"msclkid": {},
	"mc_cid":  {},
	"mc_eid":  {},
	"ref_src": {},
	"igshid":  {},
}

// Clean returns the canonical form of raw. A missing scheme defaults to https.
// Only http and https URLs with a host are accepted.
func Clean(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", domain.NewValidationError("url", "must not be empty")
	}

	u, err := url.Parse(withScheme(s))
	if err != nil {
		return "", domain.NewValidationErrorWithValue("url", "is not a valid URL", raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", domain.NewValidationErrorWithValue("url", "scheme must be http or https", u.Scheme)
	}

	if u.Hostname() == "" {
		return "", domain.NewValidationErrorWithValue("url", "must include a host", raw)
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			if isTracking(key) {
				q.Del(key)
			}
		}

		// Encode sorts by key.
		u.RawQuery = q.Encode()
	}

	if u.Path == "/" && u.RawQuery == "" {
		u.Path = ""
	}

	return u.String(), nil
}

func isTracking(key string) bool {
	key = strings.ToLower(key)
	if strings.HasPrefix(key, "utm_") {
		return true
	}

	_, ok := trackingParams[key]

	return ok
}

// Host returns the lowercased host of rawURL without port and a leading
// "www.", or "" if it cannot be parsed. A missing scheme is read as https,
// as in Clean.
func Host(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return ""
	}

	u, err := url.Parse(withScheme(s))
	if err != nil {
		return ""
	}

	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func withScheme(s string) string {
	if schemePattern.MatchString(s) {
		return s
	}

	return "https://" + s
}

// MatchesHost reports whether host is base or one of its subdomains.
func MatchesHost(host, base string) bool {
	return host == base || strings.HasSuffix(host, "."+base)
}
