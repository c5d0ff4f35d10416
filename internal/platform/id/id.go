// Package id generates prefixed entity identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes.
const (
	PrefixUser     = "usr"
	PrefixBookmark = "bm"
	PrefixFolder   = "fld"
)

// Generate returns prefix + "_" + a 21 character NanoID.
func Generate(prefix string) (string, error) {
	n, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generating nanoid: %w", err)
	}

	return prefix + "_" + n, nil
}

// MustGenerate is like Generate but panics when the system has no entropy.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(err)
	}

	return v
}
