// Package keypath parses the dotted paths used to address configuration
// values, e.g. "APP.RECIPES.PER_PAGE".
package keypath

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadPath = errors.New("keypath: bad path")

// Parse splits a dotted path into its names.
//
// Examples:
//
//	"DEBUG"                → ["DEBUG"]
//	"DB.HOST"              → ["DB", "HOST"]
//	"APP.RECIPES.PER_PAGE" → ["APP", "RECIPES", "PER_PAGE"]
//
// Surrounding whitespace is trimmed from each name. Empty names
// ("DB..HOST", ".HOST", "") return ErrBadPath.
func Parse(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrBadPath)
	}
	parts := strings.Split(s, ".")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("%w: empty name at position %d in %q", ErrBadPath, i, s)
		}
		parts[i] = p
	}
	return parts, nil
}

// Split parses s and separates the namespace names from the final name.
func Split(s string) (namespaces []string, name string, err error) {
	parts, err := Parse(s)
	if err != nil {
		return nil, "", err
	}
	last := len(parts) - 1
	return parts[:last], parts[last], nil
}

// Join is the inverse of Parse.
func Join(names ...string) string {
	return strings.Join(names, ".")
}
