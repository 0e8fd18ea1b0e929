package stores

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
)

// term is one whitespace-separated piece of a filter string. Terms with a known
// field prefix ("vendor:acme*") glob-match that field; everything else is a
// case-insensitive substring match against title, type and vendor.
type term struct {
	field   string
	pattern string
}

var termFields = map[string]bool{
	"title":  true,
	"type":   true,
	"vendor": true,
	"tag":    true,
}

// parseFilter splits text into terms. Every term must match for a record to be
// kept. Malformed glob patterns are reported up front.
func parseFilter(text string) ([]term, error) {
	fields := strings.Fields(strings.ToLower(text))
	terms := make([]term, 0, len(fields))

	for _, f := range fields {
		name, pattern, ok := strings.Cut(f, ":")
		if !ok || !termFields[name] || pattern == "" {
			terms = append(terms, term{pattern: f})
			continue
		}

		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid filter pattern %q", f)
		}
		terms = append(terms, term{field: name, pattern: pattern})
	}

	return terms, nil
}

func (t term) matches(r catalog.Record) bool {
	switch t.field {
	case "":
		return strings.Contains(strings.ToLower(r.Title), t.pattern) ||
			strings.Contains(strings.ToLower(r.ProductType), t.pattern) ||
			strings.Contains(strings.ToLower(r.Vendor), t.pattern)
	case "title":
		return globMatch(t.pattern, r.Title)
	case "type":
		return globMatch(t.pattern, r.ProductType)
	case "vendor":
		return globMatch(t.pattern, r.Vendor)
	case "tag":
		for _, tag := range r.Tags {
			if globMatch(t.pattern, tag) {
				return true
			}
		}
	}
	return false
}

func globMatch(pattern, value string) bool {
	ok, err := doublestar.Match(pattern, strings.ToLower(value))
	return err == nil && ok
}

func matchesAll(terms []term, r catalog.Record) bool {
	for _, t := range terms {
		if !t.matches(r) {
			return false
		}
	}
	return true
}
