package storage

import (
	"fmt"
	"regexp"

	"github.com/PaesslerAG/jsonpath"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/odpi/itinfra/internal/errors"
)

// InZones reports whether an element with the given zone membership is
// visible through the zone patterns. Elements without zones and queries
// without patterns are unrestricted.
func InZones(membership, patterns []string) bool {
	if len(membership) == 0 || len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		for _, zone := range membership {
			if ok, err := doublestar.Match(pattern, zone); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// ValidateZonePatterns rejects malformed glob patterns.
func ValidateZonePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid zone pattern %q", p)
		}
	}
	return nil
}

// CompileSearch compiles a search string into a whole-value matcher.
func CompileSearch(search string) (*regexp.Regexp, error) {
	if search == "" {
		return nil, nil
	}
	re, err := regexp.Compile("^(?:" + search + ")$")
	if err != nil {
		return nil, errors.InvalidParameter("searchString", err.Error())
	}
	return re, nil
}

// ValidatePathFilters rejects filters whose JSONPath expression does not parse.
func ValidatePathFilters(filters []PathFilter) error {
	for _, f := range filters {
		if _, err := jsonpath.New(f.Path); err != nil {
			return errors.InvalidParameter("pathFilter", err.Error())
		}
	}
	return nil
}

// Page applies startFrom and pageSize to an ordered result set.
func Page[T any](items []T, startFrom, pageSize int) []T {
	if startFrom < 0 {
		startFrom = 0
	}
	if startFrom >= len(items) {
		return nil
	}
	items = items[startFrom:]
	if pageSize > 0 && pageSize < len(items) {
		items = items[:pageSize]
	}
	return items
}
