// Package pathutil normalizes dynamic URL paths so metric labels stay at a
// fixed cardinality. Entry and article IDs are UUIDs, which would otherwise
// create one label per row.
package pathutil

import (
	"regexp"
	"strings"
)

// pathPattern pairs a route regex with its normalized template.
type pathPattern struct {
	pattern  *regexp.Regexp
	template string
}

// id matches UUID-style identifiers in path segments.
const id = `[0-9a-fA-F-]{8,}`

// pathPatterns are evaluated in order, most specific first.
// Pre-compiled at initialization.
var pathPatterns = []pathPattern{
	{pattern: regexp.MustCompile(`^/api/favorites/` + id + `$`), template: "/api/favorites/:id"},
	{pattern: regexp.MustCompile(`^/api/watchlater/` + id + `$`), template: "/api/watchlater/:id"},
	{pattern: regexp.MustCompile(`^/api/admin/articles/` + id + `$`), template: "/api/admin/articles/:id"},
}

// NormalizePath converts paths carrying IDs (e.g. /api/favorites/3f2a...) to
// template form (/api/favorites/:id). Static paths, query parameters and
// trailing slashes are handled; unknown paths pass through unchanged.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
