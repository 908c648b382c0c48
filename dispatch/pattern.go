package dispatch

import (
	"regexp"
	"strings"
)

// Normalize returns the canonical form of a route or request path:
// a leading slash is prepended if absent and a single trailing slash is
// stripped unless the path is exactly "/". An empty path normalizes to
// "/". Total function, no failure mode.
func Normalize(path string) string {
	if path == "" {
		return "/"
	}

	if path[0] != '/' {
		path = "/" + path
	}

	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
		if path == "" {
			path = "/"
		}
	}

	return path
}

// ParamNames returns the parameter names declared in a normalized path,
// in left-to-right order. A segment beginning with ":" contributes its
// remainder; other segments contribute nothing.
//
// Names are not deduplicated: a path declaring the same name twice
// produces two bound occurrences, and the second silently overwrites
// the first when parameters are materialized into a map.
func ParamNames(path string) []string {
	var names []string

	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, ":") {
			names = append(names, seg[1:])
		}
	}

	return names
}

// pattern is a compiled path recognizer. The regexp has exactly one
// capturing group per declared parameter name, in appearance order, so
// captures pair positionally with the route's parameter names.
type pattern struct {
	// template is the normalized path the pattern was compiled from.
	template string
	// regexp is the compiled recognizer, anchored to the full path.
	regexp *regexp.Regexp
}

// compilePattern compiles a normalized path into a pattern. Each ":name"
// segment becomes a ([^/]+) capture, a bare "*" segment becomes a
// non-capturing (?:.*) wildcard matching across slashes, and literal
// segments are quoted verbatim. The result is anchored so partial
// matches never occur.
//
// The wildcard is deliberately non-capturing: it has no declared name,
// and keeping captures aligned one-to-one with ParamNames is what makes
// positional binding correct.
func compilePattern(path string) *pattern {
	segs := strings.Split(path, "/")

	var b strings.Builder
	b.WriteByte('^')

	for i, seg := range segs {
		if i > 0 {
			b.WriteByte('/')
		}

		switch {
		case strings.HasPrefix(seg, ":"):
			b.WriteString("([^/]+)")
		case seg == "*":
			b.WriteString("(?:.*)")
		default:
			b.WriteString(regexp.QuoteMeta(seg))
		}
	}

	b.WriteByte('$')

	return &pattern{
		template: path,
		regexp:   compileRegexp(b.String()),
	}
}

// match tests a candidate path and returns the captured substrings, one
// per capturing group in appearance order, or false if the path does
// not match.
func (p *pattern) match(path string) ([]string, bool) {
	m := p.regexp.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}

	return m[1:], true
}

// matches reports whether the candidate path matches, without
// extracting captures. Used for middleware patterns, where only the
// prefix/wildcard test matters.
func (p *pattern) matches(path string) bool {
	return p.regexp.MatchString(path)
}

// static reports whether the pattern contains no parameters or
// wildcards, meaning it only ever matches its own template string.
func (p *pattern) static() bool {
	return p.regexp.NumSubexp() == 0 && !strings.Contains(p.template, "*")
}
