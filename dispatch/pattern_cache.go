package dispatch

import (
	"regexp"
	"sync"
)

// regexpCache caches compiled regular expressions by pattern string.
// The number of unique patterns is bounded by the number of registered
// routes and middleware entries, so the cache grows to a fixed size and
// stays there.
var regexpCache sync.Map

// compileRegexp returns a cached *regexp.Regexp for the given pattern,
// compiling and caching it on first use. Patterns are built from quoted
// literals and fixed capture fragments, so compilation cannot fail.
func compileRegexp(pattern string) *regexp.Regexp {
	if v, ok := regexpCache.Load(pattern); ok {
		return v.(*regexp.Regexp)
	}

	re := regexp.MustCompile(pattern)

	actual, _ := regexpCache.LoadOrStore(pattern, re)

	return actual.(*regexp.Regexp)
}
