package pattern

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Set matches names against a collection of exact values and glob patterns.
//
// Names containing glob metacharacters ("*", "?", "[") are compiled once at
// construction; plain names go into an exact-match set. Matching is therefore
// a map lookup plus at most one pass over the compiled patterns, never a
// per-match compilation.
type Set struct {
	exact    map[string]struct{}
	patterns []glob.Glob
}

// Compile builds a Set from the given names. Names with glob metacharacters
// are compiled as patterns; invalid patterns return an error.
func Compile(names []string) (*Set, error) {
	s := &Set{exact: make(map[string]struct{}, len(names))}
	for _, name := range names {
		if !strings.ContainsAny(name, "*?[") {
			s.exact[name] = struct{}{}
			continue
		}
		p, err := glob.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", name, err)
		}
		s.patterns = append(s.patterns, p)
	}
	return s, nil
}

// Match reports whether name is in the exact set or matches any compiled
// pattern.
func (s *Set) Match(name string) bool {
	if _, ok := s.exact[name]; ok {
		return true
	}
	for _, p := range s.patterns {
		if p.Match(name) {
			return true
		}
	}
	return false
}

// Len returns the total number of exact names and patterns.
func (s *Set) Len() int {
	return len(s.exact) + len(s.patterns)
}
