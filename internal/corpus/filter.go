// Package corpus counts words and part-of-speech tags in word/tag tagged text.
package corpus

import (
	"fmt"
	"regexp"
)

// Filter selects the tokens that contribute to a count along one axis (words
// or tags). An Absent filter removes its axis from the output key; a Pattern
// filter keeps the axis and retains only values it matches.
type Filter interface {
	// Active reports whether the axis is part of the output key.
	Active() bool
	// Match reports whether s is retained. Absent matches everything.
	Match(s string) bool
	String() string

	sealed()
}

type absentFilter struct{}

// Absent returns the filter that excludes its axis from the output.
func Absent() Filter { return absentFilter{} }

func (absentFilter) Active() bool { return false }
func (absentFilter) Match(string) bool { return true }
func (absentFilter) String() string { return "<absent>" }
func (absentFilter) sealed() {}

type patternFilter struct {
	expr string
	re   *regexp.Regexp
}

// Pattern compiles expr into a filter that must match at the start of a
// value. Matching is a prefix match: "n" retains both "nn" and "np".
func Pattern(expr string) (Filter, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
	}
	return patternFilter{expr: expr, re: re}, nil
}

// MustPattern is like Pattern but panics if expr does not compile.
func MustPattern(expr string) Filter {
	f, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return f
}

// OptionalPattern returns Absent for a nil expression and Pattern otherwise.
func OptionalPattern(expr *string) (Filter, error) {
	if expr == nil {
		return Absent(), nil
	}
	return Pattern(*expr)
}

func (p patternFilter) Active() bool { return true }
func (p patternFilter) Match(s string) bool { return p.re.MatchString(s) }
func (p patternFilter) String() string { return p.expr }
func (patternFilter) sealed() {}
