package model

import (
	"fmt"
	"strings"
)

// StringMatch is one string predicate of a window filter. Exactly one
// matching mode applies: wildcard when Wildcard is set, otherwise exact or
// substring per Exact. Wildcard and Exact are mutually exclusive.
type StringMatch struct {
	Value         string
	Exact         bool
	CaseSensitive bool
	Wildcard      bool
}

// Matches reports whether s satisfies the predicate.
func (m StringMatch) Matches(s string) bool {
	if m.Wildcard {
		if !m.CaseSensitive {
			return WildcardMatch(strings.ToLower(s), strings.ToLower(m.Value))
		}
		return WildcardMatch(s, m.Value)
	}
	if m.Exact {
		if m.CaseSensitive {
			return s == m.Value
		}
		return strings.EqualFold(s, m.Value)
	}
	if m.CaseSensitive {
		return strings.Contains(s, m.Value)
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(m.Value))
}

// Filter is a set of optional predicates over Window fields, combined by
// logical AND. Absent predicates impose no constraint, so the zero Filter
// matches every window.
type Filter struct {
	Title    *StringMatch
	App      *StringMatch
	ID       *int
	PID      *int
	Layer    *int
	OnScreen *bool
}

// Validate rejects predicate combinations the filter cannot express.
func (f Filter) Validate() error {
	for _, m := range []*StringMatch{f.Title, f.App} {
		if m != nil && m.Wildcard && m.Exact {
			return fmt.Errorf("wildcard and exact matching are mutually exclusive")
		}
	}
	return nil
}

// Matches reports whether every present predicate holds for w.
func (f Filter) Matches(w Window) bool {
	if f.Title != nil && !f.Title.Matches(w.Title) {
		return false
	}
	if f.App != nil && !f.App.Matches(w.App) {
		return false
	}
	if f.ID != nil && w.ID != *f.ID {
		return false
	}
	if f.PID != nil && w.PID != *f.PID {
		return false
	}
	if f.Layer != nil && w.Layer != *f.Layer {
		return false
	}
	if f.OnScreen != nil && w.OnScreen != *f.OnScreen {
		return false
	}
	return true
}

// Apply returns the windows matching every present predicate.
func (f Filter) Apply(windows []Window) []Window {
	result := []Window{}
	for _, w := range windows {
		if f.Matches(w) {
			result = append(result, w)
		}
	}
	return result
}
