package model

import (
	"reflect"
	"testing"
)

var testWindows = []Window{
	{ID: 101, Title: "Inbox — Mail", App: "Mail", PID: 300, Layer: 0, OnScreen: true},
	{ID: 102, Title: "Document1.txt", App: "TextEdit", PID: 310, Layer: 0, OnScreen: true},
	{ID: 103, Title: "Document2.txt", App: "TextEdit", PID: 310, Layer: 0, OnScreen: false},
	{ID: 104, Title: "", App: "WindowServer", PID: 88, Layer: 25, OnScreen: true},
}

func TestFilter_NoPredicatesMatchesAll(t *testing.T) {
	got := Filter{}.Apply(testWindows)
	if !reflect.DeepEqual(got, testWindows) {
		t.Errorf("empty filter should return all windows, got %d of %d", len(got), len(testWindows))
	}
}

func TestFilter_ANDCombination(t *testing.T) {
	pid := 310
	onScreen := true
	f := Filter{
		App:      &StringMatch{Value: "textedit"},
		PID:      &pid,
		OnScreen: &onScreen,
	}
	got := f.Apply(testWindows)
	if len(got) != 1 || got[0].ID != 102 {
		t.Fatalf("expected only window 102, got %v", got)
	}

	// AND semantics: the combined result equals the intersection of the
	// per-predicate filtered sets.
	intersection := Filter{PID: &pid}.Apply(Filter{OnScreen: &onScreen}.Apply(Filter{App: f.App}.Apply(testWindows)))
	if !reflect.DeepEqual(got, intersection) {
		t.Errorf("combined filter != intersection of per-predicate filters")
	}
}

func TestFilter_WildcardTitle(t *testing.T) {
	f := Filter{Title: &StringMatch{Value: "Doc*.txt", Wildcard: true}}
	got := f.Apply(testWindows)
	if len(got) != 2 {
		t.Fatalf("expected 2 wildcard matches, got %d", len(got))
	}
}

func TestFilter_LayerAndID(t *testing.T) {
	layer := 25
	if got := (Filter{Layer: &layer}).Apply(testWindows); len(got) != 1 || got[0].ID != 104 {
		t.Errorf("layer filter: got %v", got)
	}
	id := 103
	if got := (Filter{ID: &id}).Apply(testWindows); len(got) != 1 || got[0].Title != "Document2.txt" {
		t.Errorf("id filter: got %v", got)
	}
}

func TestStringMatch_Modes(t *testing.T) {
	tests := []struct {
		name  string
		m     StringMatch
		s     string
		want  bool
	}{
		{"contains_insensitive", StringMatch{Value: "mail"}, "Inbox — Mail", true},
		{"contains_sensitive", StringMatch{Value: "mail", CaseSensitive: true}, "Inbox — Mail", false},
		{"exact_insensitive", StringMatch{Value: "inbox — mail", Exact: true}, "Inbox — Mail", true},
		{"exact_sensitive", StringMatch{Value: "inbox — mail", Exact: true, CaseSensitive: true}, "Inbox — Mail", false},
		{"exact_rejects_substring", StringMatch{Value: "Mail", Exact: true}, "Inbox — Mail", false},
		{"wildcard_insensitive", StringMatch{Value: "inbox*", Wildcard: true}, "Inbox — Mail", true},
		{"wildcard_sensitive", StringMatch{Value: "inbox*", Wildcard: true, CaseSensitive: true}, "Inbox — Mail", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Matches(tt.s); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestFilter_ValidateRejectsWildcardExact(t *testing.T) {
	f := Filter{Title: &StringMatch{Value: "x*", Wildcard: true, Exact: true}}
	if err := f.Validate(); err == nil {
		t.Error("expected validation error for wildcard+exact")
	}
	if err := (Filter{}).Validate(); err != nil {
		t.Errorf("empty filter should validate, got %v", err)
	}
}

func TestWindow_MatchesGuardsIDReuse(t *testing.T) {
	w := Window{ID: 101, Title: "New Occupant"}

	// The bare ID check cannot tell a reused id apart.
	if !w.Matches(101, "") {
		t.Error("id-only check should match")
	}
	// With the expected title, a different occupant of the same id is
	// rejected.
	if w.Matches(101, "Inbox — Mail") {
		t.Error("title mismatch should reject reused window id")
	}
	if !w.Matches(101, "New Occupant") {
		t.Error("matching title should be accepted")
	}
}
