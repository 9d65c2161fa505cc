package cmd

import (
	"strings"
	"testing"

	"winctl/internal/model"
	"winctl/internal/platform"
)

type stubLister struct {
	windows []model.Window
}

func (s *stubLister) ListWindows(platform.ListOptions) ([]model.Window, error) {
	return s.windows, nil
}

func TestBuildFilter_TitleModes(t *testing.T) {
	f, err := buildFilter("Exact Title", "", "", "", false, 0, 0, -1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Title == nil || !f.Title.Exact {
		t.Error("--title should produce an exact match")
	}

	f, err = buildFilter("", "", "Doc*.txt", "", true, 0, 0, -1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Title == nil || !f.Title.Wildcard || !f.Title.CaseSensitive {
		t.Errorf("--title-wildcard should produce a case-sensitive wildcard match, got %+v", f.Title)
	}
}

func TestBuildFilter_LayerSentinel(t *testing.T) {
	f, err := buildFilter("", "", "", "", false, 0, 0, -1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Layer != nil {
		t.Error("layer -1 means unfiltered")
	}

	f, err = buildFilter("", "", "", "", false, 0, 0, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Layer == nil || *f.Layer != 0 {
		t.Error("layer 0 is a real filter value")
	}
}

func TestResolveWindowID(t *testing.T) {
	lister := &stubLister{windows: []model.Window{
		{ID: 11, Title: "Inbox", App: "Mail"},
		{ID: 12, Title: "Drafts", App: "Mail"},
		{ID: 13, Title: "Untitled", App: "TextEdit"},
	}}

	// Explicit id short-circuits without listing.
	id, err := resolveWindowID(lister, 42, "", "")
	if err != nil || id != 42 {
		t.Errorf("explicit id: got %d, %v", id, err)
	}

	id, err = resolveWindowID(lister, 0, "Inbox", "")
	if err != nil || id != 11 {
		t.Errorf("unique title: got %d, %v", id, err)
	}

	// No match is not a hard error; callers report window_not_found.
	id, err = resolveWindowID(lister, 0, "No Such Window", "")
	if err != nil || id != 0 {
		t.Errorf("no match: got %d, %v", id, err)
	}

	if _, err = resolveWindowID(lister, 0, "", "Mail"); err == nil ||
		!strings.Contains(err.Error(), "2 windows match") {
		t.Errorf("ambiguous match should error, got %v", err)
	}

	if _, err = resolveWindowID(lister, 0, "", ""); err == nil {
		t.Error("missing selector flags should error")
	}
}
