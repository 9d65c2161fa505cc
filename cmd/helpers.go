package cmd

import (
	"fmt"

	"winctl/internal/model"
	"winctl/internal/platform"
)

// buildFilter assembles a window filter from command flags. Wildcard and
// exact title matching are mutually exclusive; Validate enforces it.
func buildFilter(title, titleContains, titleWildcard, app string, caseSensitive bool, windowID, pid, layer int, onScreen *bool) (model.Filter, error) {
	var f model.Filter

	switch {
	case title != "":
		f.Title = &model.StringMatch{Value: title, Exact: true, CaseSensitive: caseSensitive}
	case titleContains != "":
		f.Title = &model.StringMatch{Value: titleContains, CaseSensitive: caseSensitive}
	case titleWildcard != "":
		f.Title = &model.StringMatch{Value: titleWildcard, Wildcard: true, CaseSensitive: caseSensitive}
	}
	if app != "" {
		f.App = &model.StringMatch{Value: app, Exact: true, CaseSensitive: caseSensitive}
	}
	if windowID != 0 {
		f.ID = &windowID
	}
	if pid != 0 {
		f.PID = &pid
	}
	if layer >= 0 {
		f.Layer = &layer
	}
	f.OnScreen = onScreen

	if err := f.Validate(); err != nil {
		return model.Filter{}, err
	}
	return f, nil
}

// resolveWindowID turns --window-id/--title/--app flags into one window id.
// Returns 0 with a nil error when no window matches, so the caller can
// report a tagged WindowNotFound result instead of a hard error.
func resolveWindowID(lister platform.WindowLister, windowID int, title, app string) (int, error) {
	if windowID != 0 {
		return windowID, nil
	}
	if title == "" && app == "" {
		return 0, fmt.Errorf("specify --window-id, --title, or --app")
	}

	windows, err := lister.ListWindows(platform.ListOptions{})
	if err != nil {
		return 0, err
	}

	var f model.Filter
	if title != "" {
		f.Title = &model.StringMatch{Value: title}
	}
	if app != "" {
		f.App = &model.StringMatch{Value: app, Exact: true}
	}
	matches := f.Apply(windows)
	if len(matches) == 0 {
		return 0, nil
	}
	if len(matches) > 1 {
		return 0, fmt.Errorf("%d windows match; narrow the filter or use --window-id (run `winctl list`)", len(matches))
	}
	return matches[0].ID, nil
}
