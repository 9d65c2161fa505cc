// Package control orchestrates window close and focus requests over the
// platform accessibility, Space, and application backends. Each call is a
// single best-effort, synchronous attempt: the only retry is one Space-switch
// escalation when element resolution fails.
package control

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"winctl/internal/model"
	"winctl/internal/platform"
)

// Controller drives the per-call state machine
// PermissionCheck -> ElementResolution -> ActionExecution, with one retry
// path ElementResolution -> SpaceSwitch -> ElementResolution.
type Controller struct {
	windows  platform.WindowLister
	ax       platform.Accessibility
	apps     platform.AppController
	switcher *SpaceSwitcher
	log      zerolog.Logger
}

// New creates a controller over the given provider.
func New(p *platform.Provider, log zerolog.Logger) *Controller {
	return &Controller{
		windows:  p.Windows,
		ax:       p.Accessibility,
		apps:     p.Apps,
		switcher: NewSpaceSwitcher(p.Spaces, log),
		log:      log,
	}
}

// NewWithBackends wires a controller from individual backends.
func NewWithBackends(windows platform.WindowLister, ax platform.Accessibility, apps platform.AppController, switcher *SpaceSwitcher, log zerolog.Logger) *Controller {
	return &Controller{windows: windows, ax: ax, apps: apps, switcher: switcher, log: log}
}

// CloseWindow closes the window with the given id. State failures come back
// inside the result; the error return is reserved for broken preconditions
// such as the window list being unreadable.
func (c *Controller) CloseWindow(windowID int) (model.ActionResult, error) {
	return c.run("close", windowID, func(win model.Window) error {
		return c.withElement(win, func(el platform.WindowElement) error {
			return el.Close()
		})
	})
}

// FocusWindow brings the window with the given id to the foreground. The
// element is made the application's main window, the owning process is
// activated, and the raise action is performed; the call succeeds when
// either set-main or raise succeeded, compensating for inconsistent
// accessibility support in third-party applications.
func (c *Controller) FocusWindow(windowID int) (model.ActionResult, error) {
	return c.run("focus", windowID, func(win model.Window) error {
		return c.withElement(win, func(el platform.WindowElement) error {
			mainErr := el.SetMain()
			if aerr := c.apps.Activate(win.PID); aerr != nil {
				c.log.Debug().Err(aerr).Int("pid", win.PID).Msg("app activation failed")
			}
			raiseErr := el.Raise()
			if mainErr != nil && raiseErr != nil {
				return model.Failf(model.ReasonFocusFailed, "set-main: %v; raise: %v", mainErr, raiseErr)
			}
			return nil
		})
	})
}

// IsAlive reports whether the window with the given id still exists. Window
// ids are reused by the OS, so when expectedTitle is non-empty the title
// must match too for the window to count as the same one.
func (c *Controller) IsAlive(windowID int, expectedTitle string) (bool, error) {
	windows, err := c.windows.ListWindows(platform.ListOptions{IncludeUntitled: true})
	if err != nil {
		return false, fmt.Errorf("failed to list windows: %w", err)
	}
	for _, w := range windows {
		if w.Matches(windowID, expectedTitle) {
			return true, nil
		}
	}
	return false, nil
}

// run resolves the window id against a fresh snapshot and folds the action's
// outcome into a tagged result.
func (c *Controller) run(action string, windowID int, act func(model.Window) error) (model.ActionResult, error) {
	windows, err := c.windows.ListWindows(platform.ListOptions{IncludeUntitled: true})
	if err != nil {
		return model.ActionResult{}, fmt.Errorf("failed to list windows: %w", err)
	}

	var win model.Window
	found := false
	for _, w := range windows {
		if w.ID == windowID {
			win = w
			found = true
			break
		}
	}

	actErr := error(model.Failf(model.ReasonWindowNotFound, "window id %d", windowID))
	if found {
		actErr = act(win)
	}
	return buildResult(action, windowID, win.Title, actErr), nil
}

// withElement runs the resolution state machine and invokes action on the
// resolved element. A failed resolution is treated as "possibly on an
// inactive Space": the switcher activates the owning Space, resolution is
// re-run exactly once, and the originally active Space is restored on every
// exit path regardless of the action's outcome.
func (c *Controller) withElement(win model.Window, action func(platform.WindowElement) error) error {
	if !c.ax.Trusted() {
		return model.Fail(model.ReasonAccessibilityDenied)
	}

	el, err := c.ax.ResolveWindow(win.PID, win.Title)
	if errors.Is(err, platform.ErrNotResolved) {
		restore, serr := c.switcher.ActivateFor(win, func() bool {
			probe, perr := c.ax.ResolveWindow(win.PID, win.Title)
			if perr != nil {
				return false
			}
			probe.Release()
			return true
		})
		defer restore()
		if serr != nil {
			return serr
		}
		el, err = c.ax.ResolveWindow(win.PID, win.Title)
		if err != nil {
			return model.Failf(model.ReasonWindowNotAccessible, "window id %d", win.ID)
		}
	} else if err != nil {
		return err
	}
	defer el.Release()

	return action(el)
}

// buildResult folds an action error into the tagged result callers receive.
func buildResult(action string, windowID int, title string, err error) model.ActionResult {
	res := model.ActionResult{
		Action:   action,
		WindowID: windowID,
		Title:    title,
	}
	if err == nil {
		res.OK = true
		return res
	}

	var failure *model.Failure
	if errors.As(err, &failure) {
		res.Reason = failure.Reason
		res.Message = failure.Message()
		res.Remedy = failure.Remedy()
		if failure.Detail != "" {
			res.Message = failure.Error()
		}
		return res
	}

	// Unexpected error from a leaf backend; surface it without a reason.
	res.Message = err.Error()
	return res
}
