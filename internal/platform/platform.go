package platform

import (
	"errors"

	"winctl/internal/model"
)

// ErrNotResolved is returned by Accessibility.ResolveWindow when no element
// of the application matches the requested window. It deliberately does not
// carry a failure reason: the window may simply live on an inactive Space,
// and the orchestrator decides whether to escalate or fail.
var ErrNotResolved = errors.New("window element not resolved")

// WindowLister snapshots the OS window list. Stateless between calls.
type WindowLister interface {
	// ListWindows returns the normalized OS window list. Inability to read
	// the list at all is a hard error; no partial results are returned.
	ListWindows(opts ListOptions) ([]model.Window, error)
}

// WindowElement is an opaque, per-call handle to a live UI element scoped to
// one process and one window. Handles are not stable identifiers and must
// never be cached across calls; Release frees the underlying OS reference.
type WindowElement interface {
	// Close locates the window's close control and presses it. Failures are
	// typed: CloseButtonNotFound or CloseActionFailed.
	Close() error

	// SetMain makes the element its application's main window.
	SetMain() error

	// Raise performs the element's raise action.
	Raise() error

	Release()
}

// Accessibility resolves logical windows to live UI-element handles through
// the OS accessibility framework.
type Accessibility interface {
	// Trusted reports whether the process holds accessibility permission.
	Trusted() bool

	// ResolveWindow finds a window element of the given process: exact title
	// match first, then substring; an empty title accepts the first window
	// element. Returns ErrNotResolved when nothing matches.
	ResolveWindow(pid int, title string) (WindowElement, error)
}

// AppController wraps the OS running-application registry.
type AppController interface {
	// Activate brings the application with the given pid to the foreground.
	Activate(pid int) error

	// Terminate asks the application to quit cooperatively (or forcibly).
	// The first return value is false when the registry has no handle for
	// the pid, in which case the caller falls back to signals.
	Terminate(pid int, force bool) (bool, error)
}

// SpaceManager exposes the private virtual-desktop entry points. All methods
// probe for the underlying symbols at call time; when they are missing every
// method returns a SpaceSwitchUnavailable failure rather than crashing.
type SpaceManager interface {
	Available() error
	SpaceForWindow(windowID int) (uint64, error)
	DisplayForBounds(bounds [4]int) (string, error)
	CurrentSpace(display string) (uint64, error)
	SwitchToSpace(display string, space uint64) error
}

// Permissions queries the two OS permission flags.
type Permissions interface {
	AccessibilityTrusted() (bool, error)
	ScreenRecordingGranted() (bool, error)
}
