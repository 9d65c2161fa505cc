package control

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"winctl/internal/model"
	"winctl/internal/platform"
)

// fakeLister serves a fixed window list.
type fakeLister struct {
	windows []model.Window
	err     error
}

func (f *fakeLister) ListWindows(platform.ListOptions) ([]model.Window, error) {
	return f.windows, f.err
}

// fakeElement records the actions performed on it.
type fakeElement struct {
	closeErr   error
	setMainErr error
	raiseErr   error

	closed   bool
	released bool
}

func (f *fakeElement) Close() error {
	f.closed = true
	return f.closeErr
}
func (f *fakeElement) SetMain() error { return f.setMainErr }
func (f *fakeElement) Raise() error   { return f.raiseErr }
func (f *fakeElement) Release()       { f.released = true }

// fakeAX fails resolution failBefore times, then hands out elements.
type fakeAX struct {
	trusted    bool
	failBefore int
	element    *fakeElement

	resolves int
}

func (f *fakeAX) Trusted() bool { return f.trusted }

func (f *fakeAX) ResolveWindow(pid int, title string) (platform.WindowElement, error) {
	f.resolves++
	if f.resolves <= f.failBefore {
		return nil, platform.ErrNotResolved
	}
	if f.element != nil {
		return f.element, nil
	}
	return &fakeElement{}, nil
}

type fakeApps struct {
	activated []int
	err       error
}

func (f *fakeApps) Activate(pid int) error {
	f.activated = append(f.activated, pid)
	return f.err
}

func (f *fakeApps) Terminate(pid int, force bool) (bool, error) { return false, nil }

// fakeSpaces is a scriptable Space manager recording switches.
type fakeSpaces struct {
	unavailable  bool
	windowSpace  uint64
	currentSpace uint64
	switches     []uint64
}

func (f *fakeSpaces) Available() error {
	if f.unavailable {
		return model.Fail(model.ReasonSpaceSwitchUnavailable)
	}
	return nil
}

func (f *fakeSpaces) SpaceForWindow(windowID int) (uint64, error) {
	if err := f.Available(); err != nil {
		return 0, err
	}
	return f.windowSpace, nil
}

func (f *fakeSpaces) DisplayForBounds(bounds [4]int) (string, error) {
	if err := f.Available(); err != nil {
		return "", err
	}
	return "display-1", nil
}

func (f *fakeSpaces) CurrentSpace(display string) (uint64, error) {
	if err := f.Available(); err != nil {
		return 0, err
	}
	return f.currentSpace, nil
}

func (f *fakeSpaces) SwitchToSpace(display string, space uint64) error {
	if err := f.Available(); err != nil {
		return err
	}
	f.switches = append(f.switches, space)
	return nil
}

func newTestController(lister *fakeLister, ax *fakeAX, apps *fakeApps, spaces *fakeSpaces) *Controller {
	switcher := NewSpaceSwitcher(spaces, zerolog.Nop())
	switcher.sleep = func(time.Duration) {}
	return NewWithBackends(lister, ax, apps, switcher, zerolog.Nop())
}

var testWindow = model.Window{ID: 7, Title: "Notes", App: "Notes", PID: 42, Bounds: [4]int{0, 0, 800, 600}}

func TestCloseWindow_Success(t *testing.T) {
	el := &fakeElement{}
	ax := &fakeAX{trusted: true, element: el}
	ctrl := newTestController(&fakeLister{windows: []model.Window{testWindow}}, ax, &fakeApps{}, &fakeSpaces{})

	result, err := ctrl.CloseWindow(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected success, got reason %s", result.Reason)
	}
	if !el.closed || !el.released {
		t.Error("element should be closed and released")
	}
}

func TestCloseWindow_PermissionDenied(t *testing.T) {
	ax := &fakeAX{trusted: false}
	ctrl := newTestController(&fakeLister{windows: []model.Window{testWindow}}, ax, &fakeApps{}, &fakeSpaces{})

	result, err := ctrl.CloseWindow(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK || result.Reason != model.ReasonAccessibilityDenied {
		t.Errorf("expected accessibility denial, got %+v", result)
	}
	if ax.resolves != 0 {
		t.Error("no resolution attempt should happen without permission")
	}
}

func TestCloseWindow_WindowNotFound(t *testing.T) {
	ctrl := newTestController(&fakeLister{windows: nil}, &fakeAX{trusted: true}, &fakeApps{}, &fakeSpaces{})

	result, err := ctrl.CloseWindow(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK || result.Reason != model.ReasonWindowNotFound {
		t.Errorf("expected window_not_found, got %+v", result)
	}
}

func TestCloseWindow_ListFailureIsFatal(t *testing.T) {
	ctrl := newTestController(&fakeLister{err: errors.New("CGWindowList refused")}, &fakeAX{trusted: true}, &fakeApps{}, &fakeSpaces{})

	if _, err := ctrl.CloseWindow(7); err == nil {
		t.Fatal("expected a hard error when the window list is unreadable")
	}
}

func TestCloseWindow_SpaceEscalationThenSuccess(t *testing.T) {
	el := &fakeElement{}
	// First resolution fails, the post-switch poll and the retry succeed.
	ax := &fakeAX{trusted: true, failBefore: 1, element: el}
	spaces := &fakeSpaces{windowSpace: 5, currentSpace: 2}
	ctrl := newTestController(&fakeLister{windows: []model.Window{testWindow}}, ax, &fakeApps{}, spaces)

	result, err := ctrl.CloseWindow(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected success after Space switch, got %+v", result)
	}
	if len(spaces.switches) != 2 || spaces.switches[0] != 5 || spaces.switches[1] != 2 {
		t.Errorf("expected switch to 5 then restore to 2, got %v", spaces.switches)
	}
}

func TestCloseWindow_SpaceRestoredEvenWhenCloseFails(t *testing.T) {
	el := &fakeElement{closeErr: model.Fail(model.ReasonCloseActionFailed)}
	ax := &fakeAX{trusted: true, failBefore: 1, element: el}
	spaces := &fakeSpaces{windowSpace: 5, currentSpace: 2}
	ctrl := newTestController(&fakeLister{windows: []model.Window{testWindow}}, ax, &fakeApps{}, spaces)

	result, err := ctrl.CloseWindow(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK || result.Reason != model.ReasonCloseActionFailed {
		t.Errorf("expected close_action_failed, got %+v", result)
	}
	if len(spaces.switches) != 2 || spaces.switches[1] != 2 {
		t.Errorf("original Space must be restored after a failed close, got %v", spaces.switches)
	}
}

func TestCloseWindow_UnresolvedAfterSwitch(t *testing.T) {
	ax := &fakeAX{trusted: true, failBefore: 1 << 30} // never resolves
	spaces := &fakeSpaces{windowSpace: 5, currentSpace: 2}
	ctrl := newTestController(&fakeLister{windows: []model.Window{testWindow}}, ax, &fakeApps{}, spaces)

	result, err := ctrl.CloseWindow(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK || result.Reason != model.ReasonWindowNotAccessible {
		t.Errorf("expected window_not_accessible, got %+v", result)
	}
	if len(spaces.switches) != 2 || spaces.switches[1] != 2 {
		t.Errorf("original Space must be restored, got %v", spaces.switches)
	}
}

func TestCloseWindow_SpaceSwitchUnavailable(t *testing.T) {
	ax := &fakeAX{trusted: true, failBefore: 1 << 30}
	spaces := &fakeSpaces{unavailable: true}
	ctrl := newTestController(&fakeLister{windows: []model.Window{testWindow}}, ax, &fakeApps{}, spaces)

	result, err := ctrl.CloseWindow(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK || result.Reason != model.ReasonSpaceSwitchUnavailable {
		t.Errorf("expected space_switch_unavailable, got %+v", result)
	}
}

func TestCloseWindow_CloseButtonNotFound(t *testing.T) {
	el := &fakeElement{closeErr: model.Fail(model.ReasonCloseButtonNotFound)}
	ax := &fakeAX{trusted: true, element: el}
	ctrl := newTestController(&fakeLister{windows: []model.Window{testWindow}}, ax, &fakeApps{}, &fakeSpaces{})

	result, _ := ctrl.CloseWindow(7)
	if result.OK || result.Reason != model.ReasonCloseButtonNotFound {
		t.Errorf("expected close_button_not_found, got %+v", result)
	}
}

func TestFocusWindow_SucceedsWhenOnlyRaiseWorks(t *testing.T) {
	el := &fakeElement{setMainErr: errors.New("AXMain refused")}
	ax := &fakeAX{trusted: true, element: el}
	apps := &fakeApps{err: errors.New("activation refused")}
	ctrl := newTestController(&fakeLister{windows: []model.Window{testWindow}}, ax, apps, &fakeSpaces{})

	result, err := ctrl.FocusWindow(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK {
		t.Errorf("raise alone should count as success, got %+v", result)
	}
	if len(apps.activated) != 1 || apps.activated[0] != 42 {
		t.Errorf("owning process should be activated, got %v", apps.activated)
	}
}

func TestFocusWindow_FailsWhenBothActionsFail(t *testing.T) {
	el := &fakeElement{
		setMainErr: errors.New("AXMain refused"),
		raiseErr:   errors.New("AXRaise refused"),
	}
	ax := &fakeAX{trusted: true, element: el}
	ctrl := newTestController(&fakeLister{windows: []model.Window{testWindow}}, ax, &fakeApps{}, &fakeSpaces{})

	result, _ := ctrl.FocusWindow(7)
	if result.OK || result.Reason != model.ReasonFocusFailed {
		t.Errorf("expected focus_failed, got %+v", result)
	}
}

func TestIsAlive_GuardsIDReuse(t *testing.T) {
	lister := &fakeLister{windows: []model.Window{{ID: 7, Title: "New Occupant"}}}
	ctrl := newTestController(lister, &fakeAX{trusted: true}, &fakeApps{}, &fakeSpaces{})

	alive, err := ctrl.IsAlive(7, "")
	if err != nil || !alive {
		t.Errorf("id-only check should report alive, got %v, %v", alive, err)
	}
	alive, err = ctrl.IsAlive(7, "Notes")
	if err != nil || alive {
		t.Errorf("reused id with different title must not count as alive, got %v, %v", alive, err)
	}
}
