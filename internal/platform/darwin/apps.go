//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>

// ns_activate_app brings the application with the given pid to the front.
static int ns_activate_app(pid_t pid) {
	@autoreleasepool {
		NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
		if (!app) return -1;
#pragma clang diagnostic push
#pragma clang diagnostic ignored "-Wdeprecated-declarations"
		return [app activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 0 : -1;
#pragma clang diagnostic pop
	}
}

// ns_terminate_app asks the running application to quit. Returns 1 when the
// request was delivered, 0 when the registry has no handle for the pid, and
// -1 when the request was refused.
static int ns_terminate_app(pid_t pid, int force) {
	@autoreleasepool {
		NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
		if (!app) return 0;
		BOOL ok = force ? [app forceTerminate] : [app terminate];
		return ok ? 1 : -1;
	}
}
*/
import "C"
import "fmt"

// AppController implements platform.AppController over NSRunningApplication.
type AppController struct{}

// NewAppController creates the macOS running-application controller.
func NewAppController() *AppController {
	return &AppController{}
}

// Activate brings the application with the given pid to the foreground.
func (c *AppController) Activate(pid int) error {
	if C.ns_activate_app(C.pid_t(pid)) != 0 {
		return fmt.Errorf("failed to activate application with pid %d", pid)
	}
	return nil
}

// Terminate asks the application to quit cooperatively, or forcibly when
// force is set. Returns handled=false when the registry has no entry for
// the pid; the caller then falls back to signals.
func (c *AppController) Terminate(pid int, force bool) (bool, error) {
	cForce := C.int(0)
	if force {
		cForce = 1
	}
	switch C.ns_terminate_app(C.pid_t(pid), cForce) {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return true, fmt.Errorf("application with pid %d refused the terminate request", pid)
	}
}
