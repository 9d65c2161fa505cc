//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreGraphics -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreGraphics/CoreGraphics.h>

static int perm_ax_trusted(void) {
	return AXIsProcessTrusted() ? 1 : 0;
}

static int perm_screen_recording(void) {
	return CGPreflightScreenCaptureAccess() ? 1 : 0;
}
*/
import "C"

// Permissions implements platform.Permissions for macOS.
type Permissions struct{}

// NewPermissions creates the macOS permission checker.
func NewPermissions() *Permissions {
	return &Permissions{}
}

// AccessibilityTrusted reports the systemwide accessibility trust flag.
func (p *Permissions) AccessibilityTrusted() (bool, error) {
	return C.perm_ax_trusted() != 0, nil
}

// ScreenRecordingGranted reports the screen-recording permission flag
// without triggering a prompt.
func (p *Permissions) ScreenRecordingGranted() (bool, error) {
	return C.perm_screen_recording() != 0, nil
}
