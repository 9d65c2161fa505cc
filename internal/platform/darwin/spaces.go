//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework Foundation
#include <stdlib.h>
#include <dlfcn.h>
#import <Foundation/Foundation.h>
#import <CoreGraphics/CoreGraphics.h>

// Private SkyLight entry points (the same set Moom/Magnet/Raycast rely on).
// They are undocumented and can vanish between OS versions, so each one is
// resolved with dlsym at call time; a missing symbol is an ordinary failure.
typedef int CGSConnectionID;
typedef unsigned long long CGSSpaceID;
#define CGSAllSpacesMask 7

typedef CGSConnectionID (*cgs_main_connection_fn)(void);
typedef CFArrayRef (*cgs_copy_spaces_fn)(CGSConnectionID, int, CFArrayRef);
typedef CFStringRef (*cgs_best_display_fn)(CGSConnectionID, CGRect);
typedef CGSSpaceID (*cgs_get_space_fn)(CGSConnectionID, CFStringRef);
typedef CGError (*cgs_set_space_fn)(CGSConnectionID, CFStringRef, CGSSpaceID);

static void *cgs_lookup(const char *name) {
	return dlsym(RTLD_DEFAULT, name);
}

static char *cgs_copyCString(CFStringRef s) {
	if (!s) return NULL;
	CFIndex len = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
	char *buf = malloc(len);
	if (!buf || !CFStringGetCString(s, buf, len, kCFStringEncodingUTF8)) {
		free(buf);
		return NULL;
	}
	return buf;
}

// cgs_probe reports whether every required entry point is present.
static int cgs_probe(void) {
	return cgs_lookup("CGSMainConnectionID") &&
	       cgs_lookup("CGSCopySpacesForWindows") &&
	       cgs_lookup("CGSCopyBestManagedDisplayForRect") &&
	       cgs_lookup("CGSManagedDisplayGetCurrentSpace") &&
	       cgs_lookup("CGSManagedDisplaySetCurrentSpace") ? 1 : 0;
}

// cgs_space_for_window returns the Space owning windowID, or 0.
static unsigned long long cgs_space_for_window(int windowID) {
	cgs_main_connection_fn mainConn = (cgs_main_connection_fn)cgs_lookup("CGSMainConnectionID");
	cgs_copy_spaces_fn copySpaces = (cgs_copy_spaces_fn)cgs_lookup("CGSCopySpacesForWindows");
	if (!mainConn || !copySpaces) return 0;

	@autoreleasepool {
		CGSConnectionID conn = mainConn();
		CFArrayRef spaces = copySpaces(conn, CGSAllSpacesMask, (__bridge CFArrayRef)@[@(windowID)]);
		if (!spaces) return 0;
		CGSSpaceID space = 0;
		if (CFArrayGetCount(spaces) > 0) {
			space = [(NSNumber *)CFArrayGetValueAtIndex(spaces, 0) unsignedLongLongValue];
		}
		CFRelease(spaces);
		return space;
	}
}

// cgs_display_for_rect returns the managed display hosting rect as a
// malloc'd UUID string, or NULL.
static char *cgs_display_for_rect(int x, int y, int w, int h) {
	cgs_main_connection_fn mainConn = (cgs_main_connection_fn)cgs_lookup("CGSMainConnectionID");
	cgs_best_display_fn bestDisplay = (cgs_best_display_fn)cgs_lookup("CGSCopyBestManagedDisplayForRect");
	if (!mainConn || !bestDisplay) return NULL;

	@autoreleasepool {
		CFStringRef display = bestDisplay(mainConn(), CGRectMake(x, y, w, h));
		if (!display) return NULL;
		char *result = cgs_copyCString(display);
		CFRelease(display);
		return result;
	}
}

// cgs_current_space returns the active Space on the given display, or 0.
static unsigned long long cgs_current_space(const char *displayUUID) {
	cgs_main_connection_fn mainConn = (cgs_main_connection_fn)cgs_lookup("CGSMainConnectionID");
	cgs_get_space_fn getSpace = (cgs_get_space_fn)cgs_lookup("CGSManagedDisplayGetCurrentSpace");
	if (!mainConn || !getSpace) return 0;

	CFStringRef display = CFStringCreateWithCString(NULL, displayUUID, kCFStringEncodingUTF8);
	if (!display) return 0;
	CGSSpaceID space = getSpace(mainConn(), display);
	CFRelease(display);
	return space;
}

// cgs_switch_space makes space the active Space on display.
static int cgs_switch_space(const char *displayUUID, unsigned long long space) {
	cgs_main_connection_fn mainConn = (cgs_main_connection_fn)cgs_lookup("CGSMainConnectionID");
	cgs_set_space_fn setSpace = (cgs_set_space_fn)cgs_lookup("CGSManagedDisplaySetCurrentSpace");
	if (!mainConn || !setSpace) return -1;

	CFStringRef display = CFStringCreateWithCString(NULL, displayUUID, kCFStringEncodingUTF8);
	if (!display) return -1;
	CGError err = setSpace(mainConn(), display, space);
	CFRelease(display);
	return err == kCGErrorSuccess ? 0 : -1;
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"winctl/internal/model"
)

// SpaceManager implements platform.SpaceManager over the private CGS API.
type SpaceManager struct{}

// NewSpaceManager creates the macOS Space manager.
func NewSpaceManager() *SpaceManager {
	return &SpaceManager{}
}

// Available probes the required private entry points.
func (s *SpaceManager) Available() error {
	if C.cgs_probe() == 0 {
		return model.Fail(model.ReasonSpaceSwitchUnavailable)
	}
	return nil
}

// SpaceForWindow resolves the Space owning windowID.
func (s *SpaceManager) SpaceForWindow(windowID int) (uint64, error) {
	if err := s.Available(); err != nil {
		return 0, err
	}
	space := uint64(C.cgs_space_for_window(C.int(windowID)))
	if space == 0 {
		return 0, fmt.Errorf("no Space found for window %d", windowID)
	}
	return space, nil
}

// DisplayForBounds resolves the physical display hosting the given bounds.
func (s *SpaceManager) DisplayForBounds(bounds [4]int) (string, error) {
	if err := s.Available(); err != nil {
		return "", err
	}
	cDisplay := C.cgs_display_for_rect(C.int(bounds[0]), C.int(bounds[1]), C.int(bounds[2]), C.int(bounds[3]))
	if cDisplay == nil {
		return "", fmt.Errorf("no display found for bounds %v", bounds)
	}
	defer C.free(unsafe.Pointer(cDisplay))
	return C.GoString(cDisplay), nil
}

// CurrentSpace returns the active Space on the given display.
func (s *SpaceManager) CurrentSpace(display string) (uint64, error) {
	if err := s.Available(); err != nil {
		return 0, err
	}
	cDisplay := C.CString(display)
	defer C.free(unsafe.Pointer(cDisplay))
	space := uint64(C.cgs_current_space(cDisplay))
	if space == 0 {
		return 0, fmt.Errorf("no active Space on display %s", display)
	}
	return space, nil
}

// SwitchToSpace makes space the active Space on display. The switch is
// asynchronous on the OS side; callers poll for the effect.
func (s *SpaceManager) SwitchToSpace(display string, space uint64) error {
	if err := s.Available(); err != nil {
		return err
	}
	cDisplay := C.CString(display)
	defer C.free(unsafe.Pointer(cDisplay))
	if C.cgs_switch_space(cDisplay, C.ulonglong(space)) != 0 {
		return fmt.Errorf("switching display %s to Space %d was refused", display, space)
	}
	return nil
}
