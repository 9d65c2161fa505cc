//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <stdlib.h>
#include <string.h>
#import <Foundation/Foundation.h>
#import <ApplicationServices/ApplicationServices.h>

static int ax_is_trusted(void) {
	return AXIsProcessTrusted() ? 1 : 0;
}

typedef struct {
	AXUIElementRef element; // retained; caller must release
	char *title;
} AXWindowEntry;

static char *ax_copyCString(CFStringRef s) {
	if (!s) return strdup("");
	CFIndex len = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
	char *buf = malloc(len);
	if (!buf || !CFStringGetCString(s, buf, len, kCFStringEncodingUTF8)) {
		free(buf);
		return strdup("");
	}
	return buf;
}

// ax_copy_windows returns the application's window elements with their
// titles. Every element is retained; release via ax_free_entries.
static int ax_copy_windows(pid_t pid, AXWindowEntry **outEntries, int *outCount) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	if (!app) return -1;

	CFTypeRef windowsRef = NULL;
	AXError err = AXUIElementCopyAttributeValue(app, CFSTR("AXWindows"), &windowsRef);
	CFRelease(app);
	if (err != kAXErrorSuccess || !windowsRef) return -1;

	CFArrayRef windows = (CFArrayRef)windowsRef;
	CFIndex count = CFArrayGetCount(windows);
	AXWindowEntry *entries = calloc(count, sizeof(AXWindowEntry));
	for (CFIndex i = 0; i < count; i++) {
		AXUIElementRef w = (AXUIElementRef)CFArrayGetValueAtIndex(windows, i);
		CFRetain(w);
		entries[i].element = w;

		CFTypeRef titleRef = NULL;
		if (AXUIElementCopyAttributeValue(w, CFSTR("AXTitle"), &titleRef) == kAXErrorSuccess && titleRef) {
			entries[i].title = ax_copyCString((CFStringRef)titleRef);
			CFRelease(titleRef);
		} else {
			entries[i].title = strdup("");
		}
	}

	CFRelease(windowsRef);
	*outEntries = entries;
	*outCount = (int)count;
	return 0;
}

static void ax_free_entries(AXWindowEntry *entries, int count) {
	for (int i = 0; i < count; i++) {
		if (entries[i].element) CFRelease(entries[i].element);
		free(entries[i].title);
	}
	free(entries);
}

static void ax_retain(AXUIElementRef el) { CFRetain(el); }
static void ax_release(AXUIElementRef el) { CFRelease(el); }

// ax_find_close_button searches children for a button whose subrole or
// description marks it as the close control. Depth is bounded because the
// tree shape is untrusted.
static AXUIElementRef ax_find_close_button(AXUIElementRef element, int depth) {
	if (depth > 3) return NULL;

	CFTypeRef childrenRef = NULL;
	if (AXUIElementCopyAttributeValue(element, CFSTR("AXChildren"), &childrenRef) != kAXErrorSuccess || !childrenRef) {
		return NULL;
	}

	CFArrayRef children = (CFArrayRef)childrenRef;
	CFIndex count = CFArrayGetCount(children);
	AXUIElementRef found = NULL;

	for (CFIndex i = 0; i < count && !found; i++) {
		AXUIElementRef child = (AXUIElementRef)CFArrayGetValueAtIndex(children, i);

		CFTypeRef roleRef = NULL;
		if (AXUIElementCopyAttributeValue(child, CFSTR("AXRole"), &roleRef) == kAXErrorSuccess && roleRef) {
			if (CFStringCompare((CFStringRef)roleRef, CFSTR("AXButton"), 0) == kCFCompareEqualTo) {
				CFTypeRef subroleRef = NULL;
				if (AXUIElementCopyAttributeValue(child, CFSTR("AXSubrole"), &subroleRef) == kAXErrorSuccess && subroleRef) {
					if (CFStringCompare((CFStringRef)subroleRef, CFSTR("AXCloseButton"), 0) == kCFCompareEqualTo) {
						CFRetain(child);
						found = child;
					}
					CFRelease(subroleRef);
				}
				if (!found) {
					CFTypeRef descRef = NULL;
					if (AXUIElementCopyAttributeValue(child, CFSTR("AXDescription"), &descRef) == kAXErrorSuccess && descRef) {
						CFRange r = CFStringFind((CFStringRef)descRef, CFSTR("close"), kCFCompareCaseInsensitive);
						if (r.location != kCFNotFound) {
							CFRetain(child);
							found = child;
						}
						CFRelease(descRef);
					}
				}
			}
			CFRelease(roleRef);
		}

		if (!found) found = ax_find_close_button(child, depth + 1);
	}

	CFRelease(childrenRef);
	return found;
}

// ax_close_window presses the window's close control.
// Returns 0 on success, 1 when no close button exists, 2 when the press
// action was refused.
static int ax_close_window(AXUIElementRef window) {
	AXUIElementRef button = NULL;
	CFTypeRef ref = NULL;
	if (AXUIElementCopyAttributeValue(window, CFSTR("AXCloseButton"), &ref) == kAXErrorSuccess && ref) {
		button = (AXUIElementRef)ref;
	}
	if (!button) button = ax_find_close_button(window, 0);
	if (!button) return 1;

	AXError err = AXUIElementPerformAction(button, CFSTR("AXPress"));
	CFRelease(button);
	return err == kAXErrorSuccess ? 0 : 2;
}

static int ax_set_main(AXUIElementRef window) {
	return AXUIElementSetAttributeValue(window, CFSTR("AXMain"), kCFBooleanTrue) == kAXErrorSuccess ? 0 : -1;
}

static int ax_raise(AXUIElementRef window) {
	return AXUIElementPerformAction(window, CFSTR("AXRaise")) == kAXErrorSuccess ? 0 : -1;
}
*/
import "C"
import (
	"fmt"
	"strings"
	"unsafe"

	"winctl/internal/model"
	"winctl/internal/platform"
)

// Accessibility implements platform.Accessibility for macOS.
type Accessibility struct{}

// NewAccessibility creates the macOS accessibility backend.
func NewAccessibility() *Accessibility {
	return &Accessibility{}
}

// Trusted reports whether the process holds accessibility permission.
func (a *Accessibility) Trusted() bool {
	return C.ax_is_trusted() != 0
}

// ResolveWindow resolves a window element for pid. Matching order: exact
// title, then substring; an empty requested title accepts the first
// element. Handles are per-call; callers must Release them.
func (a *Accessibility) ResolveWindow(pid int, title string) (platform.WindowElement, error) {
	var cEntries *C.AXWindowEntry
	var cCount C.int
	if C.ax_copy_windows(C.pid_t(pid), &cEntries, &cCount) != 0 {
		// The app has no AX window list at all. Treat like no match: the
		// orchestrator decides whether a Space switch can surface it.
		return nil, platform.ErrNotResolved
	}
	defer C.ax_free_entries(cEntries, cCount)

	count := int(cCount)
	if count == 0 {
		return nil, platform.ErrNotResolved
	}
	entries := unsafe.Slice(cEntries, count)

	pick := -1
	if title == "" {
		pick = 0
	} else {
		for i := 0; i < count; i++ {
			if C.GoString(entries[i].title) == title {
				pick = i
				break
			}
		}
		if pick < 0 {
			lower := strings.ToLower(title)
			for i := 0; i < count; i++ {
				if strings.Contains(strings.ToLower(C.GoString(entries[i].title)), lower) {
					pick = i
					break
				}
			}
		}
	}
	if pick < 0 {
		return nil, platform.ErrNotResolved
	}

	el := entries[pick].element
	C.ax_retain(el)
	return &axElement{ref: el}, nil
}

// axElement is a retained AXUIElementRef for one window.
type axElement struct {
	ref C.AXUIElementRef
}

func (e *axElement) Close() error {
	switch C.ax_close_window(e.ref) {
	case 0:
		return nil
	case 1:
		return model.Fail(model.ReasonCloseButtonNotFound)
	default:
		return model.Fail(model.ReasonCloseActionFailed)
	}
}

func (e *axElement) SetMain() error {
	if C.ax_set_main(e.ref) != 0 {
		return fmt.Errorf("setting AXMain was refused")
	}
	return nil
}

func (e *axElement) Raise() error {
	if C.ax_raise(e.ref) != 0 {
		return fmt.Errorf("AXRaise was refused")
	}
	return nil
}

func (e *axElement) Release() {
	if e.ref != nil {
		C.ax_release(e.ref)
		e.ref = nil
	}
}
