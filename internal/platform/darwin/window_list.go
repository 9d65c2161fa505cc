//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices -framework Foundation
#include <stdlib.h>
#include <string.h>
#import <Foundation/Foundation.h>
#import <CoreGraphics/CoreGraphics.h>
#import <ApplicationServices/ApplicationServices.h>

typedef struct {
	int windowID;
	int pid;
	int layer;
	int x, y, width, height;
	int onScreen;
	int sharing;
	double alpha;
	long long memory;
	char *title;
	char *appName;
} CGWindowInfo;

static char *copyNSString(NSString *s) {
	if (!s) return strdup("");
	const char *utf8 = [s UTF8String];
	return strdup(utf8 ? utf8 : "");
}

// cg_list_windows snapshots the full window list, including windows on
// inactive Spaces. Returns 0 on success and fills a malloc'd array.
static int cg_list_windows(CGWindowInfo **outWindows, int *outCount) {
	@autoreleasepool {
		CFArrayRef info = CGWindowListCopyWindowInfo(
			kCGWindowListOptionAll | kCGWindowListExcludeDesktopElements,
			kCGNullWindowID);
		if (!info) return -1;

		NSArray *list = (__bridge NSArray *)info;
		CGWindowInfo *windows = calloc(list.count, sizeof(CGWindowInfo));
		int n = 0;
		for (NSDictionary *entry in list) {
			NSNumber *wid = entry[(__bridge NSString *)kCGWindowNumber];
			NSNumber *pid = entry[(__bridge NSString *)kCGWindowOwnerPID];
			if (!wid || !pid) continue;

			CGWindowInfo *w = &windows[n++];
			w->windowID = wid.intValue;
			w->pid = pid.intValue;
			w->layer = [entry[(__bridge NSString *)kCGWindowLayer] intValue];
			w->onScreen = [entry[(__bridge NSString *)kCGWindowIsOnscreen] boolValue] ? 1 : 0;
			w->sharing = [entry[(__bridge NSString *)kCGWindowSharingState] intValue];
			w->alpha = [entry[(__bridge NSString *)kCGWindowAlpha] doubleValue];
			w->memory = [entry[(__bridge NSString *)kCGWindowMemoryUsage] longLongValue];
			w->title = copyNSString(entry[(__bridge NSString *)kCGWindowName]);
			w->appName = copyNSString(entry[(__bridge NSString *)kCGWindowOwnerName]);

			CFDictionaryRef boundsDict = (__bridge CFDictionaryRef)entry[(__bridge NSString *)kCGWindowBounds];
			CGRect bounds = CGRectZero;
			if (boundsDict) CGRectMakeWithDictionaryRepresentation(boundsDict, &bounds);
			w->x = (int)bounds.origin.x;
			w->y = (int)bounds.origin.y;
			w->width = (int)bounds.size.width;
			w->height = (int)bounds.size.height;
		}
		CFRelease(info);
		*outWindows = windows;
		*outCount = n;
		return 0;
	}
}

static void cg_free_windows(CGWindowInfo *windows, int count) {
	for (int i = 0; i < count; i++) {
		free(windows[i].title);
		free(windows[i].appName);
	}
	free(windows);
}

typedef struct {
	int windowID;
	char *title;
	char *role;
	char *subrole;
} AXWindowTitle;

static char *copyAXString(AXUIElementRef el, CFStringRef attr) {
	CFTypeRef ref = NULL;
	if (AXUIElementCopyAttributeValue(el, attr, &ref) != kAXErrorSuccess || !ref) {
		return strdup("");
	}
	char *s = copyNSString((__bridge NSString *)ref);
	CFRelease(ref);
	return s;
}

// ax_list_window_titles reads window titles and roles for one pid through
// the accessibility tree, keyed by CGWindowID via _AXUIElementGetWindow.
extern AXError _AXUIElementGetWindow(AXUIElementRef element, CGWindowID *out);

static int ax_list_window_titles(pid_t pid, AXWindowTitle **outTitles, int *outCount) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	if (!app) return -1;

	CFTypeRef windowsRef = NULL;
	if (AXUIElementCopyAttributeValue(app, CFSTR("AXWindows"), &windowsRef) != kAXErrorSuccess || !windowsRef) {
		CFRelease(app);
		return -1;
	}

	CFArrayRef windows = (CFArrayRef)windowsRef;
	CFIndex count = CFArrayGetCount(windows);
	AXWindowTitle *titles = calloc(count, sizeof(AXWindowTitle));
	int n = 0;

	for (CFIndex i = 0; i < count; i++) {
		AXUIElementRef w = (AXUIElementRef)CFArrayGetValueAtIndex(windows, i);
		CGWindowID wid = 0;
		if (_AXUIElementGetWindow(w, &wid) != kAXErrorSuccess || wid == 0) continue;

		titles[n].windowID = (int)wid;
		titles[n].title = copyAXString(w, CFSTR("AXTitle"));
		titles[n].role = copyAXString(w, CFSTR("AXRole"));
		titles[n].subrole = copyAXString(w, CFSTR("AXSubrole"));
		n++;
	}

	CFRelease(windowsRef);
	CFRelease(app);
	*outTitles = titles;
	*outCount = n;
	return 0;
}

static void ax_free_window_titles(AXWindowTitle *titles, int count) {
	for (int i = 0; i < count; i++) {
		free(titles[i].title);
		free(titles[i].role);
		free(titles[i].subrole);
	}
	free(titles);
}
*/
import "C"
import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	"winctl/internal/model"
	"winctl/internal/platform"
)

// WindowLister implements platform.WindowLister via CGWindowListCopyWindowInfo.
type WindowLister struct{}

// NewWindowLister creates the macOS window lister.
func NewWindowLister() *WindowLister {
	return &WindowLister{}
}

// ListWindows returns the normalized window list. Empty CG titles are
// backfilled from the accessibility tree per pid, since many applications
// only publish titles there; the same pass fills the optional role and
// subrole fields.
func (l *WindowLister) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	var cWindows *C.CGWindowInfo
	var cCount C.int

	if C.cg_list_windows(&cWindows, &cCount) != 0 {
		return nil, fmt.Errorf("failed to enumerate windows")
	}
	defer C.cg_free_windows(cWindows, cCount)

	count := int(cCount)
	windows := []model.Window{}
	if count == 0 {
		return windows, nil
	}

	cSlice := unsafe.Slice(cWindows, count)
	for i := 0; i < count; i++ {
		cw := cSlice[i]
		pid := int(cw.pid)
		if opts.PID != 0 && pid != opts.PID {
			continue
		}
		windows = append(windows, model.Window{
			ID:          int(cw.windowID),
			Title:       C.GoString(cw.title),
			App:         C.GoString(cw.appName),
			PID:         pid,
			Bounds:      [4]int{int(cw.x), int(cw.y), int(cw.width), int(cw.height)},
			Layer:       int(cw.layer),
			OnScreen:    cw.onScreen != 0,
			Alpha:       float64(cw.alpha),
			MemoryBytes: int64(cw.memory),
			Sharing:     int(cw.sharing),
		})
	}

	l.backfillTitles(windows)

	if !opts.IncludeUntitled {
		kept := windows[:0]
		for _, w := range windows {
			if w.Title != "" {
				kept = append(kept, w)
			}
		}
		windows = kept
	}

	sort.Slice(windows, func(i, j int) bool {
		if windows[i].App != windows[j].App {
			return strings.ToLower(windows[i].App) < strings.ToLower(windows[j].App)
		}
		return windows[i].ID < windows[j].ID
	})
	return windows, nil
}

// backfillTitles fills empty titles and the role/subrole fields from the AX
// tree, querying each application only once.
func (l *WindowLister) backfillTitles(windows []model.Window) {
	pidsNeedingTitles := make(map[int]bool)
	for _, w := range windows {
		if w.Title == "" && w.Layer == 0 {
			pidsNeedingTitles[w.PID] = true
		}
	}
	if len(pidsNeedingTitles) == 0 {
		return
	}

	type axInfo struct {
		title, role, subrole string
	}
	axWindows := make(map[int]axInfo)
	for pid := range pidsNeedingTitles {
		var cTitles *C.AXWindowTitle
		var cCount C.int
		if C.ax_list_window_titles(C.pid_t(pid), &cTitles, &cCount) != 0 {
			continue
		}
		tSlice := unsafe.Slice(cTitles, int(cCount))
		for j := 0; j < int(cCount); j++ {
			axWindows[int(tSlice[j].windowID)] = axInfo{
				title:   C.GoString(tSlice[j].title),
				role:    C.GoString(tSlice[j].role),
				subrole: C.GoString(tSlice[j].subrole),
			}
		}
		C.ax_free_window_titles(cTitles, cCount)
	}

	for i := range windows {
		info, ok := axWindows[windows[i].ID]
		if !ok {
			continue
		}
		if windows[i].Title == "" {
			windows[i].Title = info.title
		}
		windows[i].Role = info.role
		windows[i].Subrole = info.subrole
	}
}
