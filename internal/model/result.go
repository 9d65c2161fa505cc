package model

import "fmt"

// Reason identifies an expected, recoverable failure state. Callers branch
// on the reason; each reason carries one fixed human-readable message and,
// where applicable, a suggested remedy.
type Reason string

const (
	ReasonAccessibilityDenied    Reason = "accessibility_permission_denied"
	ReasonScreenRecordingDenied  Reason = "screen_recording_permission_denied"
	ReasonWindowNotFound         Reason = "window_not_found"
	ReasonWindowNotAccessible    Reason = "window_not_accessible"
	ReasonCloseButtonNotFound    Reason = "close_button_not_found"
	ReasonCloseActionFailed      Reason = "close_action_failed"
	ReasonFocusFailed            Reason = "focus_failed"
	ReasonProcessNotFound        Reason = "process_not_found"
	ReasonSpaceSwitchUnavailable Reason = "space_switch_unavailable"
)

var reasonMessages = map[Reason]struct{ message, remedy string }{
	ReasonAccessibilityDenied: {
		"accessibility permission is not granted",
		"grant access in System Settings > Privacy & Security > Accessibility, then restart the terminal",
	},
	ReasonScreenRecordingDenied: {
		"screen recording permission is not granted",
		"grant access in System Settings > Privacy & Security > Screen Recording, then restart the terminal",
	},
	ReasonWindowNotFound: {
		"no window matches the given identifier",
		"run `winctl list` to see current windows",
	},
	ReasonWindowNotAccessible: {
		"the window could not be resolved through the accessibility tree",
		"the owning application may not expose its windows to accessibility clients",
	},
	ReasonCloseButtonNotFound: {
		"the window has no discoverable close button",
		"",
	},
	ReasonCloseActionFailed: {
		"pressing the close button was refused by the application",
		"",
	},
	ReasonFocusFailed: {
		"the window rejected both the raise action and the main-window attribute",
		"",
	},
	ReasonProcessNotFound: {
		"no process exists with the given pid",
		"",
	},
	ReasonSpaceSwitchUnavailable: {
		"the private Space-switching API is not available on this OS version",
		"",
	},
}

// Failure is a typed, expected failure state. It implements error so it can
// travel through ordinary error returns; callers unwrap it with errors.As
// and branch on Reason. Unexpected conditions use plain errors instead.
type Failure struct {
	Reason Reason
	Detail string
}

// Fail returns a Failure for the given reason.
func Fail(reason Reason) *Failure {
	return &Failure{Reason: reason}
}

// Failf returns a Failure with additional formatted detail.
func Failf(reason Reason, format string, args ...interface{}) *Failure {
	return &Failure{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func (f *Failure) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("%s: %s", f.Message(), f.Detail)
	}
	return f.Message()
}

// Message returns the fixed human-readable message for the reason.
func (f *Failure) Message() string {
	if m, ok := reasonMessages[f.Reason]; ok {
		return m.message
	}
	return string(f.Reason)
}

// Remedy returns the suggested remedy for the reason, or "" when none applies.
func (f *Failure) Remedy() string {
	if m, ok := reasonMessages[f.Reason]; ok {
		return m.remedy
	}
	return ""
}

// ActionResult is the tagged outcome of a close or focus request. Never a
// bare boolean: a failed action still reports why, so callers can tell
// "already achieved" from "permission missing" from "unsupported".
type ActionResult struct {
	OK       bool   `yaml:"ok"                 json:"ok"`
	Action   string `yaml:"action"             json:"action"`
	WindowID int    `yaml:"window_id,omitempty" json:"window_id,omitempty"`
	Title    string `yaml:"title,omitempty"    json:"title,omitempty"`
	Reason   Reason `yaml:"reason,omitempty"   json:"reason,omitempty"`
	Message  string `yaml:"message,omitempty"  json:"message,omitempty"`
	Remedy   string `yaml:"remedy,omitempty"   json:"remedy,omitempty"`
}
