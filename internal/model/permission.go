package model

import "time"

// PermissionState is one snapshot of the two OS permission flags. The flags
// are nullable: a nil value means the check itself failed, and observers
// still receive the snapshot rather than waiting on stale data.
type PermissionState struct {
	ScreenRecording *bool     `yaml:"screen_recording" json:"screen_recording"`
	Accessibility   *bool     `yaml:"accessibility"    json:"accessibility"`
	Changed         bool      `yaml:"changed"          json:"changed"`
	Timestamp       time.Time `yaml:"timestamp"        json:"timestamp"`
}

// Equal compares the flag values of two snapshots, treating nil as distinct
// from both true and false.
func (s PermissionState) Equal(o PermissionState) bool {
	return boolPtrEqual(s.ScreenRecording, o.ScreenRecording) &&
		boolPtrEqual(s.Accessibility, o.Accessibility)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
