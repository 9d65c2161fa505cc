package model

// Window represents a single on-screen window as reported by the OS.
//
// ID is only a live identifier: the OS may reassign it after the window
// closes, so identity checks that need certainty must also compare Title.
type Window struct {
	ID       int    `yaml:"id"        json:"id"`
	Title    string `yaml:"title"     json:"title"`
	App      string `yaml:"app"       json:"app"`
	PID      int    `yaml:"pid"       json:"pid"`
	Bounds   [4]int `yaml:"bounds"    json:"bounds"` // [x, y, width, height]
	Layer    int    `yaml:"layer"     json:"layer"`
	OnScreen bool   `yaml:"on_screen" json:"on_screen"`

	// Accessibility-derived semantic class, when available.
	Role    string `yaml:"role,omitempty"    json:"role,omitempty"`
	Subrole string `yaml:"subrole,omitempty" json:"subrole,omitempty"`

	// Diagnostic fields.
	Alpha       float64 `yaml:"alpha,omitempty"        json:"alpha,omitempty"`
	MemoryBytes int64   `yaml:"memory_bytes,omitempty" json:"memory_bytes,omitempty"`
	Sharing     int     `yaml:"sharing,omitempty"      json:"sharing,omitempty"`
}

// Matches reports whether w is the same window the caller saw earlier.
// With an empty expected title only the ID is compared, which is unsafe
// across window closure; pass the title the caller recorded to rule out
// ID reuse.
func (w Window) Matches(id int, expectedTitle string) bool {
	if w.ID != id {
		return false
	}
	if expectedTitle == "" {
		return true
	}
	return w.Title == expectedTitle
}
