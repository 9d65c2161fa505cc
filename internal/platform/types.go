package platform

// ListOptions controls window enumeration.
type ListOptions struct {
	// IncludeUntitled keeps windows with empty titles (helper windows,
	// overlays). The default drops them, which is what callers driving
	// close/focus almost always want.
	IncludeUntitled bool

	// PID restricts enumeration to one process (0 = all).
	PID int
}
