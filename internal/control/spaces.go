package control

import (
	"time"

	"github.com/rs/zerolog"

	"winctl/internal/model"
	"winctl/internal/platform"
)

const (
	// The Space switch is asynchronous on the OS side; resolution is polled
	// in short steps bounded by a deadline of about one second.
	spacePollInterval = 100 * time.Millisecond
	spacePollDeadline = 1 * time.Second
)

// SpaceSwitcher activates the Space owning a target window and restores the
// previously active Space when the caller is done. The private entry points
// it depends on are probed at call time; their absence is an ordinary typed
// failure, never a crash.
type SpaceSwitcher struct {
	spaces platform.SpaceManager
	log    zerolog.Logger

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// NewSpaceSwitcher creates a switcher over the given Space manager.
func NewSpaceSwitcher(spaces platform.SpaceManager, log zerolog.Logger) *SpaceSwitcher {
	return &SpaceSwitcher{spaces: spaces, log: log, sleep: time.Sleep}
}

// ActivateFor switches to the Space containing win and polls until
// resolvable reports true or the deadline passes. It always returns a
// restore function (possibly a no-op) that the caller must invoke on every
// exit path, including after a failed action; restoration failures are
// logged but never override the primary result.
func (s *SpaceSwitcher) ActivateFor(win model.Window, resolvable func() bool) (restore func(), err error) {
	restore = func() {}

	target, err := s.spaces.SpaceForWindow(win.ID)
	if err != nil {
		return restore, err
	}
	display, err := s.spaces.DisplayForBounds(win.Bounds)
	if err != nil {
		return restore, err
	}
	current, err := s.spaces.CurrentSpace(display)
	if err != nil {
		return restore, err
	}

	if current != target {
		if err := s.spaces.SwitchToSpace(display, target); err != nil {
			return restore, err
		}
		restore = func() {
			if rerr := s.spaces.SwitchToSpace(display, current); rerr != nil {
				s.log.Warn().
					Err(rerr).
					Str("display", display).
					Uint64("space", current).
					Msg("failed to restore previously active Space")
			}
		}
	}

	attempts := int(spacePollDeadline / spacePollInterval)
	for i := 0; i < attempts; i++ {
		if resolvable() {
			return restore, nil
		}
		s.sleep(spacePollInterval)
	}
	// Deadline passed. Hand control back anyway; the caller re-runs
	// resolution once and reports its own failure.
	return restore, nil
}
