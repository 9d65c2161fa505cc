// Package watcher polls the two OS permission flags on a single serial
// timer and emits snapshots to an observer callback. One watcher instance
// owns its previous snapshot; there are no package-level globals.
package watcher

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"winctl/internal/model"
	"winctl/internal/platform"
)

// Ticker abstracts time.Ticker so tests can drive ticks deterministically.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) Chan() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()                  { r.t.Stop() }

// Watcher polls permission state with an explicit start/stop lifecycle.
// Starting while already running cancels and replaces the existing timer;
// Stop is idempotent. A tick always completes (checks plus emit) before the
// next is scheduled.
type Watcher struct {
	perms platform.Permissions
	log   zerolog.Logger

	now       func() time.Time
	newTicker func(time.Duration) Ticker

	mu   sync.Mutex
	stop chan struct{}
	prev *model.PermissionState
}

// New creates a stopped watcher.
func New(perms platform.Permissions, log zerolog.Logger) *Watcher {
	return &Watcher{
		perms:     perms,
		log:       log,
		now:       time.Now,
		newTicker: func(d time.Duration) Ticker { return realTicker{time.NewTicker(d)} },
	}
}

// Start begins polling every interval, invoking emit per policy: always on
// the first tick, thereafter on every tick, or only when the flags changed
// when emitOnlyChanges is set. A prior Start is cancelled first so exactly
// one timer runs.
func (w *Watcher) Start(interval time.Duration, emitOnlyChanges bool, emit func(model.PermissionState)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()
	w.prev = nil

	stop := make(chan struct{})
	w.stop = stop
	tk := w.newTicker(interval)
	go w.loop(tk, stop, emitOnlyChanges, emit)
}

// Stop cancels the running timer. Safe to call repeatedly or when never
// started.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
}

func (w *Watcher) stopLocked() {
	if w.stop != nil {
		close(w.stop)
		w.stop = nil
	}
}

func (w *Watcher) loop(tk Ticker, stop chan struct{}, emitOnlyChanges bool, emit func(model.PermissionState)) {
	defer tk.Stop()

	first := true
	for {
		select {
		case <-stop:
			return
		case <-tk.Chan():
			state := w.check()
			// The first emission after start always fires so observers are
			// never stuck waiting for a change that already happened.
			if first || !emitOnlyChanges || state.Changed {
				emit(state)
			}
			first = false
		}
	}
}

// check reads both flags and computes Changed against the prior snapshot.
// A nil prior state counts as changed. An unexpected check error still
// produces a snapshot (both flags nil, changed) rather than silently
// skipping the tick.
func (w *Watcher) check() model.PermissionState {
	state := model.PermissionState{Timestamp: w.now()}

	ax, axErr := w.perms.AccessibilityTrusted()
	sr, srErr := w.perms.ScreenRecordingGranted()
	if axErr != nil || srErr != nil {
		state.Changed = true
		w.log.Warn().AnErr("accessibility", axErr).AnErr("screen_recording", srErr).
			Msg("permission check failed")
	} else {
		state.Accessibility = &ax
		state.ScreenRecording = &sr

		w.mu.Lock()
		state.Changed = w.prev == nil || !state.Equal(*w.prev)
		w.mu.Unlock()
	}

	w.mu.Lock()
	prev := state
	w.prev = &prev
	w.mu.Unlock()

	return state
}
