// Package proctree discovers parent/child process relations and performs
// bottom-up termination. Every call rebuilds its view from a fresh process
// table snapshot; no tree is kept between calls.
package proctree

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/process"

	"winctl/internal/model"
	"winctl/internal/platform"
)

// Backend abstracts the OS process table and termination primitives.
type Backend interface {
	// Snapshot returns the full process table as (pid, ppid) pairs.
	// Inability to read the table at all is a hard error.
	Snapshot() ([]model.ProcessNode, error)

	// Exists probes whether a pid is currently live.
	Exists(pid int) (bool, error)

	// CooperativeTerminate asks the running-application registry to quit the
	// process. handled is false when the registry has no entry for the pid.
	CooperativeTerminate(pid int, force bool) (handled bool, err error)

	// Signal delivers the graceful (or, when force is set, the immediate)
	// termination signal directly.
	Signal(pid int, force bool) error
}

// Manager performs process discovery and termination over a Backend.
type Manager struct {
	backend Backend
	log     zerolog.Logger
}

// New creates a manager over the default OS backend.
func New(apps platform.AppController, log zerolog.Logger) *Manager {
	return &Manager{backend: &osBackend{apps: apps}, log: log}
}

// NewWithBackend creates a manager over a custom backend.
func NewWithBackend(backend Backend, log zerolog.Logger) *Manager {
	return &Manager{backend: backend, log: log}
}

// Children returns the direct children of pid from a fresh snapshot, one
// level only; callers recurse explicitly for grandchildren.
func (m *Manager) Children(pid int) ([]model.ProcessNode, error) {
	snapshot, err := m.backend.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to read process table: %w", err)
	}
	children := []model.ProcessNode{}
	for _, p := range snapshot {
		if p.PPID == pid {
			children = append(children, p)
		}
	}
	return children, nil
}

// Terminate ends a single process. A pid that no longer exists reports
// ProcessNotFound with OK=true: the goal state is already reached.
// Cooperative termination through the running-application registry is
// preferred; processes unknown to the registry get a signal directly.
func (m *Manager) Terminate(pid int, force bool) model.TerminateOutcome {
	outcome := model.TerminateOutcome{PID: pid, Forced: force}

	alive, err := m.backend.Exists(pid)
	if err != nil {
		outcome.Message = fmt.Sprintf("failed to probe pid %d: %v", pid, err)
		return outcome
	}
	if !alive {
		outcome.OK = true
		outcome.Reason = model.ReasonProcessNotFound
		outcome.Message = model.Fail(model.ReasonProcessNotFound).Message()
		return outcome
	}

	handled, err := m.backend.CooperativeTerminate(pid, force)
	if !handled {
		err = m.backend.Signal(pid, force)
	}
	if err != nil {
		var failure *model.Failure
		if errors.As(err, &failure) {
			outcome.Reason = failure.Reason
			outcome.Message = failure.Error()
		} else {
			outcome.Message = err.Error()
		}
		return outcome
	}
	outcome.OK = true
	return outcome
}

// TerminateTree terminates pid and all its descendants bottom-up: children
// before parents, each using the same routine and force flag. A failed child
// never aborts the remaining attempts; outcomes are aggregated and the
// overall result is a failure when any attempt failed.
func (m *Manager) TerminateTree(pid int, force bool) (model.TreeResult, error) {
	result := model.TreeResult{OK: true, Outcomes: []model.TerminateOutcome{}}
	visited := map[int]bool{}
	if err := m.terminateTree(pid, force, visited, &result); err != nil {
		return model.TreeResult{}, err
	}
	return result, nil
}

func (m *Manager) terminateTree(pid int, force bool, visited map[int]bool, result *model.TreeResult) error {
	if visited[pid] {
		return nil
	}
	visited[pid] = true

	children, err := m.Children(pid)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := m.terminateTree(child.PID, force, visited, result); err != nil {
			return err
		}
	}

	outcome := m.Terminate(pid, force)
	if !outcome.OK {
		result.OK = false
		m.log.Debug().Int("pid", pid).Str("message", outcome.Message).Msg("termination failed")
	}
	result.Outcomes = append(result.Outcomes, outcome)
	return nil
}

// osBackend reads the process table through gopsutil and terminates via the
// running-application registry when one exists, falling back to signals.
type osBackend struct {
	apps platform.AppController // nil on platforms without a registry
}

func (b *osBackend) Snapshot() ([]model.ProcessNode, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}
	nodes := make([]model.ProcessNode, 0, len(procs))
	for _, p := range procs {
		ppid, err := p.Ppid()
		if err != nil {
			// The process may have exited between enumeration and the ppid
			// read; skip it rather than failing the snapshot.
			continue
		}
		node := model.ProcessNode{PID: int(p.Pid), PPID: int(ppid)}
		if name, err := p.Name(); err == nil {
			node.Command = name
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (b *osBackend) Exists(pid int) (bool, error) {
	return process.PidExists(int32(pid))
}

func (b *osBackend) CooperativeTerminate(pid int, force bool) (bool, error) {
	if b.apps == nil {
		return false, nil
	}
	return b.apps.Terminate(pid, force)
}

func (b *osBackend) Signal(pid int, force bool) error {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return err
	}
	if force {
		return p.Kill()
	}
	return p.Terminate()
}
