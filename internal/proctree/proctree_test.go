package proctree

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"winctl/internal/model"
)

// fakeBackend serves a fixed process table and records termination order.
type fakeBackend struct {
	table       []model.ProcessNode
	dead        map[int]bool
	signalErrs  map[int]error
	cooperative map[int]bool

	signaled         []int
	cooperativeCalls []int
}

func (f *fakeBackend) Snapshot() ([]model.ProcessNode, error) {
	return f.table, nil
}

func (f *fakeBackend) Exists(pid int) (bool, error) {
	return !f.dead[pid], nil
}

func (f *fakeBackend) CooperativeTerminate(pid int, force bool) (bool, error) {
	if f.cooperative[pid] {
		f.cooperativeCalls = append(f.cooperativeCalls, pid)
		return true, nil
	}
	return false, nil
}

func (f *fakeBackend) Signal(pid int, force bool) error {
	f.signaled = append(f.signaled, pid)
	return f.signalErrs[pid]
}

// Tree used throughout: 1 -> {10, 20}, 10 -> {100}.
func newTestBackend() *fakeBackend {
	return &fakeBackend{
		table: []model.ProcessNode{
			{PID: 1, PPID: 0, Command: "root"},
			{PID: 10, PPID: 1, Command: "child-a"},
			{PID: 20, PPID: 1, Command: "child-b"},
			{PID: 100, PPID: 10, Command: "grandchild"},
		},
		dead:        map[int]bool{},
		signalErrs:  map[int]error{},
		cooperative: map[int]bool{},
	}
}

func indexOf(pids []int, pid int) int {
	for i, p := range pids {
		if p == pid {
			return i
		}
	}
	return -1
}

func TestChildren_OneLevelOnly(t *testing.T) {
	m := NewWithBackend(newTestBackend(), zerolog.Nop())

	children, err := m.Children(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 direct children, got %v", children)
	}
	for _, c := range children {
		if c.PID == 100 {
			t.Error("grandchild must not appear in direct children")
		}
	}
}

func TestTerminateTree_BottomUpOrder(t *testing.T) {
	backend := newTestBackend()
	m := NewWithBackend(backend, zerolog.Nop())

	result, err := m.TerminateTree(1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK || len(result.Outcomes) != 4 {
		t.Fatalf("expected 4 successful outcomes, got %+v", result)
	}

	order := backend.signaled
	if indexOf(order, 100) > indexOf(order, 10) {
		t.Errorf("grandchild must be terminated before its parent, got %v", order)
	}
	if indexOf(order, 10) > indexOf(order, 1) || indexOf(order, 20) > indexOf(order, 1) {
		t.Errorf("children must be terminated before the root, got %v", order)
	}
}

func TestTerminateTree_ChildFailureDoesNotAbort(t *testing.T) {
	backend := newTestBackend()
	backend.signalErrs[100] = errors.New("operation not permitted")
	m := NewWithBackend(backend, zerolog.Nop())

	result, err := m.TerminateTree(1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK {
		t.Error("a failed child must fail the aggregate result")
	}
	if len(result.Outcomes) != 4 {
		t.Fatalf("remaining processes must still be attempted, got %d outcomes", len(result.Outcomes))
	}
	if indexOf(backend.signaled, 1) == -1 {
		t.Error("root termination must still be attempted after a child failure")
	}

	failed := 0
	for _, o := range result.Outcomes {
		if !o.OK {
			failed++
			if o.PID != 100 {
				t.Errorf("unexpected failed pid %d", o.PID)
			}
		}
	}
	if failed != 1 {
		t.Errorf("expected exactly one failed outcome, got %d", failed)
	}
}

func TestTerminate_DeadProcessIsSuccess(t *testing.T) {
	backend := newTestBackend()
	backend.dead[20] = true
	m := NewWithBackend(backend, zerolog.Nop())

	outcome := m.Terminate(20, false)
	if !outcome.OK || outcome.Reason != model.ReasonProcessNotFound {
		t.Errorf("dead process must report OK with process_not_found, got %+v", outcome)
	}
	if len(backend.signaled) != 0 {
		t.Errorf("no signal should be sent to a dead process, got %v", backend.signaled)
	}
}

func TestTerminate_PrefersCooperativeTermination(t *testing.T) {
	backend := newTestBackend()
	backend.cooperative[10] = true
	m := NewWithBackend(backend, zerolog.Nop())

	outcome := m.Terminate(10, false)
	if !outcome.OK {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if len(backend.cooperativeCalls) != 1 || backend.cooperativeCalls[0] != 10 {
		t.Errorf("expected one cooperative call for pid 10, got %v", backend.cooperativeCalls)
	}
	if len(backend.signaled) != 0 {
		t.Errorf("no signal fallback expected when the registry handled the pid, got %v", backend.signaled)
	}
}

func TestTerminateTree_CycleInTableTerminates(t *testing.T) {
	backend := newTestBackend()
	// Corrupt snapshot: the root claims its own grandchild as parent.
	backend.table[0].PPID = 100
	m := NewWithBackend(backend, zerolog.Nop())

	result, err := m.TerminateTree(1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, pid := range []int{1, 10, 20, 100} {
		count := 0
		for _, o := range result.Outcomes {
			if o.PID == pid {
				count++
			}
		}
		if count != 1 {
			t.Errorf("pid %d terminated %d times, want exactly once", pid, count)
		}
	}
}
