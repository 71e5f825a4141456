package task

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/demon/internal/event/dispatch"
)

// entry is a scheduled task plus its bookkeeping.
type entry struct {
	task    Task
	seq     uint64
	wait    int
	removed bool
}

// Manager schedules named per-frame hooks.
type Manager struct {
	mu sync.Mutex

	// Tasks in insertion order.
	tasks []*entry

	// Tasks by name.
	byName map[string]*entry

	seq     uint64
	exec    *dispatch.Executor
	logger  zerolog.Logger
	metrics *Metrics
}

// NewManager creates an empty task manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		byName: make(map[string]*entry),
		exec:   dispatch.NewExecutor(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add schedules t. It fails with ErrDuplicateTask if a task with the same
// name is registered.
func (m *Manager) Add(t Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byName[t.Name]; exists {
		return fmt.Errorf("task %q: %w", t.Name, ErrDuplicateTask)
	}
	m.seq++
	e := &entry{task: t, seq: m.seq, wait: t.Delay}
	m.tasks = append(m.tasks, e)
	m.byName[t.Name] = e
	m.metrics.setActive(len(m.tasks))
	return nil
}

// Remove unschedules the named task. It reports whether a task was removed.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.byName[name]
	if !exists {
		return false
	}
	m.removeLocked(e)
	return true
}

// RemoveOwner unschedules every task of owner and returns how many were
// removed.
func (m *Manager) RemoveOwner(owner string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var victims []*entry
	for _, e := range m.tasks {
		if e.task.Owner == owner {
			victims = append(victims, e)
		}
	}
	for _, e := range victims {
		m.removeLocked(e)
	}
	return len(victims)
}

// Has reports whether the named task is scheduled.
func (m *Manager) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.byName[name]
	return exists
}

// Names returns the scheduled task names in run order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	ordered := slices.Clone(m.tasks)
	m.mu.Unlock()

	sortEntries(ordered)
	names := make([]string, len(ordered))
	for i, e := range ordered {
		names[i] = e.task.Name
	}
	return names
}

// Len returns the number of scheduled tasks.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Clear unschedules every task.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.tasks {
		e.removed = true
	}
	m.tasks = nil
	m.byName = make(map[string]*entry)
	m.metrics.setActive(0)
}

// Poll runs every due task once for frame f.
func (m *Manager) Poll(f Frame) {
	start := time.Now()

	m.mu.Lock()
	due := make([]*entry, 0, len(m.tasks))
	for _, e := range m.tasks {
		if e.wait > 0 {
			e.wait--
			continue
		}
		due = append(due, e)
	}
	m.mu.Unlock()

	sortEntries(due)

	for _, e := range due {
		m.mu.Lock()
		skip := e.removed
		m.mu.Unlock()
		if skip {
			continue
		}

		status := Cont
		fn := e.task.Fn
		res := m.exec.Run(e.task.Name, func() { status = fn(f) })
		m.metrics.incRun()
		if res.Panicked {
			m.metrics.incPanic(e.task.Name)
			m.logger.Error().
				Str("task", e.task.Name).
				Str("owner", e.task.Owner).
				Uint64("frame", f.Index).
				Interface("panic", res.PanicValue).
				Bytes("stack", res.PanicStack).
				Msg("task hook panicked")
			continue
		}

		if status == Done {
			m.mu.Lock()
			if !e.removed {
				m.removeLocked(e)
			}
			m.mu.Unlock()
		}
	}

	m.metrics.observePoll(time.Since(start).Seconds())
}

// removeLocked drops e from the schedule. The caller must hold m.mu.
func (m *Manager) removeLocked(e *entry) {
	e.removed = true
	if m.byName[e.task.Name] == e {
		delete(m.byName, e.task.Name)
	}
	m.tasks = slices.DeleteFunc(slices.Clone(m.tasks), func(x *entry) bool {
		return x == e
	})
	m.metrics.setActive(len(m.tasks))
}

func sortEntries(entries []*entry) {
	slices.SortStableFunc(entries, func(a, b *entry) int {
		if c := cmp.Compare(a.task.Sort, b.task.Sort); c != 0 {
			return c
		}
		if c := cmp.Compare(b.task.Priority, a.task.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
}
