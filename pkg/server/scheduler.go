package server

import (
	"sync"
	"time"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// TaskFunc is a deferred unit of work run by the scheduler loop.
type TaskFunc func()

// Task is a scheduled callback bound to an object, so it can be cancelled
// when the object goes away.
type Task struct {
	Object  gamedb.DBRef
	Kind    string // "growth", "wait", ...
	RunAt   time.Time
	Fn      TaskFunc
}

// Scheduler runs deferred tasks: growth ticks and @wait-style delays.
// Tasks fire on the scheduler goroutine; callbacks take care of their own
// locking.
type Scheduler struct {
	mu      sync.Mutex
	pending []*Task
	stopped bool
	done    chan struct{}
}

// NewScheduler creates an idle scheduler. Call Start to begin processing.
func NewScheduler() *Scheduler {
	return &Scheduler{done: make(chan struct{})}
}

// Add schedules a task, keeping the pending list sorted by run time.
func (s *Scheduler) Add(task *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.pending {
		if task.RunAt.Before(t.RunAt) {
			s.pending = append(s.pending[:i+1], s.pending[i:]...)
			s.pending[i] = task
			return
		}
	}
	s.pending = append(s.pending, task)
}

// AddAfter schedules fn to run after a delay.
func (s *Scheduler) AddAfter(obj gamedb.DBRef, kind string, delay time.Duration, fn TaskFunc) {
	s.Add(&Task{Object: obj, Kind: kind, RunAt: time.Now().Add(delay), Fn: fn})
}

// Cancel removes all pending tasks of a kind for an object. An empty kind
// matches everything. Returns the number removed.
func (s *Scheduler) Cancel(obj gamedb.DBRef, kind string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	var kept []*Task
	for _, t := range s.pending {
		if t.Object == obj && (kind == "" || t.Kind == kind) {
			removed++
		} else {
			kept = append(kept, t)
		}
	}
	s.pending = kept
	return removed
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// popReady removes and returns all tasks whose time has come.
func (s *Scheduler) popReady(now time.Time) []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := 0
	for i, t := range s.pending {
		if t.RunAt.After(now) {
			break
		}
		cutoff = i + 1
	}
	if cutoff == 0 {
		return nil
	}
	ready := s.pending[:cutoff]
	s.pending = s.pending[cutoff:]
	return ready
}

// Start launches the scheduler loop with a one second tick.
func (s *Scheduler) Start() {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case now := <-ticker.C:
				for _, t := range s.popReady(now) {
					t.Fn()
				}
			}
		}
	}()
}

// RunReady fires all due tasks immediately. Used by tests and by callers
// that drive the clock themselves.
func (s *Scheduler) RunReady() int {
	ready := s.popReady(time.Now())
	for _, t := range ready {
		t.Fn()
	}
	return len(ready)
}

// Stop shuts down the scheduler loop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.stopped = true
		close(s.done)
	}
}
