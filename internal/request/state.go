// Package request tracks the lifecycle of one repeatable asynchronous call.
package request

import (
	"context"
	"errors"
	"sync"
)

type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ordering decides which completion wins when executions overlap.
type Ordering int

const (
	// LastResolved applies every completion; the one that finishes last wins.
	LastResolved Ordering = iota
	// LatestIssued applies a completion only if no execution was started after
	// it. Older completions return ErrSuperseded and leave the state alone.
	LatestIssued
)

var ErrSuperseded = errors.New("request superseded by a newer execution")

// Operation is the wrapped call.
type Operation[A, T any] func(ctx context.Context, arg A) (T, error)

// Snapshot is a copy of the state at one moment.
type Snapshot[T any] struct {
	Status  Status
	Data    T
	HasData bool
	Err     *Error
}

func (s Snapshot[T]) Loading() bool { return s.Status == Loading }

// State runs an Operation and records status, last data and last error.
// Executions are neither de-duplicated nor cancelled.
type State[A, T any] struct {
	mu       sync.Mutex
	op       Operation[A, T]
	ordering Ordering
	issued   uint64

	status   Status
	data     T
	hasData  bool
	err      *Error
	onChange func(Snapshot[T])
}

func New[A, T any](op Operation[A, T], ordering Ordering) *State[A, T] {
	return &State[A, T]{op: op, ordering: ordering}
}

// OnChange registers fn to receive a snapshot after every transition.
func (s *State[A, T]) OnChange(fn func(Snapshot[T])) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Execute moves to Loading, runs the operation and records its outcome.
// On failure the previous data is kept. The returned error is the normalized
// *Error, or ErrSuperseded when the outcome was discarded.
func (s *State[A, T]) Execute(ctx context.Context, arg A) (T, error) {
	s.mu.Lock()
	s.issued++
	gen := s.issued
	s.status = Loading
	snap, notify := s.snapshotLocked(), s.onChange
	s.mu.Unlock()
	if notify != nil {
		notify(snap)
	}

	val, opErr := s.op(ctx, arg)

	var zero T
	s.mu.Lock()
	if s.ordering == LatestIssued && gen != s.issued {
		s.mu.Unlock()
		return zero, ErrSuperseded
	}
	var err *Error
	if opErr != nil {
		err = Normalize(opErr)
		s.status = Failed
		s.err = err
	} else {
		s.status = Success
		s.data = val
		s.hasData = true
		s.err = nil
	}
	snap, notify = s.snapshotLocked(), s.onChange
	s.mu.Unlock()
	if notify != nil {
		notify(snap)
	}

	if err != nil {
		return zero, err
	}
	return val, nil
}

// Reset returns to Idle and drops data and error. Under LatestIssued it also
// discards completions of executions already in flight.
func (s *State[A, T]) Reset() {
	var zero T
	s.mu.Lock()
	s.issued++
	s.status = Idle
	s.data = zero
	s.hasData = false
	s.err = nil
	snap, notify := s.snapshotLocked(), s.onChange
	s.mu.Unlock()
	if notify != nil {
		notify(snap)
	}
}

func (s *State[A, T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State[A, T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{Status: s.status, Data: s.data, HasData: s.hasData, Err: s.err}
}
