package checkpoint

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/integerize/ndarray"
)

// MemoryStore keeps snapshots in process memory. It is the default store
// of the safe hybrid rounder and is safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]map[int]*ndarray.Array
	closed   bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[int]*ndarray.Array)}
}

func (s *MemoryStore) Save(_ context.Context, session string, step int, a *ndarray.Array) error {
	if session == "" {
		return ErrBadSession
	}
	if a == nil {
		return fmt.Errorf("checkpoint: save step %d: %w", step, ndarray.ErrNilArray)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	steps, ok := s.sessions[session]
	if !ok {
		steps = make(map[int]*ndarray.Array)
		s.sessions[session] = steps
	}
	steps[step] = a.Clone()

	return nil
}

func (s *MemoryStore) Load(_ context.Context, session string, step int) (*ndarray.Array, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	a, ok := s.sessions[session][step]
	if !ok {
		return nil, fmt.Errorf("session %s step %d: %w", session, step, ErrNotFound)
	}

	return a.Clone(), nil
}

func (s *MemoryStore) Steps(_ context.Context, session string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	out := make([]int, 0, len(s.sessions[session]))
	for step := range s.sessions[session] {
		out = append(out, step)
	}
	sort.Ints(out)

	return out, nil
}

func (s *MemoryStore) Clear(_ context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	delete(s.sessions, session)

	return nil
}

// Close drops everything; later calls fail with ErrClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = nil
	s.closed = true

	return nil
}
