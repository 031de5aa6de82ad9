package selection

import (
	"sync"

	"github.com/google/uuid"
)

// Set is the reviewer's working selection used to build a bulk status
// batch. Purely local bookkeeping; nothing here touches the backend.
type Set struct {
	mu  sync.Mutex
	ids map[uuid.UUID]bool
}

func NewSet() *Set {
	return &Set{ids: make(map[uuid.UUID]bool)}
}

func (s *Set) Select(id uuid.UUID) {
	if s == nil || id == uuid.Nil {
		return
	}
	s.mu.Lock()
	s.ids[id] = true
	s.mu.Unlock()
}

func (s *Set) SelectAll(ids []uuid.UUID) {
	if s == nil {
		return
	}
	s.mu.Lock()
	for _, id := range ids {
		if id != uuid.Nil {
			s.ids[id] = true
		}
	}
	s.mu.Unlock()
}

func (s *Set) Deselect(id uuid.UUID) {
	if s == nil {
		return
	}
	s.mu.Lock()
	delete(s.ids, id)
	s.mu.Unlock()
}

// Toggle flips membership and reports the new state.
func (s *Set) Toggle(id uuid.UUID) bool {
	if s == nil || id == uuid.Nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids[id] {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = true
	return true
}

func (s *Set) Selected(id uuid.UUID) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids[id]
}

func (s *Set) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.ids = make(map[uuid.UUID]bool)
	s.mu.Unlock()
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns a snapshot of the current selection.
func (s *Set) IDs() []uuid.UUID {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uuid.UUID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}
