package marker

import (
	"sort"
	"sync"

	"github.com/dshills/sigcomplete/internal/engine/buffer"
)

// Store holds the markers registered against one buffer.
type Store struct {
	mu sync.RWMutex

	// markers contains all registered markers, keyed by ID.
	markers map[string]*RangeMarker

	// order holds IDs in registration order.
	order []string
}

// NewStore creates an empty marker store.
func NewStore() *Store {
	return &Store{
		markers: make(map[string]*RangeMarker),
		order:   make([]string, 0),
	}
}

// AddRangeMarker registers a marker. Adding the same marker twice is a no-op.
func (s *Store) AddRangeMarker(m *RangeMarker) {
	if m == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.markers[m.ID()]; ok {
		return
	}
	s.markers[m.ID()] = m
	s.order = append(s.order, m.ID())
}

// ClearRangeMarker unregisters a marker. Returns false if it was not registered.
func (s *Store) ClearRangeMarker(m *RangeMarker) bool {
	if m == nil {
		return false
	}
	return s.Remove(m.ID())
}

// Remove unregisters a marker by ID.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.markers[id]; !ok {
		return false
	}
	delete(s.markers, id)

	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns a marker by ID.
func (s *Store) Get(id string) (*RangeMarker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.markers[id]
	return m, ok
}

// Count returns the number of registered markers.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.markers)
}

// Clear removes all markers.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.markers = make(map[string]*RangeMarker)
	s.order = make([]string, 0)
}

// Markers returns all markers ordered by range start, then registration order.
func (s *Store) Markers() []*RangeMarker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*RangeMarker, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.markers[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Range().Start < result[j].Range().Start
	})
	return result
}

// MarkersInRange returns markers overlapping rng, ordered as Markers.
func (s *Store) MarkersInRange(rng buffer.Range) []*RangeMarker {
	var result []*RangeMarker
	for _, m := range s.Markers() {
		if m.Range().Overlaps(rng) {
			result = append(result, m)
		}
	}
	return result
}

// MarkersOfType returns markers drawn with the given display type.
func (s *Store) MarkersOfType(d DisplayType) []*RangeMarker {
	var result []*RangeMarker
	for _, m := range s.Markers() {
		if m.DisplayType() == d {
			result = append(result, m)
		}
	}
	return result
}
