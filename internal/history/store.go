package history

import "sort"

// Store keeps one Ring per key, all with the same capacity. It is not safe
// for concurrent use; callers serialize access.
type Store struct {
	capacity int
	rings    map[string]*Ring
}

// NewStore creates a store whose rings hold capacity values each.
func NewStore(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{
		capacity: capacity,
		rings:    make(map[string]*Ring),
	}
}

// Record appends a reading to key's ring, creating the ring on first use.
func (s *Store) Record(key string, reading float64) {
	r, ok := s.rings[key]
	if !ok {
		r = NewRing(s.capacity)
		s.rings[key] = r
	}
	r.Push(reading)
}

// Values returns key's readings oldest first, or nil for an unknown key.
func (s *Store) Values(key string) []float64 {
	if r, ok := s.rings[key]; ok {
		return r.Values()
	}
	return nil
}

// Last returns key's most recent reading.
func (s *Store) Last(key string) (float64, bool) {
	if r, ok := s.rings[key]; ok {
		return r.Last()
	}
	return 0, false
}

// Len returns the number of readings held for key.
func (s *Store) Len(key string) int {
	if r, ok := s.rings[key]; ok {
		return r.Len()
	}
	return 0
}

// Delete drops key's ring.
func (s *Store) Delete(key string) {
	delete(s.rings, key)
}

// Keys returns the recorded keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.rings))
	for k := range s.rings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Capacity returns the per-key capacity.
func (s *Store) Capacity() int {
	return s.capacity
}
