package history

// Ring is a fixed-capacity circular buffer of readings. When full, Push
// overwrites the oldest value.
type Ring struct {
	buf   []float64
	pos   int
	count int
}

// NewRing creates a ring holding at most capacity values. A capacity of zero
// (or less) yields a ring that discards every push.
func NewRing(capacity int) *Ring {
	if capacity < 0 {
		capacity = 0
	}
	return &Ring{
		buf: make([]float64, capacity),
	}
}

// Push appends a value, evicting the oldest one first if the ring is full.
func (r *Ring) Push(val float64) {
	if len(r.buf) == 0 {
		return
	}
	r.buf[r.pos] = val
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Values returns all stored values in chronological order (oldest first).
func (r *Ring) Values() []float64 {
	if r.count == 0 {
		return nil
	}
	result := make([]float64, r.count)
	if r.count < len(r.buf) {
		copy(result, r.buf[:r.count])
	} else {
		n := copy(result, r.buf[r.pos:])
		copy(result[n:], r.buf[:r.pos])
	}
	return result
}

// Last returns the most recent value and whether there was one.
func (r *Ring) Last() (float64, bool) {
	if r.count == 0 {
		return 0, false
	}
	idx := (r.pos - 1 + len(r.buf)) % len(r.buf)
	return r.buf[idx], true
}

// Len returns the number of stored values.
func (r *Ring) Len() int {
	return r.count
}

// Cap returns the fixed capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}
