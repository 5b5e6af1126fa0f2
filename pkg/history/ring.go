package history

// Ring is a fixed-capacity FIFO of snapshots addressed by logical index,
// where 0 is the oldest retained entry.
type Ring struct {
	buf  []string
	head int // physical index of logical 0
	size int
}

// NewRing returns an empty ring holding at most capacity entries.
// capacity must be positive.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		panic("history: ring capacity must be positive")
	}
	return &Ring{buf: make([]string, capacity)}
}

// Len returns the number of entries.
func (r *Ring) Len() int { return r.size }

// Cap returns the maximum number of entries.
func (r *Ring) Cap() int { return len(r.buf) }

// At returns the entry at logical index i. It panics if i is out of range.
func (r *Ring) At(i int) string {
	if i < 0 || i >= r.size {
		panic("history: ring index out of range")
	}
	return r.buf[r.phys(i)]
}

// Push appends s. If the ring was full the oldest entry is dropped and
// evicted is true.
func (r *Ring) Push(s string) (evicted bool) {
	if r.size == len(r.buf) {
		r.buf[r.head] = ""
		r.head = (r.head + 1) % len(r.buf)
		r.size--
		evicted = true
	}
	r.buf[r.phys(r.size)] = s
	r.size++
	return evicted
}

// Truncate keeps the first n entries and drops the rest.
func (r *Ring) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	for r.size > n {
		r.size--
		r.buf[r.phys(r.size)] = ""
	}
}

// Reset empties the ring.
func (r *Ring) Reset() {
	r.Truncate(0)
	r.head = 0
}

// Slice returns the entries oldest first.
func (r *Ring) Slice() []string {
	out := make([]string, r.size)
	for i := range out {
		out[i] = r.buf[r.phys(i)]
	}
	return out
}

func (r *Ring) phys(i int) int { return (r.head + i) % len(r.buf) }
