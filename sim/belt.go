package sim

import "strings"

// Belt is a bounded FIFO of slots. Position 0 is the entry end and
// position Len()-1 is the exit end.
type Belt struct {
	capacity int
	slots    []Content
}

// NewBelt creates an empty belt holding at most capacity slots.
// Negative capacities are treated as zero.
func NewBelt(capacity int) *Belt {
	if capacity < 0 {
		capacity = 0
	}
	return &Belt{
		capacity: capacity,
		slots:    make([]Content, 0, capacity),
	}
}

// Advance moves the belt one position and places c at the entry.
// When the belt is already full the content at the exit is removed first
// and returned with ok == true. A zero-capacity belt evicts c itself.
func (b *Belt) Advance(c Content) (evicted Content, ok bool) {
	if b.capacity == 0 {
		return c, true
	}
	if len(b.slots) == b.capacity {
		evicted, ok = b.slots[len(b.slots)-1], true
		b.slots = b.slots[:len(b.slots)-1]
	}
	b.slots = append(b.slots, Empty)
	copy(b.slots[1:], b.slots[:len(b.slots)-1])
	b.slots[0] = c
	return evicted, ok
}

// Len returns the number of occupied positions (including EMPTY slots).
func (b *Belt) Len() int { return len(b.slots) }

// Capacity returns the configured belt length.
func (b *Belt) Capacity() int { return b.capacity }

// At returns the content at position i.
func (b *Belt) At(i int) Content { return b.slots[i] }

// Set overwrites the content at position i.
func (b *Belt) Set(i int, c Content) { b.slots[i] = c }

// Slots returns a copy of the current layout, entry first.
func (b *Belt) Slots() []Content {
	out := make([]Content, len(b.slots))
	copy(out, b.slots)
	return out
}

func (b *Belt) String() string {
	parts := make([]string, len(b.slots))
	for i, c := range b.slots {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
