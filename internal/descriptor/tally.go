package descriptor

// Tally counts how many times a wrapped descriptor was evaluated. Each
// Counted call produces its own Tally; nothing is shared between wraps,
// so independent sorts can be measured independently.
type Tally struct {
	n int
}

// Count returns the number of evaluations recorded so far.
func (t *Tally) Count() int {
	return t.n
}

// Reset zeroes the tally.
func (t *Tally) Reset() {
	t.n = 0
}

// Counted wraps d so every evaluation increments a fresh Tally, and
// returns both. The wrapped descriptor orders exactly as d does.
func Counted[T any](d Descriptor[T]) (Descriptor[T], *Tally) {
	t := &Tally{}
	return func(a, b T) bool {
		t.n++
		return d(a, b)
	}, t
}
