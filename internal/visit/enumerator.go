package fsvisit

// Enumerator iterates forward over a Visitor's accepted entries. It reads
// the live result list, so it should not be used while Execute runs.
type Enumerator struct {
	v     *Visitor
	index int
}

// Enumerator returns an Enumerator positioned before the first entry.
func (v *Visitor) Enumerator() *Enumerator {
	return &Enumerator{v: v, index: -1}
}

// MoveNext advances to the next entry and reports whether there is one.
// Once exhausted it keeps returning false.
func (e *Enumerator) MoveNext() bool {
	if e.index < len(e.v.results) {
		e.index++
	}
	return e.index < len(e.v.results)
}

// Current returns the entry at the current position, or ErrInvalidState
// before the first MoveNext and after exhaustion.
func (e *Enumerator) Current() (Entry, error) {
	if e.index < 0 || e.index >= len(e.v.results) {
		return Entry{}, ErrInvalidState
	}
	return e.v.results[e.index], nil
}

// Reset moves back before the first entry.
func (e *Enumerator) Reset() {
	e.index = -1
}
