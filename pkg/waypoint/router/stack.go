package router

// Stack is the router's logical mirror of the routes above the root.
type Stack[R comparable] struct {
	entries []R
}

// NewStack creates a new empty navigation stack.
func NewStack[R comparable]() *Stack[R] {
	return &Stack[R]{
		entries: make([]R, 0),
	}
}

// Push adds a route to the top of the stack.
func (s *Stack[R]) Push(r R) {
	s.entries = append(s.entries, r)
}

// Pop removes and returns the top route.
// Returns false if the stack is empty.
func (s *Stack[R]) Pop() (R, bool) {
	var zero R
	if len(s.entries) == 0 {
		return zero, false
	}
	r := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = zero
	s.entries = s.entries[:len(s.entries)-1]
	return r, true
}

// Peek returns the top route without removing it.
// Returns false if the stack is empty.
func (s *Stack[R]) Peek() (R, bool) {
	if len(s.entries) == 0 {
		var zero R
		return zero, false
	}
	return s.entries[len(s.entries)-1], true
}

// Replace swaps the whole stack for a copy of routes.
func (s *Stack[R]) Replace(routes []R) {
	s.entries = append(make([]R, 0, len(routes)), routes...)
}

// Trim drops routes from the top until at most n remain. It never grows the
// stack. Returns the number of routes removed.
func (s *Stack[R]) Trim(n int) int {
	if n < 0 || n >= len(s.entries) {
		return 0
	}
	removed := len(s.entries) - n
	clear(s.entries[n:])
	s.entries = s.entries[:n]
	return removed
}

// Routes returns a copy of the stack, bottom first.
func (s *Stack[R]) Routes() []R {
	return append(make([]R, 0, len(s.entries)), s.entries...)
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack[R]) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack[R]) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *Stack[R]) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}
