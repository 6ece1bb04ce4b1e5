package pipeline

import "time"

// correctorWindow is how many recent failures the corrector sees.
const correctorWindow = 3

// ErrorEntry is one recorded execution failure.
type ErrorEntry struct {
	Query     string
	Error     string
	Timestamp time.Time
}

// ErrorHistory is the append-only failure log of a single run. It is
// not safe for concurrent use; a run is strictly sequential.
type ErrorHistory struct {
	entries []ErrorEntry
}

// NewErrorHistory creates an empty history.
func NewErrorHistory() *ErrorHistory {
	return &ErrorHistory{entries: make([]ErrorEntry, 0, correctorWindow)}
}

// Append records a failed execution. Entries are never mutated or
// removed afterwards.
func (h *ErrorHistory) Append(query string, err error, at time.Time) {
	h.entries = append(h.entries, ErrorEntry{
		Query:     query,
		Error:     err.Error(),
		Timestamp: at,
	})
}

// Len returns the number of recorded failures.
func (h *ErrorHistory) Len() int {
	return len(h.entries)
}

// All returns every entry in insertion order.
func (h *ErrorHistory) All() []ErrorEntry {
	out := make([]ErrorEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Last returns up to n most recent entries in insertion order.
func (h *ErrorHistory) Last(n int) []ErrorEntry {
	if n <= 0 {
		return nil
	}
	start := len(h.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]ErrorEntry, len(h.entries)-start)
	copy(out, h.entries[start:])
	return out
}

// Latest returns the most recent entry and whether one exists.
func (h *ErrorHistory) Latest() (ErrorEntry, bool) {
	if len(h.entries) == 0 {
		return ErrorEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}
