package prefilter

import (
	"go.uber.org/atomic"
)

// Tracker wraps a Prefilter and counts how it performs.
//
// The counters let callers judge whether a prefilter pays off for their
// input: many candidates with few confirmed matches means the literals are
// common and the VM does most of the work anyway.
//
// A Tracker is safe for concurrent use; the counters are atomic and the
// inner prefilter is never modified.
//
// Example usage:
//
//	tracker := prefilter.NewTracker(pf)
//	vm := nfa.NewPikeVM(prog, nfa.WithPrefilter(tracker))
//	if m := vm.Search(subject, true); m != nil {
//	    tracker.ConfirmMatch()
//	}
//	candidates, confirms, misses := tracker.Stats()
type Tracker struct {
	inner Prefilter

	candidates atomic.Uint64 // Find calls that returned a position
	misses     atomic.Uint64 // Find calls that returned -1
	confirms   atomic.Uint64 // searches that ended in a match
}

// NewTracker wraps inner. Returns nil if inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{inner: inner}
}

// Find implements Prefilter.Find and records the outcome.
func (t *Tracker) Find(haystack string, start int) int {
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates.Inc()
	} else {
		t.misses.Inc()
	}
	return pos
}

// ConfirmMatch records that a search using this prefilter found a match.
func (t *Tracker) ConfirmMatch() {
	t.confirms.Inc()
}

// IsComplete delegates to the inner prefilter.
func (t *Tracker) IsComplete() bool {
	return t.inner.IsComplete()
}

// LiteralLen delegates to the inner prefilter.
func (t *Tracker) LiteralLen() int {
	return t.inner.LiteralLen()
}

// HeapBytes returns the memory used by the inner prefilter.
func (t *Tracker) HeapBytes() int {
	return t.inner.HeapBytes()
}

// Stats returns the current counters.
func (t *Tracker) Stats() (candidates, confirms, misses uint64) {
	return t.candidates.Load(), t.confirms.Load(), t.misses.Load()
}

// Efficiency returns confirms per candidate, or 0 before the first candidate.
func (t *Tracker) Efficiency() float64 {
	candidates := t.candidates.Load()
	if candidates == 0 {
		return 0
	}
	return float64(t.confirms.Load()) / float64(candidates)
}

// Reset clears the counters.
func (t *Tracker) Reset() {
	t.candidates.Store(0)
	t.misses.Store(0)
	t.confirms.Store(0)
}

// Inner returns the wrapped prefilter.
func (t *Tracker) Inner() Prefilter {
	return t.inner
}
