package pikevm

import (
	"go.uber.org/atomic"

	"github.com/coregx/pikevm/prefilter"
)

// Stats is a snapshot of the search counters of a Regex.
type Stats struct {
	// Searches counts Search and SearchAt calls, including those made by
	// the convenience methods.
	Searches uint64

	// Matches counts searches that found a match.
	Matches uint64

	// LiteralSearches counts searches answered by the literal fast path
	// without running the VM.
	LiteralSearches uint64

	// PrefilterCandidates counts candidate positions reported by the
	// prefilter.
	PrefilterCandidates uint64

	// PrefilterMisses counts prefilter scans that found no further
	// candidate.
	PrefilterMisses uint64
}

// searchStats holds the live counters. All fields are updated atomically so
// a Regex can be shared between goroutines.
type searchStats struct {
	searches        atomic.Uint64
	matches         atomic.Uint64
	literalSearches atomic.Uint64
}

func (s *searchStats) snapshot(tracker *prefilter.Tracker) Stats {
	st := Stats{
		Searches:        s.searches.Load(),
		Matches:         s.matches.Load(),
		LiteralSearches: s.literalSearches.Load(),
	}
	if tracker != nil {
		st.PrefilterCandidates, _, st.PrefilterMisses = tracker.Stats()
	}
	return st
}

func (s *searchStats) reset(tracker *prefilter.Tracker) {
	s.searches.Store(0)
	s.matches.Store(0)
	s.literalSearches.Store(0)
	if tracker != nil {
		tracker.Reset()
	}
}
