package prefilter

import (
	"sync"
	"testing"
)

// mockPrefilter returns positions from a predefined list.
type mockPrefilter struct {
	positions []int
	complete  bool
}

func (m *mockPrefilter) Find(haystack string, start int) int {
	for _, pos := range m.positions {
		if pos >= start {
			return pos
		}
	}
	return -1
}

func (m *mockPrefilter) IsComplete() bool { return m.complete }
func (m *mockPrefilter) LiteralLen() int  { return 0 }
func (m *mockPrefilter) HeapBytes() int   { return 7 }

func TestTrackerBasic(t *testing.T) {
	tracker := NewTracker(&mockPrefilter{positions: []int{5, 10}})

	if pos := tracker.Find("test input", 0); pos != 5 {
		t.Errorf("Find() = %d, want 5", pos)
	}
	if pos := tracker.Find("test input", 6); pos != 10 {
		t.Errorf("Find() = %d, want 10", pos)
	}
	if pos := tracker.Find("test input", 11); pos != -1 {
		t.Errorf("Find() = %d, want -1", pos)
	}
	tracker.ConfirmMatch()

	candidates, confirms, misses := tracker.Stats()
	if candidates != 2 || confirms != 1 || misses != 1 {
		t.Errorf("Stats() = (%d, %d, %d), want (2, 1, 1)", candidates, confirms, misses)
	}
	if eff := tracker.Efficiency(); eff != 0.5 {
		t.Errorf("Efficiency() = %v, want 0.5", eff)
	}

	tracker.Reset()
	candidates, confirms, misses = tracker.Stats()
	if candidates != 0 || confirms != 0 || misses != 0 {
		t.Errorf("Stats() after Reset = (%d, %d, %d), want zeros", candidates, confirms, misses)
	}
	if eff := tracker.Efficiency(); eff != 0 {
		t.Errorf("Efficiency() after Reset = %v, want 0", eff)
	}
}

func TestTrackerNilInner(t *testing.T) {
	if NewTracker(nil) != nil {
		t.Error("NewTracker(nil) should return nil")
	}
}

func TestTrackerDelegates(t *testing.T) {
	inner := &mockPrefilter{complete: true}
	tracker := NewTracker(inner)
	if !tracker.IsComplete() {
		t.Error("IsComplete() should delegate to inner")
	}
	if tracker.HeapBytes() != 7 {
		t.Errorf("HeapBytes() = %d, want 7", tracker.HeapBytes())
	}
	if tracker.LiteralLen() != 0 {
		t.Errorf("LiteralLen() = %d, want 0", tracker.LiteralLen())
	}
	if tracker.Inner() != inner {
		t.Error("Inner() should return the wrapped prefilter")
	}
}

func TestTrackerConcurrent(t *testing.T) {
	tracker := NewTracker(&mockPrefilter{positions: []int{1}})
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				tracker.Find("abc", 0)
				tracker.Find("abc", 2)
			}
		}()
	}
	wg.Wait()
	candidates, _, misses := tracker.Stats()
	if candidates != 800 || misses != 800 {
		t.Errorf("Stats() candidates=%d misses=%d, want 800 each", candidates, misses)
	}
}
