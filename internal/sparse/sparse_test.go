package sparse

import (
	"testing"
)

func TestSparseSet_Basic(t *testing.T) {
	s := NewSparseSet(100)

	if !s.IsEmpty() {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	if !s.Insert(5) {
		t.Error("first insert should return true")
	}
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	if s.Insert(5) {
		t.Error("duplicate insert should return false")
	}
	if s.Len() != 1 {
		t.Errorf("len should be 1, got %d", s.Len())
	}

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	if s.Len() != 4 {
		t.Errorf("len should be 4, got %d", s.Len())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("set should be empty after clear")
	}
	if s.Contains(5) {
		t.Error("cleared set should not contain 5")
	}
}

func TestSparseSet_InsertionOrder(t *testing.T) {
	s := NewSparseSet(100)
	s.Insert(5)
	s.Insert(2)
	s.Insert(8)
	s.Insert(1)

	expected := []uint32{5, 2, 8, 1}
	values := s.Values()
	if len(values) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(values))
	}
	for i, v := range values {
		if v != expected[i] {
			t.Errorf("at index %d: expected %d, got %d", i, expected[i], v)
		}
	}
}

func TestSparseSet_CrossValidation(t *testing.T) {
	// stale sparse entries must not produce false positives after Clear
	s := NewSparseSet(100)
	s.Insert(5)
	s.Insert(10)
	s.Clear()

	if s.Contains(5) || s.Contains(10) {
		t.Error("cleared set should not contain old values")
	}

	s.Insert(3)
	if !s.Contains(3) {
		t.Error("should contain 3")
	}
	if s.Contains(5) {
		t.Error("should not contain 5 after reinsert of 3 at dense index 0")
	}
}

func TestSparseSet_OutOfRange(t *testing.T) {
	s := NewSparseSet(4)
	if s.Contains(4) || s.Contains(1000) {
		t.Error("values beyond capacity are never members")
	}
	if s.Capacity() != 4 {
		t.Errorf("capacity = %d, want 4", s.Capacity())
	}
}

func TestSparseSet_FillToCapacity(t *testing.T) {
	s := NewSparseSet(16)
	for i := uint32(0); i < 16; i++ {
		if !s.Insert(i) {
			t.Fatalf("insert %d should succeed", i)
		}
	}
	if s.Len() != 16 {
		t.Errorf("len should be 16, got %d", s.Len())
	}
	s.Clear()
	for i := uint32(0); i < 16; i++ {
		s.Insert(15 - i)
	}
	if got := s.Values()[0]; got != 15 {
		t.Errorf("first value after refill = %d, want 15", got)
	}
}
