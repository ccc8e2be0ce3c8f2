// Package sparse provides a sparse set of small unsigned integers.
//
// The set backs the per-offset "visited pc" bookkeeping of the matching VM:
// membership tests, insertion and clearing are all O(1), and the dense side
// remembers insertion order, which is the priority order of the threads that
// reached each program counter.
package sparse

// SparseSet is a set of uint32 values below a fixed capacity.
//
// The sparse array maps a value to its index in the dense array. Entries of
// the sparse array are never reset; a value is a member only when the dense
// slot it points to is live and holds the same value, so Clear only has to
// truncate the dense side.
type SparseSet struct {
	sparse []uint32
	dense  []uint32
}

// NewSparseSet creates a set that can hold values in [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was newly added.
// Panics if value >= Capacity().
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: dense never exceeds capacity, which is a uint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return uint64(idx) < uint64(len(s.dense)) && s.dense[idx] == value
}

// Clear empties the set in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no members.
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Capacity returns the exclusive upper bound on storable values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Values returns the members in insertion order.
// The slice is only valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}
