// Package literal extracts literal prefixes from syntax trees.
//
// A prefix set tells the search engine which strings every match must begin
// with. When such a finite set exists, a fast substring search can skip the
// input positions where no match can start.
//
// Key concepts:
//   - A Literal is a byte string that a match may begin with
//   - A Seq is a set of alternative literals (e.g. from /foo|bar/)
//   - A nil *Seq is infinite: no finite prefix set describes the pattern
package literal

import (
	"bytes"
	"sort"
)

// Literal is a literal byte sequence extracted from a pattern.
//
// Complete reports whether the literal is an entire match of the subtree it
// came from (true) or only a prefix of one (false).
//
// Example:
//   - Pattern /ab/  → Literal{"ab", true}
//   - Pattern /ab+/ → Literal{"ab", false}
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// IsEmpty reports whether the literal is the empty string.
func (l Literal) IsEmpty() bool {
	return len(l.Bytes) == 0
}

// String returns a debug representation: literal{ab, complete=true}.
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a finite set of alternative literals.
//
// A nil *Seq stands for the infinite set: the pattern can start with too many
// different strings (for example it begins with '.'). All methods accept a nil
// receiver.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Println(seq.Len()) // Output: 2
type Seq struct {
	literals []Literal
}

// NewSeq creates a finite sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i. Panics if i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// Literals returns the literals of the sequence. The slice must not be modified.
func (s *Seq) Literals() []Literal {
	if s == nil {
		return nil
	}
	return s.literals
}

// IsEmpty reports whether the sequence holds no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// IsFinite reports whether the sequence is a finite set. Only nil is infinite.
func (s *Seq) IsFinite() bool {
	return s != nil
}

// ContainsEmpty reports whether the empty string is one of the literals.
// Such a set admits a match starting anywhere and cannot drive a prefilter.
func (s *Seq) ContainsEmpty() bool {
	for _, lit := range s.Literals() {
		if lit.IsEmpty() {
			return true
		}
	}
	return false
}

// AllComplete reports whether every literal is complete. An infinite or
// empty sequence is never complete.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// MakeInexact marks every literal as incomplete.
func (s *Seq) MakeInexact() {
	if s == nil {
		return
	}
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		b := make([]byte, len(lit.Bytes))
		copy(b, lit.Bytes)
		cloned[i] = Literal{Bytes: b, Complete: lit.Complete}
	}
	return &Seq{literals: cloned}
}

// Dedup removes repeated literals, keeping the first occurrence. When the
// same bytes appear both complete and incomplete, the kept literal is
// incomplete.
func (s *Seq) Dedup() {
	if s.IsEmpty() {
		return
	}
	index := make(map[string]int, len(s.literals))
	kept := s.literals[:0]
	for _, lit := range s.literals {
		if i, ok := index[string(lit.Bytes)]; ok {
			kept[i].Complete = kept[i].Complete && lit.Complete
			continue
		}
		index[string(lit.Bytes)] = len(kept)
		kept = append(kept, lit)
	}
	s.literals = kept
}

// Minimize removes literals that have a shorter literal of the set as a
// prefix. The remaining set still covers every match start, but a removed
// literal's completeness is lost, so the survivors of a shrunk set are
// marked incomplete.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("foobar"), true),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // Output: 1
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})
	kept := make([]Literal, 0, len(s.literals))
	for _, current := range s.literals {
		redundant := false
		for i := range kept {
			if bytes.HasPrefix(current.Bytes, kept[i].Bytes) {
				kept[i].Complete = false
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, current)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest common prefix of all literals.
// Returns an empty slice for an empty or infinite sequence.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		prefix = commonPrefix(prefix, lit.Bytes)
		if len(prefix) == 0 {
			return []byte{}
		}
	}
	result := make([]byte, len(prefix))
	copy(result, prefix)
	return result
}

// MinLen returns the length of the shortest literal, or 0 for an empty or
// infinite sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	n := len(s.literals[0].Bytes)
	for _, lit := range s.literals[1:] {
		if len(lit.Bytes) < n {
			n = len(lit.Bytes)
		}
	}
	return n
}

func commonPrefix(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
