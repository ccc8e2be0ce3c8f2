// Package prefilter finds candidate match starts with fast literal search.
//
// A prefilter scans the input for the prefix literals every match must begin
// with (see package literal). The Pike VM then only seeds new threads at the
// reported positions and jumps over stretches of input where no thread is
// alive and no literal occurs.
//
// The strategy is chosen from the extracted literals:
//   - Single byte → memchr (strings.IndexByte)
//   - Single substring → memmem (strings.Index)
//   - Several literals → Aho-Corasick automaton
//
// Example usage:
//
//	n, _ := syntax.Parse("hello|world")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(n)
//	pf := prefilter.NewBuilder(prefixes).Build()
//	pos := pf.Find("foo hello bar world baz", 0)
//	// pos == 4 (position of "hello")
package prefilter

import (
	"strings"

	"github.com/coregx/pikevm/literal"
)

// Prefilter quickly finds candidate match positions.
type Prefilter interface {
	// Find returns the index of the first candidate match starting at or
	// after start, or -1 if there is none. A candidate does not guarantee a
	// match; it is a position where one of the literals occurs.
	Find(haystack string, start int) int

	// IsComplete reports whether a candidate is a full match of length
	// LiteralLen, so the caller may skip verification.
	IsComplete() bool

	// LiteralLen returns the match length when IsComplete is true, else 0.
	LiteralLen() int

	// HeapBytes returns the heap memory held by the prefilter.
	HeapBytes() int
}

// Builder constructs the prefilter for a set of prefix literals.
//
// Selection (in order of preference):
//  1. No finite set, or the set contains the empty literal → nil
//  2. Single byte literal → memchr
//  3. Single substring literal → memmem
//  4. Several literals → Aho-Corasick
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder creates a builder for the given prefix literals. prefixes may be
// nil, meaning no finite prefix set exists.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build returns the best prefilter for the literals, or nil if none applies.
func (b *Builder) Build() Prefilter {
	seq := b.prefixes
	if seq.IsEmpty() || seq.ContainsEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], lit.Complete)
		}
		return newMemmemPrefilter(lit.Bytes, lit.Complete)
	}

	pf, err := newAhoCorasickPrefilter(seq)
	if err != nil {
		// a scan without prefilter is always correct
		return nil
	}
	return pf
}

// Strategy returns a short name for the prefilter kind, for logs and debug
// output: "memchr", "memmem", "aho-corasick" or "none".
func Strategy(pf Prefilter) string {
	switch p := pf.(type) {
	case nil:
		return "none"
	case *memchrPrefilter:
		return "memchr"
	case *memmemPrefilter:
		return "memmem"
	case *ahoCorasickPrefilter:
		return "aho-corasick"
	case *Tracker:
		return Strategy(p.inner)
	default:
		return "custom"
	}
}

// memchrPrefilter searches for a single byte.
//
// Example patterns:
//
//	/a.+/   → search for 'a'
//	/ab|a/  → after minimization → search for 'a'
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		complete: complete,
	}
}

// Find implements Prefilter.Find using strings.IndexByte.
func (p *memchrPrefilter) Find(haystack string, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := strings.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

// memmemPrefilter searches for a single substring.
//
// Example patterns:
//
//	/hello/       → search for "hello"
//	/ab|abc/      → after minimization → search for "ab"
//	/prefix.+/    → search for "prefix"
type memmemPrefilter struct {
	needle   string
	complete bool
}

// newMemmemPrefilter copies needle, so the caller may reuse it.
func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	return &memmemPrefilter{
		needle:   string(needle),
		complete: complete,
	}
}

// Find implements Prefilter.Find using strings.Index.
func (p *memmemPrefilter) Find(haystack string, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := strings.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}
