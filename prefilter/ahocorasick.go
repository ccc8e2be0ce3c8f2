package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/pikevm/internal/conv"
	"github.com/coregx/pikevm/literal"
)

// ahoCorasickPrefilter searches for any of several literals at once.
//
// Example patterns:
//
//	/foo|bar|baz/    → automaton over "foo", "bar", "baz"
//	/(ab|cd)e+/      → automaton over "abe", "cde"
type ahoCorasickPrefilter struct {
	automaton *ahocorasick.Automaton
	heapBytes int
}

func newAhoCorasickPrefilter(seq *literal.Seq) (*ahoCorasickPrefilter, error) {
	builder := ahocorasick.NewBuilder()
	heap := 0
	for _, lit := range seq.Literals() {
		builder.AddPattern(lit.Bytes)
		heap += len(lit.Bytes)
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasickPrefilter{
		automaton: automaton,
		heapBytes: heap,
	}, nil
}

// Find implements Prefilter.Find. It returns the leftmost position at which
// any literal starts.
func (p *ahoCorasickPrefilter) Find(haystack string, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.automaton.Find(conv.StringBytes(haystack), start)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsComplete implements Prefilter.IsComplete. Literals of different lengths
// may start at the same position, so the match length is never known.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return false
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *ahoCorasickPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes implements Prefilter.HeapBytes. It reports the total pattern
// bytes; the automaton tables are not counted.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.heapBytes
}
