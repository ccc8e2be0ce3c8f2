package literal

import (
	"github.com/coregx/pikevm/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// Example:
//
//	config := literal.ExtractorConfig{
//	    MaxLiterals:   64,
//	    MaxLiteralLen: 16,
//	}
//	extractor := literal.New(config)
type ExtractorConfig struct {
	// MaxLiterals limits the size of a prefix set. Alternations and
	// optional parts multiply the number of prefixes; a set that would grow
	// past the limit is cut back to shorter, incomplete prefixes or given
	// up entirely. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal. Longer literals are
	// truncated and marked incomplete. Default: 16.
	MaxLiteralLen int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 16,
	}
}

// Extractor computes prefix literal sets from syntax trees.
// An Extractor holds only configuration and may be used concurrently.
type Extractor struct {
	config ExtractorConfig
}

// New creates an Extractor. Non-positive limits fall back to the defaults.
func New(config ExtractorConfig) *Extractor {
	def := DefaultConfig()
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = def.MaxLiterals
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = def.MaxLiteralLen
	}
	return &Extractor{config: config}
}

// ExtractPrefixes returns a set of literals such that every match of n
// starts with one of them. A nil result means no such finite set exists.
//
// Per node kind:
//   - Lit c: {c}, complete
//   - Any: infinite
//   - Concat(l, r): the complete literals of l are extended with the
//     prefixes of r; incomplete ones are kept as they are
//   - Alt(l, r): union of both sides
//   - Group(x): prefixes of x
//   - Quest(x): prefixes of x plus the empty literal
//   - Star(x): prefixes of x made incomplete plus the empty literal
//   - Plus(x): prefixes of x made incomplete
//
// Examples:
//
//	"abc"      → ["abc"]
//	"(ab|cd)e" → ["abe", "cde"]
//	"ab+c"     → ["ab" (incomplete)]
//	"a?b"      → ["ab", "b"]
//	".ab"      → nil
//
// The result is deduplicated and minimized. A result that contains the
// empty literal admits a match at every position and is useless as a
// prefilter; callers should check ContainsEmpty.
func (e *Extractor) ExtractPrefixes(n *syntax.Node) *Seq {
	seq := e.prefixes(n)
	if seq == nil {
		return nil
	}
	seq.Dedup()
	seq.Minimize()
	return seq
}

func (e *Extractor) prefixes(n *syntax.Node) *Seq {
	if n == nil {
		return NewSeq(NewLiteral([]byte{}, true))
	}

	switch n.Kind {
	case syntax.KindLiteral:
		return NewSeq(NewLiteral([]byte(string(n.Rune)), true))

	case syntax.KindAny:
		return nil

	case syntax.KindConcat:
		return e.concat(n)

	case syntax.KindAlt:
		left := e.prefixes(n.Left)
		if left == nil {
			return nil
		}
		right := e.prefixes(n.Right)
		if right == nil {
			return nil
		}
		if left.Len()+right.Len() > e.config.MaxLiterals {
			return nil
		}
		return NewSeq(append(left.literals, right.literals...)...)

	case syntax.KindGroup:
		return e.prefixes(n.Left)

	case syntax.KindQuest:
		return e.withEmpty(e.prefixes(n.Left), false)

	case syntax.KindStar:
		return e.withEmpty(e.prefixes(n.Left), true)

	case syntax.KindPlus:
		seq := e.prefixes(n.Left)
		seq.MakeInexact()
		return seq

	default:
		return nil
	}
}

// withEmpty adds the empty literal to sub, the prefixes of an optional
// subexpression.
func (e *Extractor) withEmpty(sub *Seq, inexact bool) *Seq {
	if sub == nil || sub.Len()+1 > e.config.MaxLiterals {
		return nil
	}
	if inexact {
		sub.MakeInexact()
	}
	sub.literals = append(sub.literals, NewLiteral([]byte{}, true))
	return sub
}

// concat walks a right spine of concatenations, extending the complete
// literals with the prefixes of each following item until none is complete.
func (e *Extractor) concat(n *syntax.Node) *Seq {
	acc := NewSeq(NewLiteral([]byte{}, true))
	for n != nil {
		item := n
		if n.Kind == syntax.KindConcat {
			item, n = n.Left, n.Right
		} else {
			n = nil
		}

		next := e.prefixes(item)
		if next == nil {
			// the complete literals end here; what follows is unknown
			acc.MakeInexact()
			return e.finish(acc)
		}
		crossed, ok := e.cross(acc, next)
		if !ok {
			acc.MakeInexact()
			return e.finish(acc)
		}
		acc = crossed
		if !acc.anyComplete() {
			break
		}
	}
	return e.finish(acc)
}

// cross extends every complete literal of acc with every literal of next.
// It reports false if the product would exceed MaxLiterals.
func (e *Extractor) cross(acc, next *Seq) (*Seq, bool) {
	size := 0
	for _, a := range acc.literals {
		if a.Complete {
			size += next.Len()
		} else {
			size++
		}
	}
	if size > e.config.MaxLiterals {
		return nil, false
	}

	out := make([]Literal, 0, size)
	for _, a := range acc.literals {
		if !a.Complete {
			out = append(out, a)
			continue
		}
		for _, b := range next.literals {
			joined := make([]byte, 0, len(a.Bytes)+len(b.Bytes))
			joined = append(joined, a.Bytes...)
			joined = append(joined, b.Bytes...)
			out = append(out, e.truncate(NewLiteral(joined, b.Complete)))
		}
	}
	return NewSeq(out...), true
}

// finish applies the length limit to every literal of seq.
func (e *Extractor) finish(seq *Seq) *Seq {
	for i, lit := range seq.literals {
		seq.literals[i] = e.truncate(lit)
	}
	return seq
}

func (e *Extractor) truncate(lit Literal) Literal {
	if len(lit.Bytes) > e.config.MaxLiteralLen {
		return NewLiteral(lit.Bytes[:e.config.MaxLiteralLen], false)
	}
	return lit
}

func (s *Seq) anyComplete() bool {
	for _, lit := range s.Literals() {
		if lit.Complete {
			return true
		}
	}
	return false
}
