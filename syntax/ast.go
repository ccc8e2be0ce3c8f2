// Package syntax parses regular expression patterns into syntax trees.
//
// The accepted grammar is deliberately small. From lowest to highest
// precedence:
//
//	alt    := concat ('|' alt)?
//	concat := repeat concat?
//	repeat := single ('*' | '+' | '?')?
//	single := '(' alt ')' | literal | '.'
//
// A literal is a single ASCII letter or digit and '.' matches any character.
// Every parenthesised subexpression is a capturing group. Whitespace between
// tokens is ignored. Alternation and concatenation both associate to the
// right, so "abc" is Concat(a, Concat(b, c)) and "a|b|c" is Alt(a, Alt(b, c)).
package syntax

import (
	"fmt"
	"strings"
)

// Kind identifies the type of a syntax tree node.
type Kind uint8

const (
	// KindLiteral matches a single character (Node.Rune).
	KindLiteral Kind = iota

	// KindAny matches any single character.
	KindAny

	// KindConcat matches Left followed by Right.
	KindConcat

	// KindAlt matches Left or Right, preferring Left.
	KindAlt

	// KindGroup matches Left and captures the matched text.
	KindGroup

	// KindStar matches zero or more repetitions of Left.
	KindStar

	// KindPlus matches one or more repetitions of Left.
	KindPlus

	// KindQuest matches zero or one occurrence of Left.
	KindQuest
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Lit"
	case KindAny:
		return "Any"
	case KindConcat:
		return "Concat"
	case KindAlt:
		return "Alt"
	case KindGroup:
		return "Group"
	case KindStar:
		return "Star"
	case KindPlus:
		return "Plus"
	case KindQuest:
		return "Quest"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsLeaf reports whether nodes of this kind have no operands.
func (k Kind) IsLeaf() bool {
	return k == KindLiteral || k == KindAny
}

// IsUnary reports whether nodes of this kind have exactly one operand.
func (k Kind) IsUnary() bool {
	return k == KindGroup || k == KindStar || k == KindPlus || k == KindQuest
}

// Node is a node of a parsed pattern.
//
// Leaves (KindLiteral, KindAny) have no operands. Unary kinds (KindGroup,
// KindStar, KindPlus, KindQuest) keep their operand in Left. Binary kinds
// (KindConcat, KindAlt) use both Left and Right.
//
// Trees are immutable once built: the parser, compiler and literal extractor
// only read them, so a tree may be shared freely.
type Node struct {
	Kind  Kind
	Rune  rune
	Left  *Node
	Right *Node
}

// Lit returns a literal node for c.
func Lit(c rune) *Node {
	return &Node{Kind: KindLiteral, Rune: c}
}

// Any returns a node matching any character.
func Any() *Node {
	return &Node{Kind: KindAny}
}

// Concat returns a node matching left then right.
func Concat(left, right *Node) *Node {
	return &Node{Kind: KindConcat, Left: left, Right: right}
}

// Alt returns a node matching left or right.
func Alt(left, right *Node) *Node {
	return &Node{Kind: KindAlt, Left: left, Right: right}
}

// Group returns a capturing group around sub.
func Group(sub *Node) *Node {
	return &Node{Kind: KindGroup, Left: sub}
}

// Star returns a node matching sub zero or more times.
func Star(sub *Node) *Node {
	return &Node{Kind: KindStar, Left: sub}
}

// Plus returns a node matching sub one or more times.
func Plus(sub *Node) *Node {
	return &Node{Kind: KindPlus, Left: sub}
}

// Quest returns a node matching sub zero or one time.
func Quest(sub *Node) *Node {
	return &Node{Kind: KindQuest, Left: sub}
}

// Equal reports whether a and b are structurally equal.
// Two nil trees are equal; a nil and a non-nil tree are not.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch {
	case a.Kind == KindLiteral:
		return a.Rune == b.Rune
	case a.Kind == KindAny:
		return true
	case a.Kind.IsUnary():
		return Equal(a.Left, b.Left)
	default:
		return Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	}
}

// Equal reports whether n and other are structurally equal.
func (n *Node) Equal(other *Node) bool {
	return Equal(n, other)
}

// NumGroups returns the number of capturing groups in the tree.
func (n *Node) NumGroups() int {
	if n == nil {
		return 0
	}
	count := n.Left.NumGroups() + n.Right.NumGroups()
	if n.Kind == KindGroup {
		count++
	}
	return count
}

// String returns an indented dump of the tree, one node per line:
//
//	|-- Concat
//	    |-- Lit 'a'
//	    |-- Star
//	        |-- Any
func (n *Node) String() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("    ", depth))
	sb.WriteString("|-- ")
	sb.WriteString(n.Kind.String())
	if n.Kind == KindLiteral {
		fmt.Fprintf(sb, " %q", n.Rune)
	}
	sb.WriteByte('\n')
	n.Left.dump(sb, depth+1)
	n.Right.dump(sb, depth+1)
}
