package nfa

import (
	"github.com/cockroachdb/errors"

	"github.com/coregx/pikevm/syntax"
)

// Count returns the number of instructions needed to compile the subtree n,
// not counting the trailing OpMatch:
//
//	Lit, Any           1
//	Concat(l, r)       Count(l) + Count(r)
//	Alt(l, r)          2 + Count(l) + Count(r)
//	Group(x), Star(x)  2 + Count(x)
//	Plus(x), Quest(x)  1 + Count(x)
func Count(n *syntax.Node) int {
	total := 0
	// walk the right spine of concatenations iteratively; long literal runs
	// produce deep spines
	for n != nil && n.Kind == syntax.KindConcat {
		total += Count(n.Left)
		n = n.Right
	}
	if n == nil {
		return total
	}
	switch n.Kind {
	case syntax.KindLiteral, syntax.KindAny:
		return total + 1
	case syntax.KindAlt:
		return total + 2 + Count(n.Left) + Count(n.Right)
	case syntax.KindGroup, syntax.KindStar:
		return total + 2 + Count(n.Left)
	case syntax.KindPlus, syntax.KindQuest:
		return total + 1 + Count(n.Left)
	default:
		panic(errors.AssertionFailedf("nfa: unknown node kind %v", n.Kind))
	}
}

// Compile translates a syntax tree into a Program.
//
// The instruction array is sized up front from Count and filled in a single
// pre-order traversal. Capturing groups take slot pairs in order of their
// opening parenthesis, so the first group records into slots 0 and 1.
// A nil tree compiles to a program that matches the empty string everywhere.
//
// Compile never fails for a tree produced by the parser. A node of unknown
// kind is a programming error and panics.
func Compile(n *syntax.Node) *Program {
	c := &compiler{
		inst: make([]Inst, Count(n)+1),
	}
	c.emit(n)
	c.inst[c.pc] = MatchInst()
	c.pc++
	if c.pc != len(c.inst) {
		panic(errors.AssertionFailedf("nfa: emitted %d instructions, reserved %d", c.pc, len(c.inst)))
	}
	return &Program{
		Inst:      c.inst,
		NumGroups: c.slot / 2,
	}
}

// compiler carries the running state of one Compile call.
type compiler struct {
	inst []Inst
	pc   int // next instruction to write
	slot int // next free capture slot
}

// reserve claims the instruction at the cursor for later patching.
func (c *compiler) reserve() int {
	pc := c.pc
	c.pc++
	return pc
}

func (c *compiler) put(inst Inst) {
	c.inst[c.pc] = inst
	c.pc++
}

func (c *compiler) emit(n *syntax.Node) {
	for n != nil && n.Kind == syntax.KindConcat {
		c.emit(n.Left)
		n = n.Right
	}
	if n == nil {
		return
	}

	switch n.Kind {
	case syntax.KindLiteral:
		c.put(CharInst(n.Rune))

	case syntax.KindAny:
		c.put(AnyInst())

	case syntax.KindAlt:
		// L0: SPLIT L1, L2
		// L1: <left>
		//     JMP L3
		// L2: <right>
		// L3:
		split := c.reserve()
		c.emit(n.Left)
		jmp := c.reserve()
		c.inst[split] = SplitInst(split+1, c.pc)
		c.emit(n.Right)
		c.inst[jmp] = JmpInst(c.pc)

	case syntax.KindGroup:
		s := c.slot
		c.slot += 2
		c.put(SaveInst(s))
		c.emit(n.Left)
		c.put(SaveInst(s + 1))

	case syntax.KindStar:
		// L0: SPLIT L1, L2
		// L1: <body>
		//     JMP L0
		// L2:
		split := c.reserve()
		c.emit(n.Left)
		c.put(JmpInst(split))
		c.inst[split] = SplitInst(split+1, c.pc)

	case syntax.KindPlus:
		// L0: <body>
		//     SPLIT L0, L1
		// L1:
		body := c.pc
		c.emit(n.Left)
		c.put(SplitInst(body, c.pc+1))

	case syntax.KindQuest:
		// L0: SPLIT L1, L2
		// L1: <body>
		// L2:
		split := c.reserve()
		c.emit(n.Left)
		c.inst[split] = SplitInst(split+1, c.pc)

	default:
		panic(errors.AssertionFailedf("nfa: unknown node kind %v", n.Kind))
	}
}
