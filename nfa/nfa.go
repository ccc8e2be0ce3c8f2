package nfa

import (
	"fmt"
	"strings"
)

// Op is an instruction opcode.
type Op uint8

const (
	// OpChar consumes one character equal to Inst.Rune.
	OpChar Op = iota

	// OpAny consumes any one character.
	OpAny

	// OpJmp continues at Inst.X without consuming input.
	OpJmp

	// OpSplit forks into Inst.X and Inst.Y without consuming input.
	// X is the "enter/repeat/take left branch" side.
	OpSplit

	// OpSave records the current input offset in capture slot Inst.Slot and
	// continues at the next instruction.
	OpSave

	// OpMatch reports a complete match.
	OpMatch
)

// String returns the mnemonic of the opcode.
func (op Op) String() string {
	switch op {
	case OpChar:
		return "CHAR"
	case OpAny:
		return "ANY"
	case OpJmp:
		return "JMP"
	case OpSplit:
		return "SPLIT"
	case OpSave:
		return "SAVE"
	case OpMatch:
		return "MATCH"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// Inst is a single bytecode instruction. Only the fields used by Op are set.
type Inst struct {
	Op   Op
	Rune rune // OpChar
	X    int  // OpJmp target, first OpSplit branch
	Y    int  // second OpSplit branch
	Slot int  // OpSave
}

// CharInst returns an OpChar instruction for c.
func CharInst(c rune) Inst { return Inst{Op: OpChar, Rune: c} }

// AnyInst returns an OpAny instruction.
func AnyInst() Inst { return Inst{Op: OpAny} }

// JmpInst returns an OpJmp instruction to target.
func JmpInst(target int) Inst { return Inst{Op: OpJmp, X: target} }

// SplitInst returns an OpSplit instruction forking to x and y.
func SplitInst(x, y int) Inst { return Inst{Op: OpSplit, X: x, Y: y} }

// SaveInst returns an OpSave instruction for slot.
func SaveInst(slot int) Inst { return Inst{Op: OpSave, Slot: slot} }

// MatchInst returns an OpMatch instruction.
func MatchInst() Inst { return Inst{Op: OpMatch} }

// IsEpsilon reports whether the instruction moves without consuming input.
func (i Inst) IsEpsilon() bool {
	return i.Op == OpJmp || i.Op == OpSplit || i.Op == OpSave
}

// String returns a readable form such as "SPLIT I1 I3" or "CHAR 'a'".
func (i Inst) String() string {
	switch i.Op {
	case OpChar:
		return fmt.Sprintf("CHAR %q", i.Rune)
	case OpJmp:
		return fmt.Sprintf("JMP I%d", i.X)
	case OpSplit:
		return fmt.Sprintf("SPLIT I%d I%d", i.X, i.Y)
	case OpSave:
		return fmt.Sprintf("SAVE %d", i.Slot)
	default:
		return i.Op.String()
	}
}

// Program is compiled bytecode. The program counter is an index into Inst.
//
// A Program is immutable after Compile and may be shared by any number of
// concurrent searches.
type Program struct {
	Inst []Inst

	// NumGroups is the number of capturing groups. Group k (1-based) records
	// its span in slots 2(k-1) and 2(k-1)+1.
	NumGroups int
}

// Len returns the number of instructions, including the final OpMatch.
func (p *Program) Len() int {
	return len(p.Inst)
}

// NumSlots returns the number of capture slots a thread carries.
func (p *Program) NumSlots() int {
	return 2 * p.NumGroups
}

// Validate checks the bytecode invariants: the program ends in OpMatch,
// every jump and split target is in bounds and every saved slot is below
// NumSlots.
func (p *Program) Validate() error {
	n := len(p.Inst)
	if n == 0 {
		return &ProgramError{PC: -1, Message: "empty program"}
	}
	if p.Inst[n-1].Op != OpMatch {
		return &ProgramError{PC: n - 1, Message: "last instruction is not MATCH"}
	}
	inBounds := func(pc int) bool { return pc >= 0 && pc < n }
	for pc, inst := range p.Inst {
		switch inst.Op {
		case OpChar, OpAny, OpMatch:
		case OpJmp:
			if !inBounds(inst.X) {
				return &ProgramError{PC: pc, Message: fmt.Sprintf("jump target I%d out of range", inst.X)}
			}
		case OpSplit:
			if !inBounds(inst.X) || !inBounds(inst.Y) {
				return &ProgramError{PC: pc, Message: fmt.Sprintf("split targets I%d, I%d out of range", inst.X, inst.Y)}
			}
		case OpSave:
			if inst.Slot < 0 || inst.Slot >= p.NumSlots() {
				return &ProgramError{PC: pc, Message: fmt.Sprintf("slot %d out of range", inst.Slot)}
			}
		default:
			return &ProgramError{PC: pc, Message: fmt.Sprintf("unknown opcode %v", inst.Op)}
		}
	}
	return nil
}

// String dumps the program one instruction per line:
//
//	I0: SPLIT I1 I3
//	I1: CHAR 'a'
//	I2: JMP I4
//	I3: ANY
//	I4: MATCH
func (p *Program) String() string {
	var sb strings.Builder
	for pc, inst := range p.Inst {
		fmt.Fprintf(&sb, "I%d: %v\n", pc, inst)
	}
	return sb.String()
}
