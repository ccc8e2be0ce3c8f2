// Package nfa compiles syntax trees into Thompson NFA bytecode and runs the
// bytecode with a Pike VM.
//
// A Program is a flat, index-addressed instruction array. The PikeVM
// simulates every live execution path ("thread") of a Program in lockstep,
// one input character per step, so a search takes O(len(program) * len(input))
// time regardless of the pattern. Threads are kept in priority order, which
// decides the capture groups reported when several paths produce the same
// overall match.
package nfa

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrInvalidProgram indicates a Program that violates the bytecode
// invariants. Compile never produces one; seeing it means a compiler bug or a
// hand-built Program.
var ErrInvalidProgram = errors.New("invalid program")

// ProgramError describes the first invariant violation found by Validate.
type ProgramError struct {
	PC      int
	Message string
}

// Error implements the error interface.
func (e *ProgramError) Error() string {
	if e.PC >= 0 {
		return fmt.Sprintf("%v at I%d: %s", ErrInvalidProgram, e.PC, e.Message)
	}
	return fmt.Sprintf("%v: %s", ErrInvalidProgram, e.Message)
}

// Unwrap returns ErrInvalidProgram.
func (e *ProgramError) Unwrap() error {
	return ErrInvalidProgram
}
