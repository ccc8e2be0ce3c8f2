package nfa

import (
	"sync"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/coregx/pikevm/internal/conv"
	"github.com/coregx/pikevm/internal/sparse"
)

// Prefilter reports candidate match starts. Find returns the smallest offset
// >= start at which a match could begin, or -1 if none can. It must never
// skip a real match start.
type Prefilter interface {
	Find(haystack string, start int) int
}

// Match is the result of a successful search.
type Match struct {
	// Start and End delimit the overall match as byte offsets.
	Start int
	End   int

	// Slots holds the capture offsets, two per group. Unset slots are -1.
	Slots []int
}

// Group returns the byte span of capturing group k (1-based).
// ok is false if the group did not take part in the match or does not exist.
func (m *Match) Group(k int) (start, end int, ok bool) {
	i := 2 * (k - 1)
	if k < 1 || i+1 >= len(m.Slots) {
		return -1, -1, false
	}
	start, end = m.Slots[i], m.Slots[i+1]
	if start < 0 || end < 0 {
		return -1, -1, false
	}
	return start, end, true
}

// PikeVM executes a Program over input text.
//
// Every input position is a potential match start; the VM seeds a new thread
// at each position until a match is found and runs all threads in lockstep.
// Among all matches it reports the leftmost, and among those starting there
// the longest. The greedy flag only reorders split branches, so it changes
// which capture offsets are recorded when several paths produce the same
// span, never the span itself.
//
// A PikeVM is safe for concurrent use. Per-search state is taken from an
// internal pool.
type PikeVM struct {
	prog      *Program
	prefilter Prefilter
	pool      sync.Pool
}

// Option configures a PikeVM.
type Option func(*PikeVM)

// WithPrefilter makes the VM seed new threads only at positions reported by
// pf and skip ahead to the next candidate when no thread is alive.
func WithPrefilter(pf Prefilter) Option {
	return func(p *PikeVM) {
		p.prefilter = pf
	}
}

// NewPikeVM creates a VM for prog. prog must not be modified afterwards.
func NewPikeVM(prog *Program, opts ...Option) *PikeVM {
	p := &PikeVM{prog: prog}
	for _, opt := range opts {
		opt(p)
	}
	p.pool.New = func() any {
		return p.newState()
	}
	return p
}

// Program returns the program executed by the VM.
func (p *PikeVM) Program() *Program {
	return p.prog
}

// Search is a convenience wrapper that builds a VM for prog and searches the
// whole subject.
func Search(prog *Program, subject string, greedy bool) *Match {
	return NewPikeVM(prog).Search(subject, greedy)
}

// thread is one candidate execution path. Slots are never modified in place:
// OpSave makes a copy, so threads forked by OpSplit may share them.
type thread struct {
	pc    int
	start int
	slots []int
}

// threadQueue is an ordered set of threads for one input offset. A pc is
// added at most once; the first (highest priority) arrival wins.
type threadQueue struct {
	visited *sparse.SparseSet
	threads []thread
}

func (q *threadQueue) reset() {
	q.visited.Clear()
	q.threads = q.threads[:0]
}

// searchState is the mutable state of one search.
type searchState struct {
	clist threadQueue
	nlist threadQueue
	stack []thread

	// empty is the slot vector of a freshly seeded thread. Shared, never written.
	empty []int
}

func (p *PikeVM) newState() *searchState {
	n := p.prog.Len()
	capacity := n
	if capacity < 16 {
		capacity = 16
	}
	st := &searchState{
		clist: threadQueue{
			visited: sparse.NewSparseSet(conv.IntToUint32(n)),
			threads: make([]thread, 0, capacity),
		},
		nlist: threadQueue{
			visited: sparse.NewSparseSet(conv.IntToUint32(n)),
			threads: make([]thread, 0, capacity),
		},
		stack: make([]thread, 0, capacity),
	}
	if slots := p.prog.NumSlots(); slots > 0 {
		st.empty = make([]int, slots)
		for i := range st.empty {
			st.empty[i] = -1
		}
	}
	return st
}

// Search finds the leftmost-longest match in subject.
// It returns nil if there is no match.
func (p *PikeVM) Search(subject string, greedy bool) *Match {
	return p.SearchAt(subject, 0, greedy)
}

// SearchAt is like Search but only considers matches starting at or after
// byte offset at. It returns nil if at is out of range.
func (p *PikeVM) SearchAt(subject string, at int, greedy bool) *Match {
	if at < 0 || at > len(subject) {
		return nil
	}

	st, _ := p.pool.Get().(*searchState)
	defer p.pool.Put(st)

	clist, nlist := &st.clist, &st.nlist
	clist.reset()
	nlist.reset()

	bestStart, bestEnd := -1, -1
	var bestSlots []int

	cand := at
	if p.prefilter != nil {
		cand = p.prefilter.Find(subject, at)
	}

	pos := at
	for {
		if bestStart == -1 {
			if p.prefilter == nil {
				p.addThread(st, clist, 0, pos, pos, st.empty, greedy)
			} else {
				if cand >= 0 && cand < pos {
					cand = p.prefilter.Find(subject, pos)
				}
				if cand == pos {
					p.addThread(st, clist, 0, pos, pos, st.empty, greedy)
				}
			}
		}

		if len(clist.threads) == 0 {
			if bestStart != -1 || pos >= len(subject) {
				break
			}
			if p.prefilter != nil {
				if cand < 0 {
					break
				}
				clist.reset()
				pos = cand
				continue
			}
		}

		var r rune
		w := 0
		if pos < len(subject) {
			r, w = utf8.DecodeRuneInString(subject[pos:])
		}

		for _, t := range clist.threads {
			// threads are ordered by start; later ones cannot beat the best
			if bestStart != -1 && t.start > bestStart {
				break
			}
			inst := &p.prog.Inst[t.pc]
			switch inst.Op {
			case OpMatch:
				if isBetterMatch(bestStart, bestEnd, t.start, pos) {
					bestStart, bestEnd = t.start, pos
					bestSlots = t.slots
				}
			case OpChar:
				if w > 0 && r == inst.Rune {
					p.addThread(st, nlist, t.pc+1, t.start, pos+w, t.slots, greedy)
				}
			case OpAny:
				if w > 0 {
					p.addThread(st, nlist, t.pc+1, t.start, pos+w, t.slots, greedy)
				}
			default:
				panic(errors.AssertionFailedf("nfa: thread parked on %v at I%d", inst.Op, t.pc))
			}
		}

		if pos >= len(subject) {
			break
		}
		clist, nlist = nlist, clist
		nlist.reset()
		pos += w
	}

	if bestStart == -1 {
		return nil
	}
	m := &Match{Start: bestStart, End: bestEnd}
	if bestSlots != nil {
		m.Slots = make([]int, len(bestSlots))
		copy(m.Slots, bestSlots)
	}
	return m
}

// isBetterMatch reports whether a match at [candStart, candEnd) replaces the
// current best: leftmost start wins, then the longest end at that start.
func isBetterMatch(bestStart, bestEnd, candStart, candEnd int) bool {
	if bestStart == -1 {
		return true
	}
	if candStart != bestStart {
		return candStart < bestStart
	}
	return candEnd > bestEnd
}

// addThread adds the epsilon closure of pc to q in priority order.
//
// The closure is computed with an explicit stack: the walk follows the
// preferred branch of each split directly and pushes the other, so the
// threads land in q in the same order a depth-first recursion would produce.
// Instructions already present in q are skipped, which also cuts epsilon
// cycles through empty loop bodies.
func (p *PikeVM) addThread(st *searchState, q *threadQueue, pc, start, pos int, slots []int, greedy bool) {
	st.stack = append(st.stack[:0], thread{pc: pc, start: start, slots: slots})
	for len(st.stack) > 0 {
		t := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]
		pc, slots := t.pc, t.slots

		for q.visited.Insert(conv.IntToUint32(pc)) {
			inst := &p.prog.Inst[pc]
			switch inst.Op {
			case OpJmp:
				pc = inst.X
				continue
			case OpSplit:
				first, second := inst.X, inst.Y
				if !greedy {
					first, second = second, first
				}
				st.stack = append(st.stack, thread{pc: second, start: start, slots: slots})
				pc = first
				continue
			case OpSave:
				if inst.Slot < 0 || inst.Slot >= len(slots) {
					panic(errors.AssertionFailedf("nfa: slot %d out of range at I%d", inst.Slot, pc))
				}
				updated := make([]int, len(slots))
				copy(updated, slots)
				updated[inst.Slot] = pos
				slots = updated
				pc++
				continue
			case OpChar, OpAny, OpMatch:
				q.threads = append(q.threads, thread{pc: pc, start: start, slots: slots})
			default:
				panic(errors.AssertionFailedf("nfa: unknown opcode %v at I%d", inst.Op, pc))
			}
			break
		}
	}
}
