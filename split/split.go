// Package split partitions a fragment program into shards whose
// compiled size respects the network's script budget, and computes the
// boundary states linking them. The split is greedy and therefore a
// pure, reproducible function of its inputs: prover and challenger
// re-derive the identical plan without coordinating.
package split

import (
	"github.com/distributed-lab/bitvm2-splitter/errors"
)

// DefaultOverhead is the fixed per-shard script weight reserved for
// disclosing and verifying the two committed boundary states inside a
// disprove script. The value is a protocol constant derived from the
// commitment scheme's verification script cost; both parties must use
// the same one.
const DefaultOverhead = 2048

// Executor runs a compiled fragment sequence on an entry stack. It
// must be deterministic: the same program and entry always produce
// the same exit stack or the same failure.
type Executor interface {
	Execute(prog []byte, entry [][]byte) ([][]byte, error)
}

// Program is a complete description of the computation to split: the
// fragments in order, the declared input stack, and the output stack
// the prover claims the program ends in.
type Program struct {
	Fragments []Fragment
	Input     StackState
	Output    StackState
}

// Shard is a contiguous run of fragments small enough to replay
// inside a single disprove script, together with the states at its
// ends.
type Shard struct {
	Fragments []Fragment
	Entry     StackState
	Exit      StackState

	// Weight is the compiled size of the fragments plus the fixed
	// per-shard overhead. Never exceeds the splitter's budget.
	Weight int64
}

// Script returns the shard's fragments concatenated into one program.
func (sh *Shard) Script() []byte {
	var prog []byte
	for _, f := range sh.Fragments {
		prog = append(prog, f.Script()...)
	}
	return prog
}

// Plan is the canonical artifact both parties must agree on
// bit-for-bit: the ordered shards and the full boundary state
// sequence z_0 … z_n. Never mutated after construction.
type Plan struct {
	Shards []Shard

	// States holds z_0 … z_n; States[i] is the entry of shard i and
	// States[i+1] its exit.
	States []StackState
}

// Splitter carries the split parameters. The zero Overhead means
// DefaultOverhead.
type Splitter struct {
	X         Executor
	MaxWeight int64
	Overhead  int64
}

// NewSplitter returns a Splitter with the protocol's default
// overhead.
func NewSplitter(x Executor, maxWeight int64) *Splitter {
	return &Splitter{X: x, MaxWeight: maxWeight, Overhead: DefaultOverhead}
}

// Split partitions prog greedily: fragments are appended to the
// current shard until the next one would push its weight past the
// budget, at which point the shard is closed, executed to obtain its
// exit state, and a new shard begins. Closing the final shard checks
// the executed output against the declared one.
//
// The result is complete or the error is fatal; Split never returns a
// partial plan.
func (s *Splitter) Split(prog Program) (*Plan, error) {
	overhead := s.Overhead
	if overhead == 0 {
		overhead = DefaultOverhead
	}
	if s.MaxWeight <= overhead {
		return nil, errors.WithDetailf(ErrBudgetTooSmall, "max weight %d, overhead %d", s.MaxWeight, overhead)
	}
	if len(prog.Fragments) == 0 {
		return nil, ErrEmptyProgram
	}

	// Budget for fragment bytes alone.
	budget := s.MaxWeight - overhead

	plan := &Plan{States: []StackState{prog.Input.Clone()}}

	// The input state must itself be encodable, or no commitment can
	// ever cover it.
	_, err := EncodeState(prog.Input)
	if err != nil {
		return nil, err
	}

	var (
		cur     []Fragment
		curW    int64
		entry   = prog.Input.Clone()
		closeFn = func() error {
			sh := Shard{Fragments: cur, Entry: entry, Weight: curW + overhead}
			exit, err := s.X.Execute(sh.Script(), entry)
			if err != nil {
				return errors.Wrapf(err, "executing shard %d", len(plan.Shards))
			}
			sh.Exit = StackState(exit).Clone()
			_, err = EncodeState(sh.Exit)
			if err != nil {
				return errors.Wrapf(err, "exit state of shard %d", len(plan.Shards))
			}
			plan.Shards = append(plan.Shards, sh)
			plan.States = append(plan.States, sh.Exit)
			entry = sh.Exit
			cur, curW = nil, 0
			return nil
		}
	)

	for i, f := range prog.Fragments {
		w := f.Weight()
		if w > budget {
			return nil, errors.WithDetailf(ErrFragmentTooLarge, "fragment %d weighs %d, budget %d after overhead", i, w, budget)
		}
		if curW+w > budget {
			err := closeFn()
			if err != nil {
				return nil, err
			}
		}
		cur = append(cur, f)
		curW += w
	}
	err = closeFn()
	if err != nil {
		return nil, err
	}

	if !plan.States[len(plan.States)-1].Equal(prog.Output) {
		return nil, errors.WithDetailf(ErrExecutionMismatch, "after %d shards", len(plan.Shards))
	}

	return plan, nil
}

// TotalStatesSize returns the total element count across all boundary
// states.
func (p *Plan) TotalStatesSize() int {
	var total int
	for _, st := range p.States {
		total += len(st)
	}
	return total
}

// MaxStatesSize returns the largest boundary state's element count.
func (p *Plan) MaxStatesSize() int {
	var max int
	for _, st := range p.States {
		if len(st) > max {
			max = len(st)
		}
	}
	return max
}

// MaxAdjacentStatesSize returns the largest combined element count of
// two adjacent boundary states, the pair a single disprove script
// must disclose.
func (p *Plan) MaxAdjacentStatesSize() int {
	var max int
	for i := 0; i+1 < len(p.States); i++ {
		if n := len(p.States[i]) + len(p.States[i+1]); n > max {
			max = n
		}
	}
	return max
}

// perElementCommitCost approximates the opcode footprint of
// disclosing and verifying one committed state element inside a
// disprove script.
const perElementCommitCost = 700

// ComplexityIndex returns the approximate worst-case size of any
// single disprove script under this plan: the shard replay plus the
// commitment verification of its two boundary states.
func (p *Plan) ComplexityIndex() int {
	var worst int
	for i := range p.Shards {
		n := len(p.Shards[i].Script()) +
			(len(p.States[i])+len(p.States[i+1]))*perElementCommitCost
		if n > worst {
			worst = n
		}
	}
	return worst
}
