package split

import (
	"github.com/distributed-lab/bitvm2-splitter/errors"
	"github.com/distributed-lab/bitvm2-splitter/vm"
)

// Fragment is one precompiled unit of a program: an opaque script
// plus the number of stack slots it declares to consume and produce.
// Fragments are immutable once constructed.
type Fragment struct {
	script   []byte
	inArity  int
	outArity int
}

// NewFragment validates script and the declared arities. The script
// must be non-empty and parse cleanly, and when every opcode in it
// has a statically known stack effect, the declared arities must
// agree with that effect. Violations fail with ErrMalformedFragment.
func NewFragment(script []byte, inArity, outArity int) (Fragment, error) {
	if len(script) == 0 {
		return Fragment{}, errors.WithDetail(ErrMalformedFragment, "empty script")
	}
	if inArity < 0 || outArity < 0 {
		return Fragment{}, errors.WithDetail(ErrMalformedFragment, "negative arity")
	}

	delta, minDepth, static, err := scanScript(script)
	if err != nil {
		return Fragment{}, err
	}
	if static {
		if minDepth > inArity {
			return Fragment{}, errors.WithDetailf(ErrMalformedFragment, "reads stack depth %d, declares %d inputs", minDepth, inArity)
		}
		if inArity+delta != outArity {
			return Fragment{}, errors.WithDetailf(ErrMalformedFragment, "stack delta %d inconsistent with arities %d->%d", delta, inArity, outArity)
		}
	}

	f := Fragment{
		script:   append([]byte(nil), script...),
		inArity:  inArity,
		outArity: outArity,
	}
	return f, nil
}

// MustFragment is NewFragment for statically known-good scripts.
func MustFragment(script []byte, inArity, outArity int) Fragment {
	f, err := NewFragment(script, inArity, outArity)
	if err != nil {
		panic(err)
	}
	return f
}

// Script returns the compiled script. Callers must not modify it.
func (f Fragment) Script() []byte {
	return f.script
}

// Weight is the pre-execution size estimate used for budgeting: the
// compiled byte length.
func (f Fragment) Weight() int64 {
	return int64(len(f.script))
}

// InArity returns the declared number of consumed stack slots.
func (f Fragment) InArity() int {
	return f.inArity
}

// OutArity returns the declared number of produced stack slots.
func (f Fragment) OutArity() int {
	return f.outArity
}

// scanScript walks the script without executing it. It returns the
// net stack delta and the deepest input slot referenced. static is
// false when the script contains opcodes whose stack effect cannot be
// known ahead of execution; the caller then has nothing to check the
// arities against.
func scanScript(script []byte) (delta, minDepth int, static bool, err error) {
	static = true
	for pc := uint32(0); pc < uint32(len(script)); {
		inst, err := vm.ParseOp(script, pc)
		if err != nil {
			return 0, 0, false, errors.Wrap(ErrMalformedFragment, err.Error())
		}
		pops, pushes, ok := vm.StackEffect(inst.Op)
		if inst.Data != nil {
			pops, pushes, ok = 0, 1, true
		}
		if !ok {
			static = false
		} else if static {
			if need := pops - delta; need > minDepth {
				minDepth = need
			}
			delta += pushes - pops
		}
		pc += inst.Len
	}
	return delta, minDepth, static, nil
}
