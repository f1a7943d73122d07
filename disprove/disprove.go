// Package disprove synthesizes, for every shard of a split plan, the
// script a challenger spends to prove that the shard's claimed exit
// state is not what its fragments actually compute. The script
// verifies the one-time signatures opening both boundary states,
// replays the shard on the disclosed entry state, and succeeds only
// if the replayed output differs from the disclosed exit state: under
// an honest claim it is unspendable.
package disprove

import (
	"github.com/distributed-lab/bitvm2-splitter/errors"
	"github.com/distributed-lab/bitvm2-splitter/split"
	"github.com/distributed-lab/bitvm2-splitter/vm"
	"github.com/distributed-lab/bitvm2-splitter/vmutil"
	"github.com/distributed-lab/bitvm2-splitter/winternitz"
)

var (
	// ErrKeyCountMismatch is returned when the supplied commitment
	// keys do not line up with the plan, a caller-configuration
	// fault.
	ErrKeyCountMismatch = errors.New("commitment key count does not match plan")

	// ErrUncommittableElement is returned when a boundary state
	// element is not a minimally-encoded number in [0, 2^31-1], the
	// only form the commitment scheme signs.
	ErrUncommittableElement = errors.New("state element not committable as a 31-bit value")

	// ErrEmptyState is returned for a shard whose exit state has no
	// elements; there is nothing to disprove against.
	ErrEmptyState = errors.New("empty exit state")
)

// StateKeys holds one commitment public key per state element,
// deepest element first.
type StateKeys []winternitz.PublicKey

// KeyPair is the per-shard pair of state keys a disprove script
// references.
type KeyPair struct {
	Entry StateKeys
	Exit  StateKeys
}

// Artifact is the per-shard output of Generate, ready for script
// tree assembly. Artifact i corresponds to shard i.
type Artifact struct {
	Script []byte
	Entry  StateKeys
	Exit   StateKeys
	Index  int
}

// Generate synthesizes one disprove script per shard. It fails
// atomically: either every shard's artifact is returned or none.
func Generate(plan *split.Plan, keys []KeyPair) ([]Artifact, error) {
	if len(keys) != len(plan.Shards) {
		return nil, errors.WithDetailf(ErrKeyCountMismatch, "%d key pairs for %d shards", len(keys), len(plan.Shards))
	}

	artifacts := make([]Artifact, 0, len(plan.Shards))
	for i := range plan.Shards {
		script, err := shardScript(&plan.Shards[i], keys[i])
		if err != nil {
			return nil, errors.Wrapf(err, "shard %d", i)
		}
		artifacts = append(artifacts, Artifact{
			Script: script,
			Entry:  keys[i].Entry,
			Exit:   keys[i].Exit,
			Index:  i,
		})
	}
	return artifacts, nil
}

func shardScript(sh *split.Shard, keys KeyPair) ([]byte, error) {
	// Both states must be committable before any script references
	// their keys.
	if _, err := limbValues(sh.Entry); err != nil {
		return nil, err
	}
	if _, err := limbValues(sh.Exit); err != nil {
		return nil, err
	}
	if len(sh.Exit) == 0 {
		return nil, ErrEmptyState
	}
	if len(keys.Entry) != len(sh.Entry) || len(keys.Exit) != len(sh.Exit) {
		return nil, errors.WithDetailf(ErrKeyCountMismatch, "%d/%d keys for %d/%d state elements",
			len(keys.Entry), len(keys.Exit), len(sh.Entry), len(sh.Exit))
	}

	n, m := len(sh.Entry), len(sh.Exit)
	b := vmutil.NewBuilder()

	// Open the claimed exit state; its elements park on the altstack
	// until the shard has been replayed.
	for j := m - 1; j >= 0; j-- {
		b.AddRaw(winternitz.ChecksigScript(keys.Exit[j]))
		b.AddRaw(winternitz.RecoveryScript())
		b.AddOp(vm.OP_TOALTSTACK)
	}

	// Open the entry state and lay it out as the shard's stack,
	// deepest element first.
	for j := n - 1; j >= 0; j-- {
		b.AddRaw(winternitz.ChecksigScript(keys.Entry[j]))
		b.AddRaw(winternitz.RecoveryScript())
		b.AddOp(vm.OP_TOALTSTACK)
	}
	for j := 0; j < n; j++ {
		b.AddOp(vm.OP_FROMALTSTACK)
	}

	// Replay the shard on the disclosed entry state.
	b.AddRaw(sh.Script())

	// Retrieve the claimed exit state and compare. The script is
	// spendable iff the two differ somewhere.
	for j := 0; j < m; j++ {
		b.AddOp(vm.OP_FROMALTSTACK)
	}
	longNotEqual(b, m)

	return b.Program, nil
}

// longNotEqual compares two groups of m stack items pairwise and
// leaves 1 iff any pair differs. Expects the stack to hold the first
// group, then the second group above it.
func longNotEqual(b *vmutil.Builder, m int) {
	for k := 0; k < m; k++ {
		b.AddInt64(int64(m - k)).AddOp(vm.OP_ROLL)
		b.AddOp(vm.OP_EQUAL).AddOp(vm.OP_NOT).AddOp(vm.OP_TOALTSTACK)
	}
	b.AddOp(vm.OP_FROMALTSTACK)
	for k := 1; k < m; k++ {
		b.AddOp(vm.OP_FROMALTSTACK).AddOp(vm.OP_BOOLOR)
	}
}

// limbValues interprets every element of st as a committable message
// value. Elements must be the minimal encoding of a number in
// [0, MaxMessage]; anything else cannot round-trip through a
// commitment opening and is rejected.
func limbValues(st split.StackState) ([]uint32, error) {
	vals := make([]uint32, len(st))
	for j, e := range st {
		v, err := vm.AsInt64(e)
		if err != nil {
			return nil, errors.WithDetailf(ErrUncommittableElement, "element %d", j)
		}
		if v < 0 || v > winternitz.MaxMessage {
			return nil, errors.WithDetailf(ErrUncommittableElement, "element %d value %d", j, v)
		}
		if string(vm.Int64Bytes(v)) != string(e) {
			return nil, errors.WithDetailf(ErrUncommittableElement, "element %d not minimally encoded", j)
		}
		vals[j] = uint32(v)
	}
	return vals, nil
}
