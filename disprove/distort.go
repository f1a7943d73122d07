package disprove

import (
	"github.com/distributed-lab/bitvm2-splitter/split"
	"github.com/distributed-lab/bitvm2-splitter/vm"
)

// Distort returns a copy of plan in which shard i's exit state has
// its top element replaced with zero, forging the claim for shard i
// (and, when it exists, the entry of shard i+1). States are deep-
// copied; the shards' fragment slices are shared, which is safe
// because fragments are immutable. The copy is the forged claim an
// honest challenger should be able to disprove; everything in plan
// itself stays untouched.
//
// Distort panics if i is out of range or the exit state is empty,
// both programming errors in the caller.
func Distort(plan *split.Plan, i int) *split.Plan {
	if i < 0 || i >= len(plan.Shards) {
		panic("disprove: distorted shard index out of range")
	}
	exit := plan.States[i+1]
	if len(exit) == 0 {
		panic("disprove: cannot distort an empty state")
	}

	forged := &split.Plan{
		Shards: make([]split.Shard, len(plan.Shards)),
		States: make([]split.StackState, len(plan.States)),
	}
	for j := range plan.States {
		forged.States[j] = plan.States[j].Clone()
	}

	bad := forged.States[i+1]
	bad[len(bad)-1] = vm.Int64Bytes(0)

	for j := range plan.Shards {
		forged.Shards[j] = plan.Shards[j]
		forged.Shards[j].Entry = forged.States[j]
		forged.Shards[j].Exit = forged.States[j+1]
	}
	return forged
}
