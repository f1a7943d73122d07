// Package vmutil provides a convenience builder for assembling
// programs out of opcodes, data pushes, and precompiled pieces.
package vmutil

import "github.com/distributed-lab/bitvm2-splitter/vm"

type Builder struct {
	Program []byte
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) AddInt64(n int64) *Builder {
	b.Program = append(b.Program, vm.PushdataInt64(n)...)
	return b
}

func (b *Builder) AddData(data []byte) *Builder {
	b.Program = append(b.Program, vm.PushdataBytes(data)...)
	return b
}

func (b *Builder) AddOp(op vm.Op) *Builder {
	b.Program = append(b.Program, byte(op))
	return b
}

// AddRaw appends an already-compiled program without re-encoding it.
func (b *Builder) AddRaw(prog []byte) *Builder {
	b.Program = append(b.Program, prog...)
	return b
}
