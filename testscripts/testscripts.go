// Package testscripts provides a small library of primitive fragments
// used by tests and examples: arithmetic steps whose boundary states
// are committable numeric values.
package testscripts

import (
	"bytes"

	"github.com/distributed-lab/bitvm2-splitter/split"
	"github.com/distributed-lab/bitvm2-splitter/vm"
)

// Add consumes two values and produces their sum.
func Add() split.Fragment {
	return mustFragment("ADD", 2, 1)
}

// Sub consumes two values and produces their difference.
func Sub() split.Fragment {
	return mustFragment("SUB", 2, 1)
}

// Double consumes one value and produces twice it.
func Double() split.Fragment {
	return mustFragment("DUP ADD", 1, 1)
}

// Square consumes one value and produces its square.
func Square() split.Fragment {
	return mustFragment("DUP MUL", 1, 1)
}

// SquareFib is one step of the square-Fibonacci sequence: it maps
// (x, y) to (y, x²+y²).
func SquareFib() split.Fragment {
	return mustFragment("SWAP DUP MUL OVER DUP MUL ADD", 2, 2)
}

// PushInt produces n from nothing.
func PushInt(n int64) split.Fragment {
	return split.MustFragment(vm.PushdataInt64(n), 0, 1)
}

// Nops returns a do-nothing fragment of exactly the given weight,
// handy for exercising budget arithmetic.
func Nops(weight int) split.Fragment {
	return split.MustFragment(bytes.Repeat([]byte{byte(vm.OP_NOP)}, weight), 0, 0)
}

func mustFragment(src string, in, out int) split.Fragment {
	prog, err := vm.Compile(src)
	if err != nil {
		panic(err)
	}
	return split.MustFragment(prog, in, out)
}
