// Package vm implements a deterministic stack machine for the compiled
// script fragments handled by the splitter. Programs are flat byte
// strings of Bitcoin-numbered opcodes; execution is a pure function of
// the program and the initial stack, with a run limit charging for
// computation and stack growth.
package vm

import (
	"fmt"
	"io"
)

// DefaultRunLimit is the run limit used when the caller does not
// supply one. It is sized so that a disprove script verifying two
// committed states and replaying a full shard stays well within it.
const DefaultRunLimit = 1 << 24

// Set this to a non-nil value to produce trace output during
// execution.
var TraceOut io.Writer

type virtualMachine struct {
	program      []byte
	pc, nextPC   uint32
	op           Op
	runLimit     int64
	deferredCost int64

	// Stores the data parsed out of an opcode. Used as input to
	// data-pushing opcodes.
	data []byte

	condStack []bool

	// In each of these stacks, stack[len(stack)-1] is the top element.
	dataStack [][]byte
	altStack  [][]byte
}

// Result holds the final machine state after a program ran to
// completion without error.
type Result struct {
	// OK reports whether the data stack is non-empty with a true
	// value on top, the condition for a predicate to succeed.
	OK bool

	Stack    [][]byte
	AltStack [][]byte

	// Cost is the number of run-limit units consumed.
	Cost int64
}

// Run executes program with args as the initial data stack, args[0]
// deepest, and returns the final stacks. Same program, same args,
// same result, always.
func Run(program []byte, args [][]byte) (*Result, error) {
	return RunLimited(program, args, DefaultRunLimit)
}

// RunLimited is Run with an explicit run limit.
func RunLimited(program []byte, args [][]byte, runLimit int64) (*Result, error) {
	vm := virtualMachine{
		program:  program,
		runLimit: runLimit,
	}

	for _, arg := range args {
		d := make([]byte, len(arg))
		copy(d, arg)
		err := vm.push(d, false)
		if err != nil {
			return nil, err
		}
	}

	ok, err := vm.run()
	if err != nil {
		return nil, err
	}

	return &Result{
		OK:       ok,
		Stack:    vm.dataStack,
		AltStack: vm.altStack,
		Cost:     runLimit - vm.runLimit,
	}, nil
}

func (vm *virtualMachine) run() (bool, error) {
	for vm.pc = 0; vm.pc < uint32(len(vm.program)); { // handle vm.pc updates in the loop
		inst, err := ParseOp(vm.program, vm.pc)
		if err != nil {
			return false, err
		}

		vm.nextPC = vm.pc + inst.Len

		var skip bool
		switch inst.Op {
		case OP_IF, OP_NOTIF, OP_ELSE, OP_ENDIF:
			skip = false
		default:
			skip = len(vm.condStack) > 0 && !vm.condStack[len(vm.condStack)-1]
		}

		if TraceOut != nil {
			opname := inst.Op.String()
			if skip {
				opname = fmt.Sprintf("[%s]", opname)
			}
			fmt.Fprintf(TraceOut, "vm pc %d limit %d %s", vm.pc, vm.runLimit, opname)
			if len(inst.Data) > 0 {
				fmt.Fprintf(TraceOut, " %x", inst.Data)
			}
			fmt.Fprint(TraceOut, "\n")
		}

		if !skip {
			vm.deferredCost = 0
			vm.data = inst.Data
			vm.op = inst.Op
			err := ops[inst.Op].fn(vm)
			if err != nil {
				return false, err
			}
			err = vm.applyCost(vm.deferredCost)
			if err != nil {
				return false, err
			}
		} else {
			vm.applyCost(1)
		}

		vm.pc = vm.nextPC

		if TraceOut != nil && !skip {
			for i := len(vm.dataStack) - 1; i >= 0; i-- {
				fmt.Fprintf(TraceOut, "  stack %d: %x\n", len(vm.dataStack)-1-i, vm.dataStack[i])
			}
		}
	}

	if len(vm.condStack) > 0 {
		return false, ErrNonEmptyCondStack
	}

	res := len(vm.dataStack) > 0 && AsBool(vm.dataStack[len(vm.dataStack)-1])
	return res, nil
}

func (vm *virtualMachine) push(data []byte, deferred bool) error {
	cost := 8 + int64(len(data))
	if deferred {
		vm.deferCost(cost)
	} else {
		err := vm.applyCost(cost)
		if err != nil {
			return err
		}
	}
	vm.dataStack = append(vm.dataStack, data)
	return nil
}

func (vm *virtualMachine) pushBool(b bool, deferred bool) error {
	return vm.push(BoolBytes(b), deferred)
}

func (vm *virtualMachine) pushInt64(n int64, deferred bool) error {
	return vm.push(Int64Bytes(n), deferred)
}

func (vm *virtualMachine) pop(deferred bool) ([]byte, error) {
	if len(vm.dataStack) == 0 {
		return nil, ErrDataStackUnderflow
	}
	res := vm.dataStack[len(vm.dataStack)-1]
	vm.dataStack = vm.dataStack[:len(vm.dataStack)-1]

	cost := 8 + int64(len(res))
	if deferred {
		vm.deferCost(-cost)
	} else {
		vm.runLimit += cost
	}

	return res, nil
}

func (vm *virtualMachine) popInt64(deferred bool) (int64, error) {
	bytes, err := vm.pop(deferred)
	if err != nil {
		return 0, err
	}
	n, err := AsInt64(bytes)
	return n, err
}

func (vm *virtualMachine) top() ([]byte, error) {
	if len(vm.dataStack) == 0 {
		return nil, ErrDataStackUnderflow
	}
	return vm.dataStack[len(vm.dataStack)-1], nil
}

// positive cost decreases runlimit, negative cost increases it
func (vm *virtualMachine) applyCost(n int64) error {
	if n > vm.runLimit {
		return ErrRunLimitExceeded
	}
	vm.runLimit -= n
	return nil
}

func (vm *virtualMachine) deferCost(n int64) {
	vm.deferredCost += n
}
