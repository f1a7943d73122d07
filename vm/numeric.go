package vm

import "bytes"

func op1Add(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	n, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	return vm.pushInt64(n+1, true)
}

func op1Sub(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	n, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	return vm.pushInt64(n-1, true)
}

func opNegate(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	n, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	return vm.pushInt64(-n, true)
}

func opAbs(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	n, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	if n < 0 {
		n = -n
	}
	return vm.pushInt64(n, true)
}

func opNot(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	n, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	return vm.pushBool(n == 0, true)
}

func op0NotEqual(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	n, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	return vm.pushBool(n != 0, true)
}

func opAdd(vm *virtualMachine) error {
	return doNumeric2(vm, func(x, y int64) int64 { return x + y })
}

func opSub(vm *virtualMachine) error {
	return doNumeric2(vm, func(x, y int64) int64 { return x - y })
}

func opMul(vm *virtualMachine) error {
	return doNumeric2(vm, func(x, y int64) int64 { return x * y })
}

func opMin(vm *virtualMachine) error {
	return doNumeric2(vm, func(x, y int64) int64 {
		if x < y {
			return x
		}
		return y
	})
}

func opMax(vm *virtualMachine) error {
	return doNumeric2(vm, func(x, y int64) int64 {
		if x > y {
			return x
		}
		return y
	})
}

// doNumeric2 pops y, then x, and pushes f(x, y).
func doNumeric2(vm *virtualMachine, f func(x, y int64) int64) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	y, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	x, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	return vm.pushInt64(f(x, y), true)
}

func opBoolAnd(vm *virtualMachine) error {
	return doLogical2(vm, func(x, y bool) bool { return x && y })
}

func opBoolOr(vm *virtualMachine) error {
	return doLogical2(vm, func(x, y bool) bool { return x || y })
}

func doLogical2(vm *virtualMachine, f func(x, y bool) bool) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	y, err := vm.pop(true)
	if err != nil {
		return err
	}
	x, err := vm.pop(true)
	if err != nil {
		return err
	}
	return vm.pushBool(f(AsBool(x), AsBool(y)), true)
}

func opNumEqual(vm *virtualMachine) error {
	return doComparison(vm, func(x, y int64) bool { return x == y })
}

func opNumEqualVerify(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	y, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	x, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	if x == y {
		return nil
	}
	return ErrVerifyFailed
}

func opNumNotEqual(vm *virtualMachine) error {
	return doComparison(vm, func(x, y int64) bool { return x != y })
}

func opLessThan(vm *virtualMachine) error {
	return doComparison(vm, func(x, y int64) bool { return x < y })
}

func opGreaterThan(vm *virtualMachine) error {
	return doComparison(vm, func(x, y int64) bool { return x > y })
}

func doComparison(vm *virtualMachine, f func(x, y int64) bool) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	y, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	x, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	return vm.pushBool(f(x, y), true)
}

func opWithin(vm *virtualMachine) error {
	err := vm.applyCost(4)
	if err != nil {
		return err
	}
	max, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	min, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	n, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	return vm.pushBool(n >= min && n < max, true)
}

func opEqual(vm *virtualMachine) error {
	res, err := doEqual(vm)
	if err != nil {
		return err
	}
	return vm.pushBool(res, true)
}

func opEqualVerify(vm *virtualMachine) error {
	res, err := doEqual(vm)
	if err != nil {
		return err
	}
	if res {
		return nil
	}
	return ErrVerifyFailed
}

// doEqual compares the top two stack items by exact bytes, never
// numerically.
func doEqual(vm *virtualMachine) (bool, error) {
	err := vm.applyCost(2)
	if err != nil {
		return false, err
	}
	y, err := vm.pop(true)
	if err != nil {
		return false, err
	}
	x, err := vm.pop(true)
	if err != nil {
		return false, err
	}
	return bytes.Equal(x, y), nil
}
