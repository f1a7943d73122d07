package vm

func opToAltStack(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	if len(vm.dataStack) == 0 {
		return ErrDataStackUnderflow
	}
	// Cost is unchanged: the item moves from one stack to the other.
	vm.altStack = append(vm.altStack, vm.dataStack[len(vm.dataStack)-1])
	vm.dataStack = vm.dataStack[:len(vm.dataStack)-1]
	return nil
}

func opFromAltStack(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	if len(vm.altStack) == 0 {
		return ErrAltStackUnderflow
	}
	vm.dataStack = append(vm.dataStack, vm.altStack[len(vm.altStack)-1])
	vm.altStack = vm.altStack[:len(vm.altStack)-1]
	return nil
}

func op2Drop(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		_, err = vm.pop(true)
		if err != nil {
			return err
		}
	}
	return nil
}

func op2Dup(vm *virtualMachine) error {
	return nDup(vm, 2)
}

func nDup(vm *virtualMachine, n int) error {
	err := vm.applyCost(int64(n))
	if err != nil {
		return err
	}
	if len(vm.dataStack) < n {
		return ErrDataStackUnderflow
	}
	for i := 0; i < n; i++ {
		err = vm.push(vm.dataStack[len(vm.dataStack)-n], true)
		if err != nil {
			return err
		}
	}
	return nil
}

func opDepth(vm *virtualMachine) error {
	err := vm.applyCost(1)
	if err != nil {
		return err
	}
	return vm.pushInt64(int64(len(vm.dataStack)), true)
}

func opDrop(vm *virtualMachine) error {
	err := vm.applyCost(1)
	if err != nil {
		return err
	}
	_, err = vm.pop(true)
	return err
}

func opDup(vm *virtualMachine) error {
	return nDup(vm, 1)
}

func opNip(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	top, err := vm.pop(true)
	if err != nil {
		return err
	}
	_, err = vm.pop(true)
	if err != nil {
		return err
	}
	return vm.push(top, true)
}

func opOver(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	if len(vm.dataStack) < 2 {
		return ErrDataStackUnderflow
	}
	return vm.push(vm.dataStack[len(vm.dataStack)-2], true)
}

func opPick(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	n, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	if n < 0 {
		return ErrBadValue
	}
	if int64(len(vm.dataStack)) <= n {
		return ErrDataStackUnderflow
	}
	return vm.push(vm.dataStack[int64(len(vm.dataStack))-1-n], true)
}

func opRoll(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	n, err := vm.popInt64(true)
	if err != nil {
		return err
	}
	if n < 0 {
		return ErrBadValue
	}
	if int64(len(vm.dataStack)) <= n {
		return ErrDataStackUnderflow
	}
	err = vm.applyCost(n)
	if err != nil {
		return err
	}
	i := int64(len(vm.dataStack)) - 1 - n
	d := vm.dataStack[i]
	vm.dataStack = append(vm.dataStack[:i], vm.dataStack[i+1:]...)
	vm.dataStack = append(vm.dataStack, d)
	return nil
}

func opRot(vm *virtualMachine) error {
	err := vm.applyCost(3)
	if err != nil {
		return err
	}
	if len(vm.dataStack) < 3 {
		return ErrDataStackUnderflow
	}
	i := len(vm.dataStack) - 3
	d := vm.dataStack[i]
	vm.dataStack = append(vm.dataStack[:i], vm.dataStack[i+1:]...)
	vm.dataStack = append(vm.dataStack, d)
	return nil
}

func opSwap(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	l := len(vm.dataStack)
	if l < 2 {
		return ErrDataStackUnderflow
	}
	vm.dataStack[l-1], vm.dataStack[l-2] = vm.dataStack[l-2], vm.dataStack[l-1]
	return nil
}

func opTuck(vm *virtualMachine) error {
	err := vm.applyCost(2)
	if err != nil {
		return err
	}
	top, err := vm.pop(true)
	if err != nil {
		return err
	}
	next, err := vm.pop(true)
	if err != nil {
		return err
	}
	for _, d := range [][]byte{top, next, top} {
		err = vm.push(d, true)
		if err != nil {
			return err
		}
	}
	return nil
}

func opSize(vm *virtualMachine) error {
	err := vm.applyCost(1)
	if err != nil {
		return err
	}
	top, err := vm.top()
	if err != nil {
		return err
	}
	return vm.pushInt64(int64(len(top)), true)
}
