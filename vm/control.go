package vm

func opIf(vm *virtualMachine) error {
	return doIf(vm, false)
}

func opNotIf(vm *virtualMachine) error {
	return doIf(vm, true)
}

func doIf(vm *virtualMachine, negate bool) error {
	err := vm.applyCost(4)
	if err != nil {
		return err
	}
	if len(vm.condStack) > 0 && !vm.condStack[len(vm.condStack)-1] {
		// skip
		vm.condStack = append(vm.condStack, false)
	} else {
		// execute
		p, err := vm.pop(true)
		if err != nil {
			return err
		}
		vm.condStack = append(vm.condStack, AsBool(p) != negate)
	}
	return nil
}

func opElse(vm *virtualMachine) error {
	err := vm.applyCost(4)
	if err != nil {
		return err
	}
	if len(vm.condStack) == 0 {
		return ErrCondStackUnderflow
	}
	v := vm.condStack[len(vm.condStack)-1]
	vm.condStack = append(vm.condStack[:len(vm.condStack)-1], !v)
	return nil
}

func opEndif(vm *virtualMachine) error {
	if len(vm.condStack) == 0 {
		return ErrCondStackUnderflow
	}
	vm.condStack = vm.condStack[:len(vm.condStack)-1]
	return nil
}

func opVerify(vm *virtualMachine) error {
	err := vm.applyCost(1)
	if err != nil {
		return err
	}
	p, err := vm.pop(true)
	if err != nil {
		return err
	}
	if AsBool(p) {
		return nil
	}
	return ErrVerifyFailed
}

func opReturn(_ *virtualMachine) error {
	return ErrReturn
}
