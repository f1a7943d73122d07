package vm

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcutil"
)

func opSha256(vm *virtualMachine) error {
	return doHash(vm, func(b []byte) []byte {
		h := sha256.Sum256(b)
		return h[:]
	})
}

func opHash160(vm *virtualMachine) error {
	return doHash(vm, btcutil.Hash160)
}

func opHash256(vm *virtualMachine) error {
	return doHash(vm, func(b []byte) []byte {
		h := sha256.Sum256(b)
		h = sha256.Sum256(h[:])
		return h[:]
	})
}

func doHash(vm *virtualMachine, f func([]byte) []byte) error {
	x, err := vm.pop(false)
	if err != nil {
		return err
	}
	cost := int64(64)
	if int64(len(x)) > cost {
		cost = int64(len(x))
	}
	err = vm.applyCost(cost)
	if err != nil {
		return err
	}
	return vm.push(f(x), false)
}
