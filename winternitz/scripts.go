package winternitz

import (
	"github.com/distributed-lab/bitvm2-splitter/vm"
	"github.com/distributed-lab/bitvm2-splitter/vmutil"
)

// In-script counterparts of Sign and Verify. A signature enters the
// script as N (digest, times) pairs with digit 0's pair on top;
// ChecksigScript consumes them, fails the program unless they open pk,
// and leaves the N0 message digits on the stack with the least
// significant on top. RecoveryScript then folds the digits back into
// the message value.

// ChecksigScript returns the verification fragment for pk.
func ChecksigScript(pk PublicKey) []byte {
	b := vmutil.NewBuilder()

	for i := 0; i < N; i++ {
		// Clamp the claimed digit to [0, D] so an oversized value
		// cannot index past the hash chain.
		b.AddInt64(D).AddOp(vm.OP_MIN)

		// Two copies of the digit: one to select the chain element,
		// one kept for checksum and message recovery.
		b.AddOp(vm.OP_DUP).AddOp(vm.OP_TOALTSTACK).AddOp(vm.OP_TOALTSTACK)

		// Extend the provided digest to the full chain.
		for j := 0; j < D; j++ {
			b.AddOp(vm.OP_DUP).AddOp(vm.OP_HASH160)
		}

		// The element hashed (D - digit) times from the signature
		// chunk must equal the public key chunk.
		b.AddOp(vm.OP_FROMALTSTACK).AddOp(vm.OP_PICK)
		b.AddData(pk[i][:]).AddOp(vm.OP_EQUALVERIFY)

		// Drop the D+1 chain elements.
		for j := 0; j < (D+1)/2; j++ {
			b.AddOp(vm.OP_2DROP)
		}
	}

	// Sum the signed checksum digits...
	b.AddOp(vm.OP_FROMALTSTACK)
	for i := 0; i < N1-1; i++ {
		for j := 0; j < bitsPerDigit; j++ {
			b.AddOp(vm.OP_DUP).AddOp(vm.OP_ADD)
		}
		b.AddOp(vm.OP_FROMALTSTACK).AddOp(vm.OP_ADD)
	}

	// ...recompute the checksum from the message digits...
	b.AddOp(vm.OP_FROMALTSTACK).AddOp(vm.OP_DUP).AddOp(vm.OP_NEGATE)
	for i := 1; i < N0; i++ {
		b.AddOp(vm.OP_FROMALTSTACK).AddOp(vm.OP_TUCK).AddOp(vm.OP_SUB)
	}
	b.AddInt64(D * N0).AddOp(vm.OP_ADD)

	// ...and require the two to match.
	b.AddInt64(N0 + 1).AddOp(vm.OP_ROLL)
	b.AddOp(vm.OP_EQUALVERIFY)

	return b.Program
}

// RecoveryScript returns the fragment that folds the N0 digits left
// by ChecksigScript into the message value. Bitcoin-style scripts have
// no shift, so each digit is doubled into place with DUP ADD.
func RecoveryScript() []byte {
	b := vmutil.NewBuilder()
	for i := 0; i < N0; i++ {
		for j := 0; j < bitsPerDigit*i; j++ {
			b.AddOp(vm.OP_DUP).AddOp(vm.OP_ADD)
		}
		b.AddOp(vm.OP_TOALTSTACK)
	}
	b.AddOp(vm.OP_FROMALTSTACK)
	for i := 0; i < N0-1; i++ {
		b.AddOp(vm.OP_FROMALTSTACK).AddOp(vm.OP_ADD)
	}
	return b.Program
}

// SigScript returns the program that pushes sig in the order
// ChecksigScript consumes it.
func (sig Signature) SigScript() []byte {
	b := vmutil.NewBuilder()
	for _, e := range sig.WitnessElements() {
		b.AddData(e)
	}
	return b.Program
}

// WitnessElements returns the raw stack elements of sig, deepest
// first: digit N-1's pair down to digit 0's, digest below times.
func (sig Signature) WitnessElements() [][]byte {
	elems := make([][]byte, 0, 2*N)
	for i := N - 1; i >= 0; i-- {
		digest := make([]byte, DigestLen)
		copy(digest, sig[i].Digest[:])
		elems = append(elems, digest, vm.Int64Bytes(int64(sig[i].Times)))
	}
	return elems
}
