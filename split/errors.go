package split

import "github.com/distributed-lab/bitvm2-splitter/errors"

var (
	// Configuration faults: the caller supplied invalid input.
	ErrEmptyProgram      = errors.New("empty program")
	ErrBudgetTooSmall    = errors.New("shard weight budget below fixed overhead")
	ErrMalformedFragment = errors.New("malformed fragment")

	// Irreconcilable program faults: the program as described cannot
	// produce a publishable split.
	ErrFragmentTooLarge  = errors.New("fragment weight exceeds shard budget")
	ErrExecutionMismatch = errors.New("executed output differs from declared output")

	// Data faults: canonical encoding violations.
	ErrStateTooLarge = errors.New("encoded state exceeds commitment payload limit")
	ErrCorruptState  = errors.New("corrupt state encoding")
)
