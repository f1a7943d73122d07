package vm

import "errors"

var (
	ErrAltStackUnderflow  = errors.New("alt stack underflow")
	ErrBadValue           = errors.New("bad value")
	ErrCondStackUnderflow = errors.New("conditional stack underflow")
	ErrDataStackUnderflow = errors.New("data stack underflow")
	ErrNonEmptyCondStack  = errors.New("non-empty conditional stack at end of program")
	ErrReturn             = errors.New("RETURN executed")
	ErrRunLimitExceeded   = errors.New("run limit exceeded")
	ErrShortProgram       = errors.New("unexpected end of program")
	ErrToken              = errors.New("unrecognized token")
	ErrUnknownOpcode      = errors.New("unknown opcode")
	ErrVerifyFailed       = errors.New("VERIFY failed")
)
