package split

import (
	"bytes"
	"encoding/binary"

	"github.com/distributed-lab/bitvm2-splitter/errors"
)

// MaxStateSize is the commitment payload limit: the largest encoded
// boundary state, in bytes, that the commitment scheme will sign and
// a disprove script will disclose.
const MaxStateSize = 1024

// StackState is a snapshot of the data stack at a shard boundary,
// deepest element first. States are compared by exact bytes, never
// numerically: two encodings of the same number are different states.
type StackState [][]byte

// Equal reports whether s and other are element-for-element identical.
func (s StackState) Equal(other StackState) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !bytes.Equal(s[i], other[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of s.
func (s StackState) Clone() StackState {
	c := make(StackState, len(s))
	for i, e := range s {
		c[i] = append([]byte(nil), e...)
	}
	return c
}

// EncodeState renders s in its single canonical byte form: the
// element count, then each element length-prefixed, all integers as
// minimal uvarints. It fails with ErrStateTooLarge when the encoding
// exceeds MaxStateSize.
func EncodeState(s StackState) ([]byte, error) {
	var buf []byte
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	for _, e := range s {
		buf = binary.AppendUvarint(buf, uint64(len(e)))
		buf = append(buf, e...)
	}
	if len(buf) > MaxStateSize {
		return nil, errors.WithDetailf(ErrStateTooLarge, "%d bytes, limit %d", len(buf), MaxStateSize)
	}
	return buf, nil
}

// DecodeState is the exact inverse of EncodeState. Any input
// EncodeState could not have produced, trailing bytes and non-minimal
// varints included, fails with ErrCorruptState.
func DecodeState(b []byte) (StackState, error) {
	if len(b) > MaxStateSize {
		return nil, errors.WithDetail(ErrCorruptState, "over size limit")
	}

	n, rest, err := readUvarint(b)
	if err != nil {
		return nil, err
	}
	// Each element costs at least one length byte, so a count beyond
	// the remaining input cannot be honest and must not size an
	// allocation.
	if n > uint64(len(rest)) {
		return nil, errors.WithDetail(ErrCorruptState, "element count exceeds input")
	}
	s := make(StackState, 0, n)
	for i := uint64(0); i < n; i++ {
		var l uint64
		l, rest, err = readUvarint(rest)
		if err != nil {
			return nil, err
		}
		if uint64(len(rest)) < l {
			return nil, errors.WithDetail(ErrCorruptState, "truncated element")
		}
		s = append(s, append([]byte(nil), rest[:l]...))
		rest = rest[l:]
	}
	if len(rest) > 0 {
		return nil, errors.WithDetail(ErrCorruptState, "trailing bytes")
	}
	return s, nil
}

// readUvarint reads a minimally-encoded uvarint. Rejecting redundant
// encodings keeps the codec canonical in both directions.
func readUvarint(b []byte) (uint64, []byte, error) {
	v, n := binary.Uvarint(b)
	if n <= 0 {
		return 0, nil, errors.WithDetail(ErrCorruptState, "bad varint")
	}
	if n != uvarintLen(v) {
		return 0, nil, errors.WithDetail(ErrCorruptState, "non-minimal varint")
	}
	return v, b[n:], nil
}

func uvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}
