package vm

// Numbers on the stack are stored little-endian with a sign bit in the
// high bit of the final byte. Zero is the empty string. All emitting
// functions produce the minimal encoding; AsInt64 accepts any encoding
// up to eight bytes.

// Int64Bytes returns the minimal byte representation of n.
//
// Example encodings:
//
//	   0 -> []
//	 127 -> [0x7f]
//	-127 -> [0xff]
//	 128 -> [0x80 0x00]
//	-128 -> [0x80 0x80]
//	 256 -> [0x00 0x01]
func Int64Bytes(n int64) []byte {
	if n == 0 {
		return []byte{}
	}

	neg := n < 0
	abs := n
	if neg {
		abs = -abs
	}

	var res []byte
	for abs > 0 {
		res = append(res, byte(abs&0xff))
		abs >>= 8
	}

	// If the high bit of the last byte is already used, an extra byte
	// is required to hold the sign.
	if res[len(res)-1]&0x80 != 0 {
		extra := byte(0x00)
		if neg {
			extra = 0x80
		}
		res = append(res, extra)
	} else if neg {
		res[len(res)-1] |= 0x80
	}

	return res
}

// AsInt64 interprets b as a number. It returns ErrBadValue if b is
// longer than eight bytes.
func AsInt64(b []byte) (int64, error) {
	if len(b) > 8 {
		return 0, ErrBadValue
	}
	if len(b) == 0 {
		return 0, nil
	}

	var res int64
	for i, v := range b {
		if i == len(b)-1 {
			v &= 0x7f
		}
		res |= int64(v) << (8 * uint(i))
	}

	if b[len(b)-1]&0x80 != 0 {
		res = -res
	}
	return res, nil
}

// BoolBytes returns the canonical byte representation of b.
func BoolBytes(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{}
}

// AsBool interprets b as a boolean. Anything with a nonzero byte is
// true, except for any encoding of negative zero.
func AsBool(b []byte) bool {
	for i, v := range b {
		if v != 0 {
			if i == len(b)-1 && v == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}
