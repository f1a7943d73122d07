package vm

import "testing"

func TestOpString(t *testing.T) {
	cases := []struct {
		op   Op
		want string
	}{
		{OP_FALSE, "FALSE"},
		{OP_1, "1"},
		{OP_16, "16"},
		{OP_DATA_1, "DATA_1"},
		{OP_DATA_75, "DATA_75"},
		{OP_ADD, "ADD"},
		{OP_TOALTSTACK, "TOALTSTACK"},
		{Op(0xff), "UNKNOWN_ff"},
	}
	for _, c := range cases {
		if got := c.op.String(); got != c.want {
			t.Errorf("Op(%#x).String() = %q, want %q", byte(c.op), got, c.want)
		}
	}
}

func TestIsKnown(t *testing.T) {
	known := []Op{OP_FALSE, OP_1, OP_DATA_1 + 39, OP_ADD, OP_HASH256, OP_PUSHDATA4}
	for _, op := range known {
		if !op.IsKnown() {
			t.Errorf("Op(%#x) reported unknown", byte(op))
		}
	}
	for _, op := range []Op{0x50, 0x62, 0xff, 0xb0} {
		if op.IsKnown() {
			t.Errorf("Op(%#x) reported known", byte(op))
		}
	}
}

func TestStackEffect(t *testing.T) {
	cases := []struct {
		op           Op
		pops, pushes int
		ok           bool
	}{
		{OP_ADD, 2, 1, true},
		{OP_DUP, 1, 2, true},
		{OP_WITHIN, 3, 1, true},
		{OP_FALSE, 0, 1, true},
		{OP_NOP, 0, 0, true},

		// Dynamic or unknown: no static effect.
		{OP_IF, 0, 0, false},
		{OP_TOALTSTACK, 0, 0, false},
		{OP_PICK, 0, 0, false},
		{OP_DEPTH, 0, 0, false},
		{Op(0xff), 0, 0, false},
	}
	for _, c := range cases {
		pops, pushes, ok := StackEffect(c.op)
		if pops != c.pops || pushes != c.pushes || ok != c.ok {
			t.Errorf("StackEffect(%s) = %d, %d, %v, want %d, %d, %v",
				c.op, pops, pushes, ok, c.pops, c.pushes, c.ok)
		}
	}
}
