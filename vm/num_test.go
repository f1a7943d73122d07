package vm

import (
	"bytes"
	"testing"
)

func TestInt64Bytes(t *testing.T) {
	cases := []struct {
		n    int64
		want []byte
	}{
		{0, []byte{}},
		{1, []byte{0x01}},
		{-1, []byte{0x81}},
		{127, []byte{0x7f}},
		{-127, []byte{0xff}},
		{128, []byte{0x80, 0x00}},
		{-128, []byte{0x80, 0x80}},
		{255, []byte{0xff, 0x00}},
		{256, []byte{0x00, 0x01}},
		{-256, []byte{0x00, 0x81}},
		{32767, []byte{0xff, 0x7f}},
		{32768, []byte{0x00, 0x80, 0x00}},
		{1 << 31, []byte{0x00, 0x00, 0x00, 0x80, 0x00}},
		{(1 << 31) - 1, []byte{0xff, 0xff, 0xff, 0x7f}},
	}
	for _, c := range cases {
		got := Int64Bytes(c.n)
		if !bytes.Equal(got, c.want) {
			t.Errorf("Int64Bytes(%d) = %x, want %x", c.n, got, c.want)
		}

		back, err := AsInt64(got)
		if err != nil {
			t.Errorf("AsInt64(%x): %s", got, err)
		} else if back != c.n {
			t.Errorf("AsInt64(Int64Bytes(%d)) = %d", c.n, back)
		}
	}
}

func TestAsInt64NonMinimal(t *testing.T) {
	// Padded encodings are still readable.
	n, err := AsInt64([]byte{0x01, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("got %d, want 1", n)
	}

	// Negative zero.
	n, err = AsInt64([]byte{0x80})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("got %d, want 0", n)
	}

	// Too long.
	_, err = AsInt64(bytes.Repeat([]byte{0x01}, 9))
	if err != ErrBadValue {
		t.Errorf("got error %v, want ErrBadValue", err)
	}
}

func TestAsBool(t *testing.T) {
	cases := []struct {
		b    []byte
		want bool
	}{
		{nil, false},
		{[]byte{}, false},
		{[]byte{0x00}, false},
		{[]byte{0x00, 0x00}, false},
		{[]byte{0x80}, false},
		{[]byte{0x00, 0x80}, false},
		{[]byte{0x01}, true},
		{[]byte{0x00, 0x01}, true},
		{[]byte{0x80, 0x00}, true},
	}
	for _, c := range cases {
		if got := AsBool(c.b); got != c.want {
			t.Errorf("AsBool(%x) = %v, want %v", c.b, got, c.want)
		}
	}
}
