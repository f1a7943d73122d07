package split

import (
	"bytes"
	"testing"

	"github.com/distributed-lab/bitvm2-splitter/errors"
	"github.com/distributed-lab/bitvm2-splitter/vm"
)

func TestStateCodecRoundTrip(t *testing.T) {
	cases := []StackState{
		nil,
		{},
		{[]byte{}},
		{[]byte{0x05}},
		{vm.Int64Bytes(1), vm.Int64Bytes(-300), vm.Int64Bytes(0)},
		{bytes.Repeat([]byte{0xab}, 100)},
		{{}, {}, {1}, {}},
	}
	for i, s := range cases {
		enc, err := EncodeState(s)
		if err != nil {
			t.Fatalf("case %d: %s", i, err)
		}
		dec, err := DecodeState(enc)
		if err != nil {
			t.Fatalf("case %d: %s", i, err)
		}
		if !dec.Equal(s) {
			t.Errorf("case %d: round trip %x != %x", i, dec, s)
		}

		// One state, one encoding.
		enc2, err := EncodeState(dec)
		if err != nil {
			t.Fatalf("case %d: %s", i, err)
		}
		if !bytes.Equal(enc, enc2) {
			t.Errorf("case %d: re-encoding differs: %x vs %x", i, enc, enc2)
		}
	}
}

func TestEncodeStateTooLarge(t *testing.T) {
	s := StackState{bytes.Repeat([]byte{1}, MaxStateSize)}
	_, err := EncodeState(s)
	if errors.Root(err) != ErrStateTooLarge {
		t.Errorf("got error %v, want ErrStateTooLarge", err)
	}
}

func TestDecodeStateCorrupt(t *testing.T) {
	good, err := EncodeState(StackState{{0x01}, {0x02, 0x03}})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		b    []byte
	}{
		{"empty", nil},
		{"truncated count", []byte{0x80}},
		{"truncated element", good[:len(good)-1]},
		{"missing element", []byte{0x01}},
		{"trailing bytes", append(append([]byte{}, good...), 0x00)},
		{"non-minimal count", []byte{0x81, 0x00, 0x01, 0xff}},
		{"huge count", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x3f, 0x00}},
		{"count exceeds input", []byte{0x05, 0x00}},
		{"non-minimal length", []byte{0x01, 0x81, 0x00, 0xff}},
		{"over size limit", bytes.Repeat([]byte{0x00}, MaxStateSize+1)},
	}
	for _, c := range cases {
		_, err := DecodeState(c.b)
		if errors.Root(err) != ErrCorruptState {
			t.Errorf("%s: got error %v, want ErrCorruptState", c.name, err)
		}
	}
}

func TestStateEqualClone(t *testing.T) {
	s := StackState{{0x01}, {0x02}}
	c := s.Clone()
	if !s.Equal(c) {
		t.Fatal("clone differs")
	}

	c[0][0] = 0xff
	if s.Equal(c) {
		t.Error("clone shares element storage")
	}

	// Byte comparison, not numeric: 1 and a padded 1 differ.
	if (StackState{{0x01}}).Equal(StackState{{0x01, 0x00}}) {
		t.Error("padded encoding compared equal")
	}
	if (StackState{{0x01}}).Equal(StackState{{0x01}, {0x02}}) {
		t.Error("length mismatch compared equal")
	}
}
