package vm

import (
	"bytes"
	"fmt"
	"os"
	"testing"
)

type tracebuf struct {
	bytes.Buffer
}

func (t tracebuf) dump() {
	os.Stdout.Write(t.Bytes())
}

// Programs that run without error and return a true result.
func TestProgramOK(t *testing.T) {
	doOKNotOK(t, true)
}

// Programs that run without error and return a false result.
func TestProgramNotOK(t *testing.T) {
	doOKNotOK(t, false)
}

func doOKNotOK(t *testing.T, expectOK bool) {
	cases := []struct {
		prog string
		args [][]byte
	}{
		{"TRUE", nil},

		// numeric and logical ops
		{"1ADD 2 NUMEQUAL", [][]byte{Int64Bytes(1)}},
		{"1ADD 0 NUMEQUAL", [][]byte{Int64Bytes(-1)}},

		{"1SUB 1 NUMEQUAL", [][]byte{Int64Bytes(2)}},
		{"1SUB -1 NUMEQUAL", [][]byte{Int64Bytes(0)}},

		{"NEGATE -1 NUMEQUAL", [][]byte{Int64Bytes(1)}},
		{"NEGATE 1 NUMEQUAL", [][]byte{Int64Bytes(-1)}},
		{"NEGATE 0 NUMEQUAL", [][]byte{Int64Bytes(0)}},

		{"ABS 1 NUMEQUAL", [][]byte{Int64Bytes(1)}},
		{"ABS 1 NUMEQUAL", [][]byte{Int64Bytes(-1)}},
		{"ABS 0 NUMEQUAL", [][]byte{Int64Bytes(0)}},

		{"0NOTEQUAL", [][]byte{Int64Bytes(1)}},
		{"0NOTEQUAL NOT", [][]byte{Int64Bytes(0)}},

		{"ADD 5 NUMEQUAL", [][]byte{Int64Bytes(2), Int64Bytes(3)}},
		{"ADD -1 NUMEQUAL", [][]byte{Int64Bytes(2), Int64Bytes(-3)}},

		{"SUB 2 NUMEQUAL", [][]byte{Int64Bytes(5), Int64Bytes(3)}},

		{"MUL 6 NUMEQUAL", [][]byte{Int64Bytes(2), Int64Bytes(3)}},
		{"MUL -6 NUMEQUAL", [][]byte{Int64Bytes(-2), Int64Bytes(3)}},

		{"MIN 2 NUMEQUAL", [][]byte{Int64Bytes(2), Int64Bytes(3)}},
		{"MIN 2 NUMEQUAL", [][]byte{Int64Bytes(3), Int64Bytes(2)}},
		{"MAX 3 NUMEQUAL", [][]byte{Int64Bytes(2), Int64Bytes(3)}},
		{"MAX 3 NUMEQUAL", [][]byte{Int64Bytes(3), Int64Bytes(2)}},

		{"1 1 BOOLAND", nil},
		{"1 0 BOOLAND NOT", nil},
		{"0 1 BOOLAND NOT", nil},
		{"0 0 BOOLAND NOT", nil},

		{"1 1 BOOLOR", nil},
		{"1 0 BOOLOR", nil},
		{"0 1 BOOLOR", nil},
		{"0 0 BOOLOR NOT", nil},

		{"2 3 LESSTHAN", nil},
		{"3 2 LESSTHAN NOT", nil},
		{"2 2 LESSTHAN NOT", nil},
		{"3 2 GREATERTHAN", nil},
		{"2 3 GREATERTHAN NOT", nil},

		{"1 0 5 WITHIN", nil},
		{"0 0 5 WITHIN", nil},
		{"5 0 5 WITHIN NOT", nil},
		{"-1 0 5 WITHIN NOT", nil},

		{"2 3 NUMNOTEQUAL", nil},
		{"2 2 NUMNOTEQUAL NOT", nil},

		// EQUAL compares bytes, NUMEQUAL compares values
		{"0x0100 1 NUMEQUAL", nil},
		{"0x0100 1 EQUAL NOT", nil},

		// stack ops
		{"DEPTH 3 NUMEQUAL", [][]byte{{1}, {1}, {1}}},
		{"DEPTH 0 NUMEQUAL", nil},
		{"1 2 SWAP 1 NUMEQUAL SWAP DROP", nil},
		{"1 2 DROP 1 NUMEQUAL", nil},
		{"5 DUP NUMEQUAL", nil},
		{"1 2 NIP 2 NUMEQUAL", nil},
		{"1 2 OVER 1 NUMEQUAL NIP NIP", nil},
		{"1 2 3 2 PICK 1 NUMEQUAL NIP NIP NIP", nil},
		{"1 2 3 2 ROLL 1 NUMEQUAL NIP NIP", nil},
		{"1 2 3 ROT 1 NUMEQUAL NIP NIP", nil},
		{"1 2 TUCK ADD ADD 5 NUMEQUAL", nil},
		{"1 2 2DROP DEPTH 0 NUMEQUAL", nil},
		{"1 2 2DUP ADD ADD ADD 6 NUMEQUAL", nil},
		{"0xbeef SIZE 2 NUMEQUAL NIP", nil},

		// altstack ops
		{"3 TOALTSTACK DEPTH 0 NUMEQUAL FROMALTSTACK DROP", nil},
		{"1 2 TOALTSTACK TOALTSTACK FROMALTSTACK FROMALTSTACK SUB 1 NUMEQUAL", nil},

		// control flow ops
		{"1 IF 1 ENDIF", nil},
		{"1 DUP IF ENDIF", nil},
		{"1 DUP IF ELSE ENDIF", nil},
		{"1 IF 1 ELSE ENDIF", nil},
		{"0 IF ELSE 1 ENDIF", nil},

		{"1 1 IF IF 1 ELSE 0 ENDIF ENDIF", nil},
		{"1 0 IF IF 1 ELSE 0 ENDIF ENDIF", nil},
		{"1 1 IF IF 1 ELSE 0 ENDIF ELSE IF 0 ELSE 1 ENDIF ENDIF", nil},
		{"0 0 IF IF 1 ELSE 0 ENDIF ELSE IF 0 ELSE 1 ENDIF ENDIF", nil},
		{"0 IF 1 IF RETURN ELSE RETURN ENDIF ELSE 1 ENDIF", nil},
		{"1 IF 1 ELSE 1 IF RETURN ELSE RETURN ENDIF ENDIF", nil},

		{"1 0 NOTIF IF 1 ELSE 0 ENDIF ENDIF", nil},
		{"1 1 NOTIF IF 1 ELSE 0 ENDIF ENDIF", nil},
		{"1 0 NOTIF IF 1 ELSE 0 ENDIF ELSE IF 0 ELSE 1 ENDIF ENDIF", nil},
		{"0 1 NOTIF IF 1 ELSE 0 ENDIF ELSE IF 0 ELSE 1 ENDIF ENDIF", nil},

		{"TRUE FALSE IF RETURN ENDIF", nil},
		{"FALSE IF RETURN ELSE TRUE ENDIF", nil},
		{"TRUE TRUE NOTIF RETURN ENDIF", nil},
		{"TRUE NOTIF RETURN ELSE TRUE ENDIF", nil},

		// crypto ops
		{"SHA256 0xba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad EQUAL", [][]byte{[]byte("abc")}},
		{"HASH160 0xbb1be98c142444d7a56aa3981c3942a978e4dc33 EQUAL", [][]byte{[]byte("abc")}},
		{"HASH256 0x4f8b42c22dd3729b519ba6f68d2da7cc5b2d606d05daed5ad5128cc03e6c6358 EQUAL", [][]byte{[]byte("abc")}},
	}
	for i, c := range cases {
		progSrc := c.prog
		if !expectOK {
			progSrc += " NOT"
		}
		prog, err := Compile(progSrc)
		if err != nil {
			t.Fatal(err)
		}
		trace := new(tracebuf)
		TraceOut = trace
		res, err := Run(prog, c.args)
		if err != nil {
			trace.dump()
			t.Errorf("case %d [%s]: unexpected error: %s", i, progSrc, err)
			continue
		}
		if res.OK != expectOK {
			trace.dump()
			t.Errorf("case %d [%s]: expected %v result, got %v", i, progSrc, expectOK, res.OK)
		}
		if testing.Verbose() && res.OK == expectOK {
			trace.dump()
			fmt.Println("")
		}
	}
	TraceOut = nil
}

// Programs that do not run to completion.
func TestProgramErr(t *testing.T) {
	cases := []struct {
		prog    string
		args    [][]byte
		wantErr error
	}{
		{"ADD", [][]byte{Int64Bytes(1)}, ErrDataStackUnderflow},
		{"DROP", nil, ErrDataStackUnderflow},
		{"FROMALTSTACK", nil, ErrAltStackUnderflow},
		{"0 VERIFY", nil, ErrVerifyFailed},
		{"1 2 EQUALVERIFY", nil, ErrVerifyFailed},
		{"1 2 NUMEQUALVERIFY", nil, ErrVerifyFailed},
		{"RETURN", nil, ErrReturn},
		{"1 IF", nil, ErrNonEmptyCondStack},
		{"1 IF 1", nil, ErrNonEmptyCondStack},
		{"ELSE", nil, ErrCondStackUnderflow},
		{"ENDIF", nil, ErrCondStackUnderflow},
		{"IF ENDIF", nil, ErrDataStackUnderflow},
		{"1ADD", [][]byte{bytes.Repeat([]byte{1}, 9)}, ErrBadValue},
		{"-1 PICK", [][]byte{{1}}, ErrBadValue},
		{"2 PICK", [][]byte{{1}, {1}}, ErrDataStackUnderflow},
		{"2 ROLL", [][]byte{{1}, {1}}, ErrDataStackUnderflow},
	}
	for i, c := range cases {
		prog, err := Compile(c.prog)
		if err != nil {
			t.Fatal(err)
		}
		_, err = Run(prog, c.args)
		if err != c.wantErr {
			t.Errorf("case %d [%s]: got error %v, want %v", i, c.prog, err, c.wantErr)
		}
	}
}

func TestRunLimit(t *testing.T) {
	prog, err := Compile("1 2 ADD 3 NUMEQUAL")
	if err != nil {
		t.Fatal(err)
	}

	res, err := Run(prog, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK {
		t.Error("expected true result")
	}
	if res.Cost <= 0 {
		t.Errorf("got cost %d, want positive", res.Cost)
	}

	// The same program under a limit smaller than its cost must fail.
	_, err = RunLimited(prog, nil, res.Cost-1)
	if err != ErrRunLimitExceeded {
		t.Errorf("got error %v, want ErrRunLimitExceeded", err)
	}

	// And succeed with exactly its cost.
	res2, err := RunLimited(prog, nil, res.Cost)
	if err != nil {
		t.Fatal(err)
	}
	if res2.Cost != res.Cost {
		t.Errorf("got cost %d, want %d", res2.Cost, res.Cost)
	}
}

func TestRunDeterministic(t *testing.T) {
	prog, err := Compile("DUP MUL SWAP DUP MUL ADD")
	if err != nil {
		t.Fatal(err)
	}
	args := [][]byte{Int64Bytes(3), Int64Bytes(4)}

	first, err := Run(prog, args)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		res, err := Run(prog, args)
		if err != nil {
			t.Fatal(err)
		}
		if !reflectEqual(res.Stack, first.Stack) || res.Cost != first.Cost {
			t.Fatalf("run %d diverged: got %v cost %d, want %v cost %d", i, res.Stack, res.Cost, first.Stack, first.Cost)
		}
	}
}

func reflectEqual(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
