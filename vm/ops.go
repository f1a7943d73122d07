package vm

import (
	"encoding/binary"
	"fmt"
)

// Op is a single opcode byte. The numbering follows the Bitcoin
// convention so compiled fragments read naturally in standard
// disassemblers.
type Op uint8

const (
	OP_FALSE Op = 0x00
	OP_0     Op = 0x00

	OP_DATA_1  Op = 0x01
	OP_DATA_75 Op = 0x4b

	OP_PUSHDATA1 Op = 0x4c
	OP_PUSHDATA2 Op = 0x4d
	OP_PUSHDATA4 Op = 0x4e
	OP_1NEGATE   Op = 0x4f

	OP_TRUE Op = 0x51
	OP_1    Op = 0x51
	OP_2    Op = 0x52
	OP_3    Op = 0x53
	OP_4    Op = 0x54
	OP_5    Op = 0x55
	OP_6    Op = 0x56
	OP_7    Op = 0x57
	OP_8    Op = 0x58
	OP_9    Op = 0x59
	OP_10   Op = 0x5a
	OP_11   Op = 0x5b
	OP_12   Op = 0x5c
	OP_13   Op = 0x5d
	OP_14   Op = 0x5e
	OP_15   Op = 0x5f
	OP_16   Op = 0x60

	OP_NOP    Op = 0x61
	OP_IF     Op = 0x63
	OP_NOTIF  Op = 0x64
	OP_ELSE   Op = 0x67
	OP_ENDIF  Op = 0x68
	OP_VERIFY Op = 0x69
	OP_RETURN Op = 0x6a

	OP_TOALTSTACK   Op = 0x6b
	OP_FROMALTSTACK Op = 0x6c
	OP_2DROP        Op = 0x6d
	OP_2DUP         Op = 0x6e
	OP_DEPTH        Op = 0x74
	OP_DROP         Op = 0x75
	OP_DUP          Op = 0x76
	OP_NIP          Op = 0x77
	OP_OVER         Op = 0x78
	OP_PICK         Op = 0x79
	OP_ROLL         Op = 0x7a
	OP_ROT          Op = 0x7b
	OP_SWAP         Op = 0x7c
	OP_TUCK         Op = 0x7d

	OP_SIZE        Op = 0x82
	OP_EQUAL       Op = 0x87
	OP_EQUALVERIFY Op = 0x88

	OP_1ADD      Op = 0x8b
	OP_1SUB      Op = 0x8c
	OP_NEGATE    Op = 0x8f
	OP_ABS       Op = 0x90
	OP_NOT       Op = 0x91
	OP_0NOTEQUAL Op = 0x92

	OP_ADD Op = 0x93
	OP_SUB Op = 0x94
	OP_MUL Op = 0x95

	OP_BOOLAND        Op = 0x9a
	OP_BOOLOR         Op = 0x9b
	OP_NUMEQUAL       Op = 0x9c
	OP_NUMEQUALVERIFY Op = 0x9d
	OP_NUMNOTEQUAL    Op = 0x9e
	OP_LESSTHAN       Op = 0x9f
	OP_GREATERTHAN    Op = 0xa0
	OP_MIN            Op = 0xa3
	OP_MAX            Op = 0xa4
	OP_WITHIN         Op = 0xa5

	OP_SHA256  Op = 0xa8
	OP_HASH160 Op = 0xa9
	OP_HASH256 Op = 0xaa
)

// Instruction is one parsed opcode plus the data it pushes, if any.
type Instruction struct {
	Op   Op
	Len  uint32
	Data []byte
}

type opInfo struct {
	op   Op
	name string
	fn   func(*virtualMachine) error

	// Static stack effect, used for pre-execution fragment checks.
	// Not meaningful when dynamic is true.
	pops    int
	pushes  int
	dynamic bool
}

var (
	ops        [256]opInfo
	opsByName  map[string]opInfo
	opAliases  = map[string]Op{"0": OP_FALSE, "TRUE": OP_TRUE}
	opInfoList = []opInfo{
		{op: OP_FALSE, name: "FALSE", fn: opFalse, pushes: 1},
		{op: OP_1NEGATE, name: "1NEGATE", fn: op1Negate, pushes: 1},
		{op: OP_NOP, name: "NOP", fn: opNop},
		{op: OP_IF, name: "IF", fn: opIf, dynamic: true},
		{op: OP_NOTIF, name: "NOTIF", fn: opNotIf, dynamic: true},
		{op: OP_ELSE, name: "ELSE", fn: opElse, dynamic: true},
		{op: OP_ENDIF, name: "ENDIF", fn: opEndif, dynamic: true},
		{op: OP_VERIFY, name: "VERIFY", fn: opVerify, pops: 1},
		{op: OP_RETURN, name: "RETURN", fn: opReturn},
		{op: OP_TOALTSTACK, name: "TOALTSTACK", fn: opToAltStack, dynamic: true},
		{op: OP_FROMALTSTACK, name: "FROMALTSTACK", fn: opFromAltStack, dynamic: true},
		{op: OP_2DROP, name: "2DROP", fn: op2Drop, pops: 2},
		{op: OP_2DUP, name: "2DUP", fn: op2Dup, pops: 2, pushes: 4},
		{op: OP_DEPTH, name: "DEPTH", fn: opDepth, dynamic: true},
		{op: OP_DROP, name: "DROP", fn: opDrop, pops: 1},
		{op: OP_DUP, name: "DUP", fn: opDup, pops: 1, pushes: 2},
		{op: OP_NIP, name: "NIP", fn: opNip, pops: 2, pushes: 1},
		{op: OP_OVER, name: "OVER", fn: opOver, pops: 2, pushes: 3},
		{op: OP_PICK, name: "PICK", fn: opPick, dynamic: true},
		{op: OP_ROLL, name: "ROLL", fn: opRoll, dynamic: true},
		{op: OP_ROT, name: "ROT", fn: opRot, pops: 3, pushes: 3},
		{op: OP_SWAP, name: "SWAP", fn: opSwap, pops: 2, pushes: 2},
		{op: OP_TUCK, name: "TUCK", fn: opTuck, pops: 2, pushes: 3},
		{op: OP_SIZE, name: "SIZE", fn: opSize, pops: 1, pushes: 2},
		{op: OP_EQUAL, name: "EQUAL", fn: opEqual, pops: 2, pushes: 1},
		{op: OP_EQUALVERIFY, name: "EQUALVERIFY", fn: opEqualVerify, pops: 2},
		{op: OP_1ADD, name: "1ADD", fn: op1Add, pops: 1, pushes: 1},
		{op: OP_1SUB, name: "1SUB", fn: op1Sub, pops: 1, pushes: 1},
		{op: OP_NEGATE, name: "NEGATE", fn: opNegate, pops: 1, pushes: 1},
		{op: OP_ABS, name: "ABS", fn: opAbs, pops: 1, pushes: 1},
		{op: OP_NOT, name: "NOT", fn: opNot, pops: 1, pushes: 1},
		{op: OP_0NOTEQUAL, name: "0NOTEQUAL", fn: op0NotEqual, pops: 1, pushes: 1},
		{op: OP_ADD, name: "ADD", fn: opAdd, pops: 2, pushes: 1},
		{op: OP_SUB, name: "SUB", fn: opSub, pops: 2, pushes: 1},
		{op: OP_MUL, name: "MUL", fn: opMul, pops: 2, pushes: 1},
		{op: OP_BOOLAND, name: "BOOLAND", fn: opBoolAnd, pops: 2, pushes: 1},
		{op: OP_BOOLOR, name: "BOOLOR", fn: opBoolOr, pops: 2, pushes: 1},
		{op: OP_NUMEQUAL, name: "NUMEQUAL", fn: opNumEqual, pops: 2, pushes: 1},
		{op: OP_NUMEQUALVERIFY, name: "NUMEQUALVERIFY", fn: opNumEqualVerify, pops: 2},
		{op: OP_NUMNOTEQUAL, name: "NUMNOTEQUAL", fn: opNumNotEqual, pops: 2, pushes: 1},
		{op: OP_LESSTHAN, name: "LESSTHAN", fn: opLessThan, pops: 2, pushes: 1},
		{op: OP_GREATERTHAN, name: "GREATERTHAN", fn: opGreaterThan, pops: 2, pushes: 1},
		{op: OP_MIN, name: "MIN", fn: opMin, pops: 2, pushes: 1},
		{op: OP_MAX, name: "MAX", fn: opMax, pops: 2, pushes: 1},
		{op: OP_WITHIN, name: "WITHIN", fn: opWithin, pops: 3, pushes: 1},
		{op: OP_SHA256, name: "SHA256", fn: opSha256, pops: 1, pushes: 1},
		{op: OP_HASH160, name: "HASH160", fn: opHash160, pops: 1, pushes: 1},
		{op: OP_HASH256, name: "HASH256", fn: opHash256, pops: 1, pushes: 1},
	}
)

func init() {
	for _, info := range opInfoList {
		ops[info.op] = info
	}
	for i := OP_DATA_1; i <= OP_DATA_75; i++ {
		ops[i] = opInfo{op: i, name: fmt.Sprintf("DATA_%d", i-OP_DATA_1+1), fn: opPushdata, pushes: 1}
	}
	ops[OP_PUSHDATA1] = opInfo{op: OP_PUSHDATA1, name: "PUSHDATA1", fn: opPushdata, pushes: 1}
	ops[OP_PUSHDATA2] = opInfo{op: OP_PUSHDATA2, name: "PUSHDATA2", fn: opPushdata, pushes: 1}
	ops[OP_PUSHDATA4] = opInfo{op: OP_PUSHDATA4, name: "PUSHDATA4", fn: opPushdata, pushes: 1}
	for i := OP_1; i <= OP_16; i++ {
		ops[i] = opInfo{op: i, name: fmt.Sprintf("%d", i-OP_1+1), fn: opPushN, pushes: 1}
	}

	opsByName = make(map[string]opInfo)
	for _, info := range ops {
		if info.fn != nil {
			opsByName[info.name] = info
		}
	}
	for name, op := range opAliases {
		opsByName[name] = ops[op]
	}
}

func (op Op) String() string {
	if ops[op].fn == nil {
		return fmt.Sprintf("UNKNOWN_%02x", byte(op))
	}
	return ops[op].name
}

// IsKnown reports whether op is part of the instruction set.
func (op Op) IsKnown() bool {
	return ops[op].fn != nil
}

// StackEffect returns the number of stack items op consumes and
// produces. The third return value is false for opcodes whose stack
// effect cannot be determined without executing them (control flow,
// altstack movement, and depth-indexed ops).
func StackEffect(op Op) (pops, pushes int, ok bool) {
	info := ops[op]
	if info.fn == nil || info.dynamic {
		return 0, 0, false
	}
	return info.pops, info.pushes, true
}

// ParseOp parses the instruction at pc in program.
func ParseOp(program []byte, pc uint32) (Instruction, error) {
	if pc >= uint32(len(program)) {
		return Instruction{}, ErrShortProgram
	}

	op := Op(program[pc])
	inst := Instruction{Op: op, Len: 1}

	switch {
	case op >= OP_DATA_1 && op <= OP_DATA_75:
		n := uint32(op - OP_DATA_1 + 1)
		if pc+1+n > uint32(len(program)) {
			return Instruction{}, ErrShortProgram
		}
		inst.Data = program[pc+1 : pc+1+n]
		inst.Len += n

	case op == OP_PUSHDATA1:
		if pc+2 > uint32(len(program)) {
			return Instruction{}, ErrShortProgram
		}
		n := uint32(program[pc+1])
		if pc+2+n > uint32(len(program)) {
			return Instruction{}, ErrShortProgram
		}
		inst.Data = program[pc+2 : pc+2+n]
		inst.Len += 1 + n

	case op == OP_PUSHDATA2:
		if pc+3 > uint32(len(program)) {
			return Instruction{}, ErrShortProgram
		}
		n := uint32(binary.LittleEndian.Uint16(program[pc+1 : pc+3]))
		if pc+3+n > uint32(len(program)) {
			return Instruction{}, ErrShortProgram
		}
		inst.Data = program[pc+3 : pc+3+n]
		inst.Len += 2 + n

	case op == OP_PUSHDATA4:
		if pc+5 > uint32(len(program)) {
			return Instruction{}, ErrShortProgram
		}
		n := binary.LittleEndian.Uint32(program[pc+1 : pc+5])
		if uint64(pc)+5+uint64(n) > uint64(len(program)) {
			return Instruction{}, ErrShortProgram
		}
		inst.Data = program[pc+5 : pc+5+n]
		inst.Len += 4 + n

	default:
		if ops[op].fn == nil {
			return Instruction{}, ErrUnknownOpcode
		}
	}

	return inst, nil
}
