// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bpf

import (
	"fmt"
)

// Opcode is the 8-bit operation field of an instruction word.
type Opcode uint8

// CodeClass is the instruction class, held in the low 3 bits of an opcode.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	CLASS_LD    = CodeClass(0) // ld
	CLASS_LDX   = CodeClass(1) // ldx
	CLASS_ST    = CodeClass(2) // st
	CLASS_STX   = CodeClass(3) // stx
	CLASS_ALU   = CodeClass(4) // alu
	CLASS_JMP   = CodeClass(5) // jmp
	CLASS_RET   = CodeClass(6) // ret
	CLASS_ALU64 = CodeClass(7) // alu64
)

// CodeSource is the source-kind bit of ALU and jump opcodes.
type CodeSource int

//go:generate go tool stringer -linecomment -type=CodeSource
const (
	SOURCE_IMM = CodeSource(0) // imm
	SOURCE_REG = CodeSource(1) // reg
)

// CodeAluOp is an ALU operation, held in the high 4 bits of an ALU opcode.
type CodeAluOp int

//go:generate go tool stringer -linecomment -type=CodeAluOp
const (
	ALU_OP_ADD  = CodeAluOp(0)  // add
	ALU_OP_SUB  = CodeAluOp(1)  // sub
	ALU_OP_MUL  = CodeAluOp(2)  // mul
	ALU_OP_DIV  = CodeAluOp(3)  // div
	ALU_OP_OR   = CodeAluOp(4)  // or
	ALU_OP_AND  = CodeAluOp(5)  // and
	ALU_OP_LSH  = CodeAluOp(6)  // lsh
	ALU_OP_RSH  = CodeAluOp(7)  // rsh
	ALU_OP_NEG  = CodeAluOp(8)  // neg
	ALU_OP_MOD  = CodeAluOp(9)  // mod
	ALU_OP_XOR  = CodeAluOp(10) // xor
	ALU_OP_MOV  = CodeAluOp(11) // mov
	ALU_OP_ARSH = CodeAluOp(12) // arsh
	ALU_OP_END  = CodeAluOp(13) // end
)

// CodeJmpOp is a jump operation, held in the high 4 bits of a jump opcode.
type CodeJmpOp int

//go:generate go tool stringer -linecomment -type=CodeJmpOp
const (
	JMP_OP_JA   = CodeJmpOp(0)  // ja
	JMP_OP_JEQ  = CodeJmpOp(1)  // jeq
	JMP_OP_JGT  = CodeJmpOp(2)  // jgt
	JMP_OP_JGE  = CodeJmpOp(3)  // jge
	JMP_OP_JSET = CodeJmpOp(4)  // jset
	JMP_OP_JNE  = CodeJmpOp(5)  // jne
	JMP_OP_JSGT = CodeJmpOp(6)  // jsgt
	JMP_OP_JSGE = CodeJmpOp(7)  // jsge
	JMP_OP_CALL = CodeJmpOp(8)  // call
	JMP_OP_EXIT = CodeJmpOp(9)  // exit
	JMP_OP_JLT  = CodeJmpOp(10) // jlt
	JMP_OP_JLE  = CodeJmpOp(11) // jle
	JMP_OP_JSLT = CodeJmpOp(12) // jslt
	JMP_OP_JSLE = CodeJmpOp(13) // jsle
)

// CodeSize is the operand size of a load or store, bits 3-4 of the opcode.
type CodeSize int

//go:generate go tool stringer -linecomment -type=CodeSize
const (
	SIZE_W  = CodeSize(0) // w
	SIZE_H  = CodeSize(1) // h
	SIZE_B  = CodeSize(2) // b
	SIZE_DW = CodeSize(3) // dw
)

// CodeMode is the addressing mode of a load or store, bits 5-7 of the opcode.
type CodeMode int

//go:generate go tool stringer -linecomment -type=CodeMode
const (
	MODE_IMM  = CodeMode(0) // imm
	MODE_ABS  = CodeMode(1) // abs
	MODE_IND  = CodeMode(2) // ind
	MODE_MEM  = CodeMode(3) // mem
	MODE_LEN  = CodeMode(4) // len
	MODE_MSH  = CodeMode(5) // msh
	MODE_XADD = CodeMode(6) // xadd
)

// MakeOpcodeAlu creates an ALU opcode. wide selects the 64-bit class.
func MakeOpcodeAlu(wide bool, op CodeAluOp, source CodeSource) Opcode {
	class := CLASS_ALU
	if wide {
		class = CLASS_ALU64
	}
	return Opcode((uint8(op) << 4) | (uint8(source) << 3) | uint8(class))
}

// MakeOpcodeJmp creates a jump opcode.
func MakeOpcodeJmp(op CodeJmpOp, source CodeSource) Opcode {
	return Opcode((uint8(op) << 4) | (uint8(source) << 3) | uint8(CLASS_JMP))
}

// MakeOpcodeMem creates a load or store opcode.
func MakeOpcodeMem(class CodeClass, mode CodeMode, size CodeSize) Opcode {
	return Opcode((uint8(mode) << 5) | ((uint8(size) & 0x3) << 3) | (uint8(class) & 0x7))
}

// MakeOpcodeRet creates the return opcode.
func MakeOpcodeRet() Opcode {
	return Opcode(CLASS_RET)
}

// Class returns the instruction class from the opcode.
func (op Opcode) Class() CodeClass {
	return CodeClass(op & 0x7)
}

// Source returns the source-kind bit. Only meaningful for ALU and jump opcodes.
func (op Opcode) Source() CodeSource {
	return CodeSource((op >> 3) & 0x1)
}

// AluDecode decodes and returns the ALU operation, its width and source kind.
func (op Opcode) AluDecode() (alu CodeAluOp, wide bool, source CodeSource) {
	alu = CodeAluOp((op >> 4) & 0xf)
	wide = op.Class() == CLASS_ALU64
	source = op.Source()
	return
}

// JmpDecode decodes and returns the jump operation and its source kind.
func (op Opcode) JmpDecode() (jmp CodeJmpOp, source CodeSource) {
	jmp = CodeJmpOp((op >> 4) & 0xf)
	source = op.Source()
	return
}

// MemDecode decodes and returns the addressing mode and operand size.
func (op Opcode) MemDecode() (mode CodeMode, size CodeSize) {
	mode = CodeMode((op >> 5) & 0x7)
	size = CodeSize((op >> 3) & 0x3)
	return
}

// String returns the mnemonic of the opcode, or its raw value if it has none.
func (op Opcode) String() string {
	family, err := Classify(op)
	if err != nil {
		return fmt.Sprintf("Opcode(0x%02x)", uint8(op))
	}
	return family.Mnemonic()
}
