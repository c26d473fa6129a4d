package bpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcode_Decode(t *testing.T) {
	assert := assert.New(t)

	op := Opcode(0xbf)
	assert.Equal(CLASS_ALU64, op.Class())
	alu, wide, source := op.AluDecode()
	assert.Equal(ALU_OP_MOV, alu)
	assert.True(wide)
	assert.Equal(SOURCE_REG, source)

	op = Opcode(0x1d)
	assert.Equal(CLASS_JMP, op.Class())
	jmp, source := op.JmpDecode()
	assert.Equal(JMP_OP_JEQ, jmp)
	assert.Equal(SOURCE_REG, source)

	op = Opcode(0x79)
	assert.Equal(CLASS_LDX, op.Class())
	mode, size := op.MemDecode()
	assert.Equal(MODE_MEM, mode)
	assert.Equal(SIZE_DW, size)

	assert.Equal(Opcode(0x07), MakeOpcodeAlu(true, ALU_OP_ADD, SOURCE_IMM))
	assert.Equal(Opcode(0x0c), MakeOpcodeAlu(false, ALU_OP_ADD, SOURCE_REG))
	assert.Equal(Opcode(0x95), MakeOpcodeJmp(JMP_OP_EXIT, SOURCE_IMM))
	assert.Equal(Opcode(0x63), MakeOpcodeMem(CLASS_STX, MODE_MEM, SIZE_W))
	assert.Equal(Opcode(0xdb), MakeOpcodeMem(CLASS_STX, MODE_XADD, SIZE_DW))
	assert.Equal(Opcode(0x06), MakeOpcodeRet())
}

func TestClassify(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		opcode   Opcode
		mnemonic string
		pattern  CodePattern
	}){
		{0x07, "add", PATTERN_DST_IMM},
		{0x0f, "add", PATTERN_DST_SRC},
		{0x04, "add32", PATTERN_DST_IMM},
		{0x0c, "add32", PATTERN_DST_SRC},
		{0x87, "neg", PATTERN_DST_IMM},
		{0x84, "neg32", PATTERN_DST_IMM},
		{0xb7, "mov", PATTERN_DST_IMM},
		{0xbf, "mov", PATTERN_DST_SRC},
		{0xcc, "arsh32", PATTERN_DST_SRC},
		{0xd4, "end32", PATTERN_DST_IMM},
		{0x05, "ja", PATTERN_OFF},
		{0x15, "jeq", PATTERN_DST_IMM_OFF},
		{0x1d, "jeq", PATTERN_DST_SRC_OFF},
		{0x25, "jgt", PATTERN_DST_IMM_OFF},
		{0x35, "jge", PATTERN_DST_IMM_OFF},
		{0x45, "jset", PATTERN_DST_IMM_OFF},
		{0x5d, "jne", PATTERN_DST_SRC_OFF},
		{0x6d, "jsgt", PATTERN_DST_SRC_OFF},
		{0x75, "jsge", PATTERN_DST_IMM_OFF},
		{0x85, "call", PATTERN_IMM},
		{0x95, "exit", PATTERN_NONE},
		{0xa5, "jlt", PATTERN_DST_IMM_OFF},
		{0xbd, "jle", PATTERN_DST_SRC_OFF},
		{0xc5, "jslt", PATTERN_DST_IMM_OFF},
		{0xdd, "jsle", PATTERN_DST_SRC_OFF},
		{0x00, "ldw", PATTERN_SRC_DST_IMM},
		{0x18, "lddw", PATTERN_SRC_DST_IMM},
		{0x20, "ldabsw", PATTERN_SRC_DST_IMM},
		{0x50, "ldindb", PATTERN_SRC_DST_IMM},
		{0x60, "ldmemw", PATTERN_SRC_DST_IMM},
		{0x61, "ldxw", PATTERN_DST_MEM},
		{0x69, "ldxh", PATTERN_DST_MEM},
		{0x71, "ldxb", PATTERN_DST_MEM},
		{0x79, "ldxdw", PATTERN_DST_MEM},
		{0x01, "ldximmw", PATTERN_DST_MEM},
		{0x62, "stw", PATTERN_MEM_IMM},
		{0x7a, "stdw", PATTERN_MEM_IMM},
		{0x63, "stxw", PATTERN_MEM_SRC},
		{0x6b, "stxh", PATTERN_MEM_SRC},
		{0x73, "stxb", PATTERN_MEM_SRC},
		{0xdb, "stxxadddw", PATTERN_MEM_SRC},
		{0x06, "ret", PATTERN_IMM},
	}

	for _, entry := range table {
		family, err := Classify(entry.opcode)
		if !assert.NoError(err, entry.mnemonic) {
			continue
		}
		assert.Equal(entry.mnemonic, family.Mnemonic(), "0x%02x", entry.opcode)
		assert.Equal(entry.pattern, family.Pattern(), entry.mnemonic)
		assert.Equal(entry.opcode, family.Opcode(), entry.mnemonic)
		assert.Equal(entry.mnemonic, entry.opcode.String())
	}
}

func TestClassify_Invalid(t *testing.T) {
	assert := assert.New(t)

	invalid := []Opcode{
		0x8f, // neg, register source
		0x8c, // neg32, register source
		0xe7, // alu op 14
		0xf4, // alu32 op 15
		0x0d, // ja, register source
		0x8d, // call, register source
		0x9d, // exit, register source
		0xe5, // jmp op 14
		0xfd, // jmp op 15
		0xe0, // ld, mode 7
		0xfb, // stx, mode 7
		0x0e, // ret with sub-bits
		0xfe, // ret with sub-bits
	}

	for _, op := range invalid {
		family, err := Classify(op)
		assert.Nil(family, "0x%02x", op)
		assert.ErrorIs(err, ErrOpcode(0), "0x%02x", op)
		assert.Equal(ErrOpcode(op), err)
		assert.Contains(op.String(), "Opcode(0x")
	}
}

func TestClassify_AllOpcodes(t *testing.T) {
	assert := assert.New(t)

	valid := 0
	for n := range 256 {
		op := Opcode(n)
		family, err := Classify(op)
		if err != nil {
			continue
		}
		valid++

		// Every decodable opcode has a mnemonic that assembles back to it.
		entry, ok := LookupMnemonic(family.Mnemonic())
		if !assert.True(ok, family.Mnemonic()) {
			continue
		}
		var got Family
		switch {
		case !entry.Paired:
			got = entry.Immediate
		case op.Source() == SOURCE_IMM:
			got = entry.Immediate
		default:
			got = entry.Register
		}
		assert.Equal(op, got.Opcode(), family.Mnemonic())
	}

	// 27 ALU op/source pairs per width, 25 jumps, 112 loads and stores, ret
	assert.Equal(2*27+25+112+1, valid)
}

func TestMnemonic_Select(t *testing.T) {
	assert := assert.New(t)

	add, ok := LookupMnemonic("ADD")
	assert.True(ok)
	assert.True(add.Paired)

	family, err := add.Select("r1,#5")
	assert.NoError(err)
	assert.Equal(Opcode(0x07), family.Opcode())

	family, err = add.Select("r1,r2")
	assert.NoError(err)
	assert.Equal(Opcode(0x0f), family.Opcode())

	neg, ok := LookupMnemonic("neg")
	assert.True(ok)
	assert.True(neg.Paired)
	assert.Nil(neg.Register)
	_, err = neg.Select("r1")
	assert.ErrorIs(err, ErrSourceRegister)

	for _, name := range []string{"ja", "call", "exit"} {
		entry, ok := LookupMnemonic(name)
		assert.True(ok, name)
		assert.False(entry.Paired, name)
		assert.Nil(entry.Register, name)
	}

	exit, _ := LookupMnemonic("exit")
	family, err = exit.Select("")
	assert.NoError(err)
	assert.Equal(Opcode(0x95), family.Opcode())

	ldxw, _ := LookupMnemonic("ldxw")
	family, err = ldxw.Select("r1,[r2+4]")
	assert.NoError(err)
	assert.Equal(Opcode(0x61), family.Opcode())

	_, ok = LookupMnemonic("frobnicate")
	assert.False(ok)
}

func TestMnemonics(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for name, entry := range Mnemonics() {
		count++
		assert.Equal(name, entry.Immediate.Mnemonic())
		if entry.Register != nil {
			assert.Equal(name, entry.Register.Mnemonic())
			assert.Equal(entry.Immediate.Opcode()|0x08, entry.Register.Opcode())
		}
	}

	// 14 ALU ops in two widths, 14 jumps, 4 x 7 x 4 loads and stores, ret
	assert.Equal(2*14+14+4*7*4+1, count)
}
