// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bpf

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

// Family is a classified opcode. There is one implementation per group of
// instruction classes, each carrying its own operand pattern.
type Family interface {
	Opcode() Opcode       // Opcode encoding this family member.
	Mnemonic() string     // Assembly mnemonic.
	Pattern() CodePattern // Operand pattern; PATTERN_UNDEFINED if not encodable.
}

// AluFamily is a 32-bit or 64-bit ALU operation.
type AluFamily struct {
	Op     CodeAluOp
	Wide   bool // 64-bit class.
	Source CodeSource
}

// JmpFamily is a jump, call or exit.
type JmpFamily struct {
	Op     CodeJmpOp
	Source CodeSource
}

// MemFamily is a load or store.
type MemFamily struct {
	Class CodeClass // One of CLASS_LD, CLASS_LDX, CLASS_ST or CLASS_STX.
	Mode  CodeMode
	Size  CodeSize
}

// RetFamily is the classic return.
type RetFamily struct{}

var (
	_ Family = AluFamily{}
	_ Family = JmpFamily{}
	_ Family = MemFamily{}
	_ Family = RetFamily{}
)

// aluPatterns holds the {immediate, register} operand patterns per ALU op.
var aluPatterns = [...][2]CodePattern{
	ALU_OP_ADD:  {PATTERN_DST_IMM, PATTERN_DST_SRC},
	ALU_OP_SUB:  {PATTERN_DST_IMM, PATTERN_DST_SRC},
	ALU_OP_MUL:  {PATTERN_DST_IMM, PATTERN_DST_SRC},
	ALU_OP_DIV:  {PATTERN_DST_IMM, PATTERN_DST_SRC},
	ALU_OP_OR:   {PATTERN_DST_IMM, PATTERN_DST_SRC},
	ALU_OP_AND:  {PATTERN_DST_IMM, PATTERN_DST_SRC},
	ALU_OP_LSH:  {PATTERN_DST_IMM, PATTERN_DST_SRC},
	ALU_OP_RSH:  {PATTERN_DST_IMM, PATTERN_DST_SRC},
	ALU_OP_NEG:  {PATTERN_DST_IMM, PATTERN_UNDEFINED},
	ALU_OP_MOD:  {PATTERN_DST_IMM, PATTERN_DST_SRC},
	ALU_OP_XOR:  {PATTERN_DST_IMM, PATTERN_DST_SRC},
	ALU_OP_MOV:  {PATTERN_DST_IMM, PATTERN_DST_SRC},
	ALU_OP_ARSH: {PATTERN_DST_IMM, PATTERN_DST_SRC},
	ALU_OP_END:  {PATTERN_DST_IMM, PATTERN_DST_SRC},
}

// jmpPatterns holds the {immediate, register} operand patterns per jump op.
var jmpPatterns = [...][2]CodePattern{
	JMP_OP_JA:   {PATTERN_OFF, PATTERN_UNDEFINED},
	JMP_OP_JEQ:  {PATTERN_DST_IMM_OFF, PATTERN_DST_SRC_OFF},
	JMP_OP_JGT:  {PATTERN_DST_IMM_OFF, PATTERN_DST_SRC_OFF},
	JMP_OP_JGE:  {PATTERN_DST_IMM_OFF, PATTERN_DST_SRC_OFF},
	JMP_OP_JSET: {PATTERN_DST_IMM_OFF, PATTERN_DST_SRC_OFF},
	JMP_OP_JNE:  {PATTERN_DST_IMM_OFF, PATTERN_DST_SRC_OFF},
	JMP_OP_JSGT: {PATTERN_DST_IMM_OFF, PATTERN_DST_SRC_OFF},
	JMP_OP_JSGE: {PATTERN_DST_IMM_OFF, PATTERN_DST_SRC_OFF},
	JMP_OP_CALL: {PATTERN_IMM, PATTERN_UNDEFINED},
	JMP_OP_EXIT: {PATTERN_NONE, PATTERN_UNDEFINED},
	JMP_OP_JLT:  {PATTERN_DST_IMM_OFF, PATTERN_DST_SRC_OFF},
	JMP_OP_JLE:  {PATTERN_DST_IMM_OFF, PATTERN_DST_SRC_OFF},
	JMP_OP_JSLT: {PATTERN_DST_IMM_OFF, PATTERN_DST_SRC_OFF},
	JMP_OP_JSLE: {PATTERN_DST_IMM_OFF, PATTERN_DST_SRC_OFF},
}

// memPatterns and memDefault are indexed by load/store class.
var memPatterns = [...]CodePattern{
	CLASS_LD:  PATTERN_SRC_DST_IMM,
	CLASS_LDX: PATTERN_DST_MEM,
	CLASS_ST:  PATTERN_MEM_IMM,
	CLASS_STX: PATTERN_MEM_SRC,
}

// The default mode is left out of the mnemonic.
var memDefault = [...]CodeMode{
	CLASS_LD:  MODE_IMM,
	CLASS_LDX: MODE_MEM,
	CLASS_ST:  MODE_MEM,
	CLASS_STX: MODE_MEM,
}

func (af AluFamily) Opcode() Opcode {
	return MakeOpcodeAlu(af.Wide, af.Op, af.Source)
}

func (af AluFamily) Mnemonic() string {
	if af.Wide {
		return af.Op.String()
	}
	return af.Op.String() + "32"
}

func (af AluFamily) Pattern() CodePattern {
	if af.Op < 0 || int(af.Op) >= len(aluPatterns) {
		return PATTERN_UNDEFINED
	}
	return aluPatterns[af.Op][af.Source&1]
}

func (jf JmpFamily) Opcode() Opcode {
	return MakeOpcodeJmp(jf.Op, jf.Source)
}

func (jf JmpFamily) Mnemonic() string {
	return jf.Op.String()
}

func (jf JmpFamily) Pattern() CodePattern {
	if jf.Op < 0 || int(jf.Op) >= len(jmpPatterns) {
		return PATTERN_UNDEFINED
	}
	return jmpPatterns[jf.Op][jf.Source&1]
}

func (mf MemFamily) Opcode() Opcode {
	return MakeOpcodeMem(mf.Class, mf.Mode, mf.Size)
}

func (mf MemFamily) Mnemonic() string {
	if mf.Class < 0 || int(mf.Class) >= len(memDefault) {
		return fmt.Sprintf("%v%v%v", mf.Class, mf.Mode, mf.Size)
	}
	if mf.Mode == memDefault[mf.Class] {
		return mf.Class.String() + mf.Size.String()
	}
	return mf.Class.String() + mf.Mode.String() + mf.Size.String()
}

func (mf MemFamily) Pattern() CodePattern {
	if mf.Class < 0 || int(mf.Class) >= len(memPatterns) {
		return PATTERN_UNDEFINED
	}
	if mf.Mode < MODE_IMM || mf.Mode > MODE_XADD {
		return PATTERN_UNDEFINED
	}
	return memPatterns[mf.Class]
}

func (RetFamily) Opcode() Opcode {
	return MakeOpcodeRet()
}

func (RetFamily) Mnemonic() string {
	return "ret"
}

func (RetFamily) Pattern() CodePattern {
	return PATTERN_IMM
}

// Classify decodes an opcode into its instruction family.
// This is the single dispatch point for disassembly.
func Classify(op Opcode) (family Family, err error) {
	switch class := op.Class(); class {
	case CLASS_ALU, CLASS_ALU64:
		alu, wide, source := op.AluDecode()
		family = AluFamily{Op: alu, Wide: wide, Source: source}
	case CLASS_JMP:
		jmp, source := op.JmpDecode()
		family = JmpFamily{Op: jmp, Source: source}
	case CLASS_LD, CLASS_LDX, CLASS_ST, CLASS_STX:
		mode, size := op.MemDecode()
		family = MemFamily{Class: class, Mode: mode, Size: size}
	case CLASS_RET:
		if op != MakeOpcodeRet() {
			err = ErrOpcode(op)
			return
		}
		family = RetFamily{}
	default:
		err = ErrOpcode(op)
		return
	}

	if family.Pattern() == PATTERN_UNDEFINED {
		family = nil
		err = ErrOpcode(op)
	}

	return
}

// Mnemonic is an assembler table entry.
type Mnemonic struct {
	Immediate Family // Used when operands have an immediate marker, or when not Paired.
	Register  Family // Used when operands lack an immediate marker. May be nil.
	Paired    bool   // If set, the immediate marker selects the variant.
}

// Select picks the family variant for the operand text.
func (m Mnemonic) Select(operands string) (family Family, err error) {
	if !m.Paired || strings.Contains(operands, "#") {
		family = m.Immediate
	} else {
		family = m.Register
	}

	if family == nil {
		err = ErrSourceRegister
	}

	return
}

// mnemonicMap is built once and never modified.
var mnemonicMap = buildMnemonics()

// variant returns the family for a source kind if it has an operand pattern.
func variant(family Family) Family {
	if family.Pattern() == PATTERN_UNDEFINED {
		return nil
	}
	return family
}

func buildMnemonics() map[string]Mnemonic {
	table := map[string]Mnemonic{}

	add := func(m Mnemonic) {
		name := m.Immediate.Mnemonic()
		if _, ok := table[name]; ok {
			panic(fmt.Sprintf("bpf: duplicate mnemonic %q", name))
		}
		table[name] = m
	}

	for _, wide := range []bool{false, true} {
		for op := range CodeAluOp(len(aluPatterns)) {
			add(Mnemonic{
				Immediate: variant(AluFamily{Op: op, Wide: wide, Source: SOURCE_IMM}),
				Register:  variant(AluFamily{Op: op, Wide: wide, Source: SOURCE_REG}),
				Paired:    true,
			})
		}
	}

	for op := range CodeJmpOp(len(jmpPatterns)) {
		reg := variant(JmpFamily{Op: op, Source: SOURCE_REG})
		add(Mnemonic{
			Immediate: variant(JmpFamily{Op: op, Source: SOURCE_IMM}),
			Register:  reg,
			Paired:    reg != nil,
		})
	}

	for class := range CodeClass(len(memPatterns)) {
		for mode := MODE_IMM; mode <= MODE_XADD; mode++ {
			for size := SIZE_W; size <= SIZE_DW; size++ {
				add(Mnemonic{Immediate: MemFamily{Class: class, Mode: mode, Size: size}})
			}
		}
	}

	add(Mnemonic{Immediate: RetFamily{}})

	return table
}

// LookupMnemonic finds the table entry for a case-insensitive mnemonic.
func LookupMnemonic(name string) (m Mnemonic, ok bool) {
	m, ok = mnemonicMap[strings.ToLower(name)]
	return
}

// Mnemonics iterates over the whole assembler table, in no particular order.
func Mnemonics() iter.Seq2[string, Mnemonic] {
	return maps.All(mnemonicMap)
}
