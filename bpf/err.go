package bpf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ezrec/bpfasm/translate"
)

var f = translate.From

var (
	// Instruction word errors
	ErrWordShort     = errors.New(f("word short"))
	ErrOpcodeInvalid = errors.New(f("opcode invalid")) // Encode on PATTERN_UNDEFINED

	// Assembler errors
	ErrMnemonicUnknown  = errors.New(f("mnemonic unknown"))
	ErrSourceRegister   = errors.New(f("register source unsupported"))
	ErrOperandMissing   = errors.New(f("operand missing"))
	ErrOperandExtra     = errors.New(f("excessive operands"))
	ErrRegisterInvalid  = errors.New(f("register invalid"))
	ErrInstructionEmpty = errors.New(f("instruction empty"))
)

// ErrOpcode is an opcode with no defined family member.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x", uint8(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrAssembly reports the source line that failed to assemble.
type ErrAssembly struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrAssembly) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrAssembly) Unwrap() error {
	return err.Err
}

// ErrDecode reports a single word that failed to disassemble.
type ErrDecode struct {
	Index int
	Raw   []byte
	Err   error
}

func (err *ErrDecode) Error() string {
	return f("word 0x%04x [%v] %v", err.Index, hexBytes(err.Raw), err.Err)
}

func (err *ErrDecode) Unwrap() error {
	return err.Err
}

// ErrProgramLength is a binary length that is not a whole number of words.
type ErrProgramLength int

func (err ErrProgramLength) Error() string {
	return f("program length %d is not a multiple of %d", int(err), WORD_SIZE)
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrParseImmediate string

func (err ErrParseImmediate) Error() string {
	return f("'%v' is not an immediate", string(err))
}

type ErrParseOffset string

func (err ErrParseOffset) Error() string {
	return f("'%v' is not an offset", string(err))
}

type ErrParseMemory string

func (err ErrParseMemory) Error() string {
	return f("'%v' is not a memory reference", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// hexBytes renders bytes as space separated hex octets.
func hexBytes(raw []byte) string {
	var sb strings.Builder
	for n, b := range raw {
		if n > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", b)
	}
	return sb.String()
}
