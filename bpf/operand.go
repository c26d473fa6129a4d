// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bpf

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// CodePattern is an operand grammar, and the word fields it maps to.
type CodePattern int

//go:generate go tool stringer -linecomment -type=CodePattern
const (
	PATTERN_UNDEFINED   = CodePattern(0)  // undefined
	PATTERN_NONE        = CodePattern(1)  // none
	PATTERN_IMM         = CodePattern(2)  // imm
	PATTERN_DST_IMM     = CodePattern(3)  // dst_imm
	PATTERN_DST_SRC     = CodePattern(4)  // dst_src
	PATTERN_SRC_DST_IMM = CodePattern(5)  // src_dst_imm
	PATTERN_DST_MEM     = CodePattern(6)  // dst_mem
	PATTERN_MEM_IMM     = CodePattern(7)  // mem_imm
	PATTERN_MEM_SRC     = CodePattern(8)  // mem_src
	PATTERN_DST_IMM_OFF = CodePattern(9)  // dst_imm_off
	PATTERN_DST_SRC_OFF = CodePattern(10) // dst_src_off
	PATTERN_OFF         = CodePattern(11) // off
)

// operandCodec converts between operand tokens and word fields.
// Fields not named by the pattern are left zero on encode.
type operandCodec struct {
	args   int
	encode func(w *Word, args []string) error
	decode func(w Word) []string
}

var operandCodecs = [...]operandCodec{
	PATTERN_NONE: {
		args:   0,
		encode: func(w *Word, args []string) error { return nil },
		decode: func(w Word) []string { return nil },
	},
	PATTERN_IMM: {
		args: 1,
		encode: func(w *Word, args []string) (err error) {
			w.Immediate, err = parseImmediate(args[0])
			return
		},
		decode: func(w Word) []string {
			return []string{formatImmediate(w.Immediate)}
		},
	},
	PATTERN_DST_IMM: {
		args: 2,
		encode: func(w *Word, args []string) (err error) {
			if w.Dst, err = parseRegister(args[0]); err != nil {
				return
			}
			w.Immediate, err = parseImmediate(args[1])
			return
		},
		decode: func(w Word) []string {
			return []string{formatRegister(w.Dst), formatImmediate(w.Immediate)}
		},
	},
	PATTERN_DST_SRC: {
		args: 2,
		encode: func(w *Word, args []string) (err error) {
			if w.Dst, err = parseRegister(args[0]); err != nil {
				return
			}
			w.Src, err = parseRegister(args[1])
			return
		},
		decode: func(w Word) []string {
			return []string{formatRegister(w.Dst), formatRegister(w.Src)}
		},
	},
	PATTERN_SRC_DST_IMM: {
		args: 3,
		encode: func(w *Word, args []string) (err error) {
			if w.Src, err = parseRegister(args[0]); err != nil {
				return
			}
			if w.Dst, err = parseRegister(args[1]); err != nil {
				return
			}
			w.Immediate, err = parseImmediate(args[2])
			return
		},
		decode: func(w Word) []string {
			return []string{formatRegister(w.Src), formatRegister(w.Dst), formatImmediate(w.Immediate)}
		},
	},
	PATTERN_DST_MEM: {
		args: 2,
		encode: func(w *Word, args []string) (err error) {
			if w.Dst, err = parseRegister(args[0]); err != nil {
				return
			}
			w.Src, w.Offset, err = parseMemory(args[1])
			return
		},
		decode: func(w Word) []string {
			return []string{formatRegister(w.Dst), formatMemory(w.Src, w.Offset)}
		},
	},
	PATTERN_MEM_IMM: {
		args: 2,
		encode: func(w *Word, args []string) (err error) {
			if w.Dst, w.Offset, err = parseMemory(args[0]); err != nil {
				return
			}
			w.Immediate, err = parseImmediate(args[1])
			return
		},
		decode: func(w Word) []string {
			return []string{formatMemory(w.Dst, w.Offset), formatImmediate(w.Immediate)}
		},
	},
	PATTERN_MEM_SRC: {
		args: 2,
		encode: func(w *Word, args []string) (err error) {
			if w.Dst, w.Offset, err = parseMemory(args[0]); err != nil {
				return
			}
			w.Src, err = parseRegister(args[1])
			return
		},
		decode: func(w Word) []string {
			return []string{formatMemory(w.Dst, w.Offset), formatRegister(w.Src)}
		},
	},
	PATTERN_DST_IMM_OFF: {
		args: 3,
		encode: func(w *Word, args []string) (err error) {
			if w.Dst, err = parseRegister(args[0]); err != nil {
				return
			}
			if w.Immediate, err = parseImmediate(args[1]); err != nil {
				return
			}
			w.Offset, err = parseOffset(args[2])
			return
		},
		decode: func(w Word) []string {
			return []string{formatRegister(w.Dst), formatImmediate(w.Immediate), formatOffset(w.Offset)}
		},
	},
	PATTERN_DST_SRC_OFF: {
		args: 3,
		encode: func(w *Word, args []string) (err error) {
			if w.Dst, err = parseRegister(args[0]); err != nil {
				return
			}
			if w.Src, err = parseRegister(args[1]); err != nil {
				return
			}
			w.Offset, err = parseOffset(args[2])
			return
		},
		decode: func(w Word) []string {
			return []string{formatRegister(w.Dst), formatRegister(w.Src), formatOffset(w.Offset)}
		},
	},
	PATTERN_OFF: {
		args: 1,
		encode: func(w *Word, args []string) (err error) {
			w.Offset, err = parseOffset(args[0])
			return
		},
		decode: func(w Word) []string {
			return []string{formatOffset(w.Offset)}
		},
	},
}

func (p CodePattern) codec() (codec operandCodec, ok bool) {
	if p <= PATTERN_UNDEFINED || int(p) >= len(operandCodecs) {
		return
	}
	return operandCodecs[p], true
}

// Args returns the number of comma separated operands of the pattern.
func (p CodePattern) Args() int {
	codec, _ := p.codec()
	return codec.args
}

// Encode parses whitespace-free operand text into the fields of w.
// The opcode of w is left untouched. PATTERN_UNDEFINED has no grammar and
// always fails with ErrOpcodeInvalid.
func (p CodePattern) Encode(w *Word, operands string) (err error) {
	codec, ok := p.codec()
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	var args []string
	if len(operands) != 0 {
		args = strings.Split(operands, ",")
	}

	switch {
	case len(args) < codec.args:
		err = ErrOperandMissing
		return
	case len(args) > codec.args:
		err = ErrOperandExtra
		return
	}

	return codec.encode(w, args)
}

// Decode returns the operand tokens for the fields of w.
func (p CodePattern) Decode(w Word) (operands []string) {
	codec, ok := p.codec()
	if !ok {
		return
	}
	return codec.decode(w)
}

// parseRegister parses an `rN` token.
func parseRegister(token string) (reg uint8, err error) {
	num, ok := strings.CutPrefix(token, "r")
	if !ok || len(num) == 0 {
		err = ErrParseRegister(token)
		return
	}
	value, perr := strconv.ParseUint(num, 10, 64)
	if perr != nil {
		err = ErrParseRegister(token)
		return
	}
	if value > REG_MAX {
		err = ErrRegisterInvalid
		return
	}
	reg = uint8(value)
	return
}

// parseWrapped parses a signed base-10 literal of any length and reduces it
// modulo 2^bits.
func parseWrapped(num string, bits uint) (value uint64, ok bool) {
	v, ok := new(big.Int).SetString(num, 10)
	if !ok {
		return
	}
	mask := new(big.Int).Lsh(big.NewInt(1), bits)
	mask.Sub(mask, big.NewInt(1))
	value = v.And(v, mask).Uint64()
	return
}

// parseImmediate parses a `#N` token, wrapping N to 32 bits.
func parseImmediate(token string) (imm int32, err error) {
	num, ok := strings.CutPrefix(token, "#")
	if !ok {
		err = ErrParseImmediate(token)
		return
	}
	value, ok := parseWrapped(num, 32)
	if !ok {
		err = ErrParseImmediate(token)
		return
	}
	imm = int32(uint32(value))
	return
}

// parseOffset parses a signed offset literal, wrapping it to 16 bits.
func parseOffset(token string) (off int16, err error) {
	value, ok := parseWrapped(token, 16)
	if !ok {
		err = ErrParseOffset(token)
		return
	}
	off = int16(uint16(value))
	return
}

var bracketRemover = strings.NewReplacer("[", "", "]", "")

// parseMemory parses a `[rN]`, `[rN+K]` or `[rN-K]` token.
func parseMemory(token string) (reg uint8, off int16, err error) {
	inner := bracketRemover.Replace(token)

	base := inner
	var disp int16
	if n := strings.IndexAny(inner, "+-"); n >= 0 {
		base = inner[:n]
		k := inner[n+1:]
		if strings.HasPrefix(k, "+") || strings.HasPrefix(k, "-") {
			err = ErrParseMemory(token)
			return
		}
		value, ok := parseWrapped(k, 16)
		if !ok {
			err = ErrParseMemory(token)
			return
		}
		disp = int16(uint16(value))
		if inner[n] == '-' {
			disp = -disp
		}
	}

	reg, err = parseRegister(base)
	if err != nil {
		return
	}
	off = disp
	return
}

func formatRegister(reg uint8) string {
	return fmt.Sprintf("r%d", reg)
}

func formatImmediate(imm int32) string {
	return fmt.Sprintf("#%d", imm)
}

func formatOffset(off int16) string {
	return fmt.Sprintf("%+d", off)
}

func formatMemory(reg uint8, off int16) string {
	if off == 0 {
		return fmt.Sprintf("[%v]", formatRegister(reg))
	}
	return fmt.Sprintf("[%v%v]", formatRegister(reg), formatOffset(off))
}
