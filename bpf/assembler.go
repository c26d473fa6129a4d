// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bpf

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined expression names
var sysEquate = map[string]string{
	"LINENO":    "0",
	"WORD_SIZE": fmt.Sprintf("%v", WORD_SIZE),
	"REG_MAX":   fmt.Sprintf("%v", REG_MAX),
}

var parenRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a line-at-a-time assembler. Each non-empty line is exactly
// one instruction word.
type Assembler struct {
	Verbose bool        // If set, logs each assembled line.
	Logger  *log.Logger // Logger for verbose output. Defaults to log.Default().

	Statements []Statement       // Statements of the last Parse.
	Equate     map[string]string // Names visible to $(...) expressions.

	predefine map[string]string
}

// Predefine defines a new expression name or redefines an existing one.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

func (asm *Assembler) logger() *log.Logger {
	if asm.Logger == nil {
		return log.Default()
	}
	return asm.Logger
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "bpfasm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Non-integer names are not visible to expressions.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expand replaces every $(...) in the line with its decimal value.
func (asm *Assembler) expand(line string, lineno int) (out string, err error) {
	if asm.Equate == nil {
		asm.Equate = maps.Clone(sysEquate)
	}
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	out = parenRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return fmt.Sprintf("%d", value)
	})

	return
}

// Instruction assembles a single line of text into a word.
func (asm *Assembler) Instruction(text string) (word Word, err error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) == 0 {
		err = ErrInstructionEmpty
		return
	}

	name, operands := text, ""
	if n := strings.IndexFunc(text, unicode.IsSpace); n >= 0 {
		name, operands = text[:n], text[n:]
	}
	operands = strings.Join(strings.Fields(operands), "")

	entry, ok := LookupMnemonic(name)
	if !ok {
		err = ErrMnemonicUnknown
		return
	}

	family, err := entry.Select(operands)
	if err != nil {
		return
	}

	word.Opcode = family.Opcode()
	err = family.Pattern().Encode(&word, operands)
	if err != nil {
		word = Word{}
		return
	}

	return
}

// Parse assembles an input stream into a Program.
// On any error no Program is returned.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrAssembly{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	asm.Statements = asm.Statements[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		line = strings.TrimSpace(text)
		if len(line) == 0 {
			continue
		}

		if asm.Verbose {
			asm.logger().Infof("%v: %v", lineno, line)
		}

		var expanded string
		expanded, err = asm.expand(line, lineno)
		if err != nil {
			return
		}

		var word Word
		word, err = asm.Instruction(expanded)
		if err != nil {
			return
		}

		asm.Statements = append(asm.Statements, Statement{LineNo: lineno, Text: line, Word: word})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Statements: append([]Statement(nil), asm.Statements...),
	}

	return
}

// Assemble assembles program text into its binary form.
func Assemble(text string) (data []byte, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(text))
	if err != nil {
		return
	}
	data = prog.Binary()
	return
}
