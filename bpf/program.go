package bpf

import (
	"iter"
)

// Statement is one assembled source line.
type Statement struct {
	LineNo int    // Source line number, starting at 1.
	Text   string // Trimmed source text.
	Word   Word   // Assembled word.
}

// Program is an ordered sequence of instruction words. The position of a
// word is its only identity.
type Program struct {
	Statements []Statement
}

// LineNo returns the source line of the word at index, or 0 if there is none.
func (prog *Program) LineNo(index int) int {
	if index < 0 || index >= len(prog.Statements) {
		return 0
	}
	return prog.Statements[index].LineNo
}

// Binary returns the concatenated wire form of all words.
func (prog *Program) Binary() (data []byte) {
	data = make([]byte, 0, len(prog.Statements)*WORD_SIZE)
	for _, word := range prog.Words() {
		data, _ = word.AppendBinary(data)
	}

	return
}

// Words iterates over the words of the program with their index.
func (prog *Program) Words() iter.Seq2[int, Word] {
	return func(yield func(index int, word Word) bool) {
		for n, stmt := range prog.Statements {
			if !yield(n, stmt.Word) {
				return
			}
		}
	}
}
