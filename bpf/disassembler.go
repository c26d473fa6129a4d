// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bpf

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ezrec/bpfasm/internal"
)

// Listing is one disassembled word.
type Listing struct {
	Index    int             // Word position, starting at 0.
	Raw      [WORD_SIZE]byte // Wire form of the word.
	Word     Word            // Unpacked fields.
	Mnemonic string          // Empty if Err is set.
	Operands []string        // Operand tokens.
	Err      error           // *ErrDecode if the word has no defined instruction.
}

// operandWidths are the column widths of all but the final operand.
var operandWidths = []int{10, 5}

// Text returns the re-assemblable instruction text.
func (l Listing) Text() string {
	if l.Err != nil {
		return "(invalid instruction)"
	}
	if len(l.Operands) == 0 {
		return l.Mnemonic
	}
	return l.Mnemonic + " " + strings.Join(l.Operands, ", ")
}

// String returns the formatted listing line:
//
//	INDEX:   HEX_BYTES   MNEMONIC   OPERANDS
func (l Listing) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "0x%04x:   %-28s ", l.Index, hexBytes(l.Raw[:]))

	if l.Err != nil {
		sb.WriteString("(invalid instruction)")
		return sb.String()
	}

	fmt.Fprintf(&sb, "%-10s", l.Mnemonic)
	for n, op := range l.Operands {
		if n < len(l.Operands)-1 {
			op += ","
		}
		if n < len(operandWidths) {
			fmt.Fprintf(&sb, "%-*s", operandWidths[n], op)
		} else {
			sb.WriteString(op)
		}
	}

	return strings.TrimRight(sb.String(), " ")
}

// DecodeListing disassembles the word at the start of raw.
func DecodeListing(index int, raw []byte) (l Listing) {
	l.Index = index
	copy(l.Raw[:], raw)

	defer func() {
		if l.Err != nil {
			l.Err = &ErrDecode{Index: index, Raw: l.Raw[:min(len(raw), WORD_SIZE)], Err: l.Err}
		}
	}()

	word, err := Unpack(raw)
	if err != nil {
		l.Err = err
		return
	}
	l.Word = word

	family, err := Classify(word.Opcode)
	if err != nil {
		l.Err = err
		return
	}

	l.Mnemonic = family.Mnemonic()
	l.Operands = family.Pattern().Decode(word)

	return
}

// Disassembler turns a binary stream into listing lines.
type Disassembler struct {
	Verbose bool        // If set, logs each decoded word.
	Logger  *log.Logger // Logger for verbose output. Defaults to log.Default().
	Workers int         // Concurrent decoders. Values below 2 decode sequentially.
}

func (dis *Disassembler) logger() *log.Logger {
	if dis.Logger == nil {
		return log.Default()
	}
	return dis.Logger
}

// Parse disassembles all of input.
func (dis *Disassembler) Parse(input io.Reader) (listing []Listing, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return dis.Disassemble(data)
}

// Disassemble decodes every whole word of data.
func (dis *Disassembler) Disassemble(data []byte) (listing []Listing, err error) {
	return dis.DisassembleContext(context.Background(), data)
}

// DisassembleContext decodes every whole word of data.
//
// Words that do not decode are marked in their Listing and do not stop the
// stream. If data is not a whole number of words, the whole words are still
// returned along with an ErrProgramLength.
func (dis *Disassembler) DisassembleContext(ctx context.Context, data []byte) (listing []Listing, err error) {
	// A single trailing newline after whole words is not part of the program.
	if len(data)%WORD_SIZE == 1 && data[len(data)-1] == '\n' {
		data = data[:len(data)-1]
	}

	var lengthErr error
	if len(data)%WORD_SIZE != 0 {
		lengthErr = ErrProgramLength(len(data))
	}

	words := len(data) / WORD_SIZE
	listing = make([]Listing, words)

	decode := func(ctx context.Context, start, end int) error {
		for n := start; n < end; n++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			listing[n] = DecodeListing(n, data[n*WORD_SIZE:(n+1)*WORD_SIZE])
		}
		return nil
	}

	if dis.Workers < 2 {
		err = decode(ctx, 0, words)
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(dis.Workers)
		for start, end := range internal.IterRanges(words, dis.Workers) {
			g.Go(func() error { return decode(gctx, start, end) })
		}
		err = g.Wait()
	}
	if err != nil {
		listing = nil
		return
	}

	if dis.Verbose {
		for _, l := range listing {
			if l.Err != nil {
				dis.logger().Warn("decode", "index", l.Index, "err", l.Err)
			} else {
				dis.logger().Infof("0x%04x: %v", l.Index, l.Text())
			}
		}
	}

	err = lengthErr
	return
}

// Disassemble formats data as listing text, one line per word.
func Disassemble(data []byte) (text string, err error) {
	dis := &Disassembler{}
	listing, err := dis.Disassemble(data)

	lines := make([]string, len(listing))
	for n, l := range listing {
		lines[n] = l.String()
	}
	text = strings.Join(lines, "\n")

	return
}
