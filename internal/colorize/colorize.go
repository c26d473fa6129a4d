// Package colorize highlights disassembly listings for terminal output.
package colorize

import (
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// BpfDark is the listing style: mnemonics white, registers teal, numbers pink.
var BpfDark = styles.Register(chroma.MustNewStyle("bpf-dark", chroma.StyleEntries{
	chroma.Text:       "#FFFFFF",
	chroma.Background: "bg:#1e1e1e",
	chroma.Comment:    "#808080",

	chroma.Keyword:      "#FFFFFF",
	chroma.NameFunction: "#FFFFFF",
	chroma.Name:         "#7C9C9D",
	chroma.NameVariable: "#7C9C9D",
	chroma.NameBuiltin:  "#7C9C9D",
	chroma.NameLabel:    "#FFD700",

	chroma.LiteralNumber:        "#FF5F87",
	chroma.LiteralNumberHex:     "#FF5F87",
	chroma.LiteralNumberInteger: "#FF5F87",

	chroma.Operator:    "#FFFFFF",
	chroma.Punctuation: "#FFFFFF",
}))

// Disabled reports whether colour output is turned off by BPFASM_NO_COLOR.
func Disabled() bool {
	return os.Getenv("BPFASM_NO_COLOR") != ""
}

// lexer returns the first available assembly lexer.
func lexer() chroma.Lexer {
	for _, name := range []string{"gas", "nasm"} {
		if lx := lexers.Get(name); lx != nil {
			return lx
		}
	}
	return nil
}

// formatter returns the best available terminal formatter.
func formatter() chroma.Formatter {
	for _, name := range []string{"terminal16m", "terminal256"} {
		if fm := formatters.Get(name); fm != nil {
			return fm
		}
	}
	return formatters.Fallback
}

// Listing highlights listing text. On any failure the text is returned unchanged.
func Listing(text string) string {
	if Disabled() {
		return text
	}

	lx := lexer()
	if lx == nil {
		return text
	}

	iterator, err := lx.Tokenise(nil, text)
	if err != nil {
		return text
	}

	// Lexers may append a newline the listing did not have.
	tokens := iterator.Tokens()
	if n := len(tokens); n > 0 && !strings.HasSuffix(text, "\n") {
		tokens[n-1].Value = strings.TrimSuffix(tokens[n-1].Value, "\n")
	}
	iterator = chroma.Literator(tokens...)

	var buf strings.Builder
	if err := formatter().Format(&buf, BpfDark, iterator); err != nil {
		return text
	}

	return buf.String()
}
