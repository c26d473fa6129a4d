// Package cli runs the command line tools.
package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(f.Fd())
}

// Execute runs root and exits non-zero on failure.
//
// When stdout is a terminal the command runs through fang for styled help
// and errors. Otherwise cobra runs it directly so that piped output, binary
// output in particular, is left untouched.
func Execute(root *cobra.Command) {
	var err error
	if IsTerminal(os.Stdout) {
		err = fang.Execute(context.Background(), root, fang.WithNotifySignal(os.Interrupt))
	} else {
		err = root.Execute()
	}
	if err != nil {
		os.Exit(1)
	}
}
