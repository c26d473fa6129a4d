// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/bpfasm/bpf"
	"github.com/ezrec/bpfasm/internal/cli"
	"github.com/ezrec/bpfasm/internal/logging"
)

func main() {
	cli.Execute(newRootCmd())
}

func newRootCmd() *cobra.Command {
	var output string
	var defines []string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "bpfasm [flags] program.asm",
		Short: "Assemble eBPF mnemonics into instruction words",
		Long: `Assemble one instruction per line into 8-byte little-endian
instruction words. The binary is written to standard output unless -o is given.
Nothing is written if any line fails to assemble.`,
		Example: `
# Assemble to a file
bpfasm -o prog.bin prog.asm

# Provide a name for $(...) expressions
bpfasm -D STACK=512 prog.asm > prog.bin
  `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			asm := &bpf.Assembler{
				Verbose: verbose,
				Logger:  logging.NewLogger("bpfasm"),
			}
			for _, def := range defines {
				name, value, ok := strings.Cut(def, "=")
				if !ok || len(name) == 0 {
					return fmt.Errorf("-D %v: expected NAME=VALUE", def)
				}
				asm.Predefine(name, value)
			}

			data, err := assembleFile(asm, args[0])
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "Binary output file")
	cmd.Flags().StringArrayVarP(&defines, "define", "D", nil, "Predefine NAME=VALUE for $(...) expressions")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	return cmd
}

// assembleFile assembles the named file. Nothing is returned on error.
func assembleFile(asm *bpf.Assembler, path string) (data []byte, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err := asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	data = prog.Binary()
	return
}
