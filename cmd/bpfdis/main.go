// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/bpfasm/bpf"
	"github.com/ezrec/bpfasm/internal/cli"
	"github.com/ezrec/bpfasm/internal/colorize"
	"github.com/ezrec/bpfasm/internal/logging"
)

func main() {
	cli.Execute(newRootCmd())
}

func newRootCmd() *cobra.Command {
	var asJSON bool
	var color bool
	var workers int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "bpfdis [flags] program.bin",
		Short: "Disassemble eBPF instruction words into mnemonics",
		Long: `Disassemble a binary of 8-byte instruction words, one listing
line per word. Words that do not decode are shown as invalid and decoding
continues with the next word.`,
		Example: `
# Plain listing
bpfdis prog.bin

# JSON lines, decoded on 4 workers
bpfdis --json -j 4 prog.bin
  `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			logger := logging.NewLogger("bpfdis")
			dis := &bpf.Disassembler{
				Verbose: verbose,
				Logger:  logger,
				Workers: workers,
			}

			inf, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer inf.Close()

			listing, lengthErr := dis.Parse(inf)
			if lengthErr != nil && listing == nil {
				return fmt.Errorf("%v: %w", args[0], lengthErr)
			}

			if !cmd.Flags().Changed("color") {
				color = cmd.OutOrStdout() == io.Writer(os.Stdout) && cli.IsTerminal(os.Stdout)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				err = writeJSON(out, listing)
			} else {
				err = writeText(out, listing, color)
			}
			if err != nil {
				return err
			}

			for _, l := range listing {
				if l.Err != nil {
					logger.Warn(l.Err)
				}
			}

			if lengthErr != nil {
				return fmt.Errorf("%v: %w", args[0], lengthErr)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output one JSON object per word")
	cmd.Flags().BoolVar(&color, "color", false, "Colorize the listing (default: when stdout is a terminal)")
	cmd.Flags().IntVarP(&workers, "workers", "j", 1, "Concurrent decoders")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	cmd.AddCommand(newSchemaCmd())

	return cmd
}

func writeText(w io.Writer, listing []bpf.Listing, color bool) (err error) {
	if len(listing) == 0 {
		return
	}

	lines := make([]string, len(listing))
	for n, l := range listing {
		lines[n] = l.String()
	}
	text := strings.Join(lines, "\n")
	if color {
		text = colorize.Listing(text)
	}

	_, err = fmt.Fprintln(w, text)
	return
}

func writeJSON(w io.Writer, listing []bpf.Listing) (err error) {
	enc := json.NewEncoder(w)
	for _, l := range listing {
		err = enc.Encode(newRecord(l))
		if err != nil {
			return
		}
	}
	return
}
