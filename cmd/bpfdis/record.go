package main

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/ezrec/bpfasm/bpf"
)

// Record is the JSON form of one listing line.
type Record struct {
	Index    int      `json:"index" jsonschema:"title=Index,description=Zero-based word position"`
	Bytes    string   `json:"bytes" jsonschema:"title=Bytes,description=Raw word as space separated hex octets"`
	Opcode   uint8    `json:"opcode" jsonschema:"title=Opcode,description=Opcode byte"`
	Mnemonic string   `json:"mnemonic,omitempty" jsonschema:"title=Mnemonic,description=Instruction mnemonic"`
	Operands []string `json:"operands,omitempty" jsonschema:"title=Operands,description=Operand tokens in assembly syntax"`
	Error    string   `json:"error,omitempty" jsonschema:"title=Error,description=Decode failure for this word"`
}

func newRecord(l bpf.Listing) (rec Record) {
	rec = Record{
		Index:    l.Index,
		Bytes:    fmt.Sprintf("% x", l.Raw[:]),
		Opcode:   l.Raw[0],
		Mnemonic: l.Mnemonic,
		Operands: l.Operands,
	}
	if l.Err != nil {
		rec.Error = l.Err.Error()
	}
	return
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "schema",
		Short:  "Generate JSON schema for --json records",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reflector := new(jsonschema.Reflector)
			bts, err := json.MarshalIndent(reflector.Reflect(&Record{}), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(bts))
			return nil
		},
	}
}
