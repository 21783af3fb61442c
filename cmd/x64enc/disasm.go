package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wdamron/x64/v2/disasm"
)

func newDisasmCommand() *cobra.Command {
	var pc uint64

	cmd := &cobra.Command{
		Use:   "disasm <hex>...",
		Short: "Decode hex-encoded machine code, e.g. 4801d8c3",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := hex.DecodeString(strings.ReplaceAll(strings.Join(args, ""), " ", ""))
			if err != nil {
				return fmt.Errorf("invalid machine code: %w", err)
			}
			logrus.WithField("bytes", len(code)).Debug("decoding")
			return printDisasm(cmd, code, pc)
		},
	}
	cmd.Flags().Uint64Var(&pc, "pc", 0, "address of the first byte; relative branch targets are printed as absolute addresses when set")
	return cmd
}

func printDisasm(cmd *cobra.Command, code []byte, pc uint64) error {
	table := newTable(cmd.OutOrStdout(), "PC", "Bytes", "Instruction")
	err := disasm.Code(code, pc, func(l disasm.Line) bool {
		table.Append([]string{fmt.Sprintf("%#x", l.PC), hexBytes(l.Bytes), l.String()})
		return true
	})
	if err != nil {
		return err
	}
	table.Render()
	return nil
}
