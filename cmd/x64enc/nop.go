package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wdamron/x64/v2"
)

func newNopCommand() *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "nop <length>",
		Short: "Print the recommended NOP padding of the given length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("invalid length %q", args[0])
			}
			code := x64.Nops(n)
			if decode {
				return printDisasm(cmd, code, 0)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hexBytes(code))
			return nil
		},
	}
	cmd.Flags().BoolVar(&decode, "disasm", false, "decode the padding instead of printing raw bytes")
	return cmd
}
