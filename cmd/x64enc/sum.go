package main

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wdamron/x64/v2"
)

// Assemble func(a, b int) int. Arguments arrive in RAX and RBX; the result is returned in RAX.
func assembleSum() ([]byte, error) {
	asm := x64.NewAssembler(nil)
	asm.Inst(x64.ADD, x64.RAX, x64.RBX)
	asm.Inst(x64.RET)
	if err := asm.Err(); err != nil {
		return nil, err
	}
	return asm.Code(), nil
}

func newSumCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sum <a> <b>",
		Short: "Assemble an integer-sum function, map it into executable memory and call it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var operands [2]int
			for i, s := range args {
				v, err := strconv.Atoi(s)
				if err != nil {
					return fmt.Errorf("invalid operand %q: %w", s, err)
				}
				operands[i] = v
			}

			code, err := assembleSum()
			if err != nil {
				return err
			}
			logrus.WithField("code", hexBytes(code)).Debug("assembled sum")

			if dryRun || runtime.GOARCH != "amd64" {
				if !dryRun {
					logrus.WithField("arch", runtime.GOARCH).Warn("not running on amd64; printing code only")
				}
				fmt.Fprintln(cmd.OutOrStdout(), hexBytes(code))
				return nil
			}

			result, err := runSum(code, operands[0], operands[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the assembled code without executing it")
	return cmd
}
