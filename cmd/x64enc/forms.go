package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wdamron/x64/v2/feats"
	x64lookup "github.com/wdamron/x64/v2/lookup"
)

func newFormsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forms <mnemonic>...",
		Short: "List the encoding forms of instructions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := newTable(cmd.OutOrStdout(), "Instruction", "#", "Operands", "Opcode", "Flags", "Features")
			for _, mnemonic := range args {
				forms, ok := x64lookup.Forms(mnemonic)
				if !ok {
					return fmt.Errorf("unknown mnemonic %q", mnemonic)
				}
				logrus.WithFields(logrus.Fields{"mnemonic": mnemonic, "forms": len(forms)}).Debug("found forms")
				for _, f := range forms {
					features := ""
					if f.Features != feats.X64_IMPLICIT {
						features = f.Features.String()
					}
					table.Append([]string{
						f.Inst.Name(),
						fmt.Sprint(f.Index),
						f.Operands(),
						f.OpcodeString(),
						strings.Join(f.FlagNames(), "|"),
						features,
					})
				}
			}
			table.Render()
			return nil
		},
	}
}
