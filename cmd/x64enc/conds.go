package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wdamron/x64/v2"
)

func newCondsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "conds",
		Short: "List condition codes with their aliases and inverses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := newTable(cmd.OutOrStdout(), "Code", "Name", "Aliases", "Inverse")
			for _, c := range x64.AllConds() {
				table.Append([]string{
					fmt.Sprintf("%#x", uint8(c)),
					c.String(),
					strings.Join(c.Aliases(), ", "),
					c.Invert().String(),
				})
			}
			table.Render()
			return nil
		},
	}
}
