package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wdamron/x64/v2"
)

var familyNames = map[uint8]string{
	x64.REG_LEGACY:   "legacy",
	x64.REG_RIP:      "rip",
	x64.REG_HIGHBYTE: "high-byte",
	x64.REG_FP:       "x87",
	x64.REG_SEGMENT:  "segment",
	x64.REG_CONTROL:  "control",
	x64.REG_DEBUG:    "debug",
}

func newRegsCommand() *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "regs",
		Short: "List registers with their encoding numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := newTable(cmd.OutOrStdout(), "Name", "Family", "Width", "Code", "REX")
			n := 0
			for _, r := range x64.AllRegs() {
				name := familyNames[r.Family()]
				if family != "" && family != name {
					continue
				}
				rex := ""
				switch {
				case r.IsExtended():
					rex = "extension"
				case r.ForcesRex():
					rex = "required"
				}
				table.Append([]string{r.String(), name, fmt.Sprint(r.Width()), fmt.Sprint(r.Code()), rex})
				n++
			}
			if n == 0 {
				return fmt.Errorf("unknown register family %q", family)
			}
			logrus.WithField("count", n).Debug("listed registers")
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "only list registers of this family (legacy, rip, high-byte, x87, segment, control, debug)")
	return cmd
}
