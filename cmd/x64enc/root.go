package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/xyproto/env/v2"
)

const logLevelEnv = "X64ENC_LOG_LEVEL"

type rootParams struct {
	logLevel string
}

func newRootCommand() *cobra.Command {
	params := rootParams{}

	root := &cobra.Command{
		Use:           "x64enc",
		Short:         "Inspect and exercise the x64 instruction encoder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logrus.ParseLevel(params.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", params.logLevel, err)
			}
			logrus.SetOutput(cmd.ErrOrStderr())
			logrus.SetLevel(level)
			logrus.WithField("command", cmd.Name()).Debug("starting")
			return nil
		},
	}
	addLogLevelFlag(root.PersistentFlags(), &params.logLevel)

	root.AddCommand(
		newRegsCommand(),
		newCondsCommand(),
		newFormsCommand(),
		newNopCommand(),
		newSumCommand(),
		newDisasmCommand(),
	)
	return root
}

func addLogLevelFlag(fs *pflag.FlagSet, level *string) {
	fs.StringVarP(level, "log-level", "l", env.Str(logLevelEnv, "info"), "log level (debug, info, warn, error); defaults to $"+logLevelEnv)
}

func newTable(w io.Writer, keys ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	aligns := make([]int, 0, len(keys))
	for range keys {
		aligns = append(aligns, tablewriter.ALIGN_LEFT)
	}
	table.SetHeader(keys)
	table.SetColumnAlignment(aligns)
	table.SetAutoFormatHeaders(false)
	table.SetRowLine(false)
	table.SetAutoWrapText(false)
	return table
}

func hexBytes(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}
