// Command x64enc inspects the x64 instruction tables and demonstrates encoding.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("x64enc failed")
		os.Exit(1)
	}
}
