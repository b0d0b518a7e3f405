// Package cmd implements the rson CLI's command tree: one file per
// command, a shared rootCmd with persistent flags, and an init() that
// wires each subcommand onto it.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "rson",
		Short:        "rson",
		SilenceUsage: true,
		Long:         "Inspect and reformat RSON documents: fmt, check, dump.",
	}

	verbose bool
	log     = logrus.New()
)

// Execute runs the command tree.
func Execute() error {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug detail to stderr")
	cobra.OnInitialize(func() {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	})
	return rootCmd.Execute()
}

func init() {
	log.SetOutput(os.Stderr)
}
