package cmd

import (
	"fmt"
	"os"

	"github.com/rson-rs/rson-go"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse an RSON document and report a diagnostic on failure",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, path, err := readInput(args)
		if err != nil {
			return err
		}
		if _, err := rson.ToValue(data); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
