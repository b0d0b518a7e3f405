package cmd

import (
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/rson-rs/rson-go"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Parse an RSON document and print its decoded Value Tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, path, err := readInput(args)
		if err != nil {
			return err
		}
		v, err := rson.ToValue(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		repr.Println(v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
