package cmd

import (
	"fmt"

	"github.com/rson-rs/rson-go"
	"github.com/spf13/cobra"
)

var (
	fmtPretty      bool
	fmtNoTypeNames bool

	fmtCmd = &cobra.Command{
		Use:   "fmt [file]",
		Short: "Parse an RSON document and re-emit it, compact or pretty",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, path, err := readInput(args)
			if err != nil {
				return err
			}
			log.WithField("path", path).Debug("parsing")

			v, err := rson.ToValue(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			opts := rson.EncoderOptions{
				Pretty:      fmtPretty,
				StructNames: !fmtNoTypeNames,
			}
			out, err := rson.Marshal(v, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
)

func init() {
	fmtCmd.Flags().BoolVar(&fmtPretty, "pretty", false, "multi-line output with 4-space indents")
	fmtCmd.Flags().BoolVar(&fmtNoTypeNames, "no-type-names", false, "omit record/tuple-struct type names")
	rootCmd.AddCommand(fmtCmd)
}
