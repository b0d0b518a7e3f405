package cmd

import (
	"io"
	"os"
)

// readInput reads args[0] as a file path, or stdin if no argument was
// given — the same "file arg, else stdin" convention most of this
// corpus's single-document CLI subcommands use.
func readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(os.Stdin)
		return b, "<stdin>", err
	}
	b, err := os.ReadFile(args[0])
	return b, args[0], err
}
