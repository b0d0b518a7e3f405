package main

import (
	"os"

	"github.com/rson-rs/rson-go/cmd/rson/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
