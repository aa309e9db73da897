package main

import (
	"os"

	"github.com/syssam/schemavalidations/cmd/schemavalidations/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
