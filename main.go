package main

import (
	"os"

	"github.com/propgen/propgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
