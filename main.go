package main

import (
	"fmt"
	"os"

	"github.com/felixbrock/lingobridge/cmd"
)

var version = "dev" // Overwritten at build time

func main() {
	if err := cmd.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
