package main

import (
	"fmt"
	"os"

	"github.com/mithrel/chostmd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "execution failed: %v\n", err)
		os.Exit(1)
	}
}
