package main

import (
	"os"

	"github.com/jhizzard/Strata/cmd/strata/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
