package main

import (
	"os"

	"github.com/solarix95/neoada/cmd/neoada/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
