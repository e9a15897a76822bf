package main

import (
	"os"

	"github.com/endlessm/difflint/cmd/difflint/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(2)
	}
}
