package main

import (
	"os"

	"github.com/treso-dev/treso/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
