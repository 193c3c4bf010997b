package main

import (
	"os"

	"github.com/dmatsui/bookkeeping-service/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
