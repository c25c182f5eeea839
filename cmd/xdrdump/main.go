package main

import (
	"os"

	"github.com/marmos91/xdrwire/cmd/xdrdump/commands"
	"github.com/marmos91/xdrwire/internal/logger"
)

func main() {
	if err := commands.Execute(); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
