package main

import (
	"context"
	"fmt"
	"os"

	"drying-engine/internal/cli"
	"drying-engine/internal/models"
)

func main() {
	command := cli.NewRootCommand(os.Stdout)
	if err := command.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if models.IsEngineError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
