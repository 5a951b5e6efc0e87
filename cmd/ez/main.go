package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/eddwinpaz/ez-cli/internal/commands"
	"github.com/eddwinpaz/ez-cli/internal/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := commands.RootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output.Error(err.Error())
		stop()
		os.Exit(1)
	}
}
