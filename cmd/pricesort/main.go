package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/PriceSort/internal/cli"
	"github.com/JonMunkholm/PriceSort/internal/core"
)

var version = "dev"

func main() {
	// A .env file is optional; settings fall back to the environment and defaults
	_ = godotenv.Load()

	root := cli.NewRootCmd(version)
	if err := root.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		if core.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
