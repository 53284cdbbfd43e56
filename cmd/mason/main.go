package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/masonworks/mason/internal/cli"
	"github.com/masonworks/mason/internal/shell"
)

func main() {
	// Minimal logger until the root command configures the real one.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := cli.New().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "mason:", err)
		var execErr *shell.ExecError
		if errors.As(err, &execErr) && execErr.Code > 0 {
			os.Exit(execErr.Code)
		}
		os.Exit(1)
	}
}
