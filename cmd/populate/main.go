// Command populate loads the sample categories and pages into the
// configured database and prints every stored page.
package main

import (
	"context"
	"log/slog"
	"os"

	"rango/internal/config"
	"rango/internal/populate"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := populate.Script(context.Background(), cfg, os.Stdout); err != nil {
		slog.Error("population failed", "error", err)
		os.Exit(1)
	}
}
