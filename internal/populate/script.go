package populate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"rango/internal/cache"
	"rango/internal/config"
	"rango/internal/database"
	"rango/internal/store"
)

// Banner is printed before the report by the populate commands.
const Banner = "Starting Rango population script..."

// Script opens the configured database, applies pending migrations and
// loads the default catalog, writing the banner and report to out. When a
// page cache is configured every cached page is dropped afterwards so the
// new view counts show up immediately.
func Script(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if _, err := fmt.Fprintln(out, Banner); err != nil {
		return err
	}

	db, err := database.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		return err
	}

	p := New(store.NewCategoryStore(db), store.NewPageStore(db), nil, out)
	if err := p.Run(ctx); err != nil {
		return err
	}

	pc, err := cache.Open(ctx, cfg)
	switch {
	case errors.Is(err, cache.ErrDisabled):
	case err != nil:
		slog.Warn("page cache not flushed", "error", err)
	default:
		defer pc.Close()
		pc.InvalidateAll(ctx)
	}
	return nil
}
