// Command migrate applies the embedded goose migrations to DATABASE_URL.
// With -down it rolls every migration back instead.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/smarttrav/internal/config"
	"github.com/pkordes/smarttrav/migrations"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadTool()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// goose drives database/sql, not the pgx pool.
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	provider, err := migrations.NewProvider(db)
	if err != nil {
		logger.Error("create goose provider", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var results []*goose.MigrationResult
	if *down {
		results, err = provider.DownTo(ctx, 0)
	} else {
		results, err = provider.Up(ctx)
	}
	for _, r := range results {
		logger.Info("migration", "version", r.Source.Version, "direction", r.Direction, "duration", r.Duration)
	}
	if err != nil {
		logger.Error("migrate failed", "error", err)
		os.Exit(1)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		logger.Error("read schema version", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations complete", "applied", len(results), "version", version)
}
