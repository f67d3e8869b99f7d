// Command loaddest upserts catalog destinations from a CSV file.
//
//	loaddest -file destinations.csv
//
// The file must start with the header
// name,description,location,category,price_per_day,tags. Rows are matched on
// name; the whole file is loaded in one transaction, so a bad row loads nothing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/smarttrav/internal/config"
	"github.com/pkordes/smarttrav/internal/repo"
	"github.com/pkordes/smarttrav/internal/service"
)

func main() {
	file := flag.String("file", "", "CSV file to load (required)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadTool()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	f, err := os.Open(*file)
	if err != nil {
		logger.Error("open input", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	svc := service.NewDestinationService(repo.NewStore(pool), repo.NewDestinationRepo(pool), nil, logger)
	res, err := svc.ImportCSV(ctx, f)
	if err != nil {
		logger.Error("import failed", "file", *file, "error", err)
		os.Exit(1)
	}
	fmt.Printf("created %d, updated %d\n", res.Created, res.Updated)
}
