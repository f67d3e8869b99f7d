// Command checkimages lists every destination's stored image with its public
// URL and whether that URL points into the configured Supabase bucket.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/smarttrav/internal/config"
	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/repo"
	"github.com/pkordes/smarttrav/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadTool()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}
	if !cfg.StorageEnabled() {
		logger.Error("SUPABASE_URL and SUPABASE_KEY must be set")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	bucket := storage.NewSupabaseBucket(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	missing, err := audit(ctx, os.Stdout, repo.NewDestinationRepo(pool), bucket)
	if err != nil {
		logger.Error("audit failed", "error", err)
		os.Exit(1)
	}
	if missing > 0 {
		logger.Warn("destinations without an image", "count", missing)
	}
}

type catalog interface {
	ListAll(ctx context.Context) ([]domain.Destination, error)
}

type publicBucket interface {
	Name() string
	PublicURL(key string) string
	Owns(url string) bool
}

// audit writes one line per destination and returns how many have no image.
func audit(ctx context.Context, out io.Writer, destinations catalog, bucket publicBucket) (int, error) {
	all, err := destinations.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tKEY\tURL\tIN %s\n", bucket.Name())
	missing := 0
	for _, d := range all {
		if d.ImagePath == "" {
			missing++
			fmt.Fprintf(tw, "%s\t-\t-\tno\n", d.Name)
			continue
		}
		url := bucket.PublicURL(d.ImagePath)
		owned := "no"
		if bucket.Owns(url) {
			owned = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Name, d.ImagePath, url, owned)
	}
	return missing, tw.Flush()
}
