// Command migrate applies the schema and, with -seed, loads the demo data.
package main

import (
	"context"
	"database/sql"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"

	"newsapi-backend/internal/config"
	"newsapi-backend/internal/seed"
	"newsapi-backend/pkg/hash"
	"newsapi-backend/pkg/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

func main() {
	withSeed := flag.Bool("seed", false, "load demo categories, publishers and news")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init(getEnv("APP_ENV", "development"), getEnv("LOG_LEVEL", "info"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("database unreachable")
	}

	if err := migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	if *withSeed {
		if err := seed.Run(ctx, &pqTarget{db: db}, hash.NewHasher(cfg.App.BcryptCost)); err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
		log.Info().Str("password", seed.DemoPassword).Msg("demo publishers ready: techpub@example.com, newscorp@example.com")
	}
}

// migrate runs every embedded file in name order, each in its own transaction.
// Files are written to be re-runnable.
func migrate(ctx context.Context, db *sql.DB) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}

		log.Info().Str("file", name).Msg("migration applied")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
