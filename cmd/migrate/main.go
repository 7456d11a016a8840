package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/vannoorsab/FINAI/internal/config"
	infraBQ "github.com/vannoorsab/FINAI/internal/infra/bigquery"
	"github.com/vannoorsab/FINAI/internal/infra/sqlite"
	"github.com/vannoorsab/FINAI/internal/logger"
	"google.golang.org/api/option"
)

func main() {
	cfg := config.Load()

	backend := flag.String("backend", cfg.StoreBackend, "Store to migrate: sqlite or bigquery (or set STORE_BACKEND env)")
	dbPath := flag.String("db", cfg.SQLiteDBPath, "SQLite database path (or set SQLITE_DB_PATH env)")
	projectID := flag.String("project", cfg.GCPProjectID, "GCP project ID (or set GCP_PROJECT_ID env)")
	datasetID := flag.String("dataset", cfg.BigQueryDataset, "BigQuery dataset ID (or set BIGQUERY_DATASET env)")
	appliedBy := flag.String("applied-by", "migrate-cli", "Name of the tool applying migrations")
	status := flag.Bool("status", false, "Show applied migrations without applying new ones")
	flag.Parse()

	log := logger.New(logger.Options{Level: cfg.LogLevel, Service: "finai-migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	switch *backend {
	case config.StoreSQLite:
		if *status {
			version, dirty, err := sqlite.SchemaVersion(*dbPath)
			if err != nil {
				log.Fatal().Err(err).Str("path", *dbPath).Msg("Failed to read schema version")
			}
			fmt.Printf("SQLite schema version %d (dirty: %t)\n", version, dirty)
			return
		}
		if err := sqlite.RunMigrations(*dbPath); err != nil {
			log.Fatal().Err(err).Str("path", *dbPath).Msg("Migration failed")
		}
		fmt.Printf("SQLite database %s is up to date.\n", *dbPath)

	case config.StoreBigQuery:
		if *projectID == "" {
			log.Fatal().Msg("Error: -project is required for the bigquery backend")
		}

		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		client, err := bigquery.NewClient(ctx, *projectID, opts...)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery client")
		}
		defer client.Close()

		log.Info().Str("project", *projectID).Str("dataset", *datasetID).Msg("Connected to BigQuery")
		migrator := infraBQ.NewMigrator(client, *datasetID, *appliedBy)

		if *status {
			applied, err := migrator.Applied(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read applied migrations")
			}
			fmt.Println("\n=== Applied Migrations ===")
			for _, m := range applied {
				fmt.Printf("%04d  %-40s  %s  %s\n", m.Version, m.Name, m.AppliedAt.Format(time.RFC3339), m.AppliedBy)
			}
			if len(applied) == 0 {
				fmt.Println("None.")
			}
			return
		}

		count, err := migrator.Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Int("applied", count).Msg("Migration failed")
		}
		fmt.Printf("Applied %d migration(s) to %s.%s.\n", count, *projectID, *datasetID)

	default:
		log.Fatal().Str("backend", *backend).Msg("Error: -backend must be sqlite or bigquery")
	}
}
