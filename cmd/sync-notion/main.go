package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/vannoorsab/FINAI/internal/config"
	"github.com/vannoorsab/FINAI/internal/logger"
	"github.com/vannoorsab/FINAI/internal/notionsync"
	"github.com/vannoorsab/FINAI/internal/store"
)

func main() {
	cfg := config.Load()

	// Parse CLI flags
	notionToken := flag.String("notion-token", cfg.NotionToken, "Notion API token (or set NOTION_TOKEN env)")
	notionDBID := flag.String("notion-db-id", cfg.NotionDatabaseID, "Notion database ID (or set NOTION_DATABASE_ID env)")
	limit := flag.Int("limit", store.DefaultListLimit, "Number of most recent assessments to sync")
	dryRun := flag.Bool("dry-run", false, "Dry run mode - preview changes without syncing")
	prune := flag.Bool("prune", false, "Archive Notion pages whose assessment is not in the synced set")
	flag.Parse()

	// Initialize structured logger
	log := logger.New(logger.Options{Level: cfg.LogLevel, Service: "finai-sync-notion"})

	// Validate required flags
	if *notionToken == "" {
		log.Fatal().Msg("Error: --notion-token is required")
	}
	if *notionDBID == "" {
		log.Fatal().Msg("Error: --notion-db-id is required")
	}
	if *limit < 1 {
		log.Fatal().Int("limit", *limit).Msg("Error: --limit must be positive")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	repo, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Failed to open assessment store")
	}
	defer repo.Close()

	assessments, err := repo.List(ctx, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list assessments")
	}

	log.Info().
		Int("assessments", len(assessments)).
		Bool("dry_run", *dryRun).
		Bool("prune", *prune).
		Msg("Starting Notion sync")

	exporter := notionsync.NewExporter(notionsync.NewNotionClient(*notionToken), *notionDBID)
	result, err := exporter.Sync(ctx, assessments, notionsync.Options{DryRun: *dryRun, Prune: *prune})
	if err != nil {
		log.Fatal().Err(err).Msg("Sync failed")
	}

	fmt.Printf("Sync completed: %d created, %d updated, %d archived, %d failed.\n",
		result.Created, result.Updated, result.Archived, result.Failed)
}
