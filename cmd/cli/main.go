package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/vannoorsab/FINAI/internal/app"
	"github.com/vannoorsab/FINAI/internal/config"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/gcsuploader"
	"github.com/vannoorsab/FINAI/internal/insights"
	"github.com/vannoorsab/FINAI/internal/logger"
	"github.com/vannoorsab/FINAI/internal/marketplace"
	"github.com/vannoorsab/FINAI/internal/pipeline"
	"github.com/vannoorsab/FINAI/internal/report"
	"github.com/vannoorsab/FINAI/internal/store"
)

const commandTimeout = 5 * time.Minute

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	// Logs go to stderr so reports and JSON on stdout stay clean.
	log := logger.New(logger.Options{Level: cfg.LogLevel, Writer: os.Stderr, Service: "finai-cli"})

	switch os.Args[1] {
	case "assess":
		runAssess(cfg, log)
	case "marketplace":
		runMarketplace(cfg, log)
	case "insights":
		runInsights(cfg, log)
	case "upload":
		runUpload(cfg, log)
	case "list":
		runList(cfg, log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("FINAI credit assessment CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  assess       Score a bank statement and print the report")
	fmt.Println("  marketplace  Match a statement against the loan marketplace")
	fmt.Println("  insights     Generate insights and learning material for a statement")
	fmt.Println("  upload       Upload a statement file to GCS")
	fmt.Println("  list         List saved assessments")
	fmt.Println("  help         Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

// setup validates cfg and builds the services a command needs.
func setup(cfg *config.Config, log zerolog.Logger, opts app.Options) (context.Context, context.CancelFunc, *app.Services) {
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	ctx = logger.WithContext(ctx, log)

	services, err := app.New(ctx, cfg, log, opts)
	if err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	return ctx, cancel, services
}

// exitOnError prints input problems as plain messages and logs the rest.
func exitOnError(log zerolog.Logger, err error, msg string) {
	if err == nil {
		return
	}
	if domain.IsMalformedInput(err) || domain.IsValidationError(err) || errors.Is(err, domain.ErrUnknownStrategy) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Fatal().Err(err).Msg(msg)
}

func readStatement(path string, maxBytes int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, fmt.Errorf("statement %s is %d bytes, limit is %d", path, info.Size(), maxBytes)
	}
	return os.ReadFile(path)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runAssess(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("assess", flag.ExitOnError)
	filePath := fs.String("file", "", "Path to a statement JSON file")
	gcsURI := fs.String("gcs-uri", "", "GCS URI of a statement JSON file")
	strategy := fs.String("strategy", string(domain.StrategyNano), "Scoring strategy: nano, loan or credit")
	asJSON := fs.Bool("json", false, "Print the assessment as JSON")
	save := fs.Bool("save", false, "Save the assessment to the configured store")
	notion := fs.Bool("notion", false, "Export the assessment to Notion")
	fs.Parse(os.Args[2:])

	if (*filePath == "") == (*gcsURI == "") {
		log.Fatal().Msg("Usage: cli assess -file PATH | -gcs-uri URI [-strategy nano|loan|credit]")
	}

	ctx, cancel, services := setup(cfg, log, app.Options{Storage: *gcsURI != ""})
	defer cancel()
	defer services.Close()

	req := pipeline.Request{Strategy: domain.Strategy(*strategy), SourceURI: *gcsURI}
	if *filePath != "" {
		doc, err := readStatement(*filePath, cfg.MaxUploadBytes)
		exitOnError(log, err, "Failed to read statement")
		req.Document = doc
	} else {
		log.Info().Str("file", gcsuploader.ExtractFilename(*gcsURI)).Msg("Fetching statement from GCS")
	}

	a, err := services.Assessor.Assess(ctx, req)
	exitOnError(log, err, "Assessment failed")

	if *save {
		if services.Store == nil {
			log.Fatal().Err(store.ErrStoreDisabled).Msg("Set STORE_BACKEND to save assessments")
		}
		exitOnError(log, services.Store.Save(ctx, a), "Failed to save assessment")
		log.Info().Str("assessment_id", a.ID).Str("backend", cfg.StoreBackend).Msg("Assessment saved")
	}

	if *notion {
		if services.Notion == nil {
			log.Fatal().Msg("Set NOTION_TOKEN and NOTION_DATABASE_ID to export to Notion")
		}
		pageID, err := services.Notion.Export(ctx, a)
		exitOnError(log, err, "Notion export failed")
		log.Info().Str("assessment_id", a.ID).Str("page_id", pageID).Msg("Assessment exported to Notion")
	}

	if *asJSON {
		exitOnError(log, printJSON(a), "Failed to write output")
		return
	}
	exitOnError(log, report.Assessment(os.Stdout, a), "Failed to write report")
}

func runMarketplace(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("marketplace", flag.ExitOnError)
	filePath := fs.String("file", "", "Path to a statement JSON file")
	category := fs.String("type", marketplace.CategoryAll, "Loan category filter")
	maxInterest := fs.Float64("max-interest", marketplace.DefaultInterestFilter, "Maximum interest rate (5-20)")
	processing := fs.String("processing", marketplace.ProcessingAll, "Processing time: All, Within 2 days, 2-5 days, 5+ days")
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	fs.Parse(os.Args[2:])

	if *filePath == "" {
		log.Fatal().Msg("Usage: cli marketplace -file PATH [-type T] [-max-interest F] [-processing P]")
	}

	ctx, cancel, services := setup(cfg, log, app.Options{})
	defer cancel()
	defer services.Close()

	doc, err := readStatement(*filePath, cfg.MaxUploadBytes)
	exitOnError(log, err, "Failed to read statement")
	_, txs, err := pipeline.Transactions(doc, pipeline.StandardRules)
	exitOnError(log, err, "Failed to read transactions")

	ctx, cancelCall := context.WithTimeout(ctx, cfg.ExternalTimeout)
	defer cancelCall()

	result, err := services.Marketplace.Evaluate(ctx, txs, marketplace.Filter{
		Category:       *category,
		MaxInterest:    *maxInterest,
		ProcessingTime: *processing,
	})
	exitOnError(log, err, "Marketplace evaluation failed")

	if *asJSON {
		exitOnError(log, printJSON(result), "Failed to write output")
		return
	}
	exitOnError(log, report.Marketplace(os.Stdout, result), "Failed to write report")
}

func runInsights(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("insights", flag.ExitOnError)
	filePath := fs.String("file", "", "Path to a statement JSON file")
	language := fs.String("language", insights.DefaultLanguage, "Language for tips and videos")
	asJSON := fs.Bool("json", false, "Print the report as JSON")
	fs.Parse(os.Args[2:])

	if *filePath == "" {
		log.Fatal().Msg("Usage: cli insights -file PATH [-language L]")
	}

	ctx, cancel, services := setup(cfg, log, app.Options{})
	defer cancel()
	defer services.Close()

	doc, err := readStatement(*filePath, cfg.MaxUploadBytes)
	exitOnError(log, err, "Failed to read statement")

	a, err := services.Assessor.Assess(ctx, pipeline.Request{Strategy: domain.StrategyNano, Document: doc})
	exitOnError(log, err, "Assessment failed")
	_, txs, err := pipeline.Transactions(doc, pipeline.StandardRules)
	exitOnError(log, err, "Failed to read transactions")

	ctx, cancelCall := context.WithTimeout(ctx, cfg.ExternalTimeout)
	defer cancelCall()

	r, err := services.Insights.Analyze(ctx, txs, a, *language)
	exitOnError(log, err, "Insights failed")

	if *asJSON {
		exitOnError(log, printJSON(r), "Failed to write output")
		return
	}
	fmt.Printf("Nano Entrepreneur Score: %.2f/100\n", a.Score.Total)
	exitOnError(log, report.Insights(os.Stdout, r), "Failed to write report")
}

func runUpload(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	bucketName := fs.String("bucket", cfg.GCSBucket, "GCS bucket name (or set GCS_BUCKET env)")
	objectName := fs.String("object", "", "GCS object name (defaults to filename)")
	filePath := fs.String("file", "", "Path to local statement file")
	fs.Parse(os.Args[2:])

	if *bucketName == "" || *filePath == "" {
		log.Fatal().Msg("Usage: cli upload -bucket NAME -file PATH")
	}
	if *objectName == "" {
		*objectName = filepath.Base(*filePath)
	}

	ctx, cancel, services := setup(cfg, log, app.Options{Storage: true})
	defer cancel()
	defer services.Close()

	log.Info().
		Str("bucket", *bucketName).
		Str("object", *objectName).
		Str("file", *filePath).
		Msg("Uploading file to GCS")

	uri, err := services.Storage.UploadFile(ctx, *bucketName, *objectName, *filePath)
	exitOnError(log, err, "Upload failed")

	fmt.Printf("Uploaded %s to %s\n", *filePath, uri)
}

func runList(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("limit", store.DefaultListLimit, "Maximum number of assessments")
	asJSON := fs.Bool("json", false, "Print the assessments as JSON")
	fs.Parse(os.Args[2:])

	ctx, cancel, services := setup(cfg, log, app.Options{})
	defer cancel()
	defer services.Close()

	if services.Store == nil {
		log.Fatal().Err(store.ErrStoreDisabled).Msg("Set STORE_BACKEND to list assessments")
	}

	list, err := services.Store.List(ctx, *limit)
	exitOnError(log, err, "Failed to list assessments")

	if *asJSON {
		exitOnError(log, printJSON(list), "Failed to write output")
		return
	}
	exitOnError(log, report.Assessments(os.Stdout, list), "Failed to write report")
}
