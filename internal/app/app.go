// Package app builds the service graph shared by the API server and the CLI
// from a validated configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vannoorsab/FINAI/internal/ai"
	"github.com/vannoorsab/FINAI/internal/cache"
	"github.com/vannoorsab/FINAI/internal/config"
	"github.com/vannoorsab/FINAI/internal/gcsuploader"
	"github.com/vannoorsab/FINAI/internal/insights"
	"github.com/vannoorsab/FINAI/internal/marketplace"
	"github.com/vannoorsab/FINAI/internal/notionsync"
	"github.com/vannoorsab/FINAI/internal/pipeline"
	"github.com/vannoorsab/FINAI/internal/store"
	"google.golang.org/api/option"
)

// cacheTTL bounds how long assessments and model answers are reused.
const cacheTTL = time.Hour

// Options selects optional clients beyond what the configuration enables.
type Options struct {
	// Storage creates a Cloud Storage client even without GCS_BUCKET, so
	// gs:// statements can be read.
	Storage bool
}

// Services holds every component built from the configuration. Optional
// components are nil when their configuration is absent.
type Services struct {
	Config *config.Config

	Cache    *cache.Cache
	Store    store.AssessmentRepository
	Storage  *gcsuploader.Client
	Notion   *notionsync.Exporter
	Assessor *pipeline.Assessor

	Marketplace *marketplace.Service
	Insights    *insights.Service

	generator ai.TextGenerator
	videos    insights.VideoSearcher
}

// New wires all services. On error everything built so far is closed.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts Options) (_ *Services, err error) {
	s := &Services{Config: cfg}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	if s.Cache, err = cache.New(cfg.CacheMaxItems, cacheTTL); err != nil {
		return nil, fmt.Errorf("app.New: cache: %w", err)
	}

	s.Store, err = store.Open(ctx, cfg)
	switch {
	case errors.Is(err, store.ErrStoreDisabled):
		log.Warn().Msg("No assessment store configured - assessments will not be saved")
		s.Store, err = nil, nil
	case err != nil:
		return nil, fmt.Errorf("app.New: %w", err)
	default:
		log.Info().Str("backend", cfg.StoreBackend).Msg("Assessment store initialized")
	}

	var fetcher pipeline.StatementFetcher
	if cfg.GCSBucket != "" || opts.Storage {
		var clientOpts []option.ClientOption
		if cfg.CredentialsFile != "" {
			clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		if s.Storage, err = gcsuploader.NewClient(ctx, clientOpts...); err != nil {
			return nil, fmt.Errorf("app.New: %w", err)
		}
		s.Storage.MaxBytes = cfg.MaxUploadBytes
		fetcher = s.Storage
	}
	if cfg.GCSBucket == "" {
		log.Warn().Msg("No GCS bucket configured - statements will not be archived")
	}
	s.Assessor = pipeline.NewAssessor(fetcher)

	if cfg.AIEnabled() {
		gemini, err := ai.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("app.New: %w", err)
		}
		s.generator = ai.NewCachedGenerator(gemini, s.Cache)
	} else {
		log.Warn().Msg("GOOGLE_API_KEY not set - AI insights and loan suggestions disabled")
	}

	if cfg.YouTubeAPIKey != "" {
		yt, err := insights.NewYouTubeSearcher(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			return nil, fmt.Errorf("app.New: %w", err)
		}
		s.videos = yt
	}

	if cfg.NotionEnabled() {
		s.Notion = notionsync.NewExporter(notionsync.NewNotionClient(cfg.NotionToken), cfg.NotionDatabaseID)
	}

	s.Marketplace = marketplace.NewService(s.generator)
	s.Insights = insights.NewService(s.generator, s.videos)
	return s, nil
}

// AIEnabled reports whether a model client was built.
func (s *Services) AIEnabled() bool { return s.generator != nil }

// VideosEnabled reports whether video search was built.
func (s *Services) VideosEnabled() bool { return s.videos != nil }

// Close releases every client. It is safe to call on a partly built Services.
func (s *Services) Close() {
	if s.Store != nil {
		_ = s.Store.Close()
	}
	if s.Storage != nil {
		_ = s.Storage.Close()
	}
	if s.Cache != nil {
		s.Cache.Close()
	}
}
