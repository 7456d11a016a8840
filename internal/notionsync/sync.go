package notionsync

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/logger"
)

// Options controls a sync run.
type Options struct {
	// DryRun logs intended changes without calling the write APIs.
	DryRun bool
	// Prune archives pages whose Assessment ID is not in the synced set.
	Prune bool
}

// Result counts what a sync run did.
type Result struct {
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Archived int `json:"archived"`
	Failed   int `json:"failed"`
}

// Exporter writes assessments into one Notion database.
type Exporter struct {
	client     NotionService
	databaseID string
}

// NewExporter creates an Exporter.
func NewExporter(client NotionService, databaseID string) *Exporter {
	return &Exporter{client: client, databaseID: databaseID}
}

// Export writes a single assessment, updating its page if one exists.
func (e *Exporter) Export(ctx context.Context, a *domain.Assessment) (string, error) {
	pages, err := e.index(ctx)
	if err != nil {
		return "", fmt.Errorf("Export: %w", err)
	}
	pageID, _, err := e.upsert(ctx, a, pages)
	if err != nil {
		return "", fmt.Errorf("Export: %w", err)
	}
	return pageID, nil
}

// Sync writes every assessment. Pages are matched by their Assessment ID
// title, so running it twice creates nothing new. Per-assessment failures
// are logged and counted; only reading the database is fatal.
func (e *Exporter) Sync(ctx context.Context, assessments []*domain.Assessment, opts Options) (Result, error) {
	log := logger.FromContext(ctx)
	var res Result

	log.Info().
		Int("assessments", len(assessments)).
		Bool("dry_run", opts.DryRun).
		Bool("prune", opts.Prune).
		Msg("Starting assessment sync to Notion")

	pages, err := e.index(ctx)
	if err != nil {
		return res, fmt.Errorf("Sync: %w", err)
	}
	log.Info().Int("notion_page_count", len(pages)).Msg("Retrieved existing Notion pages")

	if opts.Prune {
		wanted := make(map[string]bool, len(assessments))
		for _, a := range assessments {
			wanted[a.ID] = true
		}
		for id, pageID := range pages {
			if wanted[id] {
				continue
			}
			if opts.DryRun {
				log.Info().Str("assessment_id", id).Str("page_id", pageID).Msg("[DRY RUN] Would archive stale Notion page")
				res.Archived++
				continue
			}
			if err := e.client.ArchivePage(ctx, pageID); err != nil {
				log.Warn().Err(err).Str("assessment_id", id).Str("page_id", pageID).Msg("Failed to archive stale Notion page")
				res.Failed++
				continue
			}
			res.Archived++
		}
	}

	for _, a := range assessments {
		_, existed := pages[a.ID]
		if opts.DryRun {
			if existed {
				log.Info().Str("assessment_id", a.ID).Msg("[DRY RUN] Would update existing Notion page")
				res.Updated++
			} else {
				log.Info().Str("assessment_id", a.ID).Msg("[DRY RUN] Would create new Notion page")
				res.Created++
			}
			continue
		}

		pageID, created, err := e.upsert(ctx, a, pages)
		if err != nil {
			log.Warn().Err(err).Str("assessment_id", a.ID).Msg("Failed to write Notion page")
			res.Failed++
			continue
		}
		pages[a.ID] = pageID
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}

	log.Info().
		Int("created", res.Created).
		Int("updated", res.Updated).
		Int("archived", res.Archived).
		Int("failed", res.Failed).
		Msg("Assessment sync completed")

	return res, nil
}

func (e *Exporter) upsert(ctx context.Context, a *domain.Assessment, pages map[string]string) (pageID string, created bool, err error) {
	props := AssessmentToNotionProperties(a)

	if existing, ok := pages[a.ID]; ok {
		if _, err := e.client.UpdatePage(ctx, existing, props); err != nil {
			return "", false, err
		}
		return existing, false, nil
	}

	page, err := e.client.CreatePage(ctx, e.databaseID, props)
	if err != nil {
		return "", false, err
	}
	return string(page.ID), true, nil
}

// index maps Assessment ID to page ID for every page in the database.
func (e *Exporter) index(ctx context.Context) (map[string]string, error) {
	all, err := queryAllNotionPages(ctx, e.client, e.databaseID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(all))
	for _, page := range all {
		if id := extractAssessmentID(page); id != "" {
			out[id] = string(page.ID)
		}
	}
	return out, nil
}

// queryAllNotionPages queries all pages from a Notion database and returns them.
// Handles pagination automatically.
func queryAllNotionPages(ctx context.Context, notionClient NotionService, databaseID string) ([]notionapi.Page, error) {
	var allPages []notionapi.Page
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: 100,
		}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := notionClient.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("queryAllNotionPages: %w", err)
		}

		allPages = append(allPages, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return allPages, nil
}
