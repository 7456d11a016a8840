// Package insights produces narrative analysis and learning material for a
// scored statement. Every external call is optional: without configuration
// the result is marked unavailable, and on failure built-in content is used.
package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vannoorsab/FINAI/internal/ai"
	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/logger"
)

const (
	videoQuery     = "credit score improvement financial literacy"
	maxVideoResult = 5
)

// Insight is the narrative analysis of a statement.
type Insight struct {
	Status   domain.FeatureStatus `json:"status"`
	Markdown string               `json:"markdown"`
}

// Learning is the localized improvement material.
type Learning struct {
	Language     string               `json:"language"`
	Tips         string               `json:"tips,omitempty"`
	TipsStatus   domain.FeatureStatus `json:"tips_status"`
	Videos       []Video              `json:"videos"`
	VideosStatus domain.FeatureStatus `json:"videos_status"`
	Resources    []Resource           `json:"government_resources"`
}

// Report bundles everything the insights view shows.
type Report struct {
	Insight     Insight  `json:"insight"`
	Learning    Learning `json:"learning"`
	GeneralTips []string `json:"general_tips"`
}

// Service generates insights. Either dependency may be nil.
type Service struct {
	generator ai.TextGenerator
	videos    VideoSearcher
}

// NewService creates a Service.
func NewService(generator ai.TextGenerator, videos VideoSearcher) *Service {
	return &Service{generator: generator, videos: videos}
}

// Analyze builds the full report for a nano-entrepreneur assessment.
func (s *Service) Analyze(ctx context.Context, txs []domain.Transaction, a *domain.Assessment, language string) (*Report, error) {
	if language == "" {
		language = DefaultLanguage
	}
	if err := ValidateLanguage(language); err != nil {
		return nil, err
	}

	score := a.Score.Total
	return &Report{
		Insight:     s.Insight(ctx, txs, a.Metrics, a.Score),
		Learning:    s.Learning(ctx, language, &score),
		GeneralTips: append([]string(nil), GeneralTips...),
	}, nil
}

// Insight asks the model for an analysis, falling back to FallbackInsight.
func (s *Service) Insight(ctx context.Context, txs []domain.Transaction, m domain.FinancialMetrics, breakdown domain.ScoreBreakdown) Insight {
	log := logger.FromContext(ctx)

	if s.generator == nil {
		return Insight{Status: domain.StatusUnavailable, Markdown: FallbackInsight(m, breakdown)}
	}

	prompt, ok := insightPrompt(txs, m, breakdown)
	if !ok {
		log.Debug().Msg("Statement lacks a credit or debit to cite, using fallback insight")
		return Insight{Status: domain.StatusFallback, Markdown: FallbackInsight(m, breakdown)}
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("Insight generation failed, using fallback insight")
		return Insight{Status: domain.StatusFallback, Markdown: FallbackInsight(m, breakdown)}
	}
	return Insight{Status: domain.StatusOK, Markdown: strings.TrimSpace(text)}
}

// LocalizedTips asks the model for improvement tips in language. score may be nil.
func (s *Service) LocalizedTips(ctx context.Context, language string, score *float64) (string, error) {
	if s.generator == nil {
		return "", domain.ErrFeatureUnavailable
	}
	text, err := s.generator.Generate(ctx, localizedTipsPrompt(language, score))
	if err != nil {
		return "", fmt.Errorf("LocalizedTips: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Videos searches for learning videos in language.
func (s *Service) Videos(ctx context.Context, language string) ([]Video, error) {
	if s.videos == nil {
		return nil, domain.ErrFeatureUnavailable
	}
	videos, err := s.videos.SearchVideos(ctx, videoQuery+" in "+language, maxVideoResult)
	if err != nil {
		return nil, fmt.Errorf("Videos: %w", err)
	}
	return videos, nil
}

// Learning gathers tips, videos and official resources for language.
func (s *Service) Learning(ctx context.Context, language string, score *float64) Learning {
	log := logger.FromContext(ctx).With().Str("language", language).Logger()

	l := Learning{
		Language:  language,
		Videos:    []Video{},
		Resources: GovernmentResources(language),
	}

	tips, err := s.LocalizedTips(ctx, language, score)
	l.TipsStatus = statusOf(err)
	if err == nil {
		l.Tips = tips
	} else if l.TipsStatus == domain.StatusFallback {
		log.Warn().Err(err).Msg("Localized tips unavailable")
	}

	videos, err := s.Videos(ctx, language)
	l.VideosStatus = statusOf(err)
	if err == nil {
		l.Videos = videos
	} else if l.VideosStatus == domain.StatusFallback {
		log.Warn().Err(err).Msg("Video recommendations unavailable")
	}

	return l
}

func statusOf(err error) domain.FeatureStatus {
	switch {
	case err == nil:
		return domain.StatusOK
	case errors.Is(err, domain.ErrFeatureUnavailable):
		return domain.StatusUnavailable
	default:
		return domain.StatusFallback
	}
}
