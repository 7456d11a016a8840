package insights

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Video is a recommended learning video.
type Video struct {
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Thumbnail string `json:"thumbnail"`
	Link      string `json:"link"`
}

// VideoSearcher finds videos for a query.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, maxResults int64) ([]Video, error)
}

// YouTubeSearcher searches with the YouTube Data API.
type YouTubeSearcher struct {
	service *youtube.Service
}

// NewYouTubeSearcher creates a searcher authenticated with an API key.
func NewYouTubeSearcher(ctx context.Context, apiKey string) (*YouTubeSearcher, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("NewYouTubeSearcher: %w", err)
	}
	return &YouTubeSearcher{service: svc}, nil
}

func (s *YouTubeSearcher) SearchVideos(ctx context.Context, query string, maxResults int64) ([]Video, error) {
	resp, err := s.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("YouTubeSearcher.SearchVideos: %w", err)
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		videos = append(videos, Video{
			Title:     item.Snippet.Title,
			Channel:   item.Snippet.ChannelTitle,
			Thumbnail: thumbnailURL(item.Snippet.Thumbnails),
			Link:      "https://youtube.com/watch?v=" + item.Id.VideoId,
		})
	}
	return videos, nil
}

func thumbnailURL(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
