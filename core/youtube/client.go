// Package youtube wraps the YouTube Data API for free-text video search.
package youtube

import (
	"context"
	"fmt"

	"PortfolioFM/apperr"
	"PortfolioFM/logger"

	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// musicCategoryID is the YouTube video category for music, the closest
// analogue of a songs-only search filter.
const musicCategoryID = "10"

// SearchResult is one hit of a video search.
type SearchResult struct {
	VideoID string
	Title   string
	Channel string
}

// URL returns the watch URL for the result.
func (r SearchResult) URL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", r.VideoID)
}

// Client is a read-only keyed client for YouTube search.
type Client struct {
	service    *youtubeapi.Service
	maxResults int64
}

// NewClient constructs a YouTube search client with the given API key.
func NewClient(ctx context.Context, apiKey string, maxResults int64) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube API key not configured")
	}
	service, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Client{service: service, maxResults: maxResults}, nil
}

// Search runs a free-text music video search and returns results in API
// order. Callers take the first result; no re-ranking happens here.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	logger.Info("[Search] searching YouTube", logger.String("query", query))

	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		VideoCategoryId(musicCategoryID).
		MaxResults(c.maxResults).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "YouTube search failed", err)
	}

	results := make([]SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		result := SearchResult{VideoID: item.Id.VideoId}
		if item.Snippet != nil {
			result.Title = item.Snippet.Title
			result.Channel = item.Snippet.ChannelTitle
		}
		results = append(results, result)
	}

	logger.Info("[Search] search finished",
		logger.String("query", query), logger.Int("results", len(results)))
	return results, nil
}
