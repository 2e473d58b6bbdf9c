package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"PortfolioFM/logger"
	"PortfolioFM/model"

	"github.com/redis/go-redis/v9"
)

// playlistPreviewTTL bounds how long an imported playlist preview is served
// from cache before Spotify is consulted again.
const playlistPreviewTTL = 10 * time.Minute

// playlistPreviewKey generates the Redis key for a playlist preview.
func playlistPreviewKey(playlistID string) string {
	return fmt.Sprintf("spotify:playlist:%s", playlistID)
}

// GetPlaylistPreview returns the cached preview for a playlist, or
// (nil, false) on a miss. Cache failures degrade to a miss.
func (c *Client) GetPlaylistPreview(ctx context.Context, playlistID string) ([]model.SpotifyTrack, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, playlistPreviewKey(playlistID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logger.Warn("[GetPlaylistPreview] cache read failed",
			logger.String("playlist_id", playlistID), logger.ErrorField(err))
		return nil, false
	}

	var tracks []model.SpotifyTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		logger.Warn("[GetPlaylistPreview] cache entry corrupt",
			logger.String("playlist_id", playlistID), logger.ErrorField(err))
		return nil, false
	}
	return tracks, true
}

// SetPlaylistPreview stores a playlist preview with TTL. Failures are logged
// and dropped; the cache is best effort.
func (c *Client) SetPlaylistPreview(ctx context.Context, playlistID string, tracks []model.SpotifyTrack) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(tracks)
	if err != nil {
		logger.Warn("[SetPlaylistPreview] marshal failed",
			logger.String("playlist_id", playlistID), logger.ErrorField(err))
		return
	}
	if err := c.rdb.Set(ctx, playlistPreviewKey(playlistID), raw, playlistPreviewTTL).Err(); err != nil {
		logger.Warn("[SetPlaylistPreview] cache write failed",
			logger.String("playlist_id", playlistID), logger.ErrorField(err))
	}
}
