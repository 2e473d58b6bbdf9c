// Package spotify wraps the Spotify Web API for read-only playlist track
// listing.
package spotify

import (
	"context"
	"fmt"

	"PortfolioFM/apperr"
	"PortfolioFM/logger"
	"PortfolioFM/model"

	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// Client is a read-only Spotify catalog client using the client-credentials
// flow. The oauth2 transport refreshes tokens as needed.
type Client struct {
	api *spotifyapi.Client
}

// NewClient authenticates with Spotify and returns a ready client.
func NewClient(ctx context.Context, clientID, clientSecret string) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("spotify credentials not configured")
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain Spotify token: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return &Client{api: spotifyapi.New(httpClient)}, nil
}

// ListPlaylistTracks returns the tracks of a playlist. Entries whose
// underlying track is nil (deleted or unavailable) are skipped; only the
// first artist and the first-listed image are taken.
func (c *Client) ListPlaylistTracks(ctx context.Context, playlistID string) ([]model.SpotifyTrack, error) {
	logger.Info("[ListPlaylistTracks] fetching playlist", logger.String("playlist_id", playlistID))

	var tracks []model.SpotifyTrack
	page, err := c.api.GetPlaylistItems(ctx, spotifyapi.ID(playlistID))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch Spotify playlist", err)
	}

	for {
		for _, item := range page.Items {
			track := item.Track.Track
			if track == nil {
				continue
			}

			var artist string
			if len(track.Artists) > 0 {
				artist = track.Artists[0].Name
			}
			var cover string
			if len(track.Album.Images) > 0 {
				cover = track.Album.Images[0].URL
			}

			tracks = append(tracks, model.SpotifyTrack{
				Title:         track.Name,
				Artist:        artist,
				CoverImageURL: cover,
				SpotifyID:     string(track.ID),
			})
		}

		err = c.api.NextPage(ctx, page)
		if err == spotifyapi.ErrNoMorePages {
			break
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Failed to fetch Spotify playlist", err)
		}
	}

	logger.Info("[ListPlaylistTracks] fetched playlist",
		logger.String("playlist_id", playlistID), logger.Int("tracks", len(tracks)))
	return tracks, nil
}

// Ping probes catalog reachability for the health check. A lightweight
// catalog read stands in for a dedicated status endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.GetCategories(ctx, spotifyapi.Limit(1)); err != nil {
		return apperr.Wrap(apperr.Unavailable, "spotify catalog unreachable", err)
	}
	return nil
}
