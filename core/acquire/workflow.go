// Package acquire implements the attach-audio workflow: resolve a source
// locator, download and transcode the audio, store the blob and link it to
// the song record.
package acquire

import (
	"context"
	"fmt"

	"PortfolioFM/apperr"
	"PortfolioFM/core/audio"
	"PortfolioFM/core/youtube"
	"PortfolioFM/logger"
	"PortfolioFM/model"
	"PortfolioFM/repository"
)

const audioContentType = "audio/mp3"

// Searcher resolves a free-text query to candidate videos.
type Searcher interface {
	Search(ctx context.Context, query string) ([]youtube.SearchResult, error)
}

// Fetcher downloads and transcodes audio from a video URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Blobs is the subset of the blob store the workflow needs.
type Blobs interface {
	Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, blobID string) error
}

// Workflow wires the song repository, blob store, catalog search and
// fetcher into the acquisition sequence.
type Workflow struct {
	songs  repository.SongRepository
	blobs  Blobs
	search Searcher
	fetch  Fetcher
}

// NewWorkflow constructs the workflow from its dependencies.
func NewWorkflow(songs repository.SongRepository, blobs Blobs, search Searcher, fetch Fetcher) *Workflow {
	return &Workflow{songs: songs, blobs: blobs, search: search, fetch: fetch}
}

// AttachDirect attaches audio from a caller-supplied video URL to the song
// identified by its Spotify ID. It fails before any external call when the
// song already carries audio. The record update is conditional; losing the
// race deletes the just-uploaded blob.
func (w *Workflow) AttachDirect(ctx context.Context, collection, spotifyID, youtubeURL string) error {
	if err := w.songs.RequireCollection(ctx, collection); err != nil {
		return err
	}

	song, err := w.songs.GetBySpotifyID(ctx, collection, spotifyID)
	if err != nil {
		return err
	}
	if song.AudioFileID != "" {
		return apperr.New(apperr.InvalidInput, "Song already has audio attached")
	}

	data, err := w.fetch.Fetch(ctx, youtubeURL)
	if err != nil {
		// The direct path reports timeouts with a retry hint; the batch
		// path keeps the fetcher's short reason per failed song.
		if apperr.Is(err, apperr.Timeout) {
			return apperr.New(apperr.Timeout, "Download timed out. Please try again.")
		}
		return err
	}

	blobID, err := w.blobs.Upload(ctx, audio.SafeFilename(song.Title), data, audioContentType)
	if err != nil {
		return err
	}

	if err := w.songs.AttachAudio(ctx, collection, song.ID, "", blobID); err != nil {
		// The record changed underneath us; drop the orphan blob.
		if delErr := w.blobs.Delete(ctx, blobID); delErr != nil {
			logger.Warn("[AttachDirect] failed to delete orphaned blob",
				logger.String("blob_id", blobID), logger.ErrorField(delErr))
		}
		return err
	}

	logger.Info("[AttachDirect] audio attached",
		logger.String("collection", collection),
		logger.String("spotify_id", spotifyID),
		logger.String("blob_id", blobID))
	return nil
}

// ProcessMissing walks every song in the collection missing a link or audio
// reference, resolves each against the video catalog and attaches the first
// hit's audio. Per-song failures are collected and never abort the batch.
func (w *Workflow) ProcessMissing(ctx context.Context, collection string) (*model.ProcessReport, error) {
	if err := w.songs.RequireCollection(ctx, collection); err != nil {
		return nil, err
	}

	songs, err := w.songs.FindMissingAudio(ctx, collection)
	if err != nil {
		return nil, err
	}

	report := &model.ProcessReport{FailedSongs: []model.FailedSong{}}
	for _, song := range songs {
		if err := w.processOne(ctx, collection, song); err != nil {
			report.FailedSongs = append(report.FailedSongs, model.FailedSong{
				Title:  song.Title,
				Artist: song.Artist,
				Reason: apperr.Detail(err),
			})
			continue
		}
		report.ProcessedCount++
	}

	report.Message = fmt.Sprintf("Processed %d songs", report.ProcessedCount)
	logger.Info("[ProcessMissing] batch finished",
		logger.String("collection", collection),
		logger.Int("processed", report.ProcessedCount),
		logger.Int("failed", len(report.FailedSongs)))
	return report, nil
}

func (w *Workflow) processOne(ctx context.Context, collection string, song model.Song) error {
	if song.AudioFileID != "" {
		// Matched the filter on a missing link only; never re-download.
		return apperr.New(apperr.InvalidInput, "Song already has audio attached")
	}

	query := fmt.Sprintf("%s %s", song.Title, song.Artist)
	results, err := w.search.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return apperr.New(apperr.NotFound, "No YouTube results found")
	}

	// First result wins; selection policy is deliberately naive.
	youtubeURL := results[0].URL()

	data, err := w.fetch.Fetch(ctx, youtubeURL)
	if err != nil {
		return err
	}

	blobID, err := w.blobs.Upload(ctx, audio.SafeFilename(song.Title), data, audioContentType)
	if err != nil {
		return err
	}

	if err := w.songs.AttachAudio(ctx, collection, song.ID, youtubeURL, blobID); err != nil {
		if delErr := w.blobs.Delete(ctx, blobID); delErr != nil {
			logger.Warn("[ProcessMissing] failed to delete orphaned blob",
				logger.String("blob_id", blobID), logger.ErrorField(delErr))
		}
		return err
	}
	return nil
}
