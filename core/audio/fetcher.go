// Package audio fetches and transcodes external audio via yt-dlp.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"PortfolioFM/apperr"
	"PortfolioFM/config"
	"PortfolioFM/logger"

	"github.com/lrstanley/go-ytdlp"
)

// Fetcher downloads best-available audio from a video URL and transcodes it
// to mp3 at a fixed quality. One Fetcher is owned by the process; a
// semaphore bounds concurrent downloads and each download runs under its own
// wall-clock timeout.
type Fetcher struct {
	sem      chan struct{}
	timeout  time.Duration
	quality  string
	maxBytes int64

	// run is swappable in tests; it downloads url into dir.
	run func(ctx context.Context, url, dir string) error
}

// NewFetcher builds the process-wide fetcher from configuration.
func NewFetcher(cfg *config.Config) *Fetcher {
	workers := cfg.DownloadWorkers
	if workers <= 0 {
		workers = 1
	}
	f := &Fetcher{
		sem:      make(chan struct{}, workers),
		timeout:  cfg.DownloadTimeout,
		quality:  strings.ToUpper(cfg.AudioBitrate),
		maxBytes: cfg.DownloadMaxBytes,
	}
	f.run = f.runYtdlp
	return f
}

// Fetch downloads and transcodes the audio at url, returning the mp3 bytes.
// Exceeding the wall-clock budget yields a Timeout error distinct from other
// download failures.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	select {
	case f.sem <- struct{}{}:
		defer func() { <-f.sem }()
	case <-ctx.Done():
		return nil, apperr.Wrap(apperr.Internal, "download aborted", ctx.Err())
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	dir, err := os.MkdirTemp("", "portfoliofm-audio-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	start := time.Now()
	if err := f.run(ctx, url, dir); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.Warn("[Fetch] download timed out",
				logger.String("url", url), logger.Duration("elapsed", time.Since(start)))
			return nil, apperr.New(apperr.Timeout, "Download timeout")
		}
		return nil, apperr.Wrap(apperr.InvalidInput, "Failed to download YouTube audio", err)
	}

	data, err := readDownloadedFile(dir, f.maxBytes)
	if err != nil {
		return nil, err
	}

	logger.Info("[Fetch] download finished",
		logger.String("url", url),
		logger.Int("size", len(data)),
		logger.Duration("elapsed", time.Since(start)))
	return data, nil
}

// runYtdlp invokes yt-dlp configured for best-audio extraction to mp3.
func (f *Fetcher) runYtdlp(ctx context.Context, url, dir string) error {
	dl := ytdlp.New().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality(f.quality).
		NoPlaylist().
		NoWarnings().
		Output(filepath.Join(dir, "%(title)s.%(ext)s"))

	_, err := dl.Run(ctx, url)
	return err
}

// readDownloadedFile reads the single file yt-dlp left in dir.
func readDownloadedFile(dir string, maxBytes int64) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read download directory: %w", err)
	}
	if len(entries) == 0 {
		return nil, apperr.New(apperr.InvalidInput, "Failed to download YouTube audio: no audio file was downloaded")
	}

	path := filepath.Join(dir, entries[0].Name())
	if maxBytes > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat downloaded file: %w", err)
		}
		if info.Size() > maxBytes {
			return nil, apperr.Newf(apperr.InvalidInput, "downloaded audio exceeds size limit (%d bytes)", maxBytes)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read downloaded file: %w", err)
	}
	return data, nil
}
