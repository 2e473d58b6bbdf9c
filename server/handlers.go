package server

import (
	"context"

	"PortfolioFM/cache"
	"PortfolioFM/config"
	"PortfolioFM/model"
	"PortfolioFM/repository"
	"PortfolioFM/storage"
)

// SpotifyCatalog is the slice of the Spotify client the handlers use.
type SpotifyCatalog interface {
	ListPlaylistTracks(ctx context.Context, playlistID string) ([]model.SpotifyTrack, error)
	Ping(ctx context.Context) error
}

// AudioAcquirer is the attach-audio workflow surface.
type AudioAcquirer interface {
	AttachDirect(ctx context.Context, collection, spotifyID, youtubeURL string) error
	ProcessMissing(ctx context.Context, collection string) (*model.ProcessReport, error)
}

// APIHandler handles all API requests. Dependencies are constructed at
// startup and injected; there is no lazily-initialized global state.
type APIHandler struct {
	cfg            *config.Config
	store          *repository.DocumentStore
	songRepo       repository.SongRepository
	projectRepo    repository.ProjectRepository
	experienceRepo repository.ExperienceRepository
	resumeRepo     repository.ResumeRepository
	blobs          storage.BlobStore
	cache          *cache.Client
	spotify        SpotifyCatalog
	acquirer       AudioAcquirer
}

// NewAPIHandler creates the API handler with its dependencies.
func NewAPIHandler(
	cfg *config.Config,
	store *repository.DocumentStore,
	songRepo repository.SongRepository,
	projectRepo repository.ProjectRepository,
	experienceRepo repository.ExperienceRepository,
	resumeRepo repository.ResumeRepository,
	blobs storage.BlobStore,
	cacheClient *cache.Client,
	spotify SpotifyCatalog,
	acquirer AudioAcquirer,
) *APIHandler {
	return &APIHandler{
		cfg:            cfg,
		store:          store,
		songRepo:       songRepo,
		projectRepo:    projectRepo,
		experienceRepo: experienceRepo,
		resumeRepo:     resumeRepo,
		blobs:          blobs,
		cache:          cacheClient,
		spotify:        spotify,
		acquirer:       acquirer,
	}
}
