package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PortfolioFM/cache"
	"PortfolioFM/config"
	"PortfolioFM/core/acquire"
	"PortfolioFM/core/audio"
	"PortfolioFM/core/spotify"
	"PortfolioFM/core/youtube"
	"PortfolioFM/db"
	"PortfolioFM/logger"
	"PortfolioFM/repository"
	"PortfolioFM/storage"

	"github.com/gorilla/mux"
)

// Start initializes dependencies, wires the router and runs the HTTP server
// until an interrupt arrives.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	ctx := context.Background()

	mongoClient, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("[Start] Failed to connect to MongoDB", logger.ErrorField(err))
	}
	defer func() {
		if err := db.Disconnect(mongoClient); err != nil {
			logger.Error("[Start] Failed to disconnect MongoDB", logger.ErrorField(err))
		}
	}()

	blobs, err := storage.NewMinioBlobStore(cfg)
	if err != nil {
		logger.Fatal("[Start] Failed to initialize blob storage", logger.ErrorField(err))
	}

	var cacheClient *cache.Client
	if cfg.RedisEnabled {
		cacheClient, err = cache.Connect(cfg)
		if err != nil {
			logger.Warn("[Start] Redis unavailable, playlist caching disabled", logger.ErrorField(err))
			cacheClient = nil
		} else {
			defer cacheClient.Close()
		}
	}

	spotifyClient, err := spotify.NewClient(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	if err != nil {
		logger.Fatal("[Start] Failed to initialize Spotify client", logger.ErrorField(err))
	}

	youtubeClient, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey, cfg.YouTubeMaxResults)
	if err != nil {
		logger.Fatal("[Start] Failed to initialize YouTube client", logger.ErrorField(err))
	}

	fetcher := audio.NewFetcher(cfg)

	store := repository.NewDocumentStore(mongoClient.Database(cfg.MongoDB))
	songRepo := repository.NewSongRepository(store)
	projectRepo := repository.NewProjectRepository(store)
	experienceRepo := repository.NewExperienceRepository(store)
	resumeRepo := repository.NewResumeRepository(store)

	acquirer := acquire.NewWorkflow(songRepo, blobs, youtubeClient, fetcher)

	apiHandler := NewAPIHandler(cfg, store, songRepo, projectRepo, experienceRepo, resumeRepo, blobs, cacheClient, spotifyClient, acquirer)

	router := mux.NewRouter()
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	// Song endpoints. The bulk-insert route is registered before the
	// parameterized ones so "collection" is not captured as a name.
	router.HandleFunc("/songs/collection/{collection}", apiHandler.APIKeyMiddleware(apiHandler.AddSongsHandler)).Methods(http.MethodPost)
	router.HandleFunc("/songs/{collection}/process-missing", apiHandler.APIKeyMiddleware(apiHandler.ProcessMissingHandler)).Methods(http.MethodPost)
	router.HandleFunc("/songs/{collection}", apiHandler.APIKeyMiddleware(apiHandler.GetSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/songs/{collection}/{id}", apiHandler.APIKeyMiddleware(apiHandler.GetSongHandler)).Methods(http.MethodGet)
	router.HandleFunc("/songs/{collection}/{id}", apiHandler.APIKeyMiddleware(apiHandler.DeleteSongHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/songs/{collection}/{id}/audio", apiHandler.APIKeyMiddleware(apiHandler.GetSongAudioHandler)).Methods(http.MethodGet)
	router.HandleFunc("/songs/{collection}/{spotifyId}/audio", apiHandler.APIKeyMiddleware(apiHandler.AttachAudioHandler)).Methods(http.MethodPost)

	// Spotify playlist preview.
	router.HandleFunc("/spotify/playlist/{id}", apiHandler.APIKeyMiddleware(apiHandler.GetSpotifyPlaylistHandler)).Methods(http.MethodGet)

	// Project endpoints.
	router.HandleFunc("/projects", apiHandler.APIKeyMiddleware(apiHandler.GetProjectsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/projects", apiHandler.APIKeyMiddleware(apiHandler.CreateProjectHandler)).Methods(http.MethodPost)
	router.HandleFunc("/projects/bulk", apiHandler.APIKeyMiddleware(apiHandler.CreateProjectsHandler)).Methods(http.MethodPost)
	router.HandleFunc("/projects/{id}", apiHandler.APIKeyMiddleware(apiHandler.GetProjectHandler)).Methods(http.MethodGet)
	router.HandleFunc("/projects/{id}", apiHandler.APIKeyMiddleware(apiHandler.UpdateProjectHandler)).Methods(http.MethodPut)
	router.HandleFunc("/projects/{id}", apiHandler.APIKeyMiddleware(apiHandler.DeleteProjectHandler)).Methods(http.MethodDelete)

	// Experience endpoints.
	router.HandleFunc("/experiences", apiHandler.APIKeyMiddleware(apiHandler.GetExperiencesHandler)).Methods(http.MethodGet)
	router.HandleFunc("/experiences", apiHandler.APIKeyMiddleware(apiHandler.CreateExperienceHandler)).Methods(http.MethodPost)
	router.HandleFunc("/experiences/bulk", apiHandler.APIKeyMiddleware(apiHandler.CreateExperiencesHandler)).Methods(http.MethodPost)
	router.HandleFunc("/experiences/{id}", apiHandler.APIKeyMiddleware(apiHandler.GetExperienceHandler)).Methods(http.MethodGet)
	router.HandleFunc("/experiences/{id}", apiHandler.APIKeyMiddleware(apiHandler.UpdateExperienceHandler)).Methods(http.MethodPut)
	router.HandleFunc("/experiences/{id}", apiHandler.APIKeyMiddleware(apiHandler.DeleteExperienceHandler)).Methods(http.MethodDelete)

	// Resume endpoints.
	router.HandleFunc("/resume", apiHandler.APIKeyMiddleware(apiHandler.GetResumeHandler)).Methods(http.MethodGet)
	router.HandleFunc("/resume", apiHandler.APIKeyMiddleware(apiHandler.DeleteResumeHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/resume/upload", apiHandler.APIKeyMiddleware(apiHandler.UploadResumeHandler)).Methods(http.MethodPost)
	router.HandleFunc("/resume/view", apiHandler.APIKeyMiddleware(apiHandler.ViewResumeHandler)).Methods(http.MethodGet)
	router.HandleFunc("/resume/download", apiHandler.APIKeyMiddleware(apiHandler.DownloadResumeHandler)).Methods(http.MethodGet)

	// Health is not gated so load balancers can probe it.
	router.HandleFunc("/health", apiHandler.HealthHandler).Methods(http.MethodGet)

	// Documentation routes, behind basic auth.
	router.HandleFunc("/docs", apiHandler.DocsAuthMiddleware(apiHandler.DocsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/openapi.json", apiHandler.DocsAuthMiddleware(apiHandler.OpenAPIHandler)).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("[Start] Server starting", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("[Start] Server failed", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("[Start] Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("[Start] Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("[Start] Server stopped")
}
