package server

import (
	"net/http"

	"PortfolioFM/logger"
	"PortfolioFM/model"

	"github.com/gorilla/mux"
)

// playlistCollection is the collection checked for already-imported tracks
// when building a playlist preview.
const playlistCollection = "playlist"

// GetSpotifyPlaylistHandler returns an import preview of a Spotify
// playlist, skipping tracks that were already imported. Previews are served
// from cache when possible.
func (h *APIHandler) GetSpotifyPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	playlistID := mux.Vars(r)["id"]
	ctx := r.Context()

	if tracks, ok := h.cache.GetPlaylistPreview(ctx, playlistID); ok {
		logger.Debug("[GetSpotifyPlaylistHandler] serving cached preview",
			logger.String("playlist_id", playlistID))
		writeJSON(w, http.StatusOK, tracks)
		return
	}

	all, err := h.spotify.ListPlaylistTracks(ctx, playlistID)
	if err != nil {
		writeError(w, err)
		return
	}

	preview := make([]model.SpotifyTrack, 0, len(all))
	for _, track := range all {
		exists, err := h.songRepo.HasSpotifyID(ctx, playlistCollection, track.SpotifyID)
		if err != nil {
			writeError(w, err)
			return
		}
		if exists {
			continue
		}
		preview = append(preview, track)
	}

	h.cache.SetPlaylistPreview(ctx, playlistID, preview)
	writeJSON(w, http.StatusOK, preview)
}
