package server

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"

	"PortfolioFM/apperr"
	"PortfolioFM/logger"
	"PortfolioFM/model"
	"PortfolioFM/repository"

	"github.com/gorilla/mux"
)

// GetSongsHandler lists every song in a collection. The order is shuffled
// per request unless ?noshuffle=true is passed.
func (h *APIHandler) GetSongsHandler(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	ctx := r.Context()

	if err := h.songRepo.RequireCollection(ctx, collection); err != nil {
		writeError(w, err)
		return
	}

	songs, err := h.songRepo.ListSongs(ctx, collection)
	if err != nil {
		writeError(w, err)
		return
	}

	if noshuffle, _ := strconv.ParseBool(r.URL.Query().Get("noshuffle")); !noshuffle {
		rand.Shuffle(len(songs), func(i, j int) {
			songs[i], songs[j] = songs[j], songs[i]
		})
	}

	responses := make([]model.SongResponse, 0, len(songs))
	for _, s := range songs {
		responses = append(responses, model.NewSongResponse(s))
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetSongHandler returns a single song by ID.
func (h *APIHandler) GetSongHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collection := vars["collection"]
	ctx := r.Context()

	if err := h.songRepo.RequireCollection(ctx, collection); err != nil {
		writeError(w, err)
		return
	}

	id, err := repository.ParseObjectID(vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	song, err := h.songRepo.GetSong(ctx, collection, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.NewSongResponse(*song))
}

// GetSongAudioHandler streams a song's audio blob.
func (h *APIHandler) GetSongAudioHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collection := vars["collection"]
	ctx := r.Context()

	if err := h.songRepo.RequireCollection(ctx, collection); err != nil {
		writeError(w, err)
		return
	}

	id, err := repository.ParseObjectID(vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	song, err := h.songRepo.GetSong(ctx, collection, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if song.AudioFileID == "" {
		writeError(w, apperr.New(apperr.NotFound, "Song has no audio attached"))
		return
	}

	stream, info, err := h.blobs.OpenDownloadStream(ctx, song.AudioFileID)
	if err != nil {
		writeError(w, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Filename))
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	if _, err := io.Copy(w, stream); err != nil {
		logger.Error("[GetSongAudioHandler] streaming failed",
			logger.String("blob_id", song.AudioFileID), logger.ErrorField(err))
	}
}

// DeleteSongHandler removes a song and its audio blob. The blob goes first
// so a failure cannot orphan it behind a deleted record.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collection := vars["collection"]
	ctx := r.Context()

	if err := h.songRepo.RequireCollection(ctx, collection); err != nil {
		writeError(w, err)
		return
	}

	id, err := repository.ParseObjectID(vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	song, err := h.songRepo.GetSong(ctx, collection, id)
	if err != nil {
		writeError(w, err)
		return
	}

	if song.AudioFileID != "" {
		if err := h.blobs.Delete(ctx, song.AudioFileID); err != nil {
			writeError(w, err)
			return
		}
	}

	if err := h.songRepo.DeleteSong(ctx, collection, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Song deleted successfully"})
}

// AddSongsHandler bulk-inserts songs into a collection, creating the
// collection if it does not exist yet.
func (h *APIHandler) AddSongsHandler(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]

	var songs []model.Song
	if err := json.NewDecoder(r.Body).Decode(&songs); err != nil {
		writeError(w, apperr.Wrap(apperr.InvalidInput, "invalid request body", err))
		return
	}
	if len(songs) == 0 {
		writeError(w, apperr.New(apperr.InvalidInput, "no songs provided"))
		return
	}

	ids, err := h.songRepo.InsertSongs(r.Context(), collection, songs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":         fmt.Sprintf("Added %d songs to collection '%s'", len(ids), collection),
		"collection_name": collection,
		"inserted_count":  len(ids),
	})
}

// AttachAudioHandler attaches audio from a caller-supplied YouTube URL to
// the song identified by its Spotify ID.
func (h *APIHandler) AttachAudioHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collection := vars["collection"]
	spotifyID := vars["spotifyId"]

	youtubeURL := r.URL.Query().Get("youtube_url")
	if youtubeURL == "" {
		writeError(w, apperr.New(apperr.InvalidInput, "missing 'youtube_url' query parameter"))
		return
	}

	if err := h.acquirer.AttachDirect(r.Context(), collection, spotifyID, youtubeURL); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Audio attached successfully"})
}

// ProcessMissingHandler runs batch acquisition over a collection. Per-item
// failures are reported in the body; the response is 200 even when every
// item failed.
func (h *APIHandler) ProcessMissingHandler(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]

	report, err := h.acquirer.ProcessMissing(r.Context(), collection)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
