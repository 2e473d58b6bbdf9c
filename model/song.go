package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Song represents a track stored in a named collection. AudioFileID holds
// the blob store reference once audio has been attached; YouTubeLink is set
// by the batch acquisition path.
type Song struct {
	ID            primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Artist        string             `json:"artist" bson:"artist"`
	CoverImageURL string             `json:"cover_image_url" bson:"cover_image_url"`
	AudioFileID   string             `json:"audio_file_id,omitempty" bson:"audio_file_id,omitempty"`
	SpotifyID     string             `json:"spotify_id,omitempty" bson:"spotify_id,omitempty"`
	YouTubeLink   string             `json:"youtube_link,omitempty" bson:"youtube_link,omitempty"`
}

// SongResponse is a Song with its identifier rendered as a hex string.
type SongResponse struct {
	ID string `json:"id"`
	Song
}

// NewSongResponse converts a stored song for the API surface.
func NewSongResponse(s Song) SongResponse {
	return SongResponse{ID: s.ID.Hex(), Song: s}
}

// SpotifyTrack is one entry of a playlist import preview.
type SpotifyTrack struct {
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	CoverImageURL string `json:"cover_image_url"`
	SpotifyID     string `json:"spotify_id"`
}

// FailedSong records why one song of a batch could not be processed.
type FailedSong struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Reason string `json:"reason"`
}

// ProcessReport is the batch acquisition result. The endpoint returns it
// with HTTP 200 even when every item failed.
type ProcessReport struct {
	Message        string       `json:"message"`
	ProcessedCount int          `json:"processed_count"`
	FailedSongs    []FailedSong `json:"failed_songs"`
}
