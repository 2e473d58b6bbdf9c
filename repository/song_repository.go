package repository

import (
	"context"

	"PortfolioFM/apperr"
	"PortfolioFM/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SongRepository defines song data operations against caller-named
// collections.
type SongRepository interface {
	RequireCollection(ctx context.Context, collection string) error
	ListSongs(ctx context.Context, collection string) ([]model.Song, error)
	GetSong(ctx context.Context, collection string, id primitive.ObjectID) (*model.Song, error)
	GetBySpotifyID(ctx context.Context, collection, spotifyID string) (*model.Song, error)
	HasSpotifyID(ctx context.Context, collection, spotifyID string) (bool, error)
	InsertSongs(ctx context.Context, collection string, songs []model.Song) ([]string, error)
	FindMissingAudio(ctx context.Context, collection string) ([]model.Song, error)
	AttachAudio(ctx context.Context, collection string, id primitive.ObjectID, youtubeLink, audioFileID string) error
	DeleteSong(ctx context.Context, collection string, id primitive.ObjectID) error
}

type mongoSongRepository struct {
	store *DocumentStore
}

// NewSongRepository creates a SongRepository over the document store.
func NewSongRepository(store *DocumentStore) SongRepository {
	return &mongoSongRepository{store: store}
}

func (r *mongoSongRepository) RequireCollection(ctx context.Context, collection string) error {
	return r.store.RequireCollection(ctx, collection)
}

func (r *mongoSongRepository) ListSongs(ctx context.Context, collection string) ([]model.Song, error) {
	var songs []model.Song
	if err := r.store.Find(ctx, collection, bson.M{}, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

func (r *mongoSongRepository) GetSong(ctx context.Context, collection string, id primitive.ObjectID) (*model.Song, error) {
	var song model.Song
	if err := r.store.FindOne(ctx, collection, bson.M{"_id": id}, &song); err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.New(apperr.NotFound, "Song not found")
		}
		return nil, err
	}
	return &song, nil
}

func (r *mongoSongRepository) GetBySpotifyID(ctx context.Context, collection, spotifyID string) (*model.Song, error) {
	var song model.Song
	if err := r.store.FindOne(ctx, collection, bson.M{"spotify_id": spotifyID}, &song); err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.New(apperr.NotFound, "Song not found in collection")
		}
		return nil, err
	}
	return &song, nil
}

func (r *mongoSongRepository) HasSpotifyID(ctx context.Context, collection, spotifyID string) (bool, error) {
	var song model.Song
	err := r.store.FindOne(ctx, collection, bson.M{"spotify_id": spotifyID}, &song)
	if err == nil {
		return true, nil
	}
	if apperr.Is(err, apperr.NotFound) {
		return false, nil
	}
	return false, err
}

func (r *mongoSongRepository) InsertSongs(ctx context.Context, collection string, songs []model.Song) ([]string, error) {
	docs := make([]interface{}, 0, len(songs))
	for _, s := range songs {
		s.ID = primitive.NilObjectID
		docs = append(docs, s)
	}
	return r.store.InsertMany(ctx, collection, docs)
}

// FindMissingAudio returns songs that are missing either the YouTube link or
// the audio blob reference.
func (r *mongoSongRepository) FindMissingAudio(ctx context.Context, collection string) ([]model.Song, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"youtube_link": bson.M{"$exists": false}},
		bson.M{"audio_file_id": bson.M{"$exists": false}},
	}}
	var songs []model.Song
	if err := r.store.Find(ctx, collection, filter, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// AttachAudio sets the audio blob reference (and, when non-empty, the
// YouTube link) only if the record still has no audio attached. Losing a
// race against another attach maps to InvalidInput so the caller can delete
// its orphaned blob.
func (r *mongoSongRepository) AttachAudio(ctx context.Context, collection string, id primitive.ObjectID, youtubeLink, audioFileID string) error {
	set := bson.M{"audio_file_id": audioFileID}
	if youtubeLink != "" {
		set["youtube_link"] = youtubeLink
	}
	filter := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"audio_file_id": bson.M{"$exists": false}},
			bson.M{"audio_file_id": ""},
		},
	}
	matched, err := r.store.UpdateOne(ctx, collection, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperr.New(apperr.InvalidInput, "Song already has audio attached")
	}
	return nil
}

func (r *mongoSongRepository) DeleteSong(ctx context.Context, collection string, id primitive.ObjectID) error {
	err := r.store.DeleteOne(ctx, collection, bson.M{"_id": id})
	if apperr.Is(err, apperr.NotFound) {
		return apperr.New(apperr.NotFound, "Song not found")
	}
	return err
}
