package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PortfolioFM/apperr"
	"PortfolioFM/config"
	"PortfolioFM/model"
	"PortfolioFM/storage"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeSongRepo struct {
	collections map[string]bool
	songs       []model.Song
	imported    map[string]bool
	inserted    []model.Song
	ops         *[]string
}

func (f *fakeSongRepo) RequireCollection(ctx context.Context, collection string) error {
	if !f.collections[collection] {
		return apperr.Newf(apperr.NotFound, "collection '%s' does not exist", collection)
	}
	return nil
}

func (f *fakeSongRepo) ListSongs(ctx context.Context, collection string) ([]model.Song, error) {
	return f.songs, nil
}

func (f *fakeSongRepo) GetSong(ctx context.Context, collection string, id primitive.ObjectID) (*model.Song, error) {
	for i := range f.songs {
		if f.songs[i].ID == id {
			return &f.songs[i], nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "Song not found")
}

func (f *fakeSongRepo) GetBySpotifyID(ctx context.Context, collection, spotifyID string) (*model.Song, error) {
	for i := range f.songs {
		if f.songs[i].SpotifyID == spotifyID {
			return &f.songs[i], nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "Song not found in collection")
}

func (f *fakeSongRepo) HasSpotifyID(ctx context.Context, collection, spotifyID string) (bool, error) {
	return f.imported[spotifyID], nil
}

func (f *fakeSongRepo) InsertSongs(ctx context.Context, collection string, songs []model.Song) ([]string, error) {
	f.inserted = append(f.inserted, songs...)
	ids := make([]string, len(songs))
	for i := range ids {
		ids[i] = primitive.NewObjectID().Hex()
	}
	return ids, nil
}

func (f *fakeSongRepo) FindMissingAudio(ctx context.Context, collection string) ([]model.Song, error) {
	return nil, nil
}

func (f *fakeSongRepo) AttachAudio(ctx context.Context, collection string, id primitive.ObjectID, youtubeLink, audioFileID string) error {
	return nil
}

func (f *fakeSongRepo) DeleteSong(ctx context.Context, collection string, id primitive.ObjectID) error {
	if f.ops != nil {
		*f.ops = append(*f.ops, "delete-record")
	}
	return nil
}

type fakeBlobStore struct {
	data    map[string][]byte
	infos   map[string]storage.BlobInfo
	uploads []string
	deleted []string
	ops     *[]string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{data: map[string][]byte{}, infos: map[string]storage.BlobInfo{}}
}

func (f *fakeBlobStore) Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	id := fmt.Sprintf("blob-%d", len(f.uploads)+1)
	f.data[id] = data
	f.infos[id] = storage.BlobInfo{Filename: filename, ContentType: contentType, Size: int64(len(data))}
	f.uploads = append(f.uploads, id)
	return id, nil
}

func (f *fakeBlobStore) OpenDownloadStream(ctx context.Context, blobID string) (io.ReadCloser, storage.BlobInfo, error) {
	data, ok := f.data[blobID]
	if !ok {
		return nil, storage.BlobInfo{}, apperr.Newf(apperr.NotFound, "blob '%s' not found", blobID)
	}
	return io.NopCloser(bytes.NewReader(data)), f.infos[blobID], nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, blobID string) error {
	f.deleted = append(f.deleted, blobID)
	delete(f.data, blobID)
	if f.ops != nil {
		*f.ops = append(*f.ops, "delete-blob")
	}
	return nil
}

func (f *fakeBlobStore) Ping(ctx context.Context) error { return nil }

type fakeProjectRepo struct {
	projects map[primitive.ObjectID]model.Project
	created  []model.Project
}

func (f *fakeProjectRepo) ListProjects(ctx context.Context) ([]model.Project, error) {
	out := make([]model.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProjectRepo) GetProject(ctx context.Context, id primitive.ObjectID) (*model.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Project not found")
	}
	return &p, nil
}

func (f *fakeProjectRepo) CreateProject(ctx context.Context, project *model.Project) (string, error) {
	f.created = append(f.created, *project)
	return primitive.NewObjectID().Hex(), nil
}

func (f *fakeProjectRepo) CreateProjects(ctx context.Context, projects []model.Project) ([]string, error) {
	ids := make([]string, len(projects))
	for i := range projects {
		f.created = append(f.created, projects[i])
		ids[i] = primitive.NewObjectID().Hex()
	}
	return ids, nil
}

func (f *fakeProjectRepo) UpdateProject(ctx context.Context, id primitive.ObjectID, project *model.Project) error {
	if _, ok := f.projects[id]; !ok {
		return apperr.New(apperr.NotFound, "Project not found")
	}
	f.projects[id] = *project
	return nil
}

func (f *fakeProjectRepo) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.projects[id]; !ok {
		return apperr.New(apperr.NotFound, "Project not found")
	}
	delete(f.projects, id)
	return nil
}

type fakeExperienceRepo struct {
	experiences []model.Experience
}

func (f *fakeExperienceRepo) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	return f.experiences, nil
}

func (f *fakeExperienceRepo) GetExperience(ctx context.Context, id primitive.ObjectID) (*model.Experience, error) {
	for i := range f.experiences {
		if f.experiences[i].ID == id {
			return &f.experiences[i], nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "Experience not found")
}

func (f *fakeExperienceRepo) CreateExperience(ctx context.Context, experience *model.Experience) (string, error) {
	f.experiences = append(f.experiences, *experience)
	return primitive.NewObjectID().Hex(), nil
}

func (f *fakeExperienceRepo) CreateExperiences(ctx context.Context, experiences []model.Experience) ([]string, error) {
	ids := make([]string, len(experiences))
	for i := range experiences {
		f.experiences = append(f.experiences, experiences[i])
		ids[i] = primitive.NewObjectID().Hex()
	}
	return ids, nil
}

func (f *fakeExperienceRepo) UpdateExperience(ctx context.Context, id primitive.ObjectID, experience *model.Experience) error {
	for i := range f.experiences {
		if f.experiences[i].ID == id {
			updated := *experience
			updated.ID = id
			f.experiences[i] = updated
			return nil
		}
	}
	return apperr.New(apperr.NotFound, "Experience not found")
}

func (f *fakeExperienceRepo) DeleteExperience(ctx context.Context, id primitive.ObjectID) error {
	for i := range f.experiences {
		if f.experiences[i].ID == id {
			f.experiences = append(f.experiences[:i], f.experiences[i+1:]...)
			return nil
		}
	}
	return apperr.New(apperr.NotFound, "Experience not found")
}

type fakeResumeRepo struct {
	resume   *model.Resume
	replaced []model.Resume
	ops      *[]string
}

func (f *fakeResumeRepo) GetResume(ctx context.Context) (*model.Resume, error) {
	if f.resume == nil {
		return nil, apperr.New(apperr.NotFound, "No resume uploaded")
	}
	return f.resume, nil
}

func (f *fakeResumeRepo) ListResumes(ctx context.Context) ([]model.Resume, error) {
	if f.resume == nil {
		return nil, nil
	}
	return []model.Resume{*f.resume}, nil
}

func (f *fakeResumeRepo) ReplaceResume(ctx context.Context, resume *model.Resume) (string, error) {
	f.replaced = append(f.replaced, *resume)
	f.resume = resume
	return primitive.NewObjectID().Hex(), nil
}

func (f *fakeResumeRepo) DeleteResumes(ctx context.Context) error {
	f.resume = nil
	if f.ops != nil {
		*f.ops = append(*f.ops, "delete-record")
	}
	return nil
}

type fakeSpotify struct {
	tracks []model.SpotifyTrack
	err    error
}

func (f *fakeSpotify) ListPlaylistTracks(ctx context.Context, playlistID string) ([]model.SpotifyTrack, error) {
	return f.tracks, f.err
}

func (f *fakeSpotify) Ping(ctx context.Context) error { return nil }

type fakeAcquirer struct {
	attachErr  error
	report     *model.ProcessReport
	processErr error
	attached   []string
}

func (f *fakeAcquirer) AttachDirect(ctx context.Context, collection, spotifyID, youtubeURL string) error {
	f.attached = append(f.attached, spotifyID)
	return f.attachErr
}

func (f *fakeAcquirer) ProcessMissing(ctx context.Context, collection string) (*model.ProcessReport, error) {
	return f.report, f.processErr
}

type testEnv struct {
	handler *APIHandler
	songs   *fakeSongRepo
	blobs   *fakeBlobStore
	proj    *fakeProjectRepo
	exp     *fakeExperienceRepo
	resume  *fakeResumeRepo
	spotify *fakeSpotify
	acquire *fakeAcquirer
	router  *mux.Router
}

func newTestEnv() *testEnv {
	env := &testEnv{
		songs:   &fakeSongRepo{collections: map[string]bool{}, imported: map[string]bool{}},
		blobs:   newFakeBlobStore(),
		proj:    &fakeProjectRepo{projects: map[primitive.ObjectID]model.Project{}},
		exp:     &fakeExperienceRepo{},
		resume:  &fakeResumeRepo{},
		spotify: &fakeSpotify{},
		acquire: &fakeAcquirer{},
	}
	env.handler = NewAPIHandler(&config.Config{}, nil,
		env.songs, env.proj, env.exp, env.resume, env.blobs, nil, env.spotify, env.acquire)

	r := mux.NewRouter()
	h := env.handler
	r.HandleFunc("/songs/collection/{collection}", h.AddSongsHandler).Methods(http.MethodPost)
	r.HandleFunc("/songs/{collection}/process-missing", h.ProcessMissingHandler).Methods(http.MethodPost)
	r.HandleFunc("/songs/{collection}", h.GetSongsHandler).Methods(http.MethodGet)
	r.HandleFunc("/songs/{collection}/{id}", h.GetSongHandler).Methods(http.MethodGet)
	r.HandleFunc("/songs/{collection}/{id}", h.DeleteSongHandler).Methods(http.MethodDelete)
	r.HandleFunc("/songs/{collection}/{id}/audio", h.GetSongAudioHandler).Methods(http.MethodGet)
	r.HandleFunc("/songs/{collection}/{spotifyId}/audio", h.AttachAudioHandler).Methods(http.MethodPost)
	r.HandleFunc("/spotify/playlist/{id}", h.GetSpotifyPlaylistHandler).Methods(http.MethodGet)
	r.HandleFunc("/projects", h.GetProjectsHandler).Methods(http.MethodGet)
	r.HandleFunc("/projects", h.CreateProjectHandler).Methods(http.MethodPost)
	r.HandleFunc("/projects/bulk", h.CreateProjectsHandler).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}", h.GetProjectHandler).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}", h.UpdateProjectHandler).Methods(http.MethodPut)
	r.HandleFunc("/projects/{id}", h.DeleteProjectHandler).Methods(http.MethodDelete)
	r.HandleFunc("/experiences", h.GetExperiencesHandler).Methods(http.MethodGet)
	r.HandleFunc("/experiences", h.CreateExperienceHandler).Methods(http.MethodPost)
	r.HandleFunc("/experiences/bulk", h.CreateExperiencesHandler).Methods(http.MethodPost)
	r.HandleFunc("/experiences/{id}", h.GetExperienceHandler).Methods(http.MethodGet)
	r.HandleFunc("/experiences/{id}", h.UpdateExperienceHandler).Methods(http.MethodPut)
	r.HandleFunc("/experiences/{id}", h.DeleteExperienceHandler).Methods(http.MethodDelete)
	r.HandleFunc("/resume", h.GetResumeHandler).Methods(http.MethodGet)
	r.HandleFunc("/resume", h.DeleteResumeHandler).Methods(http.MethodDelete)
	r.HandleFunc("/resume/upload", h.UploadResumeHandler).Methods(http.MethodPost)
	r.HandleFunc("/resume/view", h.ViewResumeHandler).Methods(http.MethodGet)
	r.HandleFunc("/resume/download", h.DownloadResumeHandler).Methods(http.MethodGet)
	env.router = r
	return env
}

func (e *testEnv) do(method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetSongsHandler(t *testing.T) {
	t.Run("unknown collection is 404", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodGet, "/songs/nope", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "collection 'nope' does not exist", decodeBody(t, rec)["detail"])
	})

	t.Run("noshuffle preserves stored order", func(t *testing.T) {
		env := newTestEnv()
		env.songs.collections["favorites"] = true
		env.songs.songs = []model.Song{
			{ID: primitive.NewObjectID(), Title: "First"},
			{ID: primitive.NewObjectID(), Title: "Second"},
			{ID: primitive.NewObjectID(), Title: "Third"},
		}

		rec := env.do(http.MethodGet, "/songs/favorites?noshuffle=true", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var out []model.SongResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.Len(t, out, 3)
		assert.Equal(t, "First", out[0].Title)
		assert.Equal(t, "Second", out[1].Title)
		assert.Equal(t, "Third", out[2].Title)
	})

	t.Run("empty collection returns empty array", func(t *testing.T) {
		env := newTestEnv()
		env.songs.collections["favorites"] = true

		rec := env.do(http.MethodGet, "/songs/favorites", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestGetSongHandler(t *testing.T) {
	t.Run("malformed ID is 400", func(t *testing.T) {
		env := newTestEnv()
		env.songs.collections["favorites"] = true

		rec := env.do(http.MethodGet, "/songs/favorites/not-an-id", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown ID is 404", func(t *testing.T) {
		env := newTestEnv()
		env.songs.collections["favorites"] = true

		rec := env.do(http.MethodGet, "/songs/favorites/"+primitive.NewObjectID().Hex(), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Song not found", decodeBody(t, rec)["detail"])
	})

	t.Run("found song includes hex ID", func(t *testing.T) {
		env := newTestEnv()
		env.songs.collections["favorites"] = true
		id := primitive.NewObjectID()
		env.songs.songs = []model.Song{{ID: id, Title: "Song A", Artist: "Artist A"}}

		rec := env.do(http.MethodGet, "/songs/favorites/"+id.Hex(), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, id.Hex(), body["id"])
		assert.Equal(t, "Song A", body["title"])
	})
}

func TestGetSongAudioHandler(t *testing.T) {
	t.Run("no audio attached is 404", func(t *testing.T) {
		env := newTestEnv()
		env.songs.collections["favorites"] = true
		id := primitive.NewObjectID()
		env.songs.songs = []model.Song{{ID: id, Title: "Song A"}}

		rec := env.do(http.MethodGet, "/songs/favorites/"+id.Hex()+"/audio", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Song has no audio attached", decodeBody(t, rec)["detail"])
	})

	t.Run("streams blob with headers", func(t *testing.T) {
		env := newTestEnv()
		env.songs.collections["favorites"] = true
		blobID, err := env.blobs.Upload(context.Background(), "Song_A.mp3", []byte("mp3-bytes"), "audio/mp3")
		require.NoError(t, err)
		id := primitive.NewObjectID()
		env.songs.songs = []model.Song{{ID: id, Title: "Song A", AudioFileID: blobID}}

		rec := env.do(http.MethodGet, "/songs/favorites/"+id.Hex()+"/audio", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "mp3-bytes", rec.Body.String())
		assert.Equal(t, "audio/mp3", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "Song_A.mp3")
		assert.Equal(t, "9", rec.Header().Get("Content-Length"))
	})
}

func TestDeleteSongHandler(t *testing.T) {
	t.Run("deletes blob before record", func(t *testing.T) {
		env := newTestEnv()
		var ops []string
		env.songs.ops = &ops
		env.blobs.ops = &ops

		env.songs.collections["favorites"] = true
		blobID, err := env.blobs.Upload(context.Background(), "a.mp3", []byte("x"), "audio/mp3")
		require.NoError(t, err)
		id := primitive.NewObjectID()
		env.songs.songs = []model.Song{{ID: id, AudioFileID: blobID}}

		rec := env.do(http.MethodDelete, "/songs/favorites/"+id.Hex(), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"delete-blob", "delete-record"}, ops)
	})

	t.Run("song without audio skips blob delete", func(t *testing.T) {
		env := newTestEnv()
		env.songs.collections["favorites"] = true
		id := primitive.NewObjectID()
		env.songs.songs = []model.Song{{ID: id}}

		rec := env.do(http.MethodDelete, "/songs/favorites/"+id.Hex(), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, env.blobs.deleted)
	})
}

func TestAddSongsHandler(t *testing.T) {
	t.Run("bulk insert reports count", func(t *testing.T) {
		env := newTestEnv()
		body := bytes.NewBufferString(`[{"title":"A","artist":"X"},{"title":"B","artist":"Y"}]`)

		rec := env.do(http.MethodPost, "/songs/collection/favorites", body)

		require.Equal(t, http.StatusOK, rec.Code)
		out := decodeBody(t, rec)
		assert.Equal(t, "Added 2 songs to collection 'favorites'", out["message"])
		assert.Equal(t, "favorites", out["collection_name"])
		assert.Equal(t, float64(2), out["inserted_count"])
		assert.Len(t, env.songs.inserted, 2)
	})

	t.Run("empty payload is 400", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodPost, "/songs/collection/favorites", bytes.NewBufferString(`[]`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed payload is 400", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodPost, "/songs/collection/favorites", bytes.NewBufferString(`{not json`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAttachAudioHandler(t *testing.T) {
	t.Run("missing youtube_url is 400", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodPost, "/songs/favorites/sp123/audio", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, env.acquire.attached)
	})

	t.Run("delegates to the workflow", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodPost, "/songs/favorites/sp123/audio?youtube_url=https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3Dabc", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"sp123"}, env.acquire.attached)
	})

	t.Run("already-attached maps to 400", func(t *testing.T) {
		env := newTestEnv()
		env.acquire.attachErr = apperr.New(apperr.InvalidInput, "Song already has audio attached")

		rec := env.do(http.MethodPost, "/songs/favorites/sp123/audio?youtube_url=u", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Song already has audio attached", decodeBody(t, rec)["detail"])
	})
}

func TestProcessMissingHandler(t *testing.T) {
	t.Run("report is 200 even with failures", func(t *testing.T) {
		env := newTestEnv()
		env.acquire.report = &model.ProcessReport{
			Message:        "Processed 1 songs",
			ProcessedCount: 1,
			FailedSongs: []model.FailedSong{
				{Title: "B", Artist: "Y", Reason: "No YouTube results found"},
			},
		}

		rec := env.do(http.MethodPost, "/songs/favorites/process-missing", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		out := decodeBody(t, rec)
		assert.Equal(t, float64(1), out["processed_count"])
		failed, ok := out["failed_songs"].([]interface{})
		require.True(t, ok)
		require.Len(t, failed, 1)
	})

	t.Run("unknown collection is 404", func(t *testing.T) {
		env := newTestEnv()
		env.acquire.processErr = apperr.Newf(apperr.NotFound, "collection 'nope' does not exist")

		rec := env.do(http.MethodPost, "/songs/nope/process-missing", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetSpotifyPlaylistHandler(t *testing.T) {
	env := newTestEnv()
	env.spotify.tracks = []model.SpotifyTrack{
		{Title: "New Song", SpotifyID: "sp-new"},
		{Title: "Already Imported", SpotifyID: "sp-old"},
	}
	env.songs.imported["sp-old"] = true

	rec := env.do(http.MethodGet, "/spotify/playlist/pl1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var out []model.SpotifyTrack
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "sp-new", out[0].SpotifyID)
}

func TestProjectHandlers(t *testing.T) {
	t.Run("create returns 201", func(t *testing.T) {
		env := newTestEnv()
		body := bytes.NewBufferString(`{"name":"Portfolio","description":"Site","technologies":["Go"],"year":2025}`)

		rec := env.do(http.MethodPost, "/projects", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.NotEmpty(t, decodeBody(t, rec)["id"])
		require.Len(t, env.proj.created, 1)
		assert.Equal(t, "Portfolio", env.proj.created[0].Name)
	})

	t.Run("create without name is 400", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodPost, "/projects", bytes.NewBufferString(`{"description":"x"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get unknown project is 404", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodGet, "/projects/"+primitive.NewObjectID().Hex(), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bulk insert reports count", func(t *testing.T) {
		env := newTestEnv()
		body := bytes.NewBufferString(`[{"name":"A"},{"name":"B"},{"name":"C"}]`)

		rec := env.do(http.MethodPost, "/projects/bulk", body)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(3), decodeBody(t, rec)["inserted_count"])
	})

	t.Run("update unknown project is 404", func(t *testing.T) {
		env := newTestEnv()
		body := bytes.NewBufferString(`{"name":"Renamed"}`)

		rec := env.do(http.MethodPut, "/projects/"+primitive.NewObjectID().Hex(), body)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestExperienceHandlers(t *testing.T) {
	t.Run("create returns 201", func(t *testing.T) {
		env := newTestEnv()
		body := bytes.NewBufferString(`{"title":"Engineer","company":"Acme","start_date":"Jan 2024","end_date":"Present","description":["Built things"]}`)

		rec := env.do(http.MethodPost, "/experiences", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, env.exp.experiences, 1)
		assert.Equal(t, "Acme", env.exp.experiences[0].Company)
	})

	t.Run("update replaces fields", func(t *testing.T) {
		env := newTestEnv()
		id := primitive.NewObjectID()
		env.exp.experiences = []model.Experience{{ID: id, Title: "Engineer", Company: "Acme"}}
		body := bytes.NewBufferString(`{"title":"Senior Engineer","company":"Acme"}`)

		rec := env.do(http.MethodPut, "/experiences/"+id.Hex(), body)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Senior Engineer", env.exp.experiences[0].Title)
	})

	t.Run("update unknown experience is 404", func(t *testing.T) {
		env := newTestEnv()
		body := bytes.NewBufferString(`{"title":"Ghost"}`)

		rec := env.do(http.MethodPut, "/experiences/"+primitive.NewObjectID().Hex(), body)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		env := newTestEnv()
		id := primitive.NewObjectID()
		env.exp.experiences = []model.Experience{{ID: id, Title: "Engineer"}}

		rec := env.do(http.MethodDelete, "/experiences/"+id.Hex(), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, env.exp.experiences)
	})

	t.Run("delete unknown experience is 404", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodDelete, "/experiences/"+primitive.NewObjectID().Hex(), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list returns repository order", func(t *testing.T) {
		env := newTestEnv()
		env.exp.experiences = []model.Experience{
			{ID: primitive.NewObjectID(), Title: "Current", EndDate: "Present"},
			{ID: primitive.NewObjectID(), Title: "Past", EndDate: "Mar 2022"},
		}

		rec := env.do(http.MethodGet, "/experiences", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var out []model.ExperienceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.Len(t, out, 2)
		assert.Equal(t, "Current", out[0].Title)
	})
}

func TestResumeHandlers(t *testing.T) {
	uploadPDF := func(t *testing.T, env *testEnv, filename, content string) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/resume/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("no resume is 404", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodGet, "/resume", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "No resume uploaded", decodeBody(t, rec)["detail"])
	})

	t.Run("non-pdf upload rejected", func(t *testing.T) {
		env := newTestEnv()

		rec := uploadPDF(t, env, "resume.docx", "not a pdf")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Only PDF files are accepted", decodeBody(t, rec)["detail"])
		assert.Empty(t, env.blobs.uploads)
	})

	t.Run("upload stores blob and record", func(t *testing.T) {
		env := newTestEnv()

		rec := uploadPDF(t, env, "resume.pdf", "%PDF-1.7")

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, env.resume.resume)
		assert.Equal(t, "resume.pdf", env.resume.resume.Filename)
		assert.Equal(t, "application/pdf", env.resume.resume.ContentType)
		require.Len(t, env.blobs.uploads, 1)
	})

	t.Run("replacement deletes the previous blob", func(t *testing.T) {
		env := newTestEnv()
		first := uploadPDF(t, env, "old.pdf", "old")
		require.Equal(t, http.StatusOK, first.Code)
		oldBlob := env.blobs.uploads[0]

		second := uploadPDF(t, env, "new.pdf", "new")

		require.Equal(t, http.StatusOK, second.Code)
		assert.Contains(t, env.blobs.deleted, oldBlob)
		assert.Equal(t, "new.pdf", env.resume.resume.Filename)
	})

	t.Run("view streams inline", func(t *testing.T) {
		env := newTestEnv()
		blobID, err := env.blobs.Upload(context.Background(), "resume.pdf", []byte("%PDF-1.7"), "application/pdf")
		require.NoError(t, err)
		env.resume.resume = &model.Resume{Filename: "resume.pdf", FileID: blobID, ContentType: "application/pdf", UploadedAt: time.Now().UTC()}

		rec := env.do(http.MethodGet, "/resume/view", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "inline")
		assert.Equal(t, "%PDF-1.7", rec.Body.String())
	})

	t.Run("download streams attachment", func(t *testing.T) {
		env := newTestEnv()
		blobID, err := env.blobs.Upload(context.Background(), "resume.pdf", []byte("%PDF-1.7"), "application/pdf")
		require.NoError(t, err)
		env.resume.resume = &model.Resume{Filename: "resume.pdf", FileID: blobID, ContentType: "application/pdf"}

		rec := env.do(http.MethodGet, "/resume/download", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	})

	t.Run("delete removes blob before record", func(t *testing.T) {
		env := newTestEnv()
		var ops []string
		env.blobs.ops = &ops
		env.resume.ops = &ops
		blobID, err := env.blobs.Upload(context.Background(), "resume.pdf", []byte("x"), "application/pdf")
		require.NoError(t, err)
		env.resume.resume = &model.Resume{Filename: "resume.pdf", FileID: blobID}

		rec := env.do(http.MethodDelete, "/resume", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"delete-blob", "delete-record"}, ops)
		assert.Nil(t, env.resume.resume)
	})
}
