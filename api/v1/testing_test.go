package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/soundbound/soundbound-server/api/auth"
	"github.com/soundbound/soundbound-server/metadata"
	"github.com/soundbound/soundbound-server/model"
	"github.com/soundbound/soundbound-server/store"
	"github.com/soundbound/soundbound-server/store/db"
)

type fakeBookFetcher struct {
	works map[string]*metadata.BookMetadata
}

func (f *fakeBookFetcher) FetchWork(_ context.Context, workKey string) (*metadata.BookMetadata, error) {
	if meta, ok := f.works[workKey]; ok {
		return meta, nil
	}
	return nil, metadata.ErrNotAvailable
}

type fakeTrackFetcher struct {
	tracks map[string]*metadata.TrackMetadata
}

func (f *fakeTrackFetcher) FetchTrack(_ context.Context, trackID string) (*metadata.TrackMetadata, error) {
	if track, ok := f.tracks[trackID]; ok {
		return track, nil
	}
	return nil, metadata.ErrNotAvailable
}

func (f *fakeTrackFetcher) FetchAudioFeatures(_ context.Context, trackID string) (string, error) {
	if _, ok := f.tracks[trackID]; ok {
		return `{"tempo":120}`, nil
	}
	return "", metadata.ErrNotAvailable
}

func (f *fakeTrackFetcher) FetchGenres(_ context.Context, artistIDs []string) ([]string, error) {
	return []string{"folk"}, nil
}

type testEnv struct {
	store        *store.Store
	server       *httptest.Server
	bookFetcher  *fakeBookFetcher
	trackFetcher *fakeTrackFetcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.NewDB(filepath.Join(t.TempDir(), "soundbound_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Migrate(context.Background()))

	s := store.NewStore(database.DB)
	bookFetcher := &fakeBookFetcher{works: map[string]*metadata.BookMetadata{}}
	trackFetcher := &fakeTrackFetcher{tracks: map[string]*metadata.TrackMetadata{}}

	router := mux.NewRouter()
	Server(router, s, bookFetcher, trackFetcher)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return &testEnv{
		store:        s,
		server:       ts,
		bookFetcher:  bookFetcher,
		trackFetcher: trackFetcher,
	}
}

func (env *testEnv) createUser(t *testing.T, username string, role model.Role) *model.User {
	t.Helper()
	user, err := env.store.CreateUser(&model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$unusable.hash.for.tests.only.aaaaaaaaaaaaaaaaaaaaaaaaa",
		Role:         role,
	})
	require.NoError(t, err)
	return user
}

func (env *testEnv) createAuthor(t *testing.T, username string, authorKeys []string) *model.User {
	t.Helper()
	user := env.createUser(t, username, model.RoleAuthor)
	updated, err := env.store.UpdateUser(&model.UpdateUser{ID: user.ID, AuthorKeys: authorKeys})
	require.NoError(t, err)
	return updated
}

func (env *testEnv) createBook(t *testing.T, title string, authorKeys []string) *model.Book {
	t.Helper()
	book, err := env.store.CreateBook(&model.Book{
		Title:          title,
		Source:         model.BookSourceVerified,
		OpenlibWorkKey: "/works/" + title,
		AuthorNames:    []string{"Test Author"},
		AuthorKeys:     authorKeys,
	})
	require.NoError(t, err)
	return book
}

func (env *testEnv) token(t *testing.T, user *model.User) string {
	t.Helper()
	sSetting, err := env.store.GetOrUpsetSystemSecuritySetting()
	require.NoError(t, err)
	token, err := auth.GenerateAccessToken(user.Username, user.ID, user.Role, time.Now().Add(time.Hour), []byte(sSetting.JWTSecret))
	require.NoError(t, err)
	return token
}

// do issues a request against the test server. An empty token means an
// anonymous call.
func (env *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, env.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func playlistPath(id int32) string {
	return fmt.Sprintf("/api/v1/playlists/%d", id)
}
