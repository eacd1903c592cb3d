package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/soundbound/soundbound-server/model"
	"github.com/soundbound/soundbound-server/store/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.NewDB(filepath.Join(t.TempDir(), "soundbound_test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	return NewStore(database.DB)
}

func createTestUser(t *testing.T, s *Store, username string, role model.Role) *model.User {
	t.Helper()
	user, err := s.CreateUser(&model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("Failed to create user %q: %v", username, err)
	}
	return user
}

func createTestBook(t *testing.T, s *Store, title string) *model.Book {
	t.Helper()
	book, err := s.CreateBook(&model.Book{
		Title:          title,
		Source:         model.BookSourceVerified,
		OpenlibWorkKey: "/works/" + title,
		AuthorNames:    []string{"Test Author"},
		AuthorKeys:     []string{"/authors/OL1A"},
	})
	if err != nil {
		t.Fatalf("Failed to create book %q: %v", title, err)
	}
	return book
}

func createTestSong(t *testing.T, s *Store, spotifyID string) *model.Song {
	t.Helper()
	song, err := s.CreateSong(&model.Song{
		SpotifyID: spotifyID,
		Title:     "Track " + spotifyID,
		Artists:   []string{"Test Artist"},
	})
	if err != nil {
		t.Fatalf("Failed to create song %q: %v", spotifyID, err)
	}
	return song
}

func createTestTag(t *testing.T, s *Store, name string) *model.Tag {
	t.Helper()
	tag, err := s.CreateTag(&model.Tag{
		Name:           name,
		NormalizedName: name,
		Source:         model.TagSourceOfficial,
		IsOfficial:     true,
	})
	if err != nil {
		t.Fatalf("Failed to create tag %q: %v", name, err)
	}
	return tag
}
