package store

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/soundbound/soundbound-server/model"
)

func createTestPlaylist(t *testing.T, s *Store, userID, bookID int32, isAuthorReco bool) *model.Playlist {
	t.Helper()
	playlist, err := s.CreatePlaylist(&model.Playlist{
		UserID:       userID,
		Title:        "Soundtrack",
		Description:  "Songs that fit the book",
		IsPublic:     isAuthorReco,
		IsAuthorReco: isAuthorReco,
		BookID:       bookID,
	})
	if err != nil {
		t.Fatalf("Failed to create playlist: %v", err)
	}
	return playlist
}

func TestCreateAndGetPlaylist(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "frodo", model.RoleReader)
	book := createTestBook(t, s, "The Hobbit")

	playlist := createTestPlaylist(t, s, user.ID, book.ID, false)

	got, err := s.GetPlaylist(&model.FindPlaylist{ID: &playlist.ID})
	if err != nil {
		t.Fatalf("Failed to get playlist: %v", err)
	}
	if got == nil {
		t.Fatal("Expected playlist")
	}
	if got.BookID != book.ID {
		t.Fatalf("Expected book %d, got %d", book.ID, got.BookID)
	}
	if got.IsPublic {
		t.Fatal("Personal playlist must be private")
	}
}

func TestPlaylistSongOrdering(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "frodo", model.RoleReader)
	book := createTestBook(t, s, "The Hobbit")
	playlist := createTestPlaylist(t, s, user.ID, book.ID, false)

	first := createTestSong(t, s, "sp1")
	second := createTestSong(t, s, "sp2")
	third := createTestSong(t, s, "sp3")

	for _, song := range []*model.Song{first, second, third} {
		if _, err := s.AddPlaylistSong(playlist.ID, song.ID); err != nil {
			t.Fatalf("Failed to add song: %v", err)
		}
	}

	link, err := s.GetPlaylistSong(playlist.ID, third.ID)
	if err != nil {
		t.Fatalf("Failed to get playlist song: %v", err)
	}
	if link == nil || link.OrderIndex != 2 {
		t.Fatalf("Expected order_index 2, got %+v", link)
	}

	songs, err := s.ListPlaylistSongs(playlist.ID)
	if err != nil {
		t.Fatalf("Failed to list playlist songs: %v", err)
	}
	if len(songs) != 3 {
		t.Fatalf("Expected 3 songs, got %d", len(songs))
	}
	if songs[0].ID != first.ID || songs[2].ID != third.ID {
		t.Fatal("Songs not in insertion order")
	}

	if _, err := s.RemovePlaylistSong(playlist.ID, second.ID); err != nil {
		t.Fatalf("Failed to remove song: %v", err)
	}
	songs, err = s.ListPlaylistSongs(playlist.ID)
	if err != nil {
		t.Fatalf("Failed to list playlist songs: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("Expected 2 songs, got %d", len(songs))
	}
}

func TestDeletePlaylistCascades(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "frodo", model.RoleReader)
	book := createTestBook(t, s, "The Hobbit")
	playlist := createTestPlaylist(t, s, user.ID, book.ID, false)

	song := createTestSong(t, s, "sp1")
	tag := createTestTag(t, s, "cozy")
	if _, err := s.AddPlaylistSong(playlist.ID, song.ID); err != nil {
		t.Fatalf("Failed to add song: %v", err)
	}
	if _, err := s.AddPlaylistTag(playlist.ID, tag.ID); err != nil {
		t.Fatalf("Failed to add tag: %v", err)
	}

	if err := s.DeletePlaylist(playlist.ID); err != nil {
		t.Fatalf("Failed to delete playlist: %v", err)
	}

	got, err := s.GetPlaylist(&model.FindPlaylist{ID: &playlist.ID})
	if err != nil {
		t.Fatalf("Failed to get playlist: %v", err)
	}
	if got != nil {
		t.Fatal("Expected playlist to be gone")
	}
	songs, err := s.ListPlaylistSongs(playlist.ID)
	if err != nil {
		t.Fatalf("Failed to list playlist songs: %v", err)
	}
	if len(songs) != 0 {
		t.Fatal("Expected song links to be gone")
	}
}

func TestClonePlaylist(t *testing.T) {
	s := newTestStore(t)
	author := createTestUser(t, s, "author", model.RoleAuthor)
	reader := createTestUser(t, s, "reader", model.RoleReader)
	book := createTestBook(t, s, "The Hobbit")

	source := createTestPlaylist(t, s, author.ID, book.ID, true)
	songs := []*model.Song{
		createTestSong(t, s, "sp1"),
		createTestSong(t, s, "sp2"),
	}
	for _, song := range songs {
		if _, err := s.AddPlaylistSong(source.ID, song.ID); err != nil {
			t.Fatalf("Failed to add song: %v", err)
		}
	}
	tag := createTestTag(t, s, "adventure")
	if _, err := s.AddPlaylistTag(source.ID, tag.ID); err != nil {
		t.Fatalf("Failed to add tag: %v", err)
	}

	result, err := s.ClonePlaylist(reader.ID, book.ID, source.ID)
	if err != nil {
		t.Fatalf("Failed to clone playlist: %v", err)
	}
	if !result.Cloned {
		t.Fatal("Expected a fresh clone")
	}
	if result.SourcePlaylistID != source.ID {
		t.Fatalf("Expected source %d, got %d", source.ID, result.SourcePlaylistID)
	}

	// The implicit library add happened in the same transaction.
	has, err := s.HasLibraryEntry(reader.ID, book.ID)
	if err != nil {
		t.Fatalf("Failed to check library: %v", err)
	}
	if !has {
		t.Fatal("Expected book in reader's library")
	}

	clone, err := s.GetPlaylist(&model.FindPlaylist{ID: &result.PlaylistID})
	if err != nil {
		t.Fatalf("Failed to get clone: %v", err)
	}
	if clone.UserID != reader.ID {
		t.Fatal("Clone must belong to the reader")
	}
	if clone.IsPublic || !clone.IsAuthorReco {
		t.Fatalf("Clone must be private and flagged: %+v", clone)
	}

	clonedSongs, err := s.ListPlaylistSongs(clone.ID)
	if err != nil {
		t.Fatalf("Failed to list clone songs: %v", err)
	}
	if len(clonedSongs) != len(songs) {
		t.Fatalf("Expected %d songs, got %d", len(songs), len(clonedSongs))
	}
	if clonedSongs[0].ID != songs[0].ID {
		t.Fatal("Clone songs not in source order")
	}
	clonedTags, err := s.ListPlaylistTags(clone.ID)
	if err != nil {
		t.Fatalf("Failed to list clone tags: %v", err)
	}
	if len(clonedTags) != 1 {
		t.Fatalf("Expected 1 tag, got %d", len(clonedTags))
	}

	// Listening again returns the existing copy.
	again, err := s.ClonePlaylist(reader.ID, book.ID, source.ID)
	if err != nil {
		t.Fatalf("Failed to re-clone playlist: %v", err)
	}
	if again.Cloned {
		t.Fatal("Expected idempotent result")
	}
	if again.PlaylistID != result.PlaylistID {
		t.Fatalf("Expected playlist %d, got %d", result.PlaylistID, again.PlaylistID)
	}
}

func TestClonePlaylistRejectsMismatchedBook(t *testing.T) {
	s := newTestStore(t)
	author := createTestUser(t, s, "author", model.RoleAuthor)
	reader := createTestUser(t, s, "reader", model.RoleReader)
	book := createTestBook(t, s, "The Hobbit")
	otherBook := createTestBook(t, s, "The Silmarillion")

	source := createTestPlaylist(t, s, author.ID, book.ID, true)

	// The source recommends for The Hobbit; cloning it against another
	// book must fail.
	_, err := s.ClonePlaylist(reader.ID, otherBook.ID, source.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	has, err := s.HasLibraryEntry(reader.ID, otherBook.ID)
	if err != nil {
		t.Fatalf("Failed to check library: %v", err)
	}
	if has {
		t.Fatal("Library add must roll back with the failed clone")
	}
}

func TestClonePlaylistRejectsNonReco(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "owner", model.RoleReader)
	reader := createTestUser(t, s, "reader", model.RoleReader)
	book := createTestBook(t, s, "The Hobbit")

	personal := createTestPlaylist(t, s, owner.ID, book.ID, false)

	_, err := s.ClonePlaylist(reader.ID, book.ID, personal.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// The rollback must undo the implicit library add.
	has, err := s.HasLibraryEntry(reader.ID, book.ID)
	if err != nil {
		t.Fatalf("Failed to check library: %v", err)
	}
	if has {
		t.Fatal("Library add must roll back with the failed clone")
	}
}
