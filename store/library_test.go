package store

import (
	"testing"

	"github.com/soundbound/soundbound-server/model"
)

func TestLibraryMembership(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "frodo", model.RoleReader)
	first := createTestBook(t, s, "The Hobbit")
	second := createTestBook(t, s, "The Silmarillion")

	if _, err := s.AddLibraryEntry(user.ID, first.ID); err != nil {
		t.Fatalf("Failed to add library entry: %v", err)
	}
	if _, err := s.AddLibraryEntry(user.ID, second.ID); err != nil {
		t.Fatalf("Failed to add library entry: %v", err)
	}

	has, err := s.HasLibraryEntry(user.ID, first.ID)
	if err != nil {
		t.Fatalf("Failed to check library entry: %v", err)
	}
	if !has {
		t.Fatal("Expected book to be in library")
	}

	// Second add of the same book must violate the unique constraint.
	if _, err := s.AddLibraryEntry(user.ID, first.ID); err == nil {
		t.Fatal("Expected duplicate library add to fail")
	}

	books, err := s.ListLibraryBooks(user.ID)
	if err != nil {
		t.Fatalf("Failed to list library: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("Expected 2 books, got %d", len(books))
	}
	// Membership order is insertion order.
	if books[0].ID != first.ID || books[1].ID != second.ID {
		t.Fatalf("Unexpected library order: %d, %d", books[0].ID, books[1].ID)
	}
}

func TestRemoveLibraryEntry(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "sam", model.RoleReader)
	book := createTestBook(t, s, "The Two Towers")

	if _, err := s.AddLibraryEntry(user.ID, book.ID); err != nil {
		t.Fatalf("Failed to add library entry: %v", err)
	}

	removed, err := s.RemoveLibraryEntry(user.ID, book.ID)
	if err != nil {
		t.Fatalf("Failed to remove library entry: %v", err)
	}
	if !removed {
		t.Fatal("Expected entry to be removed")
	}

	removed, err = s.RemoveLibraryEntry(user.ID, book.ID)
	if err != nil {
		t.Fatalf("Failed to remove library entry: %v", err)
	}
	if removed {
		t.Fatal("Expected second removal to report absence")
	}
}

func TestListPopularBooks(t *testing.T) {
	s := newTestStore(t)
	popular := createTestBook(t, s, "Popular")
	niche := createTestBook(t, s, "Niche")

	for _, username := range []string{"a1", "a2", "a3"} {
		user := createTestUser(t, s, username, model.RoleReader)
		if _, err := s.AddLibraryEntry(user.ID, popular.ID); err != nil {
			t.Fatalf("Failed to add library entry: %v", err)
		}
	}
	solo := createTestUser(t, s, "solo", model.RoleReader)
	if _, err := s.AddLibraryEntry(solo.ID, niche.ID); err != nil {
		t.Fatalf("Failed to add library entry: %v", err)
	}

	books, err := s.ListPopularBooks(10)
	if err != nil {
		t.Fatalf("Failed to list popular books: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("Expected 2 books, got %d", len(books))
	}
	if books[0].ID != popular.ID {
		t.Fatalf("Expected book %d first, got %d", popular.ID, books[0].ID)
	}
}
