package store

import (
	"testing"

	"github.com/soundbound/soundbound-server/model"
)

func createSubjectBook(t *testing.T, s *Store, title string, subjects []string) *model.Book {
	t.Helper()
	book, err := s.CreateBook(&model.Book{
		Title:          title,
		Source:         model.BookSourceVerified,
		OpenlibWorkKey: "/works/" + title,
		Subjects:       subjects,
	})
	if err != nil {
		t.Fatalf("Failed to create book %q: %v", title, err)
	}
	return book
}

func TestListSimilarBooks(t *testing.T) {
	s := newTestStore(t)

	hobbit := createSubjectBook(t, s, "The Hobbit", []string{"Fantasy", "Dragons", "Adventure"})
	lotr := createSubjectBook(t, s, "The Lord of the Rings", []string{"Fantasy", "Adventure"})
	eragon := createSubjectBook(t, s, "Eragon", []string{"Dragons"})
	createSubjectBook(t, s, "Dune", []string{"Science Fiction"})

	similar, err := s.ListSimilarBooks(hobbit.ID, 20)
	if err != nil {
		t.Fatalf("Failed to list similar books: %v", err)
	}
	if len(similar) != 2 {
		t.Fatalf("Expected 2 similar books, got %d", len(similar))
	}
	// Two shared subjects outrank one.
	if similar[0].ID != lotr.ID {
		t.Errorf("Expected %q first, got %q", "The Lord of the Rings", similar[0].Title)
	}
	if similar[1].ID != eragon.ID {
		t.Errorf("Expected %q second, got %q", "Eragon", similar[1].Title)
	}
	for _, book := range similar {
		if book.ID == hobbit.ID {
			t.Error("A book must not be similar to itself")
		}
	}
}

func TestListSimilarBooksWithoutSubjects(t *testing.T) {
	s := newTestStore(t)

	plain := createSubjectBook(t, s, "Untagged", nil)
	createSubjectBook(t, s, "Tagged", []string{"Fantasy"})

	similar, err := s.ListSimilarBooks(plain.ID, 20)
	if err != nil {
		t.Fatalf("Failed to list similar books: %v", err)
	}
	if len(similar) != 0 {
		t.Errorf("Expected no similar books, got %d", len(similar))
	}
}
