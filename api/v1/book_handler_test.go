package v1

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundbound/soundbound-server/metadata"
	"github.com/soundbound/soundbound-server/model"
)

func TestImportBookIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "frodo", model.RoleReader)
	token := env.token(t, user)

	env.bookFetcher.works["/works/OL1W"] = &metadata.BookMetadata{
		Title:            "The Hobbit",
		AuthorNames:      []string{"J.R.R. Tolkien"},
		AuthorKeys:       []string{"/authors/OL1A"},
		ISBNList:         []string{"9780048231887"},
		FirstPublishYear: 1937,
	}

	resp := env.do(t, http.MethodPost, "/api/v1/books/import", token, map[string]string{
		"openlib_work_key": "/works/OL1W",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	book := decodeBody[model.Book](t, resp)
	require.Equal(t, "The Hobbit", book.Title)
	require.Equal(t, model.BookSourceVerified, book.Source)
	require.Equal(t, int32(1937), book.FirstPublishYear)

	// Re-importing the same work returns the existing row.
	resp = env.do(t, http.MethodPost, "/api/v1/books/import", token, map[string]string{
		"openlib_work_key": "/works/OL1W",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	same := decodeBody[model.Book](t, resp)
	require.Equal(t, book.ID, same.ID)
}

func TestImportBookUpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "frodo", model.RoleReader)

	resp := env.do(t, http.MethodPost, "/api/v1/books/import", env.token(t, user), map[string]string{
		"openlib_work_key": "/works/UNKNOWN",
	})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	// Nothing was persisted.
	workKey := "/works/UNKNOWN"
	book, err := env.store.GetBook(&model.FindBook{OpenlibWorkKey: &workKey})
	require.NoError(t, err)
	require.Nil(t, book)
}

func TestSearchBooksIsPublic(t *testing.T) {
	env := newTestEnv(t)
	env.createBook(t, "The Hobbit", nil)
	env.createBook(t, "Dune", nil)

	resp := env.do(t, http.MethodGet, "/api/v1/books/search?query=hobbit", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	books := decodeBody[[]*model.Book](t, resp)
	require.Len(t, books, 1)
	require.Equal(t, "The Hobbit", books[0].Title)
}

func TestGetBookDetails(t *testing.T) {
	env := newTestEnv(t)
	book := env.createBook(t, "The Hobbit", nil)

	resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", book.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/books/99999", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImportBookSyncsSubjectTags(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "frodo", model.RoleReader)
	token := env.token(t, user)

	env.bookFetcher.works["/works/OL2W"] = &metadata.BookMetadata{
		Title:    "The Hobbit",
		Subjects: []string{"Epic Fantasy", "Dragons"},
	}

	resp := env.do(t, http.MethodPost, "/api/v1/books/import", token, map[string]string{
		"openlib_work_key": "/works/OL2W",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/tags", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tags := decodeBody[[]*model.Tag](t, resp)
	require.Len(t, tags, 2)

	byName := map[string]*model.Tag{}
	for _, tag := range tags {
		byName[tag.NormalizedName] = tag
	}
	require.Contains(t, byName, "epic-fantasy")
	require.Contains(t, byName, "dragons")
	require.Equal(t, model.TagSourceOpenlib, byName["epic-fantasy"].Source)
	require.False(t, byName["epic-fantasy"].IsOfficial)
}

func TestSimilarBooksBySubjectOverlap(t *testing.T) {
	env := newTestEnv(t)
	hobbit, err := env.store.CreateBook(&model.Book{
		Title:          "The Hobbit",
		Source:         model.BookSourceVerified,
		OpenlibWorkKey: "/works/hobbit",
		Subjects:       []string{"Fantasy", "Dragons"},
	})
	require.NoError(t, err)
	lotr, err := env.store.CreateBook(&model.Book{
		Title:          "The Lord of the Rings",
		Source:         model.BookSourceVerified,
		OpenlibWorkKey: "/works/lotr",
		Subjects:       []string{"Fantasy"},
	})
	require.NoError(t, err)
	_, err = env.store.CreateBook(&model.Book{
		Title:          "Dune",
		Source:         model.BookSourceVerified,
		OpenlibWorkKey: "/works/dune",
		Subjects:       []string{"Science Fiction"},
	})
	require.NoError(t, err)

	// Anonymous access, like the rest of the book catalog.
	resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d/similar", hobbit.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	books := decodeBody[[]*model.Book](t, resp)
	require.Len(t, books, 1)
	require.Equal(t, lotr.ID, books[0].ID)

	resp = env.do(t, http.MethodGet, "/api/v1/books/99999/similar", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
