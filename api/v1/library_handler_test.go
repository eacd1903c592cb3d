package v1

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundbound/soundbound-server/model"
)

func TestLibraryFlow(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "frodo", model.RoleReader)
	book := env.createBook(t, "The Hobbit", nil)
	token := env.token(t, user)

	resp := env.do(t, http.MethodPost, "/api/v1/users/me/library", token, map[string]any{"book_id": book.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Adding the same book twice is a conflict.
	resp = env.do(t, http.MethodPost, "/api/v1/users/me/library", token, map[string]any{"book_id": book.ID})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Unknown books cannot be added.
	resp = env.do(t, http.MethodPost, "/api/v1/users/me/library", token, map[string]any{"book_id": 9999})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/users/me/library", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	books := decodeBody[[]*model.Book](t, resp)
	require.Len(t, books, 1)

	removePath := fmt.Sprintf("/api/v1/users/me/library/%d", book.ID)
	resp = env.do(t, http.MethodDelete, removePath, token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, removePath, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
