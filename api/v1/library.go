package v1

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/soundbound/soundbound-server/http/request"
	"github.com/soundbound/soundbound-server/http/response"
	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/model"
)

func (h *Handler) listLibrary(w http.ResponseWriter, r *http.Request) {
	books, err := h.store.ListLibraryBooks(request.UserID(r))
	if err != nil {
		log.Error("Failed to list library", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if books == nil {
		books = []*model.Book{}
	}
	response.OK(w, r, books)
}

func (h *Handler) addLibraryBook(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	add := &model.LibraryAddRequest{}
	if err := json.NewDecoder(r.Body).Decode(&add); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	book, err := h.store.GetBook(&model.FindBook{ID: &add.BookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	exists, err := h.store.HasLibraryEntry(userID, add.BookID)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if exists {
		response.Conflict(w, r, errors.New("book already in library"))
		return
	}

	entry, err := h.store.AddLibraryEntry(userID, add.BookID)
	if err != nil {
		log.Error("Failed to add library entry", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, entry)
}

func (h *Handler) removeLibraryBook(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	bookID := request.RouteInt32Param(r, "bookID")

	removed, err := h.store.RemoveLibraryEntry(userID, bookID)
	if err != nil {
		log.Error("Failed to remove library entry", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if !removed {
		response.NotFound(w, r)
		return
	}
	response.NoContent(w, r)
}
