package v1

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/soundbound/soundbound-server/config"
	"github.com/soundbound/soundbound-server/http/request"
	"github.com/soundbound/soundbound-server/http/response"
	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/metadata"
	"github.com/soundbound/soundbound-server/model"
)

func (h *Handler) searchBooks(w http.ResponseWriter, r *http.Request) {
	find := &model.FindBook{}
	if query := strings.TrimSpace(request.QueryStringParam(r, "query", "")); query != "" {
		find.Query = &query
	}
	limit := request.QueryIntParam(r, "limit", searchLimit())
	if limit > searchLimit() {
		limit = searchLimit()
	}
	find.Limit = &limit

	books, err := h.store.ListBooks(find)
	if err != nil {
		log.Error("Failed to search books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if books == nil {
		books = []*model.Book{}
	}
	response.OK(w, r, books)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteInt32Param(r, "id")
	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) listPopularBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.store.ListPopularBooks(popularLimit())
	if err != nil {
		log.Error("Failed to list popular books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if books == nil {
		books = []*model.Book{}
	}
	response.OK(w, r, books)
}

// importBook pulls a work from the external catalog into the local book
// table. Importing the same work twice returns the existing row.
func (h *Handler) importBook(w http.ResponseWriter, r *http.Request) {
	importRequest := &model.BookImportRequest{}
	if err := json.NewDecoder(r.Body).Decode(&importRequest); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	workKey := strings.TrimSpace(importRequest.OpenlibWorkKey)
	if workKey == "" {
		response.BadRequest(w, r, errors.New("work key is empty"))
		return
	}

	existing, err := h.store.GetBook(&model.FindBook{OpenlibWorkKey: &workKey})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if existing != nil {
		response.OK(w, r, existing)
		return
	}

	meta, err := h.bookFetcher.FetchWork(r.Context(), workKey)
	if err != nil {
		if errors.Is(err, metadata.ErrNotAvailable) {
			log.Warn("Book metadata not available", zap.String("work_key", workKey), zap.Error(err))
			response.BadGateway(w, r, err)
			return
		}
		log.Error("Failed to fetch book metadata", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	book := &model.Book{
		Title:            meta.Title,
		Description:      meta.Description,
		CoverURL:         meta.CoverURL,
		Source:           model.BookSourceVerified,
		OpenlibWorkKey:   workKey,
		AuthorNames:      meta.AuthorNames,
		AuthorKeys:       meta.AuthorKeys,
		ISBNList:         meta.ISBNList,
		Subjects:         meta.Subjects,
		FirstPublishYear: meta.FirstPublishYear,
	}
	newBook, err := h.store.CreateBook(book)
	if err != nil {
		log.Error("Failed to create book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	// Subjects feed the shared tag vocabulary; the book import itself
	// succeeds even when the sync does not.
	if err := h.store.SyncBookSubjectsToTags(newBook); err != nil {
		log.Warn("Failed to sync book subjects to tags",
			zap.Int32("book_id", newBook.ID), zap.Error(err))
	}

	response.Created(w, r, newBook)
}

// listSimilarBooks matches books by subject overlap.
func (h *Handler) listSimilarBooks(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteInt32Param(r, "id")

	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	books, err := h.store.ListSimilarBooks(bookID, popularLimit())
	if err != nil {
		log.Error("Failed to list similar books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func searchLimit() int {
	if config.Opts != nil && config.Opts.SearchLimit > 0 {
		return config.Opts.SearchLimit
	}
	return 50
}

func popularLimit() int {
	if config.Opts != nil && config.Opts.PopularLimit > 0 {
		return config.Opts.PopularLimit
	}
	return 20
}
