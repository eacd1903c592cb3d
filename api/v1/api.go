package v1

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/metadata"
	"github.com/soundbound/soundbound-server/middleware"
	"github.com/soundbound/soundbound-server/store"
)

type Handler struct {
	store        *store.Store
	bookFetcher  metadata.BookFetcher
	trackFetcher metadata.TrackFetcher
	router       *mux.Router
}

func Server(router *mux.Router, store *store.Store, bookFetcher metadata.BookFetcher, trackFetcher metadata.TrackFetcher) {
	handler := &Handler{
		store:        store,
		bookFetcher:  bookFetcher,
		trackFetcher: trackFetcher,
		router:       router,
	}

	sr := router.PathPrefix("/api/v1").Subrouter()
	middleware := middleware.NewMiddleware(handler.store)
	sr.Use(middleware.HandleCORS)

	sSetting, err := store.GetOrUpsetSystemSecuritySetting()
	if err != nil {
		log.Logger.Error("Error getting security setting", zap.Error(err))
		os.Exit(1)
	}
	jwtSecret := sSetting.JWTSecret
	// Add authentication middleware
	sr.Use(NewAuthInterceptor(store, jwtSecret).AuthenticationInterceptor)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/auth/signup", handler.signUp).Methods(http.MethodPost).Name("auth.signup")
	sr.HandleFunc("/auth/login", handler.logIn).Methods(http.MethodPost).Name("auth.login")
	sr.HandleFunc("/auth/logout", handler.logOut).Methods(http.MethodPost).Name("auth.logout")
	sr.HandleFunc("/auth/me", handler.getMe).Methods(http.MethodGet).Name("auth.me")

	sr.HandleFunc("/users/me", handler.getMe).Methods(http.MethodGet).Name("users.me")
	sr.HandleFunc("/users/me", handler.updateMe).Methods(http.MethodPut).Name("users.update")
	sr.HandleFunc("/users/authors", handler.listAuthors).Methods(http.MethodGet).Name("users.authors")

	sr.HandleFunc("/users/me/library", handler.listLibrary).Methods(http.MethodGet).Name("library.list")
	sr.HandleFunc("/users/me/library", handler.addLibraryBook).Methods(http.MethodPost).Name("library.add")
	sr.HandleFunc("/users/me/library/{bookID}", handler.removeLibraryBook).Methods(http.MethodDelete).Name("library.remove")

	sr.HandleFunc("/users/apply-author", handler.applyForAuthor).Methods(http.MethodPost).Name("author.apply")
	sr.HandleFunc("/users/me/applications", handler.listMyApplications).Methods(http.MethodGet).Name("author.applications.me")
	sr.HandleFunc("/users/author-applications", handler.listApplications).Methods(http.MethodGet).Name("admin.applications.list")
	sr.HandleFunc("/users/author-applications/pending", handler.listPendingApplications).Methods(http.MethodGet).Name("admin.applications.pending")
	sr.HandleFunc("/users/author-applications/{id}", handler.getApplication).Methods(http.MethodGet).Name("admin.applications.get")
	sr.HandleFunc("/users/{userID}/approve-author", handler.approveApplication).Methods(http.MethodPut).Name("admin.applications.approve")
	sr.HandleFunc("/users/{userID}/reject-author", handler.rejectApplication).Methods(http.MethodPut).Name("admin.applications.reject")
	sr.HandleFunc("/users/{id}", handler.getUser).Methods(http.MethodGet).Name("users.get")

	sr.HandleFunc("/books/search", handler.searchBooks).Methods(http.MethodGet).Name("books.search")
	sr.HandleFunc("/books/popular", handler.listPopularBooks).Methods(http.MethodGet).Name("books.popular")
	sr.HandleFunc("/books/import", handler.importBook).Methods(http.MethodPost).Name("books.import")
	sr.HandleFunc("/books/{id}", handler.getBook).Methods(http.MethodGet).Name("books.get")
	sr.HandleFunc("/books/{id}/similar", handler.listSimilarBooks).Methods(http.MethodGet).Name("books.similar")

	sr.HandleFunc("/playlists", handler.createPlaylist).Methods(http.MethodPost).Name("playlists.create")
	sr.HandleFunc("/playlists/me", handler.listMyPlaylists).Methods(http.MethodGet).Name("playlists.me")
	sr.HandleFunc("/playlists/author-reco", handler.listAuthorRecoPlaylists).Methods(http.MethodGet).Name("playlists.authorreco")
	sr.HandleFunc("/playlists/{id}", handler.getPlaylist).Methods(http.MethodGet).Name("playlists.get")
	sr.HandleFunc("/playlists/{id}", handler.updatePlaylist).Methods(http.MethodPut).Name("playlists.update")
	sr.HandleFunc("/playlists/{id}", handler.deletePlaylist).Methods(http.MethodDelete).Name("playlists.delete")
	sr.HandleFunc("/playlists/{id}/songs", handler.addPlaylistSong).Methods(http.MethodPost).Name("playlists.songs.add")
	sr.HandleFunc("/playlists/{id}/songs/{songID}", handler.removePlaylistSong).Methods(http.MethodDelete).Name("playlists.songs.remove")
	sr.HandleFunc("/playlists/{id}/tags", handler.addPlaylistTag).Methods(http.MethodPost).Name("playlists.tags.add")
	sr.HandleFunc("/playlists/{id}/tags/{tagID}", handler.removePlaylistTag).Methods(http.MethodDelete).Name("playlists.tags.remove")
	sr.HandleFunc("/playlists/{id}/listen", handler.listenPlaylist).Methods(http.MethodPost).Name("playlists.listen")

	sr.HandleFunc("/tags", handler.listTags).Methods(http.MethodGet).Name("tags.list")
	sr.HandleFunc("/tags", handler.createTag).Methods(http.MethodPost).Name("tags.create")
}
