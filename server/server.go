package server // import "github.com/soundbound/soundbound-server/server"

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	v1 "github.com/soundbound/soundbound-server/api/v1"
	"github.com/soundbound/soundbound-server/config"
	"github.com/soundbound/soundbound-server/http/response"
	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/metadata"
	"github.com/soundbound/soundbound-server/store"
	"github.com/soundbound/soundbound-server/version"
	"go.uber.org/zap"
)

// StartServer starts the HTTP server and blocks until the context is
// canceled, then shuts the listener down gracefully.
func StartServer(ctx context.Context, store *store.Store) error {
	listenAddr := fmt.Sprintf("%s:%d", config.Opts.Host, config.Opts.Port)

	bookFetcher := metadata.NewOpenLibraryClient(config.Opts.OpenLibraryURL)
	trackFetcher := metadata.NewSpotifyClient(
		config.Opts.SpotifyAPIURL,
		config.Opts.SpotifyTokenURL,
		config.Opts.SpotifyClientID,
		config.Opts.SpotifyClientSecret,
	)

	server := &http.Server{
		Addr:         listenAddr,
		Handler:      setupHandler(store, bookFetcher, trackFetcher),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("listen_addr", listenAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	}
}

func setupHandler(store *store.Store, bookFetcher metadata.BookFetcher, trackFetcher metadata.TrackFetcher) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			response.ServerError(w, r, err)
			return
		}
		response.OK(w, r, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, r, map[string]string{"version": version.GetCurrentVersion()})
	}).Methods(http.MethodGet)

	v1.Server(router, store, bookFetcher, trackFetcher)

	return router
}
