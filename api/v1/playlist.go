package v1

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/soundbound/soundbound-server/http/request"
	"github.com/soundbound/soundbound-server/http/response"
	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/metadata"
	"github.com/soundbound/soundbound-server/model"
	"github.com/soundbound/soundbound-server/store"
	"github.com/soundbound/soundbound-server/validator"
)

func (h *Handler) createPlaylist(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	create := &model.PlaylistCreateRequest{}
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	if err := validator.ValidatePlaylistCreateRequest(create); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	var book *model.Book
	if create.BookID != nil {
		existing, err := h.store.GetBook(&model.FindBook{ID: create.BookID})
		if err != nil {
			response.ServerError(w, r, err)
			return
		}
		if existing == nil {
			response.NotFound(w, r)
			return
		}
		book = existing

		if create.IsAuthorReco {
			user, err := h.store.GetUser(&model.FindUser{ID: &userID})
			if err != nil || user == nil {
				response.ServerError(w, r, errors.New("failed to load principal"))
				return
			}
			// Authors can only publish recommendations for their own books.
			if user.Role != model.RoleAuthor || !keysIntersect(user.AuthorKeys, book.AuthorKeys) {
				response.Forbidden(w, r)
				return
			}
		} else {
			inLibrary, err := h.store.HasLibraryEntry(userID, book.ID)
			if err != nil {
				response.ServerError(w, r, err)
				return
			}
			if !inLibrary {
				log.Debug("Playlist rejected, book not in library",
					zap.Int32("user_id", userID), zap.Int32("book_id", book.ID))
				response.Forbidden(w, r)
				return
			}
		}
	} else {
		// Custom books never carry author keys, so they cannot back an
		// author recommendation.
		if create.IsAuthorReco {
			response.Forbidden(w, r)
			return
		}
		newBook, err := h.store.CreateBook(&model.Book{
			Title:            strings.TrimSpace(create.CustomBookTitle),
			Source:           model.BookSourceCustom,
			AuthorNames:      []string{strings.TrimSpace(create.CustomAuthorName)},
			FirstPublishYear: create.CustomPublishYear,
		})
		if err != nil {
			log.Error("Failed to create custom book", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
		if _, err := h.store.AddLibraryEntry(userID, newBook.ID); err != nil {
			log.Error("Failed to add custom book to library", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
		book = newBook
	}

	// One playlist of each kind per user and book.
	duplicates, err := h.store.ListPlaylists(&model.FindPlaylist{
		UserID:       &userID,
		BookID:       &book.ID,
		IsAuthorReco: &create.IsAuthorReco,
	})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if len(duplicates) > 0 {
		response.Conflict(w, r, errors.New("playlist for this book already exists"))
		return
	}

	playlist := &model.Playlist{
		UserID:       userID,
		Title:        create.Title,
		Description:  create.Description,
		IsAuthorReco: create.IsAuthorReco,
		// Visibility is derived, never caller-supplied.
		IsPublic: create.IsAuthorReco,
		BookID:   book.ID,
	}
	newPlaylist, err := h.store.CreatePlaylist(playlist)
	if err != nil {
		log.Error("Failed to create playlist", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, newPlaylist)
}

func (h *Handler) getPlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID := request.RouteInt32Param(r, "id")
	playlist, err := h.store.GetPlaylist(&model.FindPlaylist{ID: &playlistID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if playlist == nil {
		response.NotFound(w, r)
		return
	}
	if !playlist.IsPublic && playlist.UserID != request.UserID(r) {
		response.Forbidden(w, r)
		return
	}

	book, err := h.store.GetBook(&model.FindBook{ID: &playlist.BookID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	songs, err := h.store.ListPlaylistSongs(playlist.ID)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	tags, err := h.store.ListPlaylistTags(playlist.ID)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, response.PlaylistDetailResponse(playlist, book, songs, tags))
}

func (h *Handler) listMyPlaylists(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	playlists, err := h.store.ListPlaylists(&model.FindPlaylist{UserID: &userID})
	if err != nil {
		log.Error("Failed to list playlists", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, response.PlaylistListResponse(playlists))
}

func (h *Handler) listAuthorRecoPlaylists(w http.ResponseWriter, r *http.Request) {
	isAuthorReco := true
	isPublic := true
	find := &model.FindPlaylist{IsAuthorReco: &isAuthorReco, IsPublic: &isPublic}
	if bookID := int32(request.QueryIntParam(r, "book_id", 0)); bookID > 0 {
		find.BookID = &bookID
	}
	playlists, err := h.store.ListPlaylists(find)
	if err != nil {
		log.Error("Failed to list author recommendations", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, response.PlaylistListResponse(playlists))
}

func (h *Handler) updatePlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	patch := &model.PlaylistUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	update := &model.UpdatePlaylist{ID: playlist.ID}
	update.Title = patch.Title
	update.Description = patch.Description
	if patch.IsAuthorReco != nil {
		if request.UserRole(r) != model.RoleAuthor {
			response.Forbidden(w, r)
			return
		}
		// Visibility always follows the recommendation flag.
		update.IsAuthorReco = patch.IsAuthorReco
		update.IsPublic = patch.IsAuthorReco
	}

	updated, err := h.store.UpdatePlaylist(update)
	if err != nil {
		log.Error("Failed to update playlist", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, updated)
}

func (h *Handler) deletePlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}
	if err := h.store.DeletePlaylist(playlist.ID); err != nil {
		log.Error("Failed to delete playlist", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

func (h *Handler) addPlaylistSong(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	songRequest := &model.PlaylistSongRequest{}
	if err := json.NewDecoder(r.Body).Decode(&songRequest); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	spotifyID := strings.TrimSpace(songRequest.SpotifyID)
	if spotifyID == "" {
		response.BadRequest(w, r, errors.New("spotify id is empty"))
		return
	}

	song, err := h.resolveSong(r, spotifyID)
	if err != nil {
		if errors.Is(err, metadata.ErrNotAvailable) {
			log.Warn("Track metadata not available", zap.String("spotify_id", spotifyID), zap.Error(err))
			response.BadGateway(w, r, err)
			return
		}
		log.Error("Failed to resolve song", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	existing, err := h.store.GetPlaylistSong(playlist.ID, song.ID)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if existing != nil {
		response.Conflict(w, r, errors.New("song already in playlist"))
		return
	}

	link, err := h.store.AddPlaylistSong(playlist.ID, song.ID)
	if err != nil {
		log.Error("Failed to add song to playlist", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, link)
}

// resolveSong returns the local song for a spotify id, importing it from the
// external catalog on first sight.
func (h *Handler) resolveSong(r *http.Request, spotifyID string) (*model.Song, error) {
	song, err := h.store.GetSong(&model.FindSong{SpotifyID: &spotifyID})
	if err != nil {
		return nil, err
	}
	if song != nil {
		return song, nil
	}

	ctx := r.Context()
	track, err := h.trackFetcher.FetchTrack(ctx, spotifyID)
	if err != nil {
		return nil, err
	}
	features, err := h.trackFetcher.FetchAudioFeatures(ctx, spotifyID)
	if err != nil {
		return nil, err
	}
	genres, err := h.trackFetcher.FetchGenres(ctx, track.ArtistIDs)
	if err != nil {
		return nil, err
	}

	return h.store.CreateSong(&model.Song{
		SpotifyID:     spotifyID,
		Title:         track.Title,
		Artists:       track.Artists,
		Album:         track.Album,
		PreviewURL:    track.PreviewURL,
		AudioFeatures: features,
		Genres:        genres,
	})
}

func (h *Handler) removePlaylistSong(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}
	songID := request.RouteInt32Param(r, "songID")
	removed, err := h.store.RemovePlaylistSong(playlist.ID, songID)
	if err != nil {
		log.Error("Failed to remove song from playlist", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if !removed {
		response.NotFound(w, r)
		return
	}
	response.NoContent(w, r)
}

func (h *Handler) addPlaylistTag(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	tagRequest := &model.PlaylistTagRequest{}
	if err := json.NewDecoder(r.Body).Decode(&tagRequest); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	tag, err := h.store.GetTag(&model.FindTag{ID: &tagRequest.TagID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if tag == nil {
		response.NotFound(w, r)
		return
	}

	// Tagging is idempotent, re-tagging is not an error.
	existing, err := h.store.GetPlaylistTag(playlist.ID, tag.ID)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if existing != nil {
		response.OK(w, r, existing)
		return
	}

	link, err := h.store.AddPlaylistTag(playlist.ID, tag.ID)
	if err != nil {
		log.Error("Failed to tag playlist", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, link)
}

func (h *Handler) removePlaylistTag(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}
	tagID := request.RouteInt32Param(r, "tagID")
	removed, err := h.store.RemovePlaylistTag(playlist.ID, tagID)
	if err != nil {
		log.Error("Failed to untag playlist", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if !removed {
		response.NotFound(w, r)
		return
	}
	response.NoContent(w, r)
}

// listenPlaylist clones an author recommendation into the caller's account,
// adding the book to their library on the way. The whole thing is one
// transaction in the store.
func (h *Handler) listenPlaylist(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	sourcePlaylistID := request.RouteInt32Param(r, "id")

	listen := &model.ListenRequest{}
	if err := json.NewDecoder(r.Body).Decode(&listen); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	book, err := h.store.GetBook(&model.FindBook{ID: &listen.BookID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	result, err := h.store.ClonePlaylist(userID, listen.BookID, sourcePlaylistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(w, r)
			return
		}
		log.Error("Failed to clone playlist", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	if result.Cloned {
		response.Created(w, r, result)
		return
	}
	response.OK(w, r, result)
}

// ownedPlaylist loads the playlist from the route and enforces ownership.
// It writes the error response itself when the check fails.
func (h *Handler) ownedPlaylist(w http.ResponseWriter, r *http.Request) (*model.Playlist, bool) {
	playlistID := request.RouteInt32Param(r, "id")
	playlist, err := h.store.GetPlaylist(&model.FindPlaylist{ID: &playlistID})
	if err != nil {
		response.ServerError(w, r, err)
		return nil, false
	}
	if playlist == nil {
		response.NotFound(w, r)
		return nil, false
	}
	if playlist.UserID != request.UserID(r) {
		response.Forbidden(w, r)
		return nil, false
	}
	return playlist, true
}

func keysIntersect(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x != "" && x == y {
				return true
			}
		}
	}
	return false
}
