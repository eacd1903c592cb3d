package model

type Playlist struct {
	ID int32 `json:"id"`

	CreatedTs int64 `json:"created_ts"`
	UpdatedTs int64 `json:"updated_ts"`

	UserID       int32  `json:"user_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	IsPublic     bool   `json:"is_public"`
	IsAuthorReco bool   `json:"is_author_reco"`

	// BookID is the book this playlist is built around. Every playlist
	// references exactly one book through the playlist_book link.
	BookID int32 `json:"book_id"`
}

type FindPlaylist struct {
	ID           *int32 `json:"id"`
	UserID       *int32 `json:"user_id"`
	BookID       *int32 `json:"book_id"`
	IsPublic     *bool  `json:"is_public"`
	IsAuthorReco *bool  `json:"is_author_reco"`

	Limit *int `json:"limit"`
}

// PlaylistSong links a song into a playlist. The link carries ordering, so it
// is a first-class row with its own id rather than a bare composite key.
type PlaylistSong struct {
	ID         int32 `json:"id"`
	PlaylistID int32 `json:"playlist_id"`
	SongID     int32 `json:"song_id"`
	OrderIndex int32 `json:"order_index"`
}

type PlaylistTag struct {
	ID         int32 `json:"id"`
	PlaylistID int32 `json:"playlist_id"`
	TagID      int32 `json:"tag_id"`
}

type PlaylistCreateRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	IsAuthorReco bool   `json:"is_author_reco"`

	// Exactly one of BookID or the custom pair must be provided.
	BookID            *int32 `json:"book_id"`
	CustomBookTitle   string `json:"custom_book_title"`
	CustomAuthorName  string `json:"custom_author_name"`
	CustomPublishYear int32  `json:"custom_publish_year"`
}

type PlaylistUpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	IsAuthorReco *bool   `json:"is_author_reco"`
}

type PlaylistSongRequest struct {
	SpotifyID string `json:"spotify_id"`
}

type PlaylistTagRequest struct {
	TagID int32 `json:"tag_id"`
}

type ListenRequest struct {
	BookID int32 `json:"book_id"`
}

// ListenResult reports the outcome of cloning an author recommendation.
type ListenResult struct {
	PlaylistID       int32 `json:"playlist_id"`
	SourcePlaylistID int32 `json:"source_playlist_id"`
	// Cloned is false when the caller already owned a copy.
	Cloned bool `json:"cloned"`
}

type UpdatePlaylist struct {
	ID int32

	Title        *string
	Description  *string
	IsPublic     *bool
	IsAuthorReco *bool
}
