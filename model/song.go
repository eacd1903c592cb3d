package model

type Song struct {
	ID int32 `json:"id"`

	CreatedTs int64 `json:"created_ts"`

	SpotifyID  string   `json:"spotify_id"`
	Title      string   `json:"title"`
	Artists    []string `json:"artists"`
	Album      string   `json:"album"`
	PreviewURL string   `json:"preview_url"`
	// AudioFeatures is the raw feature document from the catalog, kept opaque.
	AudioFeatures string   `json:"audio_features"`
	Genres        []string `json:"genres"`
	Source        string   `json:"source"`
}

type FindSong struct {
	ID        *int32  `json:"id"`
	SpotifyID *string `json:"spotify_id"`

	Limit *int `json:"limit"`
}
