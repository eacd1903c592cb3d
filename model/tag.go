package model

type Tag struct {
	ID int32 `json:"id"`

	CreatedTs int64 `json:"created_ts"`

	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name"`
	Category       string `json:"category"`
	Source         string `json:"source"`
	IsOfficial     bool   `json:"is_official"`
}

const (
	TagSourceOfficial = "official"
	TagSourceOpenlib  = "openlib"
	TagSourceSpotify  = "spotify"
)

type FindTag struct {
	ID             *int32  `json:"id"`
	Name           *string `json:"name"`
	NormalizedName *string `json:"normalized_name"`
	Category       *string `json:"category"`
	BookID         *int32  `json:"book_id"`

	Limit *int `json:"limit"`
}

type TagCreateRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}
