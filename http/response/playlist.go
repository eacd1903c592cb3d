package response

import (
	"github.com/soundbound/soundbound-server/model"
)

// PlaylistDetail is a playlist with its book, songs and tags resolved.
type PlaylistDetail struct {
	*model.Playlist

	Book  *model.Book   `json:"book,omitempty"`
	Songs []*model.Song `json:"songs"`
	Tags  []*model.Tag  `json:"tags"`
}

func PlaylistDetailResponse(playlist *model.Playlist, book *model.Book, songs []*model.Song, tags []*model.Tag) *PlaylistDetail {
	if songs == nil {
		songs = []*model.Song{}
	}
	if tags == nil {
		tags = []*model.Tag{}
	}
	return &PlaylistDetail{
		Playlist: playlist,
		Book:     book,
		Songs:    songs,
		Tags:     tags,
	}
}

func PlaylistListResponse(playlists []*model.Playlist) []*model.Playlist {
	if playlists == nil {
		return []*model.Playlist{}
	}
	return playlists
}
