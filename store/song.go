package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/soundbound/soundbound-server/model"
)

func (s *Store) GetSong(find *model.FindSong) (*model.Song, error) {
	list, err := s.ListSongs(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListSongs(find *model.FindSong) ([]*model.Song, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.SpotifyID; v != nil {
		where, args = append(where, "spotify_id = ?"), append(args, *v)
	}

	query := `
		SELECT
			id,
			created_ts,
			spotify_id,
			title,
			artists,
			album,
			preview_url,
			audio_features,
			genres,
			source
		FROM song
		WHERE ` + strings.Join(where, " AND ")
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Song, 0)
	for rows.Next() {
		var song model.Song
		var artists, genres string
		if err := rows.Scan(
			&song.ID,
			&song.CreatedTs,
			&song.SpotifyID,
			&song.Title,
			&artists,
			&song.Album,
			&song.PreviewURL,
			&song.AudioFeatures,
			&genres,
			&song.Source,
		); err != nil {
			return nil, err
		}
		song.Artists = unmarshalList(artists)
		song.Genres = unmarshalList(genres)
		list = append(list, &song)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateSong(create *model.Song) (*model.Song, error) {
	if create.Source == "" {
		create.Source = "spotify"
	}
	if create.AudioFeatures == "" {
		create.AudioFeatures = "{}"
	}
	stmt := `
		INSERT INTO song (spotify_id, title, artists, album, preview_url, audio_features, genres, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_ts`
	args := []any{
		create.SpotifyID,
		create.Title,
		marshalList(create.Artists),
		create.Album,
		create.PreviewURL,
		create.AudioFeatures,
		marshalList(create.Genres),
		create.Source,
	}

	song := *create
	if err := s.db.QueryRow(stmt, args...).Scan(&song.ID, &song.CreatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to create song")
	}
	return &song, nil
}
