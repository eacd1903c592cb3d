package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/soundbound/soundbound-server/model"
)

// ErrNotFound is returned by multi-step store operations when a referenced
// row is absent. Single-row getters return (nil, nil) instead.
var ErrNotFound = errors.New("not found")

func (s *Store) GetPlaylist(find *model.FindPlaylist) (*model.Playlist, error) {
	list, err := s.ListPlaylists(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListPlaylists(find *model.FindPlaylist) ([]*model.Playlist, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "p.id = ?"), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "p.user_id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "pb.book_id = ?"), append(args, *v)
	}
	if v := find.IsPublic; v != nil {
		where, args = append(where, "p.is_public = ?"), append(args, *v)
	}
	if v := find.IsAuthorReco; v != nil {
		where, args = append(where, "p.is_author_reco = ?"), append(args, *v)
	}

	query := `
		SELECT
			p.id,
			p.created_ts,
			p.updated_ts,
			p.user_id,
			p.title,
			p.description,
			p.is_public,
			p.is_author_reco,
			pb.book_id
		FROM playlist p
		JOIN playlist_book pb ON pb.playlist_id = p.id
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY p.created_ts DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Playlist, 0)
	for rows.Next() {
		var playlist model.Playlist
		if err := rows.Scan(
			&playlist.ID,
			&playlist.CreatedTs,
			&playlist.UpdatedTs,
			&playlist.UserID,
			&playlist.Title,
			&playlist.Description,
			&playlist.IsPublic,
			&playlist.IsAuthorReco,
			&playlist.BookID,
		); err != nil {
			return nil, err
		}
		list = append(list, &playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// CreatePlaylist persists a playlist together with its book link. The two
// inserts share one transaction so a playlist can never exist without its
// book.
func (s *Store) CreatePlaylist(create *model.Playlist) (*model.Playlist, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	playlist := *create
	stmt := `
		INSERT INTO playlist (user_id, title, description, is_public, is_author_reco)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_ts, updated_ts`
	if err := tx.QueryRow(stmt,
		create.UserID,
		create.Title,
		create.Description,
		create.IsPublic,
		create.IsAuthorReco,
	).Scan(&playlist.ID, &playlist.CreatedTs, &playlist.UpdatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to create playlist")
	}

	if _, err := tx.Exec(
		"INSERT INTO playlist_book (playlist_id, book_id) VALUES (?, ?)",
		playlist.ID, create.BookID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to link playlist book")
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &playlist, nil
}

func (s *Store) UpdatePlaylist(update *model.UpdatePlaylist) (*model.Playlist, error) {
	set, args := []string{"updated_ts = ?"}, []any{time.Now().Unix()}

	if v := update.Title; v != nil {
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = ?"), append(args, *v)
	}
	if v := update.IsPublic; v != nil {
		set, args = append(set, "is_public = ?"), append(args, *v)
	}
	if v := update.IsAuthorReco; v != nil {
		set, args = append(set, "is_author_reco = ?"), append(args, *v)
	}
	args = append(args, update.ID)

	stmt := "UPDATE playlist SET " + strings.Join(set, ", ") + " WHERE id = ?"
	if _, err := s.db.Exec(stmt, args...); err != nil {
		return nil, errors.Wrap(err, "failed to update playlist")
	}

	return s.GetPlaylist(&model.FindPlaylist{ID: &update.ID})
}

// DeletePlaylist removes a playlist and all of its join rows in one
// transaction so no orphaned links survive.
func (s *Store) DeletePlaylist(playlistID int32) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM playlist_song WHERE playlist_id = ?",
		"DELETE FROM playlist_tag WHERE playlist_id = ?",
		"DELETE FROM playlist_book WHERE playlist_id = ?",
		"DELETE FROM playlist WHERE id = ?",
	} {
		if _, err := tx.Exec(stmt, playlistID); err != nil {
			return errors.Wrap(err, "failed to delete playlist")
		}
	}

	return tx.Commit()
}

func (s *Store) GetPlaylistSong(playlistID, songID int32) (*model.PlaylistSong, error) {
	var link model.PlaylistSong
	stmt := `
		SELECT id, playlist_id, song_id, order_index
		FROM playlist_song
		WHERE playlist_id = ? AND song_id = ?`
	err := s.db.QueryRow(stmt, playlistID, songID).Scan(
		&link.ID, &link.PlaylistID, &link.SongID, &link.OrderIndex)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// AddPlaylistSong appends a song with the next order_index.
func (s *Store) AddPlaylistSong(playlistID, songID int32) (*model.PlaylistSong, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	link := &model.PlaylistSong{PlaylistID: playlistID, SongID: songID}
	stmt := `
		INSERT INTO playlist_song (playlist_id, song_id, order_index)
		SELECT ?, ?, COALESCE(MAX(order_index) + 1, 0)
		FROM playlist_song WHERE playlist_id = ?
		RETURNING id, order_index`
	if err := tx.QueryRow(stmt, playlistID, songID, playlistID).Scan(&link.ID, &link.OrderIndex); err != nil {
		return nil, errors.Wrap(err, "failed to add playlist song")
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *Store) RemovePlaylistSong(playlistID, songID int32) (bool, error) {
	result, err := s.db.Exec(
		"DELETE FROM playlist_song WHERE playlist_id = ? AND song_id = ?",
		playlistID, songID)
	if err != nil {
		return false, errors.Wrap(err, "failed to remove playlist song")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListPlaylistSongs returns the playlist's songs in order_index order.
func (s *Store) ListPlaylistSongs(playlistID int32) ([]*model.Song, error) {
	query := `
		SELECT
			s.id,
			s.created_ts,
			s.spotify_id,
			s.title,
			s.artists,
			s.album,
			s.preview_url,
			s.audio_features,
			s.genres,
			s.source
		FROM playlist_song ps
		JOIN song s ON s.id = ps.song_id
		WHERE ps.playlist_id = ?
		ORDER BY ps.order_index ASC`

	rows, err := s.db.Query(query, playlistID)
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

func (s *Store) GetPlaylistTag(playlistID, tagID int32) (*model.PlaylistTag, error) {
	var link model.PlaylistTag
	stmt := "SELECT id, playlist_id, tag_id FROM playlist_tag WHERE playlist_id = ? AND tag_id = ?"
	err := s.db.QueryRow(stmt, playlistID, tagID).Scan(&link.ID, &link.PlaylistID, &link.TagID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (s *Store) AddPlaylistTag(playlistID, tagID int32) (*model.PlaylistTag, error) {
	link := &model.PlaylistTag{PlaylistID: playlistID, TagID: tagID}
	stmt := "INSERT INTO playlist_tag (playlist_id, tag_id) VALUES (?, ?) RETURNING id"
	if err := s.db.QueryRow(stmt, playlistID, tagID).Scan(&link.ID); err != nil {
		return nil, errors.Wrap(err, "failed to add playlist tag")
	}
	return link, nil
}

func (s *Store) RemovePlaylistTag(playlistID, tagID int32) (bool, error) {
	result, err := s.db.Exec(
		"DELETE FROM playlist_tag WHERE playlist_id = ? AND tag_id = ?",
		playlistID, tagID)
	if err != nil {
		return false, errors.Wrap(err, "failed to remove playlist tag")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) ListPlaylistTags(playlistID int32) ([]*model.Tag, error) {
	query := `
		SELECT
			t.id,
			t.created_ts,
			t.name,
			t.normalized_name,
			t.category,
			t.source,
			t.is_official
		FROM playlist_tag pt
		JOIN tag t ON t.id = pt.tag_id
		WHERE pt.playlist_id = ?
		ORDER BY pt.id ASC`

	rows, err := s.db.Query(query, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Tag, 0)
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(
			&tag.ID,
			&tag.CreatedTs,
			&tag.Name,
			&tag.NormalizedName,
			&tag.Category,
			&tag.Source,
			&tag.IsOfficial,
		); err != nil {
			return nil, err
		}
		list = append(list, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// ClonePlaylist copies an author recommendation playlist into a private
// personal copy for the given user: playlist row, book link, every song link
// with its order_index and every tag link, all inside one transaction.
// The library add that "listening" implies is part of the same transaction.
// When the user already owns an author-reco copy for the book, the existing
// playlist is returned untouched.
func (s *Store) ClonePlaylist(userID, bookID, sourcePlaylistID int32) (*model.ListenResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT OR IGNORE INTO user_library (user_id, book_id) VALUES (?, ?)",
		userID, bookID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to add book to library")
	}

	// Idempotence: one author-reco copy per (user, book).
	var existingID int32
	err = tx.QueryRow(`
		SELECT p.id
		FROM playlist p
		JOIN playlist_book pb ON pb.playlist_id = p.id
		WHERE p.user_id = ? AND pb.book_id = ? AND p.is_author_reco = 1`,
		userID, bookID,
	).Scan(&existingID)
	if err == nil {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		return &model.ListenResult{
			PlaylistID:       existingID,
			SourcePlaylistID: sourcePlaylistID,
			Cloned:           false,
		}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "failed to check existing clone")
	}

	// The source must be an author reco linked to the submitted book; a
	// mismatched book would attach the copy to a book the source never
	// recommended for.
	var title, description string
	err = tx.QueryRow(`
		SELECT p.title, p.description
		FROM playlist p
		JOIN playlist_book pb ON pb.playlist_id = p.id
		WHERE p.id = ? AND p.is_author_reco = 1 AND pb.book_id = ?`,
		sourcePlaylistID, bookID,
	).Scan(&title, &description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrNotFound, "source playlist")
		}
		return nil, errors.Wrap(err, "failed to load source playlist")
	}

	// The copy keeps the author-reco flag but stays private: it is a
	// personal copy, not itself publishable.
	var cloneID int32
	if err := tx.QueryRow(`
		INSERT INTO playlist (user_id, title, description, is_public, is_author_reco)
		VALUES (?, ?, ?, 0, 1)
		RETURNING id`,
		userID, title, description,
	).Scan(&cloneID); err != nil {
		return nil, errors.Wrap(err, "failed to create playlist copy")
	}

	if _, err := tx.Exec(
		"INSERT INTO playlist_book (playlist_id, book_id) VALUES (?, ?)",
		cloneID, bookID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to link copied playlist book")
	}

	if _, err := tx.Exec(`
		INSERT INTO playlist_song (playlist_id, song_id, order_index)
		SELECT ?, song_id, order_index FROM playlist_song WHERE playlist_id = ?`,
		cloneID, sourcePlaylistID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to copy song links")
	}

	if _, err := tx.Exec(`
		INSERT INTO playlist_tag (playlist_id, tag_id)
		SELECT ?, tag_id FROM playlist_tag WHERE playlist_id = ?`,
		cloneID, sourcePlaylistID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to copy tag links")
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.ListenResult{
		PlaylistID:       cloneID,
		SourcePlaylistID: sourcePlaylistID,
		Cloned:           true,
	}, nil
}
