package store

import (
	"github.com/pkg/errors"

	"github.com/soundbound/soundbound-server/model"
)

func (s *Store) HasLibraryEntry(userID, bookID int32) (bool, error) {
	var count int
	stmt := "SELECT COUNT(1) FROM user_library WHERE user_id = ? AND book_id = ?"
	if err := s.db.QueryRow(stmt, userID, bookID).Scan(&count); err != nil {
		return false, errors.Wrap(err, "failed to check library entry")
	}
	return count > 0, nil
}

func (s *Store) AddLibraryEntry(userID, bookID int32) (*model.LibraryEntry, error) {
	stmt := `
		INSERT INTO user_library (user_id, book_id)
		VALUES (?, ?)
		RETURNING id, created_ts`
	entry := &model.LibraryEntry{UserID: userID, BookID: bookID}
	if err := s.db.QueryRow(stmt, userID, bookID).Scan(&entry.ID, &entry.CreatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to add library entry")
	}
	return entry, nil
}

func (s *Store) RemoveLibraryEntry(userID, bookID int32) (bool, error) {
	result, err := s.db.Exec("DELETE FROM user_library WHERE user_id = ? AND book_id = ?", userID, bookID)
	if err != nil {
		return false, errors.Wrap(err, "failed to remove library entry")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListLibraryBooks resolves a user's library to full book records in
// membership order.
func (s *Store) ListLibraryBooks(userID int32) ([]*model.Book, error) {
	query := `
		SELECT
			b.id,
			b.created_ts,
			b.updated_ts,
			b.title,
			b.description,
			b.cover_url,
			b.source,
			COALESCE(b.openlib_work_key, ''),
			b.author_names,
			b.author_keys,
			b.isbn_list,
			b.subjects,
			b.first_publish_year
		FROM user_library ul
		JOIN book b ON b.id = ul.book_id
		WHERE ul.user_id = ?
		ORDER BY ul.id ASC`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, book)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
