package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/soundbound/soundbound-server/model"
)

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.OpenlibWorkKey; v != nil {
		where, args = append(where, "openlib_work_key = ?"), append(args, *v)
	}
	if v := find.Source; v != nil {
		where, args = append(where, "source = ?"), append(args, *v)
	}
	if v := find.Query; v != nil && *v != "" {
		pattern := "%" + strings.ToLower(*v) + "%"
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(author_names) LIKE ? OR isbn_list LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}

	query := `
		SELECT
			id,
			created_ts,
			updated_ts,
			title,
			description,
			cover_url,
			source,
			COALESCE(openlib_work_key, ''),
			author_names,
			author_keys,
			isbn_list,
			subjects,
			first_publish_year
		FROM book
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
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

func scanBook(scan func(dest ...any) error) (*model.Book, error) {
	var book model.Book
	var authorNames, authorKeys, isbnList, subjects string
	if err := scan(
		&book.ID,
		&book.CreatedTs,
		&book.UpdatedTs,
		&book.Title,
		&book.Description,
		&book.CoverURL,
		&book.Source,
		&book.OpenlibWorkKey,
		&authorNames,
		&authorKeys,
		&isbnList,
		&subjects,
		&book.FirstPublishYear,
	); err != nil {
		return nil, err
	}
	book.AuthorNames = unmarshalList(authorNames)
	book.AuthorKeys = unmarshalList(authorKeys)
	book.ISBNList = unmarshalList(isbnList)
	book.Subjects = unmarshalList(subjects)
	return &book, nil
}

func (s *Store) CreateBook(create *model.Book) (*model.Book, error) {
	var workKey any
	if create.OpenlibWorkKey != "" {
		workKey = create.OpenlibWorkKey
	}
	stmt := `
		INSERT INTO book (title, description, cover_url, source, openlib_work_key, author_names, author_keys, isbn_list, subjects, first_publish_year)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_ts, updated_ts`
	args := []any{
		create.Title,
		create.Description,
		create.CoverURL,
		create.Source,
		workKey,
		marshalList(create.AuthorNames),
		marshalList(create.AuthorKeys),
		marshalList(create.ISBNList),
		marshalList(create.Subjects),
		create.FirstPublishYear,
	}

	book := *create
	if err := s.db.QueryRow(stmt, args...).Scan(
		&book.ID,
		&book.CreatedTs,
		&book.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create book")
	}
	return &book, nil
}

// ListSimilarBooks returns books sharing at least one subject with the given
// book, most overlapping first. A book without subjects has no similars.
func (s *Store) ListSimilarBooks(bookID int32, limit int) ([]*model.Book, error) {
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
		FROM book b
		JOIN json_each(b.subjects) bs
		JOIN json_each((SELECT subjects FROM book WHERE id = ?)) src
			ON src.value = bs.value
		WHERE b.id != ?
		GROUP BY b.id
		ORDER BY COUNT(*) DESC, b.created_ts DESC
		LIMIT ?`

	rows, err := s.db.Query(query, bookID, bookID, limit)
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

// ListPopularBooks returns books ranked by how many libraries contain them.
func (s *Store) ListPopularBooks(limit int) ([]*model.Book, error) {
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
		FROM book b
		JOIN user_library ul ON ul.book_id = b.id
		GROUP BY b.id
		ORDER BY COUNT(ul.id) DESC
		LIMIT ?`

	rows, err := s.db.Query(query, limit)
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
