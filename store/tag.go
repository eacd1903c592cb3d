package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/soundbound/soundbound-server/model"
	"github.com/soundbound/soundbound-server/util"
)

func (s *Store) GetTag(find *model.FindTag) (*model.Tag, error) {
	list, err := s.ListTags(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListTags(find *model.FindTag) ([]*model.Tag, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "name = ?"), append(args, *v)
	}
	if v := find.NormalizedName; v != nil {
		where, args = append(where, "normalized_name = ?"), append(args, *v)
	}
	if v := find.Category; v != nil {
		where, args = append(where, "category = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where = append(where, "id IN (SELECT tag_id FROM book_tag WHERE book_id = ?)")
		args = append(args, *v)
	}

	query := `
		SELECT
			id,
			created_ts,
			name,
			normalized_name,
			category,
			source,
			is_official
		FROM tag
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY name ASC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
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

// SyncBookSubjectsToTags upserts a subject-category tag for every subject on
// the book and links it through book_tag. Existing tags are reused by
// normalized name regardless of their source.
func (s *Store) SyncBookSubjectsToTags(book *model.Book) error {
	for _, subject := range book.Subjects {
		normalized := util.NormalizeTagName(subject)
		if normalized == "" {
			continue
		}

		tag, err := s.GetTag(&model.FindTag{NormalizedName: &normalized})
		if err != nil {
			return errors.Wrap(err, "failed to look up subject tag")
		}
		if tag == nil {
			tag, err = s.CreateTag(&model.Tag{
				Name:           subject,
				NormalizedName: normalized,
				Category:       "subject",
				Source:         model.TagSourceOpenlib,
				IsOfficial:     false,
			})
			if err != nil {
				return errors.Wrap(err, "failed to create subject tag")
			}
		}

		if _, err := s.db.Exec(
			"INSERT OR IGNORE INTO book_tag (book_id, tag_id) VALUES (?, ?)",
			book.ID, tag.ID,
		); err != nil {
			return errors.Wrap(err, "failed to link subject tag")
		}
	}
	return nil
}

func (s *Store) CreateTag(create *model.Tag) (*model.Tag, error) {
	if create.Source == "" {
		create.Source = model.TagSourceOfficial
	}
	stmt := `
		INSERT INTO tag (name, normalized_name, category, source, is_official)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_ts`

	tag := *create
	if err := s.db.QueryRow(stmt,
		create.Name,
		create.NormalizedName,
		create.Category,
		create.Source,
		create.IsOfficial,
	).Scan(&tag.ID, &tag.CreatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to create tag")
	}
	return &tag, nil
}
