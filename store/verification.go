package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/soundbound/soundbound-server/model"
)

func (s *Store) GetVerificationRequest(find *model.FindVerificationRequest) (*model.AuthorVerificationRequest, error) {
	list, err := s.ListVerificationRequests(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListVerificationRequests(find *model.FindVerificationRequest) ([]*model.AuthorVerificationRequest, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "status = ?"), append(args, *v)
	}

	query := `
		SELECT
			id,
			user_id,
			author_bio,
			author_keys,
			proof_links,
			notes,
			status,
			submitted_ts,
			reviewed_ts,
			COALESCE(reviewed_by, 0)
		FROM author_verification_request
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY submitted_ts DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.AuthorVerificationRequest, 0)
	for rows.Next() {
		var request model.AuthorVerificationRequest
		var authorKeys string
		if err := rows.Scan(
			&request.ID,
			&request.UserID,
			&request.AuthorBio,
			&authorKeys,
			&request.ProofLinks,
			&request.Notes,
			&request.Status,
			&request.SubmittedTs,
			&request.ReviewedTs,
			&request.ReviewedBy,
		); err != nil {
			return nil, err
		}
		request.AuthorKeys = unmarshalList(authorKeys)
		list = append(list, &request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateVerificationRequest(create *model.AuthorVerificationRequest) (*model.AuthorVerificationRequest, error) {
	stmt := `
		INSERT INTO author_verification_request (user_id, author_bio, author_keys, proof_links, notes, status)
		VALUES (?, ?, ?, ?, ?, 'pending')
		RETURNING id, status, submitted_ts`

	request := *create
	if err := s.db.QueryRow(stmt,
		create.UserID,
		create.AuthorBio,
		marshalList(create.AuthorKeys),
		create.ProofLinks,
		create.Notes,
	).Scan(&request.ID, &request.Status, &request.SubmittedTs); err != nil {
		return nil, errors.Wrap(err, "failed to create verification request")
	}
	return &request, nil
}

// ApproveVerificationRequest promotes the user to author and marks the
// pending request approved in one transaction: the role change and the
// request update either both land or neither does.
func (s *Store) ApproveVerificationRequest(requestID, userID, reviewerID int32) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var authorBio, authorKeys string
	if err := tx.QueryRow(
		"SELECT author_bio, author_keys FROM author_verification_request WHERE id = ? AND status = 'pending'",
		requestID,
	).Scan(&authorBio, &authorKeys); err != nil {
		return errors.Wrap(err, "failed to load pending request")
	}

	now := time.Now().Unix()
	if _, err := tx.Exec(
		"UPDATE user SET role = ?, author_bio = ?, author_keys = ?, updated_ts = ? WHERE id = ?",
		model.RoleAuthor, authorBio, authorKeys, now, userID,
	); err != nil {
		return errors.Wrap(err, "failed to promote user")
	}

	if _, err := tx.Exec(
		"UPDATE author_verification_request SET status = 'approved', reviewed_ts = ?, reviewed_by = ? WHERE id = ?",
		now, reviewerID, requestID,
	); err != nil {
		return errors.Wrap(err, "failed to mark request approved")
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.UserCache.Delete(userID)
	return nil
}

func (s *Store) RejectVerificationRequest(requestID, reviewerID int32) error {
	_, err := s.db.Exec(
		"UPDATE author_verification_request SET status = 'rejected', reviewed_ts = ?, reviewed_by = ? WHERE id = ?",
		time.Now().Unix(), reviewerID, requestID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to mark request rejected")
	}
	return nil
}
