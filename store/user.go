package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/model"
)

func (s *Store) GetUser(find *model.FindUser) (*model.User, error) {
	if find.ID != nil {
		if cache, ok := s.UserCache.Load(*find.ID); ok {
			return cache.(*model.User), nil
		}
	}

	list, err := s.ListUsers(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	user := list[0]
	s.UserCache.Store(user.ID, user)
	return user, nil
}

func (s *Store) ListUsers(find *model.FindUser) ([]*model.User, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Username; v != nil {
		where, args = append(where, "username = ?"), append(args, *v)
	}
	if v := find.Email; v != nil {
		where, args = append(where, "email = ?"), append(args, *v)
	}
	if v := find.Role; v != nil {
		where, args = append(where, "role = ?"), append(args, *v)
	}

	// Here will return password_hash, so need to be careful.
	// Use response.UserResponse before sending a user to a client.
	query := `
		SELECT
			id,
			created_ts,
			updated_ts,
			first_name,
			last_name,
			username,
			email,
			password_hash,
			role,
			author_bio,
			author_keys,
			avatar_url,
			last_login_ts
		FROM user
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Debug("Error querying users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		var authorKeys string
		if err := rows.Scan(
			&user.ID,
			&user.CreatedTs,
			&user.UpdatedTs,
			&user.FirstName,
			&user.LastName,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.AuthorBio,
			&authorKeys,
			&user.AvatarURL,
			&user.LastLoginTs,
		); err != nil {
			return nil, err
		}
		user.AuthorKeys = unmarshalList(authorKeys)
		list = append(list, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateUser(create *model.User) (*model.User, error) {
	if create.Role == "" {
		create.Role = model.RoleReader
	}
	stmt := `
		INSERT INTO user (first_name, last_name, username, email, password_hash, role, author_bio, author_keys, avatar_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_ts, updated_ts, last_login_ts`
	args := []any{
		create.FirstName,
		create.LastName,
		create.Username,
		create.Email,
		create.PasswordHash,
		create.Role,
		create.AuthorBio,
		marshalList(create.AuthorKeys),
		create.AvatarURL,
	}

	user := *create
	if err := s.db.QueryRow(stmt, args...).Scan(
		&user.ID,
		&user.CreatedTs,
		&user.UpdatedTs,
		&user.LastLoginTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}
	if user.AuthorKeys == nil {
		user.AuthorKeys = []string{}
	}

	s.UserCache.Store(user.ID, &user)
	return &user, nil
}

func (s *Store) UpdateUser(update *model.UpdateUser) (*model.User, error) {
	set, args := []string{"updated_ts = ?"}, []any{time.Now().Unix()}

	if v := update.FirstName; v != nil {
		set, args = append(set, "first_name = ?"), append(args, *v)
	}
	if v := update.LastName; v != nil {
		set, args = append(set, "last_name = ?"), append(args, *v)
	}
	if v := update.Email; v != nil {
		set, args = append(set, "email = ?"), append(args, *v)
	}
	if v := update.PasswordHash; v != nil {
		set, args = append(set, "password_hash = ?"), append(args, *v)
	}
	if v := update.AuthorBio; v != nil {
		set, args = append(set, "author_bio = ?"), append(args, *v)
	}
	if v := update.AuthorKeys; v != nil {
		set, args = append(set, "author_keys = ?"), append(args, marshalList(v))
	}
	if v := update.AvatarURL; v != nil {
		set, args = append(set, "avatar_url = ?"), append(args, *v)
	}
	if v := update.Role; v != nil {
		set, args = append(set, "role = ?"), append(args, *v)
	}
	args = append(args, update.ID)

	stmt := "UPDATE user SET " + strings.Join(set, ", ") + " WHERE id = ?"
	if _, err := s.db.Exec(stmt, args...); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	s.UserCache.Delete(update.ID)
	return s.GetUser(&model.FindUser{ID: &update.ID})
}

func (s *Store) SetLastLogin(userID int32) error {
	stmt := "UPDATE user SET last_login_ts = ? WHERE id = ?"
	if _, err := s.db.Exec(stmt, time.Now().Unix(), userID); err != nil {
		return errors.Wrap(err, "unable to update last login date")
	}
	s.UserCache.Delete(userID)
	return nil
}
