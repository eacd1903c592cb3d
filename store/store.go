package store

import (
	"database/sql"
	"encoding/json"
	"sync"
)

type Store struct {
	db        *sql.DB
	UserCache sync.Map // map[int32]*model.User
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

// marshalList encodes a string list into the JSON text stored in list columns.
func marshalList(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalList(src string) []string {
	if src == "" {
		return []string{}
	}
	var v []string
	if err := json.Unmarshal([]byte(src), &v); err != nil {
		return []string{}
	}
	return v
}
