package model

// LibraryEntry is one book in a user's personal library. Membership order is
// insertion order.
type LibraryEntry struct {
	ID        int32 `json:"id"`
	UserID    int32 `json:"user_id"`
	BookID    int32 `json:"book_id"`
	CreatedTs int64 `json:"created_ts"`
}

type LibraryAddRequest struct {
	BookID int32 `json:"book_id"`
}
