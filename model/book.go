package model //import "github.com/soundbound/soundbound-server/model"

// BookSource tells where a book record came from.
type BookSource string

const (
	// BookSourceVerified marks books imported from the external catalog,
	// deduplicated by work key.
	BookSourceVerified BookSource = "verified"
	// BookSourceCustom marks freeform books entered by users.
	BookSourceCustom BookSource = "custom"
)

type Book struct {
	ID int32 `json:"id"`

	CreatedTs int64 `json:"created_ts"`
	UpdatedTs int64 `json:"updated_ts"`

	Title            string     `json:"title"`
	Description      string     `json:"description"`
	CoverURL         string     `json:"cover_url"`
	Source           BookSource `json:"source"`
	OpenlibWorkKey   string     `json:"openlib_work_key"`
	AuthorNames      []string   `json:"author_names"`
	AuthorKeys       []string   `json:"author_keys"`
	ISBNList         []string   `json:"isbn_list"`
	Subjects         []string   `json:"subjects"`
	FirstPublishYear int32      `json:"first_publish_year"`
}

type FindBook struct {
	ID             *int32      `json:"id"`
	OpenlibWorkKey *string     `json:"openlib_work_key"`
	Source         *BookSource `json:"source"`

	// Query matches title, author names and ISBNs.
	Query *string `json:"query"`

	// The maximum number of books to return.
	Limit *int `json:"limit"`
}

type BookImportRequest struct {
	OpenlibWorkKey string `json:"openlib_work_key"`
}
