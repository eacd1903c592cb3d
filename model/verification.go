package model

// VerificationStatus is the state of an author verification request.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

type AuthorVerificationRequest struct {
	ID int32 `json:"id"`

	UserID      int32              `json:"user_id"`
	AuthorBio   string             `json:"author_bio"`
	AuthorKeys  []string           `json:"author_keys"`
	ProofLinks  string             `json:"proof_links"`
	Notes       string             `json:"notes"`
	Status      VerificationStatus `json:"status"`
	SubmittedTs int64              `json:"submitted_ts"`
	ReviewedTs  int64              `json:"reviewed_ts"`
	ReviewedBy  int32              `json:"reviewed_by"`
}

type FindVerificationRequest struct {
	ID     *int32              `json:"id"`
	UserID *int32              `json:"user_id"`
	Status *VerificationStatus `json:"status"`

	Limit *int `json:"limit"`
}

type AuthorApplicationRequest struct {
	AuthorBio  string   `json:"author_bio"`
	AuthorKeys []string `json:"author_keys"`
	ProofLinks string   `json:"proof_links"`
	Notes      string   `json:"notes"`
}
