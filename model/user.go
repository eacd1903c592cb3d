package model

// Role is the type of a role.
type Role string

const (
	// RoleReader is the default role assigned at signup.
	RoleReader Role = "reader"
	// RoleAuthor is granted through the author verification workflow.
	RoleAuthor Role = "author"
	// RoleAdmin moderates author applications and the tag vocabulary.
	RoleAdmin Role = "admin"
)

func (e Role) String() string {
	switch e {
	case RoleReader:
		return "reader"
	case RoleAuthor:
		return "author"
	case RoleAdmin:
		return "admin"
	}
	return "reader"
}

type User struct {
	ID int32 `json:"id"`

	CreatedTs int64 `json:"created_ts"`
	UpdatedTs int64 `json:"updated_ts"`

	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"password_hash"`
	Role         Role     `json:"role"`
	AuthorBio    string   `json:"author_bio"`
	AuthorKeys   []string `json:"author_keys"`
	AvatarURL    string   `json:"avatar_url"`
	LastLoginTs  int64    `json:"last_login_ts"`
}

type FindUser struct {
	ID       *int32  `json:"id"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *Role   `json:"role"`

	// The maximum number of users to return.
	Limit *int
}

type UpdateUser struct {
	ID int32

	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
	AuthorBio    *string
	AuthorKeys   []string
	AvatarURL    *string
	Role         *Role
}

type UserSignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserUpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	AuthorBio *string `json:"author_bio"`
	AvatarURL *string `json:"avatar_url"`
}
