package response

import (
	"github.com/soundbound/soundbound-server/model"
)

// UserProfile is the shape a user sees of their own account.
type UserProfile struct {
	ID          int32    `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	AuthorBio   string   `json:"author_bio,omitempty"`
	AuthorKeys  []string `json:"author_keys,omitempty"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
	LastLoginTs int64    `json:"last_login_ts"`
}

// PublicUser is the shape other users see. No email, no login metadata.
type PublicUser struct {
	ID        int32  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	AuthorBio string `json:"author_bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func UserResponse(user *model.User) *UserProfile {
	return &UserProfile{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role.String(),
		AuthorBio:   user.AuthorBio,
		AuthorKeys:  user.AuthorKeys,
		AvatarURL:   user.AvatarURL,
		LastLoginTs: user.LastLoginTs,
	}
}

func PublicUserResponse(user *model.User) *PublicUser {
	return &PublicUser{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Role:      user.Role.String(),
		AuthorBio: user.AuthorBio,
		AvatarURL: user.AvatarURL,
	}
}

func PublicUserListResponse(users []*model.User) []*PublicUser {
	response := []*PublicUser{}
	for _, user := range users {
		response = append(response, PublicUserResponse(user))
	}
	return response
}
