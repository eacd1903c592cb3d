package validator // import "github.com/soundbound/soundbound-server/validator"

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/soundbound/soundbound-server/model"
	"github.com/soundbound/soundbound-server/store"
	"github.com/soundbound/soundbound-server/util"
)

func ValidateSignupRequest(s *store.Store, signup *model.UserSignupRequest) error {
	if signup == nil {
		return errors.New("signup request is nil")
	}
	if signup.Username == "" {
		return errors.New("username is empty")
	}
	if !util.UIDMatcher.MatchString(signup.Username) {
		return errors.New("username is invalid")
	}
	if signup.Email == "" {
		return errors.New("email is empty")
	}
	if !util.ValidateEmail(signup.Email) {
		return errors.New("email is invalid")
	}
	if err := validatePassword(signup.Password); err != nil {
		return err
	}
	if user, _ := s.GetUser(&model.FindUser{Username: &signup.Username}); user != nil {
		return errors.New("Username already exists")
	}
	// Emails are stored lowercased, so the uniqueness check has to match.
	email := strings.ToLower(signup.Email)
	if user, _ := s.GetUser(&model.FindUser{Email: &email}); user != nil {
		return errors.New("Email already exists")
	}
	return nil
}

func ValidateLoginRequest(login *model.UserLoginRequest) error {
	if login == nil {
		return errors.New("login request is nil")
	}
	if login.Email == "" {
		return errors.New("email is empty")
	}
	if login.Password == "" {
		return errors.New("password is empty")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return errors.New("password is empty")
	}
	if len(password) < 6 {
		return errors.New("password is too short")
	}
	return nil
}
