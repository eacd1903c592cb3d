package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/soundbound/soundbound-server/api/auth"
	"github.com/soundbound/soundbound-server/http/request"
	"github.com/soundbound/soundbound-server/http/response"
	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/model"
	"github.com/soundbound/soundbound-server/validator"
)

type loginResponse struct {
	AccessToken string                `json:"access_token"`
	User        *response.UserProfile `json:"user"`
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	signup := &model.UserSignupRequest{}
	if err := json.NewDecoder(r.Body).Decode(&signup); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidateSignupRequest(h.store, signup); err != nil {
		log.Debug("Failed to validate signup request", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to generate password hash", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	// Every account starts as a reader. Author status only comes through the
	// verification workflow, admin only through operator action.
	user := model.User{
		FirstName:    signup.FirstName,
		LastName:     signup.LastName,
		Username:     signup.Username,
		Email:        strings.ToLower(signup.Email),
		PasswordHash: string(passwordHash),
		Role:         model.RoleReader,
	}

	newUser, err := h.store.CreateUser(&user)
	if err != nil {
		log.Error("Failed to signup user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.Created(w, r, response.UserResponse(newUser))
}

func (h *Handler) logIn(w http.ResponseWriter, r *http.Request) {
	login := &model.UserLoginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&login); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	if err := validator.ValidateLoginRequest(login); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	email := strings.ToLower(login.Email)
	user, err := h.store.GetUser(&model.FindUser{Email: &email})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	// Unknown email and wrong password must be indistinguishable.
	if user == nil {
		response.Unauthorized(w, r)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(login.Password)); err != nil {
		response.Unauthorized(w, r)
		return
	}

	expireTime := time.Now().Add(auth.AccessTokenDuration)
	accessToken, err := h.doLogIn(w, r, user, expireTime)
	if err != nil {
		log.Error("Failed to log in", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &loginResponse{
		AccessToken: accessToken,
		User:        response.UserResponse(user),
	})
}

func (h *Handler) doLogIn(w http.ResponseWriter, r *http.Request, user *model.User, expireTime time.Time) (string, error) {
	sSetting, err := h.store.GetOrUpsetSystemSecuritySetting()
	if err != nil {
		return "", errors.Wrap(err, "failed to get security setting")
	}
	if sSetting == nil || sSetting.JWTSecret == "" {
		return "", errors.New("JWT secret is not set")
	}

	accessToken, err := auth.GenerateAccessToken(user.Username, user.ID, user.Role, expireTime, []byte(sSetting.JWTSecret))
	if err != nil {
		return "", errors.Wrap(err, "failed to generate access token")
	}

	if err := h.store.SetLastLogin(user.ID); err != nil {
		log.Warn("Failed to record last login", zap.Error(err))
	}

	cookie := buildAccessTokenCookie(accessToken, expireTime, r.Header.Get("Origin"))
	w.Header().Set("Set-Cookie", cookie)
	return accessToken, nil
}

// logOut expires the access-token cookie. Bearer tokens stay valid until
// they expire; clients drop them on their side.
func (h *Handler) logOut(w http.ResponseWriter, r *http.Request) {
	cookie := buildAccessTokenCookie("", time.Time{}, r.Header.Get("Origin"))
	w.Header().Set("Set-Cookie", cookie)
	response.NoContent(w, r)
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	user, err := h.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, response.UserResponse(user))
}

func buildAccessTokenCookie(accessToken string, expireTime time.Time, origin string) string {
	attrs := []string{
		fmt.Sprintf("%s=%s", auth.AccessTokenCookieName, accessToken),
		"Path=/",
		"HttpOnly",
	}
	if expireTime.IsZero() {
		attrs = append(attrs, "Expires=Thu, 01 Jan 1970 00:00:00 GMT")
	} else {
		attrs = append(attrs, "Expires="+expireTime.Format(time.RFC1123))
	}

	if strings.HasPrefix(origin, "https://") {
		attrs = append(attrs, "Secure")
		attrs = append(attrs, "SameSite=None")
	} else {
		attrs = append(attrs, "SameSite=Lax")
	}
	return strings.Join(attrs, "; ")
}
