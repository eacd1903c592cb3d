package v1

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/soundbound/soundbound-server/http/request"
	"github.com/soundbound/soundbound-server/http/response"
	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/model"
	"github.com/soundbound/soundbound-server/util"
)

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID := request.RouteInt32Param(r, "id")
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

	// Callers only ever see their own full profile.
	if request.UserID(r) == user.ID {
		response.OK(w, r, response.UserResponse(user))
		return
	}
	response.OK(w, r, response.PublicUserResponse(user))
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
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

	patch := &model.UserUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	update := &model.UpdateUser{ID: userID}
	update.FirstName = patch.FirstName
	update.LastName = patch.LastName
	update.AvatarURL = patch.AvatarURL

	if patch.Email != nil {
		email := strings.ToLower(*patch.Email)
		if !util.ValidateEmail(email) {
			response.BadRequest(w, r, errors.New("email is invalid"))
			return
		}
		if existing, _ := h.store.GetUser(&model.FindUser{Email: &email}); existing != nil && existing.ID != userID {
			response.Conflict(w, r, errors.New("email already in use"))
			return
		}
		update.Email = &email
	}

	if patch.Password != nil {
		if len(*patch.Password) < 6 {
			response.BadRequest(w, r, errors.New("password is too short"))
			return
		}
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			response.ServerError(w, r, err)
			return
		}
		hash := string(passwordHash)
		update.PasswordHash = &hash
	}

	// The bio belongs to the author program, readers have no use for it.
	if patch.AuthorBio != nil {
		if user.Role != model.RoleAuthor {
			response.Forbidden(w, r)
			return
		}
		update.AuthorBio = patch.AuthorBio
	}

	updatedUser, err := h.store.UpdateUser(update)
	if err != nil {
		log.Error("Failed to update user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, response.UserResponse(updatedUser))
}

func (h *Handler) listAuthors(w http.ResponseWriter, r *http.Request) {
	role := model.RoleAuthor
	authors, err := h.store.ListUsers(&model.FindUser{Role: &role})
	if err != nil {
		log.Error("Failed to list authors", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, response.PublicUserListResponse(authors))
}
