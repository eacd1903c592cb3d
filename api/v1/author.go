package v1

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/soundbound/soundbound-server/http/request"
	"github.com/soundbound/soundbound-server/http/response"
	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/model"
	"github.com/soundbound/soundbound-server/validator"
)

func (h *Handler) applyForAuthor(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	if request.UserRole(r) == model.RoleAuthor {
		response.Conflict(w, r, errors.New("already an author"))
		return
	}

	apply := &model.AuthorApplicationRequest{}
	if err := json.NewDecoder(r.Body).Decode(&apply); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	if err := validator.ValidateApplicationRequest(apply); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	pending := model.VerificationPending
	existing, err := h.store.GetVerificationRequest(&model.FindVerificationRequest{
		UserID: &userID,
		Status: &pending,
	})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if existing != nil {
		response.Conflict(w, r, errors.New("application already pending"))
		return
	}

	created, err := h.store.CreateVerificationRequest(&model.AuthorVerificationRequest{
		UserID:     userID,
		AuthorBio:  apply.AuthorBio,
		AuthorKeys: apply.AuthorKeys,
		ProofLinks: apply.ProofLinks,
		Notes:      apply.Notes,
	})
	if err != nil {
		log.Error("Failed to create author application", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, created)
}

func (h *Handler) listMyApplications(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	applications, err := h.store.ListVerificationRequests(&model.FindVerificationRequest{UserID: &userID})
	if err != nil {
		log.Error("Failed to list applications", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if applications == nil {
		applications = []*model.AuthorVerificationRequest{}
	}
	response.OK(w, r, applications)
}

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	h.respondApplicationList(w, r, &model.FindVerificationRequest{})
}

func (h *Handler) listPendingApplications(w http.ResponseWriter, r *http.Request) {
	pending := model.VerificationPending
	h.respondApplicationList(w, r, &model.FindVerificationRequest{Status: &pending})
}

func (h *Handler) respondApplicationList(w http.ResponseWriter, r *http.Request, find *model.FindVerificationRequest) {
	applications, err := h.store.ListVerificationRequests(find)
	if err != nil {
		log.Error("Failed to list applications", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	details := []*response.ApplicationDetail{}
	for _, application := range applications {
		applicant, err := h.store.GetUser(&model.FindUser{ID: &application.UserID})
		if err != nil {
			response.ServerError(w, r, err)
			return
		}
		details = append(details, response.ApplicationResponse(application, applicant))
	}
	response.OK(w, r, details)
}

func (h *Handler) getApplication(w http.ResponseWriter, r *http.Request) {
	requestID := request.RouteInt32Param(r, "id")
	application, err := h.store.GetVerificationRequest(&model.FindVerificationRequest{ID: &requestID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if application == nil {
		response.NotFound(w, r)
		return
	}

	applicant, err := h.store.GetUser(&model.FindUser{ID: &application.UserID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, response.ApplicationResponse(application, applicant))
}

func (h *Handler) approveApplication(w http.ResponseWriter, r *http.Request) {
	applicantID := request.RouteInt32Param(r, "userID")
	reviewerID := request.UserID(r)

	applicant, err := h.store.GetUser(&model.FindUser{ID: &applicantID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if applicant == nil {
		response.NotFound(w, r)
		return
	}
	if applicant.Role == model.RoleAuthor {
		response.Conflict(w, r, errors.New("user is already an author"))
		return
	}

	pending := model.VerificationPending
	application, err := h.store.GetVerificationRequest(&model.FindVerificationRequest{
		UserID: &applicantID,
		Status: &pending,
	})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if application == nil {
		response.NotFound(w, r)
		return
	}

	if err := h.store.ApproveVerificationRequest(application.ID, applicantID, reviewerID); err != nil {
		log.Error("Failed to approve application", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	updated, err := h.store.GetVerificationRequest(&model.FindVerificationRequest{ID: &application.ID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, updated)
}

func (h *Handler) rejectApplication(w http.ResponseWriter, r *http.Request) {
	applicantID := request.RouteInt32Param(r, "userID")
	reviewerID := request.UserID(r)

	pending := model.VerificationPending
	application, err := h.store.GetVerificationRequest(&model.FindVerificationRequest{
		UserID: &applicantID,
		Status: &pending,
	})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if application == nil {
		response.NotFound(w, r)
		return
	}

	if err := h.store.RejectVerificationRequest(application.ID, reviewerID); err != nil {
		log.Error("Failed to reject application", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	updated, err := h.store.GetVerificationRequest(&model.FindVerificationRequest{ID: &application.ID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, updated)
}
