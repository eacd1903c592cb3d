package response

import (
	"github.com/soundbound/soundbound-server/model"
)

// ApplicationDetail is a verification request enriched with applicant info
// for the moderation views.
type ApplicationDetail struct {
	*model.AuthorVerificationRequest

	ApplicantUsername string `json:"applicant_username,omitempty"`
	ApplicantEmail    string `json:"applicant_email,omitempty"`
}

func ApplicationResponse(request *model.AuthorVerificationRequest, applicant *model.User) *ApplicationDetail {
	detail := &ApplicationDetail{AuthorVerificationRequest: request}
	if applicant != nil {
		detail.ApplicantUsername = applicant.Username
		detail.ApplicantEmail = applicant.Email
	}
	return detail
}
