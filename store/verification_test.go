package store

import (
	"testing"

	"github.com/soundbound/soundbound-server/model"
)

func TestVerificationRequestLifecycle(t *testing.T) {
	s := newTestStore(t)
	applicant := createTestUser(t, s, "hopeful", model.RoleReader)
	admin := createTestUser(t, s, "admin", model.RoleAdmin)

	request, err := s.CreateVerificationRequest(&model.AuthorVerificationRequest{
		UserID:     applicant.ID,
		AuthorBio:  "I wrote the book on this",
		AuthorKeys: []string{"/authors/OL1A"},
		ProofLinks: "https://example.com/proof",
	})
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	if request.Status != model.VerificationPending {
		t.Fatalf("Expected pending status, got %s", request.Status)
	}

	if err := s.ApproveVerificationRequest(request.ID, applicant.ID, admin.ID); err != nil {
		t.Fatalf("Failed to approve request: %v", err)
	}

	// Approval promotes the user and copies the author fields in one step.
	user, err := s.GetUser(&model.FindUser{ID: &applicant.ID})
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if user.Role != model.RoleAuthor {
		t.Fatalf("Expected author role, got %s", user.Role)
	}
	if user.AuthorBio != "I wrote the book on this" {
		t.Fatalf("Expected bio to be copied, got %q", user.AuthorBio)
	}
	if len(user.AuthorKeys) != 1 || user.AuthorKeys[0] != "/authors/OL1A" {
		t.Fatalf("Expected author keys to be copied, got %v", user.AuthorKeys)
	}

	updated, err := s.GetVerificationRequest(&model.FindVerificationRequest{ID: &request.ID})
	if err != nil {
		t.Fatalf("Failed to get request: %v", err)
	}
	if updated.Status != model.VerificationApproved {
		t.Fatalf("Expected approved status, got %s", updated.Status)
	}
	if updated.ReviewedBy != admin.ID {
		t.Fatalf("Expected reviewer %d, got %d", admin.ID, updated.ReviewedBy)
	}
	if updated.ReviewedTs == 0 {
		t.Fatal("Expected reviewed timestamp")
	}
}

func TestRejectVerificationRequest(t *testing.T) {
	s := newTestStore(t)
	applicant := createTestUser(t, s, "hopeful", model.RoleReader)
	admin := createTestUser(t, s, "admin", model.RoleAdmin)

	request, err := s.CreateVerificationRequest(&model.AuthorVerificationRequest{
		UserID:    applicant.ID,
		AuthorBio: "bio",
	})
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if err := s.RejectVerificationRequest(request.ID, admin.ID); err != nil {
		t.Fatalf("Failed to reject request: %v", err)
	}

	user, err := s.GetUser(&model.FindUser{ID: &applicant.ID})
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if user.Role != model.RoleReader {
		t.Fatalf("Rejection must not change role, got %s", user.Role)
	}

	updated, err := s.GetVerificationRequest(&model.FindVerificationRequest{ID: &request.ID})
	if err != nil {
		t.Fatalf("Failed to get request: %v", err)
	}
	if updated.Status != model.VerificationRejected {
		t.Fatalf("Expected rejected status, got %s", updated.Status)
	}
}

func TestFindPendingRequestByUser(t *testing.T) {
	s := newTestStore(t)
	applicant := createTestUser(t, s, "hopeful", model.RoleReader)

	if _, err := s.CreateVerificationRequest(&model.AuthorVerificationRequest{
		UserID: applicant.ID,
	}); err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	pending := model.VerificationPending
	found, err := s.GetVerificationRequest(&model.FindVerificationRequest{
		UserID: &applicant.ID,
		Status: &pending,
	})
	if err != nil {
		t.Fatalf("Failed to find request: %v", err)
	}
	if found == nil {
		t.Fatal("Expected pending request")
	}
}
