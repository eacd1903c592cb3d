package validator

import (
	"github.com/pkg/errors"

	"github.com/soundbound/soundbound-server/model"
)

func ValidatePlaylistCreateRequest(create *model.PlaylistCreateRequest) error {
	if create == nil {
		return errors.New("playlist request is nil")
	}
	if create.Title == "" {
		return errors.New("title is empty")
	}
	hasBookID := create.BookID != nil
	hasCustom := create.CustomBookTitle != "" || create.CustomAuthorName != ""
	if hasBookID && hasCustom {
		return errors.New("provide either a book id or a custom book, not both")
	}
	if !hasBookID && !hasCustom {
		return errors.New("playlist needs a book id or a custom book")
	}
	if hasCustom && (create.CustomBookTitle == "" || create.CustomAuthorName == "") {
		return errors.New("custom book needs both a title and an author name")
	}
	return nil
}

func ValidateApplicationRequest(apply *model.AuthorApplicationRequest) error {
	if apply == nil {
		return errors.New("application request is nil")
	}
	if apply.AuthorBio == "" {
		return errors.New("author bio is empty")
	}
	if len(apply.AuthorKeys) == 0 {
		return errors.New("author keys are empty")
	}
	return nil
}
