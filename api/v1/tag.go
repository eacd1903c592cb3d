package v1

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/soundbound/soundbound-server/http/response"
	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/model"
	"github.com/soundbound/soundbound-server/util"
)

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.store.ListTags(&model.FindTag{})
	if err != nil {
		log.Error("Failed to list tags", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if tags == nil {
		tags = []*model.Tag{}
	}
	response.OK(w, r, tags)
}

// createTag adds a tag to the official vocabulary. Creation is idempotent by
// normalized name so re-posting an existing tag hands back the original row.
func (h *Handler) createTag(w http.ResponseWriter, r *http.Request) {
	create := &model.TagCreateRequest{}
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	name := strings.TrimSpace(create.Name)
	if name == "" {
		response.BadRequest(w, r, errors.New("tag name is empty"))
		return
	}

	normalized := util.NormalizeTagName(name)
	existing, err := h.store.GetTag(&model.FindTag{NormalizedName: &normalized})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if existing != nil {
		response.OK(w, r, existing)
		return
	}

	tag, err := h.store.CreateTag(&model.Tag{
		Name:           name,
		NormalizedName: normalized,
		Category:       create.Category,
		Source:         model.TagSourceOfficial,
		IsOfficial:     true,
	})
	if err != nil {
		log.Error("Failed to create tag", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, tag)
}
