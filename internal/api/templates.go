package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/common"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/constants"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// ListTemplates handles GET /api/v1/templates
func (h *Handlers) ListTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		tpls, err := h.deps.Services.Templates.List(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list templates")
			return
		}

		common.RespondSuccess(w, initTime, "", tpls)
	}
}

// SaveTemplate handles POST /api/v1/templates
func (h *Handlers) SaveTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SaveTemplateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.ErrInvalidRequestBody, http.StatusBadRequest)
			return
		}

		// The authored dataset's columns become the template signature
		var signature []string
		if req.DatasetID != "" {
			ds, err := h.deps.Services.Datasets.Get(r.Context(), req.DatasetID)
			if err != nil {
				common.RespondError(w, initTime, err, "Failed to fetch dataset")
				return
			}
			if ds == nil {
				common.RespondError(w, initTime, errors.New(constants.ErrDatasetNotFound), "", http.StatusNotFound)
				return
			}
			signature = ds.Columns
		}

		tpl, err := h.deps.Services.Templates.Save(r.Context(), &req, signature)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to save template", http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Template saved", tpl, http.StatusCreated)
	}
}

// DeleteTemplate handles DELETE /api/v1/templates/{template_id}
func (h *Handlers) DeleteTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id := chi.URLParam(r, "template_id")

		if err := h.deps.Services.Templates.Delete(r.Context(), id); err != nil {
			common.RespondError(w, initTime, err, "Failed to delete template", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Template deleted", nil)
	}
}

// SuggestTemplates handles GET /api/v1/templates/suggest?dataset_id=&schema_id=
func (h *Handlers) SuggestTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		datasetID := r.URL.Query().Get("dataset_id")
		schemaID := r.URL.Query().Get("schema_id")

		ds, err := h.deps.Services.Datasets.Get(r.Context(), datasetID)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch dataset")
			return
		}
		if ds == nil {
			common.RespondError(w, initTime, errors.New(constants.ErrDatasetNotFound), "", http.StatusNotFound)
			return
		}

		suggestions, err := h.deps.Services.Templates.Suggest(r.Context(), schemaID, ds.Columns)
		if err != nil {
			common.RespondError(w, initTime, err, constants.ErrUnknownSchema, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "", dtos.SuggestionsDto{Suggestions: suggestions})
	}
}
