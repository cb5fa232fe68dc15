package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/common"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/constants"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/dtos"
)

// AutoMap handles POST /api/v1/mappings/auto
func (h *Handlers) AutoMap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AutoMapReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.ErrInvalidRequestBody, http.StatusBadRequest)
			return
		}

		result, err := h.deps.Services.Mappings.AutoMap(r.Context(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to auto-map dataset", http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Auto-map completed", result)
	}
}

// ValidateMappings handles POST /api/v1/mappings/validate
func (h *Handlers) ValidateMappings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ValidateMappingsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.ErrInvalidRequestBody, http.StatusBadRequest)
			return
		}

		result, err := h.deps.Services.Mappings.Validate(&req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.ErrUnknownSchema, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "", result)
	}
}

// PreviewMappings handles POST /api/v1/mappings/preview
func (h *Handlers) PreviewMappings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.PreviewReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.ErrInvalidRequestBody, http.StatusBadRequest)
			return
		}

		result, err := h.deps.Services.Mappings.Preview(r.Context(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to preview mappings", http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "", result)
	}
}
