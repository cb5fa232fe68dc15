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

// IngestDataset handles POST /api/v1/datasets
func (h *Handlers) IngestDataset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.IngestDatasetReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.ErrInvalidRequestBody, http.StatusBadRequest)
			return
		}

		ds, err := h.deps.Services.Datasets.Ingest(r.Context(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to ingest dataset", http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Dataset ingested", ds, http.StatusCreated)
	}
}

// GetDataset handles GET /api/v1/datasets/{dataset_id}
func (h *Handlers) GetDataset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id := chi.URLParam(r, "dataset_id")

		ds, err := h.deps.Services.Datasets.Get(r.Context(), id)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch dataset")
			return
		}
		if ds == nil {
			common.RespondError(w, initTime, errors.New(constants.ErrDatasetNotFound), "", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "", ds)
	}
}

// DeleteDataset handles DELETE /api/v1/datasets/{dataset_id}
func (h *Handlers) DeleteDataset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id := chi.URLParam(r, "dataset_id")

		if err := h.deps.Services.Datasets.Delete(r.Context(), id); err != nil {
			common.RespondError(w, initTime, err, "Failed to delete dataset")
			return
		}

		common.RespondSuccess(w, initTime, "Dataset deleted", nil)
	}
}
