package api

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/common"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/constants"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/dtos"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/schema"
)

// GenerateExportLinkHandler generates a presigned URL for downloading a
// transformed dataset without an API key.
func (h *Handlers) GenerateExportLinkHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AutoMapReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.ErrInvalidRequestBody, http.StatusBadRequest)
			return
		}

		// 15 minute expiry, single use
		token, err := h.deps.Services.ExportLink.GeneratePresignedToken(req.DatasetID, req.SchemaID, 15*time.Minute)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to generate export link")
			return
		}

		common.RespondSuccess(w, initTime, "", map[string]any{
			"url":        r.Host + "/exports/download?token=" + token,
			"expires_in": 900,
		})
	}
}

// DownloadExportHandler handles GET /exports/download?token=
// The token is validated and burned, then the dataset's sample rows are
// auto-mapped against the schema baked into the token and streamed as CSV.
func (h *Handlers) DownloadExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			common.RespondError(w, initTime, nil, constants.ErrUnauthorized, http.StatusUnauthorized)
			return
		}

		token, err := h.deps.Services.ExportLink.ValidateToken(r.Context(), tokenString)
		if err != nil {
			common.RespondError(w, initTime, err, constants.ErrUnauthorized, http.StatusUnauthorized)
			return
		}

		if err := h.deps.Services.ExportLink.MarkTokenAsUsed(r.Context(), token.TokenID); err != nil {
			common.RespondError(w, initTime, err, "Failed to consume export token")
			return
		}

		result, err := h.deps.Services.Mappings.AutoMap(r.Context(), &dtos.AutoMapReq{
			DatasetID: token.DatasetID,
			SchemaID:  token.SchemaID,
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to map dataset", http.StatusBadRequest)
			return
		}

		preview, err := h.deps.Services.Mappings.Preview(r.Context(), &dtos.PreviewReq{
			DatasetID: token.DatasetID,
			SchemaID:  token.SchemaID,
			Mappings:  result.Mappings,
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to transform dataset", http.StatusBadRequest)
			return
		}

		targetSchema, err := schema.Get(token.SchemaID)
		if err != nil {
			common.RespondError(w, initTime, err, constants.ErrUnknownSchema, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=\"export.csv\"")

		writer := csv.NewWriter(w)

		header := make([]string, 0)
		for _, f := range targetSchema.AllFields() {
			header = append(header, f.ID)
		}
		_ = writer.Write(header)

		for _, row := range preview.Rows {
			record := make([]string, 0, len(header))
			for _, col := range header {
				record = append(record, stringifyCell(row[col]))
			}
			_ = writer.Write(record)
		}
		writer.Flush()
	}
}

func stringifyCell(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
