package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/common"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/mapper"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/metrics"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/dtos"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/services"
)

// Prometheus collectors register globally, so the whole test binary shares
// one registry.
var testMetrics = metrics.NewMetricsRegistry()

func newTestHandlers() *Handlers {
	cache := common.NewCacheService(60, 600)
	mappingSvc := services.NewMappingService(nil, nil, cache, testMetrics)

	return NewHandlers(&Dependencies{
		Services: &Services{
			Cache:    cache,
			Mappings: mappingSvc,
		},
		Metrics: testMetrics,
	})
}

func TestValidateMappingsHandler_Valid(t *testing.T) {
	handler := newTestHandlers().ValidateMappings()

	reqBody := dtos.ValidateMappingsReq{
		SchemaID: "response-time-analyzer",
		Mappings: mapper.MappingSet{
			{SourceField: "inc_no", TargetField: "incident_id"},
			{SourceField: "alarm_date", TargetField: "incident_date"},
			{SourceField: "alarm_time", TargetField: "incident_time"},
		},
	}
	bodyBytes, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/v1/mappings/validate", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status ok, got %s", response.Status)
	}

	data, ok := response.Data.(map[string]any)
	if !ok {
		t.Fatalf("Expected object data, got %T", response.Data)
	}
	if valid, _ := data["valid"].(bool); !valid {
		t.Errorf("Expected valid mapping set, got %v", data)
	}
}

func TestValidateMappingsHandler_MissingRequired(t *testing.T) {
	handler := newTestHandlers().ValidateMappings()

	reqBody := dtos.ValidateMappingsReq{
		SchemaID: "response-time-analyzer",
		Mappings: mapper.MappingSet{
			{SourceField: "inc_no", TargetField: "incident_id"},
		},
	}
	bodyBytes, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/v1/mappings/validate", bytes.NewReader(bodyBytes))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	data, ok := response.Data.(map[string]any)
	if !ok {
		t.Fatalf("Expected object data, got %T", response.Data)
	}
	if valid, _ := data["valid"].(bool); valid {
		t.Error("Expected invalid mapping set")
	}
	issues, _ := data["issues"].([]any)
	if len(issues) != 2 {
		t.Errorf("Expected one issue per unmet required field, got %d", len(issues))
	}
}

func TestValidateMappingsHandler_UnknownSchema(t *testing.T) {
	handler := newTestHandlers().ValidateMappings()

	reqBody := dtos.ValidateMappingsReq{SchemaID: "no-such-schema"}
	bodyBytes, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/v1/mappings/validate", bytes.NewReader(bodyBytes))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestValidateMappingsHandler_InvalidJSON(t *testing.T) {
	handler := newTestHandlers().ValidateMappings()

	req := httptest.NewRequest("POST", "/api/v1/mappings/validate", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}
