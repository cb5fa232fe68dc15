package services

import (
	"context"
	"testing"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/common"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/db/repositories"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/mapper"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/metrics"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/dtos"
	gormModels "github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Prometheus collectors register globally, so the whole test binary shares
// one registry.
var testMetrics = metrics.NewMetricsRegistry()

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&gormModels.MappingTemplate{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func newTestTemplateService(t *testing.T) *TemplateService {
	repo := repositories.NewTemplateRepository(setupTestDB(t))
	cache := common.NewCacheService(60, 600)
	return NewTemplateService(repo, cache, testMetrics)
}

func TestTemplateService_SaveAndSuggest(t *testing.T) {
	svc := newTestTemplateService(t)
	ctx := context.Background()

	req := &dtos.SaveTemplateReq{
		Name:     "CAD vendor export",
		SchemaID: "response-time-analyzer",
		Mappings: mapper.MappingSet{
			{SourceField: "inc_no", TargetField: "incident_id"},
			{SourceField: "alarm_date", TargetField: "incident_date"},
		},
	}

	saved, err := svc.Save(ctx, req, []string{"inc_no", "alarm_date", "unit"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("Expected template ID to be assigned")
	}

	suggestions, err := svc.Suggest(ctx, "response-time-analyzer", []string{"inc_no", "alarm_date", "unit", "extra_col"})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].Score != 100 {
		t.Errorf("Expected score 100 for full signature coverage, got %v", suggestions[0].Score)
	}
	if suggestions[0].Template.ID != saved.ID {
		t.Errorf("Expected template %s, got %s", saved.ID, suggestions[0].Template.ID)
	}
}

func TestTemplateService_SuggestMigratesLegacyDisplayNames(t *testing.T) {
	svc := newTestTemplateService(t)
	ctx := context.Background()

	// A template written by an older client that stored display names
	req := &dtos.SaveTemplateReq{
		Name:     "Legacy template",
		SchemaID: "response-time-analyzer",
		Mappings: mapper.MappingSet{
			{SourceField: "inc_no", TargetField: "Incident ID"},
		},
	}

	if _, err := svc.Save(ctx, req, []string{"inc_no"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	suggestions, err := svc.Suggest(ctx, "response-time-analyzer", []string{"inc_no"})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(suggestions))
	}

	mappings := suggestions[0].Template.Mappings
	if len(mappings) != 1 || mappings[0].TargetField != "incident_id" {
		t.Errorf("Expected display name migrated to incident_id, got %+v", mappings)
	}
}

func TestTemplateService_SuggestUnknownSchema(t *testing.T) {
	svc := newTestTemplateService(t)

	if _, err := svc.Suggest(context.Background(), "no-such-schema", []string{"a"}); err == nil {
		t.Error("Expected error for unknown schema")
	}
}

func TestTemplateService_AutoSaveTagsTemplate(t *testing.T) {
	svc := newTestTemplateService(t)
	ctx := context.Background()

	ds := &dtos.DatasetDto{
		ID:      "ds-1",
		Name:    "houston_export",
		Columns: []string{"inc_no", "alarm_date", "alarm_time"},
	}
	set := mapper.MappingSet{
		{SourceField: "inc_no", TargetField: "incident_id"},
		{SourceField: "alarm_date", TargetField: "incident_date"},
		{SourceField: "alarm_time", TargetField: "incident_time"},
	}

	id, err := svc.AutoSave(ctx, ds, "response-time-analyzer", set)
	if err != nil {
		t.Fatalf("AutoSave failed: %v", err)
	}

	tpl, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if tpl == nil {
		t.Fatal("Expected auto-saved template")
	}
	if len(tpl.Tags) != 1 || tpl.Tags[0] != "auto" {
		t.Errorf("Expected auto tag, got %v", tpl.Tags)
	}
	if len(tpl.SourceSignature) != 3 {
		t.Errorf("Expected dataset columns as signature, got %v", tpl.SourceSignature)
	}
}

func TestTemplateService_Delete(t *testing.T) {
	svc := newTestTemplateService(t)
	ctx := context.Background()

	req := &dtos.SaveTemplateReq{
		Name:     "To delete",
		SchemaID: "response-time-analyzer",
		Mappings: mapper.MappingSet{{SourceField: "inc_no", TargetField: "incident_id"}},
	}
	saved, err := svc.Save(ctx, req, []string{"inc_no"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := svc.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, saved.ID); err == nil {
		t.Error("Expected error deleting missing template")
	}
}

func TestCleanupStaleAutoSaved_NoStaleTemplates(t *testing.T) {
	svc := newTestTemplateService(t)

	removed, err := svc.CleanupStaleAutoSaved(context.Background(), 30*24*time.Hour)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("Expected 0 removed, got %d", removed)
	}
}
