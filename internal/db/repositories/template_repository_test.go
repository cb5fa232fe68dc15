package repositories

import (
	"context"
	"testing"
	"time"

	gormModels "github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(&gormModels.MappingTemplate{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func makeTemplate(t *testing.T, id, name, schemaID string, tags []string, lastUsed time.Time) *gormModels.MappingTemplate {
	t.Helper()

	mappings, err := gormModels.EncodeDoc([]map[string]string{
		{"sourceField": "inc_no", "targetField": "incident_id"},
	})
	if err != nil {
		t.Fatalf("Failed to encode mappings: %v", err)
	}
	signature, err := gormModels.EncodeDoc([]string{"inc_no", "alarm_date"})
	if err != nil {
		t.Fatalf("Failed to encode signature: %v", err)
	}
	tagsDoc, err := gormModels.EncodeDoc(tags)
	if err != nil {
		t.Fatalf("Failed to encode tags: %v", err)
	}

	return &gormModels.MappingTemplate{
		ID:              id,
		Name:            name,
		TargetSchemaID:  schemaID,
		Mappings:        mappings,
		SourceSignature: signature,
		Tags:            tagsDoc,
		LastUsed:        lastUsed,
		CreatedAt:       lastUsed,
	}
}

func TestTemplateRepository_CreateAndGet(t *testing.T) {
	repo := NewTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	tpl := makeTemplate(t, "tpl-1", "CAD Export", "response-time-analyzer", nil, time.Now())
	if err := repo.Create(ctx, tpl); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "tpl-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected template, got nil")
	}
	if got.Name != "CAD Export" {
		t.Errorf("Expected name CAD Export, got %s", got.Name)
	}

	var signature []string
	if err := got.SourceSignature.Decode(&signature); err != nil {
		t.Fatalf("Failed to decode signature: %v", err)
	}
	if len(signature) != 2 || signature[0] != "inc_no" {
		t.Errorf("Unexpected signature round-trip: %v", signature)
	}
}

func TestTemplateRepository_GetByID_NotFound(t *testing.T) {
	repo := NewTemplateRepository(setupTestDB(t))

	got, err := repo.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Expected nil error for missing template, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil template, got %+v", got)
	}
}

func TestTemplateRepository_GetBySchema(t *testing.T) {
	repo := NewTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	now := time.Now()
	if err := repo.Create(ctx, makeTemplate(t, "tpl-1", "A", "response-time-analyzer", nil, now.Add(-time.Hour))); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, makeTemplate(t, "tpl-2", "B", "response-time-analyzer", nil, now)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, makeTemplate(t, "tpl-3", "C", "other-schema", nil, now)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetBySchema(ctx, "response-time-analyzer")
	if err != nil {
		t.Fatalf("GetBySchema failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 templates, got %d", len(got))
	}
	// Most recently used first
	if got[0].ID != "tpl-2" {
		t.Errorf("Expected tpl-2 first, got %s", got[0].ID)
	}
}

func TestTemplateRepository_Delete(t *testing.T) {
	repo := NewTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, makeTemplate(t, "tpl-1", "A", "response-time-analyzer", nil, time.Now())); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(ctx, "tpl-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if err := repo.Delete(ctx, "tpl-1"); err == nil {
		t.Error("Expected error deleting missing template")
	}
}

func TestTemplateRepository_TouchLastUsed(t *testing.T) {
	repo := NewTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	if err := repo.Create(ctx, makeTemplate(t, "tpl-1", "A", "response-time-analyzer", nil, old)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.TouchLastUsed(ctx, "tpl-1"); err != nil {
		t.Fatalf("TouchLastUsed failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "tpl-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.LastUsed.After(old) {
		t.Errorf("Expected last_used to move forward, got %v", got.LastUsed)
	}
}

func TestTemplateRepository_DeleteStaleAutoSaved(t *testing.T) {
	repo := NewTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	now := time.Now()
	stale := now.Add(-40 * 24 * time.Hour)

	// Stale and auto-tagged: reclaimed
	if err := repo.Create(ctx, makeTemplate(t, "tpl-stale", "A", "response-time-analyzer", []string{"auto"}, stale)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// Auto-tagged but fresh: kept
	if err := repo.Create(ctx, makeTemplate(t, "tpl-fresh", "B", "response-time-analyzer", []string{"auto"}, now)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// Stale but user-named: kept
	if err := repo.Create(ctx, makeTemplate(t, "tpl-named", "C", "response-time-analyzer", nil, stale)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	removed, err := repo.DeleteStaleAutoSaved(ctx, "auto", now.Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteStaleAutoSaved failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 removed, got %d", removed)
	}

	for _, id := range []string{"tpl-fresh", "tpl-named"} {
		got, err := repo.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got == nil {
			t.Errorf("Expected %s to survive cleanup", id)
		}
	}
}
