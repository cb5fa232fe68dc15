package repositories

import (
	"context"
	"fmt"
	"time"

	gormModels "github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/gorm"

	"gorm.io/gorm"
)

// TemplateRepository handles mapping-template table operations using GORM
type TemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new GORM-based template repository
func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create inserts a new mapping template
func (r *TemplateRepository) Create(ctx context.Context, tpl *gormModels.MappingTemplate) error {
	if err := r.db.WithContext(ctx).Create(tpl).Error; err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// GetByID retrieves a template by its ID
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*gormModels.MappingTemplate, error) {
	var tpl gormModels.MappingTemplate

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tpl).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}

	return &tpl, nil
}

// GetAll retrieves all saved templates
func (r *TemplateRepository) GetAll(ctx context.Context) ([]gormModels.MappingTemplate, error) {
	var tpls []gormModels.MappingTemplate

	err := r.db.WithContext(ctx).
		Order("last_used DESC").
		Find(&tpls).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch templates: %w", err)
	}

	return tpls, nil
}

// GetBySchema retrieves all templates saved against a target schema
func (r *TemplateRepository) GetBySchema(ctx context.Context, schemaID string) ([]gormModels.MappingTemplate, error) {
	var tpls []gormModels.MappingTemplate

	err := r.db.WithContext(ctx).
		Where("target_schema_id = ?", schemaID).
		Order("last_used DESC").
		Find(&tpls).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch templates: %w", err)
	}

	return tpls, nil
}

// Delete removes a template by ID
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&gormModels.MappingTemplate{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete template: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("template not found with ID: %s", id)
	}

	return nil
}

// TouchLastUsed stamps a template as used now
func (r *TemplateRepository) TouchLastUsed(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.MappingTemplate{}).
		Where("id = ?", id).
		Update("last_used", time.Now())

	if result.Error != nil {
		return fmt.Errorf("failed to touch template: %w", result.Error)
	}

	return nil
}

// DeleteStaleAutoSaved removes auto-saved templates not used since the cutoff.
// Tags are stored as a JSON array, so the match is on the serialized form.
func (r *TemplateRepository) DeleteStaleAutoSaved(ctx context.Context, tag string, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("tags LIKE ?", "%\""+tag+"\"%").
		Where("last_used < ?", cutoff).
		Delete(&gormModels.MappingTemplate{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete stale templates: %w", result.Error)
	}

	return result.RowsAffected, nil
}
