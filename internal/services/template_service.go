package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/common"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/constants"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/db/repositories"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/logging"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/mapper"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/metrics"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/dtos"
	gormModels "github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/gorm"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/schema"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/templates"

	"github.com/google/uuid"
)

// TemplateService stores mapping templates and ranks them against new
// datasets.
type TemplateService struct {
	repo    *repositories.TemplateRepository
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
}

func NewTemplateService(repo *repositories.TemplateRepository, cache common.CacheInterface, m *metrics.MetricsRegistry) *TemplateService {
	return &TemplateService{
		repo:    repo,
		cache:   cache,
		metrics: m,
	}
}

// Save stores a named template built from a mapping set plus the column
// signature of the dataset it was authored against.
func (s *TemplateService) Save(ctx context.Context, req *dtos.SaveTemplateReq, signature []string) (*templates.Template, error) {
	targetSchema, err := schema.Get(req.SchemaID)
	if err != nil {
		return nil, err
	}

	set := mapper.MigrateLegacyMappings(req.Mappings, targetSchema)

	tpl := templates.Template{
		ID:              uuid.New().String(),
		Name:            req.Name,
		TargetSchemaID:  req.SchemaID,
		Mappings:        set,
		SourceSignature: append([]string(nil), signature...),
		Tags:            append([]string(nil), req.Tags...),
		CreatedAt:       time.Now(),
		LastUsed:        time.Now(),
	}

	record, err := toRecord(tpl)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.invalidateSuggestions(req.SchemaID)
	logging.Info("Template saved", "template_id", tpl.ID, "schema_id", req.SchemaID, "name", req.Name)

	return &tpl, nil
}

// AutoSave stores a template derived from a fully-resolved auto-map run,
// tagged so the cleanup job can reclaim it once stale.
func (s *TemplateService) AutoSave(ctx context.Context, ds *dtos.DatasetDto, schemaID string, set mapper.MappingSet) (string, error) {
	req := &dtos.SaveTemplateReq{
		Name:     fmt.Sprintf("%s (auto-mapped)", ds.Name),
		SchemaID: schemaID,
		Mappings: set,
		Tags:     []string{constants.AutoSaveTag},
	}

	tpl, err := s.Save(ctx, req, ds.Columns)
	if err != nil {
		return "", err
	}
	return tpl.ID, nil
}

// Get returns one stored template, or nil when absent.
func (s *TemplateService) Get(ctx context.Context, id string) (*templates.Template, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	tpl, err := fromRecord(record)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// List returns all stored templates, most recently used first.
func (s *TemplateService) List(ctx context.Context) ([]templates.Template, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return fromRecords(records)
}

// Delete removes a stored template.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%s: %s", constants.ErrTemplateNotFound, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateSuggestions(record.TargetSchemaID)
	return nil
}

// Suggest ranks stored templates for a schema against a dataset's columns.
// Legacy display-name mappings are migrated on load, never rewritten in
// storage. The top match, if any, gets its last-used stamp refreshed.
func (s *TemplateService) Suggest(ctx context.Context, schemaID string, sourceColumns []string) ([]templates.Suggestion, error) {
	targetSchema, err := schema.Get(schemaID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.GetBySchema(ctx, schemaID)
	if err != nil {
		return nil, err
	}

	stored, err := fromRecords(records)
	if err != nil {
		return nil, err
	}

	for i := range stored {
		stored[i].Mappings = mapper.MigrateLegacyMappings(stored[i].Mappings, targetSchema)
	}

	suggestions := templates.Suggest(stored, sourceColumns, schemaID)
	s.metrics.TemplateSuggestionsTotal.Inc()

	if len(suggestions) > 0 {
		if err := s.repo.TouchLastUsed(ctx, suggestions[0].Template.ID); err != nil {
			logging.Warn("Failed to touch template", "template_id", suggestions[0].Template.ID, "error", err)
		}
	}

	return suggestions, nil
}

// CleanupStaleAutoSaved deletes auto-saved templates unused since the cutoff
// and reports how many were removed.
func (s *TemplateService) CleanupStaleAutoSaved(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	return s.repo.DeleteStaleAutoSaved(ctx, constants.AutoSaveTag, cutoff)
}

func (s *TemplateService) invalidateSuggestions(schemaID string) {
	s.cache.Delete(string(constants.CachePrefixSuggestions) + schemaID)
}

func toRecord(tpl templates.Template) (*gormModels.MappingTemplate, error) {
	mappings, err := gormModels.EncodeDoc(tpl.Mappings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mappings: %w", err)
	}
	signature, err := gormModels.EncodeDoc(tpl.SourceSignature)
	if err != nil {
		return nil, fmt.Errorf("failed to encode signature: %w", err)
	}
	tags, err := gormModels.EncodeDoc(tpl.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	return &gormModels.MappingTemplate{
		ID:              tpl.ID,
		Name:            tpl.Name,
		TargetSchemaID:  tpl.TargetSchemaID,
		Mappings:        mappings,
		SourceSignature: signature,
		Tags:            tags,
		Score:           tpl.Score,
		LastUsed:        tpl.LastUsed,
		CreatedAt:       tpl.CreatedAt,
	}, nil
}

func fromRecord(record *gormModels.MappingTemplate) (templates.Template, error) {
	tpl := templates.Template{
		ID:             record.ID,
		Name:           record.Name,
		TargetSchemaID: record.TargetSchemaID,
		Score:          record.Score,
		CreatedAt:      record.CreatedAt,
		LastUsed:       record.LastUsed,
	}

	if err := record.Mappings.Decode(&tpl.Mappings); err != nil {
		return tpl, fmt.Errorf("failed to decode mappings for template %s: %w", record.ID, err)
	}
	if err := record.SourceSignature.Decode(&tpl.SourceSignature); err != nil {
		return tpl, fmt.Errorf("failed to decode signature for template %s: %w", record.ID, err)
	}
	if err := record.Tags.Decode(&tpl.Tags); err != nil {
		return tpl, fmt.Errorf("failed to decode tags for template %s: %w", record.ID, err)
	}

	return tpl, nil
}

func fromRecords(records []gormModels.MappingTemplate) ([]templates.Template, error) {
	out := make([]templates.Template, 0, len(records))
	for i := range records {
		tpl, err := fromRecord(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, nil
}
