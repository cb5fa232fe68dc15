package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/common"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/constants"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/logging"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/mapper"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/metrics"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/dtos"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/schema"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/transform"
)

// MappingService runs auto-mapping, validation and preview against stored
// dataset snapshots.
type MappingService struct {
	datasets  *DatasetService
	templates *TemplateService
	cache     common.CacheInterface
	metrics   *metrics.MetricsRegistry
}

func NewMappingService(
	datasets *DatasetService,
	templates *TemplateService,
	cache common.CacheInterface,
	m *metrics.MetricsRegistry,
) *MappingService {
	return &MappingService{
		datasets:  datasets,
		templates: templates,
		cache:     cache,
		metrics:   m,
	}
}

// AutoMap proposes mappings for a stored dataset against a target schema.
// Existing mappings are carried through untouched. When the proposal leaves
// no required field unresolved it is auto-saved as a tagged template.
func (s *MappingService) AutoMap(ctx context.Context, req *dtos.AutoMapReq) (*dtos.AutoMapDto, error) {
	targetSchema, err := schema.Get(req.SchemaID)
	if err != nil {
		return nil, err
	}

	ds, err := s.datasets.Get(ctx, req.DatasetID)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, fmt.Errorf("%s: %s", constants.ErrDatasetNotFound, req.DatasetID)
	}

	existing := mapper.MigrateLegacyMappings(req.Existing, targetSchema)

	result := mapper.AutoMap(ds.Columns, ds.Rows, targetSchema, existing)

	s.metrics.AutoMapRunsTotal.Inc()
	s.metrics.AutoMapUnresolvedTargets.Observe(float64(len(result.Unresolved)))

	s.cache.Set(string(constants.CachePrefixDateTimePattern)+req.DatasetID, result.Pattern, 30*time.Minute)

	issues := mapper.Validate(result.Mappings, targetSchema)

	dto := &dtos.AutoMapDto{
		DatasetID:  req.DatasetID,
		SchemaID:   req.SchemaID,
		Mappings:   result.Mappings,
		Unresolved: result.Unresolved,
		Pattern:    result.Pattern,
		Issues:     issues,
	}

	if len(issues) == 0 && s.templates != nil {
		tplID, err := s.templates.AutoSave(ctx, ds, req.SchemaID, result.Mappings)
		if err != nil {
			logging.Warn("Auto-save of mapping template failed", "dataset_id", req.DatasetID, "error", err)
		} else {
			dto.TemplateID = tplID
		}
	}

	logging.Info("Auto-map completed",
		"dataset_id", req.DatasetID,
		"schema_id", req.SchemaID,
		"mapped", len(result.Mappings),
		"unresolved", len(result.Unresolved),
		"pattern", string(result.Pattern.Type),
	)

	return dto, nil
}

// Validate checks a mapping set against a target schema's required fields.
func (s *MappingService) Validate(req *dtos.ValidateMappingsReq) (*dtos.ValidationDto, error) {
	targetSchema, err := schema.Get(req.SchemaID)
	if err != nil {
		return nil, err
	}

	issues := mapper.Validate(req.Mappings, targetSchema)

	return &dtos.ValidationDto{
		Valid:  len(issues) == 0,
		Issues: issues,
	}, nil
}

// Preview applies a mapping set to a dataset's sample rows and reports any
// degraded cells as warnings. Degradation never fails the call.
func (s *MappingService) Preview(ctx context.Context, req *dtos.PreviewReq) (*dtos.PreviewDto, error) {
	targetSchema, err := schema.Get(req.SchemaID)
	if err != nil {
		return nil, err
	}

	ds, err := s.datasets.Get(ctx, req.DatasetID)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, fmt.Errorf("%s: %s", constants.ErrDatasetNotFound, req.DatasetID)
	}

	set := mapper.MigrateLegacyMappings(req.Mappings, targetSchema)

	rows := make([]mapper.Row, 0, len(ds.Rows))
	for _, r := range ds.Rows {
		rows = append(rows, mapper.Row(r))
	}

	out, warnings := transform.ApplyRows(ctx, set, rows)

	transformTypes := transformTypeByTarget(set)
	for _, w := range warnings {
		s.metrics.TransformFailuresTotal.WithLabelValues(transformTypes[w.TargetField]).Inc()
	}

	result := make([]map[string]any, 0, len(out))
	for _, r := range out {
		result = append(result, map[string]any(r))
	}

	return &dtos.PreviewDto{
		Rows:     result,
		Warnings: warnings,
	}, nil
}

// transformTypeByTarget indexes the first transformation type per target for
// metric labels; untransformed targets label as "none".
func transformTypeByTarget(set mapper.MappingSet) map[string]string {
	types := make(map[string]string, len(set))
	for _, m := range set {
		if _, seen := types[m.TargetField]; seen {
			continue
		}
		if len(m.Transformations) > 0 {
			types[m.TargetField] = string(m.Transformations[0].Type)
		} else {
			types[m.TargetField] = "none"
		}
	}
	return types
}
