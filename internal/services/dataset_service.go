package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/common"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/constants"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/db/repositories"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/logging"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/metrics"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/dtos"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/entities"

	"github.com/google/uuid"
)

// DatasetService ingests uploaded exports and serves their stored snapshots.
type DatasetService struct {
	repo    *repositories.DatasetRepo
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
}

func NewDatasetService(repo *repositories.DatasetRepo, cache common.CacheInterface, m *metrics.MetricsRegistry) *DatasetService {
	return &DatasetService{
		repo:    repo,
		cache:   cache,
		metrics: m,
	}
}

// Ingest stores a dataset snapshot: its column list plus a bounded sample-row
// prefix. Raw CSV payloads are parsed here; pre-parsed columns and rows are
// taken as-is.
func (s *DatasetService) Ingest(ctx context.Context, req *dtos.IngestDatasetReq) (*dtos.DatasetDto, error) {
	columns := req.Columns
	rows := req.Rows

	if req.CSV != "" {
		var err error
		columns, rows, err = parseCSVSnapshot(req.CSV)
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv payload: %w", err)
		}
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("dataset has no columns")
	}

	if len(rows) > constants.SampleRowLimit {
		rows = rows[:constants.SampleRowLimit]
	}

	colsJSON, err := json.Marshal(columns)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize columns: %w", err)
	}
	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize sample rows: %w", err)
	}

	ds := &entities.Dataset{
		ID:            uuid.New().String(),
		Name:          req.Name,
		SourceColumns: string(colsJSON),
		SampleRows:    string(rowsJSON),
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Insert(ctx, ds); err != nil {
		return nil, fmt.Errorf("failed to store dataset: %w", err)
	}

	s.metrics.DatasetsIngestedTotal.Inc()
	logging.Info("Dataset ingested", "dataset_id", ds.ID, "columns", len(columns), "sample_rows", len(rows))

	dto := &dtos.DatasetDto{
		ID:      ds.ID,
		Name:    ds.Name,
		Columns: columns,
		Rows:    rows,
	}

	s.cache.Set(string(constants.CachePrefixDataset)+ds.ID, dto, 10*time.Minute)

	return dto, nil
}

// Get returns a dataset snapshot by ID, or nil when absent.
func (s *DatasetService) Get(ctx context.Context, id string) (*dtos.DatasetDto, error) {
	if val, found := s.cache.Get(string(constants.CachePrefixDataset) + id); found {
		if dto, ok := val.(*dtos.DatasetDto); ok {
			s.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixDataset)).Inc()
			return dto, nil
		}
	}
	s.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixDataset)).Inc()

	ds, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	if ds == nil {
		return nil, nil
	}

	var columns []string
	if err := json.Unmarshal([]byte(ds.SourceColumns), &columns); err != nil {
		return nil, fmt.Errorf("failed to decode stored columns: %w", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal([]byte(ds.SampleRows), &rows); err != nil {
		return nil, fmt.Errorf("failed to decode stored sample rows: %w", err)
	}

	dto := &dtos.DatasetDto{
		ID:      ds.ID,
		Name:    ds.Name,
		Columns: columns,
		Rows:    rows,
	}

	s.cache.Set(string(constants.CachePrefixDataset)+id, dto, 10*time.Minute)

	return dto, nil
}

// Delete removes a dataset snapshot and its cached copies.
func (s *DatasetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}

	s.cache.Delete(string(constants.CachePrefixDataset) + id)
	s.cache.Delete(string(constants.CachePrefixDateTimePattern) + id)

	return nil
}

// parseCSVSnapshot reads the header row plus at most SampleRowLimit data rows.
// Short records are padded so every sample row carries every column key.
func parseCSVSnapshot(payload string) ([]string, []map[string]any, error) {
	reader := csv.NewReader(strings.NewReader(payload))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make([]string, 0, len(header))
	for _, col := range header {
		columns = append(columns, strings.TrimSpace(col))
	}

	var rows []map[string]any
	for len(rows) < constants.SampleRowLimit {
		record, err := reader.Read()
		if err != nil {
			break
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}
