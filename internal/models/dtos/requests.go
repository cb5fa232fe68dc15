package dtos

import "github.com/AZJJH2025/fire-ems-tools-sub010/internal/mapper"

// IngestDatasetReq uploads a dataset snapshot. Either a raw CSV payload or
// pre-parsed columns plus rows may be supplied.
type IngestDatasetReq struct {
	Name    string           `json:"name"`
	CSV     string           `json:"csv,omitempty"`
	Columns []string         `json:"columns,omitempty"`
	Rows    []map[string]any `json:"rows,omitempty"`
}

type AutoMapReq struct {
	DatasetID string            `json:"dataset_id"`
	SchemaID  string            `json:"schema_id"`
	Existing  mapper.MappingSet `json:"existing,omitempty"`
}

type ValidateMappingsReq struct {
	SchemaID string            `json:"schema_id"`
	Mappings mapper.MappingSet `json:"mappings"`
}

type PreviewReq struct {
	DatasetID string            `json:"dataset_id"`
	SchemaID  string            `json:"schema_id"`
	Mappings  mapper.MappingSet `json:"mappings"`
}

type SaveTemplateReq struct {
	Name      string            `json:"name"`
	SchemaID  string            `json:"schema_id"`
	DatasetID string            `json:"dataset_id,omitempty"`
	Mappings  mapper.MappingSet `json:"mappings"`
	Tags      []string          `json:"tags,omitempty"`
}
