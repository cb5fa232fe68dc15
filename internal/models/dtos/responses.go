package dtos

import (
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/mapper"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/parsers"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/templates"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/transform"
)

// APIResponse is the standard envelope for all API replies.
type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime string `json:"response_time,omitempty"`
	Data         any    `json:"data,omitempty"`
}

type DatasetDto struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"sample_rows"`
}

type AutoMapDto struct {
	DatasetID  string                   `json:"dataset_id"`
	SchemaID   string                   `json:"schema_id"`
	Mappings   mapper.MappingSet        `json:"mappings"`
	Unresolved []string                 `json:"unresolved_targets,omitempty"`
	Pattern    parsers.DateTimePattern  `json:"datetime_pattern"`
	Issues     []mapper.ValidationIssue `json:"issues,omitempty"`
	TemplateID string                   `json:"autosaved_template_id,omitempty"`
}

type PreviewDto struct {
	Rows     []map[string]any       `json:"rows"`
	Warnings []transform.RowWarning `json:"warnings,omitempty"`
}

type ValidationDto struct {
	Valid  bool                     `json:"valid"`
	Issues []mapper.ValidationIssue `json:"issues,omitempty"`
}

type SuggestionsDto struct {
	Suggestions []templates.Suggestion `json:"suggestions"`
}
