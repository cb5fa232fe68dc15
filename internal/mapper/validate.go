package mapper

import (
	"fmt"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/schema"
)

// Severity grades a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationIssue reports one problem found when checking a mapping set
// against a target schema.
type ValidationIssue struct {
	TargetField string   `json:"targetField"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
}

// Validate checks that every required target field is resolved by some
// mapping, either by stable id or by legacy display-name equivalence.
// Optional fields never raise issues. Produces exactly one error per unmet
// required field.
func Validate(set MappingSet, s *schema.TargetSchema) []ValidationIssue {
	var issues []ValidationIssue
	for _, target := range s.RequiredFields {
		if resolvesTarget(set, target) {
			continue
		}
		issues = append(issues, ValidationIssue{
			TargetField: target.ID,
			Severity:    SeverityError,
			Message:     fmt.Sprintf("required field %q has no mapping", target.ID),
		})
	}
	return issues
}

// resolvesTarget accepts the stable id, or a legacy display-name mapping
// that MigrateLegacyMapping has not rewritten yet.
func resolvesTarget(set MappingSet, target schema.TargetField) bool {
	for _, m := range set {
		if m.TargetField == target.ID || m.TargetField == target.DisplayName {
			return true
		}
	}
	return false
}
