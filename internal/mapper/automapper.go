package mapper

import (
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/parsers"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/schema"
)

// Result is the outcome of one auto-map run.
type Result struct {
	Mappings   MappingSet              `json:"mappings"`
	Unresolved []string                `json:"unresolvedTargets,omitempty"`
	Pattern    parsers.DateTimePattern `json:"dateTimePattern"`
}

// AutoMap proposes a mapping from the source columns to the target schema
// without user input. Target fields are visited in schema-declared order;
// for each, the strategy chain runs with early exit and the first success
// wins. Targets already resolved by the existing set are left untouched, so
// re-running with a populated set neither duplicates pairs nor drifts.
// Inputs are never mutated.
func AutoMap(sourceColumns []string, sampleRows []Row, s *schema.TargetSchema, existing MappingSet) Result {
	pattern := parsers.DetectDateTimePattern(sourceColumns, sampleRows)

	set := make(MappingSet, 0, len(existing)+len(s.RequiredFields)+len(s.OptionalFields))
	set = append(set, existing...)

	ctx := newStrategyContext(sourceColumns, sampleRows, pattern, set)

	var unresolved []string
	for _, target := range s.AllFields() {
		if set.HasTarget(target.ID) {
			continue
		}

		resolved := false
		for _, st := range strategies {
			m, ok := st.fn(ctx, target)
			if !ok {
				continue
			}
			// Only the exact (source, target) pair is deduplicated; a
			// source column fanning out to a second target is deliberate.
			if !set.Contains(m.SourceField, m.TargetField) {
				set = append(set, m)
				ctx.set = set
			}
			resolved = true
			break
		}
		if !resolved {
			unresolved = append(unresolved, target.ID)
		}
	}

	return Result{Mappings: set, Unresolved: unresolved, Pattern: pattern}
}
