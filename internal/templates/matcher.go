package templates

import (
	"sort"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/mapper"
)

// Template is a named, reusable mapping set plus the source-column
// signature it was built against.
type Template struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	TargetSchemaID  string            `json:"targetSchemaId"`
	Mappings        mapper.MappingSet `json:"mappings"`
	SourceSignature []string          `json:"sourceSignature"`
	Tags            []string          `json:"tags,omitempty"`
	Score           int               `json:"score,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	LastUsed        time.Time         `json:"lastUsed"`
}

// Suggestion ranks one stored template against a new dataset's columns.
type Suggestion struct {
	Template       Template `json:"template"`
	Score          float64  `json:"score"`
	MatchingFields []string `json:"matchingFields"`
	MissingFields  []string `json:"missingFields"`
}

// Suggest scores every stored template whose target schema matches against
// the current source columns. Similarity is the share of signature fields
// present (normalized) in sourceColumns, as a 0-100 score; 100 means every
// signature field is present. Results are ranked descending, ties broken by
// more recent LastUsed. Templates are never mutated.
func Suggest(stored []Template, sourceColumns []string, targetSchemaID string) []Suggestion {
	present := make(map[string]bool, len(sourceColumns))
	for _, col := range sourceColumns {
		present[mapper.Normalize(col)] = true
	}

	var out []Suggestion
	for _, tpl := range stored {
		if tpl.TargetSchemaID != targetSchemaID || len(tpl.SourceSignature) == 0 {
			continue
		}

		var matching, missing []string
		for _, field := range tpl.SourceSignature {
			if present[mapper.Normalize(field)] {
				matching = append(matching, field)
			} else {
				missing = append(missing, field)
			}
		}

		out = append(out, Suggestion{
			Template:       tpl,
			Score:          float64(len(matching)) / float64(len(tpl.SourceSignature)) * 100,
			MatchingFields: matching,
			MissingFields:  missing,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Template.LastUsed.After(out[j].Template.LastUsed)
	})
	return out
}
