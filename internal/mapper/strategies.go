package mapper

import (
	"fmt"
	"strings"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/parsers"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/schema"
)

// Row is one record of a dataset snapshot, keyed by source column name.
type Row = map[string]any

// strategyContext carries the immutable dataset snapshot plus the mapping
// set built so far. Parsed derived values are threaded through here rather
// than held in any ambient cache.
type strategyContext struct {
	columns    []string
	normalized map[string]string // Normalize(column) -> original column, first wins
	rows       []Row
	pattern    parsers.DateTimePattern
	set        MappingSet
}

func newStrategyContext(columns []string, rows []Row, pattern parsers.DateTimePattern, set MappingSet) *strategyContext {
	normalized := make(map[string]string, len(columns))
	for _, col := range columns {
		key := Normalize(col)
		if _, exists := normalized[key]; !exists {
			normalized[key] = col
		}
	}
	return &strategyContext{
		columns:    columns,
		normalized: normalized,
		rows:       rows,
		pattern:    pattern,
		set:        set,
	}
}

func (ctx *strategyContext) firstSample(col string) string {
	for _, row := range ctx.rows {
		if v, ok := row[col]; ok && v != nil {
			s := strings.TrimSpace(fmt.Sprintf("%v", v))
			if s != "" {
				return s
			}
		}
	}
	return ""
}

// strategy is one candidate-generation step of the auto-map chain. The
// chain is evaluated in order with early exit, so individual strategies can
// be inserted, reordered and tested in isolation.
type strategy struct {
	name string
	fn   func(ctx *strategyContext, target schema.TargetField) (FieldMapping, bool)
}

// strategies is the fixed-priority chain. Order is load-bearing.
var strategies = []strategy{
	{"exact", matchExact},
	{"normalized-display-name", matchNormalizedDisplayName},
	{"normalized-id", matchNormalizedID},
	{"synonym", matchSynonym},
	{"fuzzy-substring", matchFuzzySubstring},
	{"derived-parse", matchDerivedParse},
	{"datetime-pattern", matchDateTimePattern},
}

func matchExact(ctx *strategyContext, target schema.TargetField) (FieldMapping, bool) {
	for _, col := range ctx.columns {
		if strings.EqualFold(strings.TrimSpace(col), strings.TrimSpace(target.DisplayName)) {
			return FieldMapping{SourceField: col, TargetField: target.ID}, true
		}
	}
	return FieldMapping{}, false
}

func matchNormalizedDisplayName(ctx *strategyContext, target schema.TargetField) (FieldMapping, bool) {
	if col, ok := ctx.normalized[Normalize(target.DisplayName)]; ok {
		return FieldMapping{SourceField: col, TargetField: target.ID}, true
	}
	return FieldMapping{}, false
}

func matchNormalizedID(ctx *strategyContext, target schema.TargetField) (FieldMapping, bool) {
	if col, ok := ctx.normalized[Normalize(target.ID)]; ok {
		return FieldMapping{SourceField: col, TargetField: target.ID}, true
	}
	return FieldMapping{}, false
}

func matchSynonym(ctx *strategyContext, target schema.TargetField) (FieldMapping, bool) {
	for _, variation := range variationsFor(target.ID) {
		if col, ok := ctx.normalized[Normalize(variation)]; ok {
			return FieldMapping{SourceField: col, TargetField: target.ID}, true
		}
	}
	return FieldMapping{}, false
}

func matchFuzzySubstring(ctx *strategyContext, target schema.TargetField) (FieldMapping, bool) {
	targetKey := Normalize(target.DisplayName)
	if len(targetKey) < 3 {
		return FieldMapping{}, false
	}
	for _, col := range ctx.columns {
		colKey := Normalize(col)
		if len(colKey) < 3 {
			continue
		}
		if strings.Contains(colKey, targetKey) || strings.Contains(targetKey, colKey) {
			return FieldMapping{SourceField: col, TargetField: target.ID}, true
		}
	}
	return FieldMapping{}, false
}

// addressTokens and coordinateTokens flag source columns whose name suggests
// a combined address or coordinate blob worth parsing.
var (
	addressTokens    = []string{"address", "location"}
	coordinateTokens = []string{"geom", "point", "coord"}
)

func nameContainsAny(col string, tokens []string) bool {
	key := Normalize(col)
	for _, tok := range tokens {
		if strings.Contains(key, tok) {
			return true
		}
	}
	return false
}

// matchDerivedParse covers city, state, longitude and latitude targets whose
// values hide inside a combined address string or a WKT point blob. The
// emitted mapping carries the transformation that re-derives the component
// per row instead of a bare field copy.
func matchDerivedParse(ctx *strategyContext, target schema.TargetField) (FieldMapping, bool) {
	switch target.ID {
	case "city", "state":
		for _, col := range ctx.columns {
			if !nameContainsAny(col, addressTokens) {
				continue
			}
			if _, _, ok := parsers.ParseAddress(ctx.firstSample(col)); ok {
				return FieldMapping{
					SourceField: col,
					TargetField: target.ID,
					Transformations: []Transformation{
						{Type: TransformExtract, Params: map[string]any{"component": target.ID}},
					},
				}, true
			}
		}
	case "longitude", "latitude":
		for _, col := range ctx.columns {
			if !nameContainsAny(col, coordinateTokens) {
				continue
			}
			if _, _, ok := parsers.ParsePointCoordinates(ctx.firstSample(col)); ok {
				return FieldMapping{
					SourceField: col,
					TargetField: target.ID,
					Transformations: []Transformation{
						{Type: TransformParseCoordinates, Params: map[string]any{"component": target.ID}},
					},
				}, true
			}
		}
	}
	return FieldMapping{}, false
}

// matchDateTimePattern accepts a suggestion from the dataset-wide datetime
// classification when it is confident enough and the target is still
// unclaimed. An existing explicit mapping is never overwritten.
func matchDateTimePattern(ctx *strategyContext, target schema.TargetField) (FieldMapping, bool) {
	if ctx.pattern.Confidence <= 0.5 {
		return FieldMapping{}, false
	}
	for _, sug := range ctx.pattern.Suggestions {
		if sug.TargetField != target.ID {
			continue
		}
		if ctx.set.HasTarget(target.ID) {
			return FieldMapping{}, false
		}
		m := FieldMapping{SourceField: sug.SourceField, TargetField: target.ID}
		switch sug.Transform {
		case string(TransformDateTimeCombine):
			m.Transformations = []Transformation{
				{Type: TransformDateTimeCombine, Params: map[string]any{"fields": sug.ExtraFields}},
			}
		case string(TransformDateTimeExtract):
			m.Transformations = []Transformation{
				{Type: TransformDateTimeExtract, Params: map[string]any{"extractType": sug.ExtractType}},
			}
		}
		return m, true
	}
	return FieldMapping{}, false
}
