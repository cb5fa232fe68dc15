package mapper

// TransformType identifies one kind of value transformation step.
type TransformType string

const (
	TransformFormat           TransformType = "format"
	TransformSplit            TransformType = "split"
	TransformConvert          TransformType = "convert"
	TransformExtract          TransformType = "extract"
	TransformReplace          TransformType = "replace"
	TransformDateTimeCombine  TransformType = "datetime_combine"
	TransformDateTimeExtract  TransformType = "datetime_extract"
	TransformParseCoordinates TransformType = "parseCoordinates"
)

// DefaultValueSource is the reserved sourceField value meaning "use a
// constant default value instead of a source column".
const DefaultValueSource = "__default__"

// Transformation is one typed step in a mapping's transformation chain.
// Params shape depends on Type; the JSON field names are part of the stored
// template format and must not change.
type Transformation struct {
	Type   TransformType  `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// FieldMapping connects one source column (or the default-value sentinel) to
// one target field, with an ordered transformation chain applied left to
// right. TargetField is always a stable schema field id, never a display
// name; legacy display-name mappings are rewritten by MigrateLegacyMapping.
type FieldMapping struct {
	SourceField     string           `json:"sourceField"`
	TargetField     string           `json:"targetField"`
	Transformations []Transformation `json:"transformations,omitempty"`
}

// MappingSet is the collection of field mappings for one dataset/session.
// At most one entry may exist per exact (sourceField, targetField) pair; a
// source column may fan out to several targets.
type MappingSet []FieldMapping

// Contains reports whether the set already holds the exact
// (sourceField, targetField) pair.
func (ms MappingSet) Contains(sourceField, targetField string) bool {
	for _, m := range ms {
		if m.SourceField == sourceField && m.TargetField == targetField {
			return true
		}
	}
	return false
}

// HasTarget reports whether any mapping resolves the given target field id.
func (ms MappingSet) HasTarget(targetField string) bool {
	for _, m := range ms {
		if m.TargetField == targetField {
			return true
		}
	}
	return false
}

// ForTarget returns all mappings contributing to the given target field id.
func (ms MappingSet) ForTarget(targetField string) []FieldMapping {
	var out []FieldMapping
	for _, m := range ms {
		if m.TargetField == targetField {
			out = append(out, m)
		}
	}
	return out
}

// SourceFields returns the distinct source column names referenced by the
// set, in first-seen order. The default-value sentinel is excluded.
func (ms MappingSet) SourceFields() []string {
	seen := make(map[string]bool, len(ms))
	var out []string
	for _, m := range ms {
		if m.SourceField == DefaultValueSource || seen[m.SourceField] {
			continue
		}
		seen[m.SourceField] = true
		out = append(out, m.SourceField)
	}
	return out
}
