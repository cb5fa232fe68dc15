package schema

// DataType enumerates the value types a target field can carry.
type DataType string

const (
	TypeString   DataType = "string"
	TypeNumber   DataType = "number"
	TypeBoolean  DataType = "boolean"
	TypeDate     DataType = "date"
	TypeLocation DataType = "location"
)

// TargetField describes one field of a target schema. ID is the stable
// identifier mappings must reference; DisplayName is the human label and
// may change without changing ID.
type TargetField struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	DataType    DataType `json:"dataType"`
	Required    bool     `json:"required"`
	Format      string   `json:"format,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// TargetSchema is the ordered set of fields a downstream tool expects.
// Immutable for the duration of a mapping session.
type TargetSchema struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	RequiredFields []TargetField `json:"requiredFields"`
	OptionalFields []TargetField `json:"optionalFields"`
}

// AllFields returns required fields followed by optional fields, preserving
// schema-declared order.
func (s *TargetSchema) AllFields() []TargetField {
	fields := make([]TargetField, 0, len(s.RequiredFields)+len(s.OptionalFields))
	fields = append(fields, s.RequiredFields...)
	fields = append(fields, s.OptionalFields...)
	return fields
}

// FieldByID looks up a field by its stable identifier.
func (s *TargetSchema) FieldByID(id string) (TargetField, bool) {
	for _, f := range s.AllFields() {
		if f.ID == id {
			return f, true
		}
	}
	return TargetField{}, false
}

// FieldByDisplayName looks up a field by its human label. Only the legacy
// mapping migration should need this.
func (s *TargetSchema) FieldByDisplayName(name string) (TargetField, bool) {
	for _, f := range s.AllFields() {
		if f.DisplayName == name {
			return f, true
		}
	}
	return TargetField{}, false
}
