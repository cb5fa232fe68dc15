package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSONDoc stores an arbitrary JSON document in a jsonb column.
type JSONDoc []byte

// Scan implements the sql.Scanner interface for JSONDoc
func (j *JSONDoc) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSONDoc(v)
	}
	return nil
}

// Value implements the driver.Valuer interface for JSONDoc
func (j JSONDoc) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

// MarshalJSON keeps the stored document intact when re-serialized.
func (j JSONDoc) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON stores the raw document as-is.
func (j *JSONDoc) UnmarshalJSON(data []byte) error {
	*j = append((*j)[:0], data...)
	return nil
}

// MappingTemplate is a saved mapping configuration plus the source-column
// signature it was created against.
type MappingTemplate struct {
	ID              string    `gorm:"column:id;primaryKey;type:uuid"`
	Name            string    `gorm:"column:name"`
	TargetSchemaID  string    `gorm:"column:target_schema_id;index"`
	Mappings        JSONDoc   `gorm:"column:mappings;type:jsonb"`
	SourceSignature JSONDoc   `gorm:"column:source_signature;type:jsonb"`
	Tags            JSONDoc   `gorm:"column:tags;type:jsonb"`
	Score           int       `gorm:"column:score"`
	LastUsed        time.Time `gorm:"column:last_used"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MappingTemplate) TableName() string {
	return "mapping_templates"
}

// Decode unmarshals a JSONDoc column into out.
func (j JSONDoc) Decode(out any) error {
	if len(j) == 0 {
		return nil
	}
	return json.Unmarshal(j, out)
}

// EncodeDoc marshals a value into a JSONDoc column.
func EncodeDoc(in any) (JSONDoc, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	return JSONDoc(data), nil
}
