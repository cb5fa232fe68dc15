package entities

import "time"

// Dataset is the stored snapshot of an uploaded export: its column list and
// a small sample-row prefix, both serialized as JSON text.
type Dataset struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	SourceColumns string    `db:"source_columns"`
	SampleRows    string    `db:"sample_rows"`
	CreatedAt     time.Time `db:"created_at"`
}
