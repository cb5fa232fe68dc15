package transform

import (
	"context"
	"testing"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/mapper"
)

func TestApplyRowCollectsWarnings(t *testing.T) {
	set := mapper.MappingSet{
		{SourceField: "id", TargetField: "incident_id"},
		{SourceField: "when", TargetField: "incident_date",
			Transformations: []mapper.Transformation{{Type: mapper.TransformFormat, Params: map[string]any{"format": "YYYY-MM-DD"}}}},
	}
	out, warnings := ApplyRow(set, mapper.Row{"id": "1", "when": "not a date"})

	if out["incident_id"] != "1" {
		t.Errorf("incident_id = %v", out["incident_id"])
	}
	if out["incident_date"] != InvalidDate {
		t.Errorf("incident_date = %v, want placeholder", out["incident_date"])
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if warnings[0].TargetField != "incident_date" {
		t.Errorf("warning target = %q", warnings[0].TargetField)
	}
}

func TestApplyRowDualMapping(t *testing.T) {
	// incident_date and incident_time both fed from the same source column.
	set := mapper.MappingSet{
		{SourceField: "incident_date", TargetField: "incident_date",
			Transformations: []mapper.Transformation{{Type: mapper.TransformFormat, Params: map[string]any{"format": "date-only"}}}},
		{SourceField: "incident_date", TargetField: "incident_time",
			Transformations: []mapper.Transformation{{Type: mapper.TransformDateTimeExtract, Params: map[string]any{"extractType": "time"}}}},
	}
	out, warnings := ApplyRow(set, mapper.Row{"incident_date": "2024-05-01T13:45:00"})

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if out["incident_date"] != "2024-05-01" {
		t.Errorf("incident_date = %v, want date-only", out["incident_date"])
	}
	if out["incident_time"] != "13:45:00" {
		t.Errorf("incident_time = %v, want time component", out["incident_time"])
	}
}

func TestApplyRowsKeepsOrder(t *testing.T) {
	set := mapper.MappingSet{{SourceField: "n", TargetField: "incident_id"}}
	rows := []mapper.Row{{"n": "a"}, {"n": "b"}, {"n": "c"}}

	out, warnings := ApplyRows(context.Background(), set, rows)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	for i, want := range []string{"a", "b", "c"} {
		if out[i]["incident_id"] != want {
			t.Errorf("row %d = %v, want %v", i, out[i]["incident_id"], want)
		}
	}
}
