package transform

import (
	"testing"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/mapper"
)

func tr(t mapper.TransformType, params map[string]any) mapper.Transformation {
	return mapper.Transformation{Type: t, Params: params}
}

func TestFormatDateOnlyStripsTime(t *testing.T) {
	for _, format := range []string{"YYYY-MM-DD", "date-only"} {
		got, err := Apply("2024-05-01T13:45:00", tr(mapper.TransformFormat, map[string]any{"format": format}), nil)
		if err != nil {
			t.Fatalf("format %s: unexpected error %v", format, err)
		}
		if got != "2024-05-01" {
			t.Errorf("format %s: got %v, want 2024-05-01 with no time component", format, got)
		}
	}
}

func TestFormatTokens(t *testing.T) {
	cases := []struct {
		format string
		params map[string]any
		in     string
		want   string
	}{
		{"MM/DD/YYYY", nil, "2024-05-01", "05/01/2024"},
		{"DD/MM/YYYY", nil, "2024-05-01", "01/05/2024"},
		{"auto", nil, "2024-05-01", "2024-05-01"},
		{"auto", nil, "2024-05-01T13:45:00", "2024-05-01T13:45:00"},
		{"custom", map[string]any{"customFormat": "YYYY/MM/DD HH:mm:ss"}, "2024-05-01T13:45:09", "2024/05/01 13:45:09"},
	}

	for _, c := range cases {
		params := map[string]any{"format": c.format}
		for k, v := range c.params {
			params[k] = v
		}
		got, err := Apply(c.in, tr(mapper.TransformFormat, params), nil)
		if err != nil {
			t.Fatalf("%s(%q): unexpected error %v", c.format, c.in, err)
		}
		if got != c.want {
			t.Errorf("%s(%q) = %v, want %v", c.format, c.in, got, c.want)
		}
	}
}

func TestFormatUnparseableYieldsSentinel(t *testing.T) {
	got, err := Apply("not a date", tr(mapper.TransformFormat, map[string]any{"format": "auto"}), nil)
	if err == nil {
		t.Error("expected a degradation error")
	}
	if got != InvalidDate {
		t.Errorf("got %v, want %q", got, InvalidDate)
	}
}

func TestSplit(t *testing.T) {
	got, err := Apply("FIRE - Structure", tr(mapper.TransformSplit, map[string]any{"delimiter": "-", "index": 1}), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Structure" {
		t.Errorf("got %v, want Structure", got)
	}
}

func TestSplitIndexOutOfRange(t *testing.T) {
	got, err := Apply("a,b", tr(mapper.TransformSplit, map[string]any{"delimiter": ",", "index": 5}), nil)
	if err == nil {
		t.Error("expected a degradation error")
	}
	if got != IndexNotFound {
		t.Errorf("got %v, want %q", got, IndexNotFound)
	}
}

func TestConvert(t *testing.T) {
	got, err := Apply("1,234.5", tr(mapper.TransformConvert, map[string]any{"to": "number"}), nil)
	if err != nil || got != 1234.5 {
		t.Errorf("number: got (%v, %v)", got, err)
	}

	got, err = Apply("Yes", tr(mapper.TransformConvert, map[string]any{"to": "boolean"}), nil)
	if err != nil || got != true {
		t.Errorf("boolean: got (%v, %v)", got, err)
	}

	got, err = Apply(42, tr(mapper.TransformConvert, map[string]any{"to": "string"}), nil)
	if err != nil || got != "42" {
		t.Errorf("string: got (%v, %v)", got, err)
	}
}

func TestConvertDefaultValueForEmptyInput(t *testing.T) {
	got, err := Apply(nil, tr(mapper.TransformConvert, map[string]any{"to": "string", "defaultValue": "UNKNOWN"}), nil)
	if err != nil || got != "UNKNOWN" {
		t.Errorf("got (%v, %v), want UNKNOWN", got, err)
	}

	got, err = Apply("", tr(mapper.TransformConvert, map[string]any{"to": "number", "defaultValue": "0"}), nil)
	if err != nil || got != 0.0 {
		t.Errorf("got (%v, %v), want 0", got, err)
	}
}

func TestExtractPattern(t *testing.T) {
	got, err := Apply("Unit E41 responded", tr(mapper.TransformExtract, map[string]any{"pattern": `Unit (\w+)`}), nil)
	if err != nil || got != "E41" {
		t.Errorf("got (%v, %v), want E41", got, err)
	}

	got, err = Apply("no match here", tr(mapper.TransformExtract, map[string]any{"pattern": `Unit (\w+)`}), nil)
	if err != nil || got != "" {
		t.Errorf("no match: got (%v, %v), want empty", got, err)
	}
}

func TestExtractAddressComponents(t *testing.T) {
	addr := "2805 Navigation Blvd Houston TX"

	city, err := Apply(addr, tr(mapper.TransformExtract, map[string]any{"component": "city"}), nil)
	if err != nil || city != "Houston" {
		t.Errorf("city: got (%v, %v)", city, err)
	}

	state, err := Apply(addr, tr(mapper.TransformExtract, map[string]any{"component": "state"}), nil)
	if err != nil || state != "TX" {
		t.Errorf("state: got (%v, %v)", state, err)
	}
}

func TestReplace(t *testing.T) {
	got, err := Apply("E-41", tr(mapper.TransformReplace, map[string]any{"from": "-", "to": ""}), nil)
	if err != nil || got != "E41" {
		t.Errorf("got (%v, %v), want E41", got, err)
	}
}

func TestDateTimeCombine(t *testing.T) {
	row := mapper.Row{"call_date": "05/01/2024", "event_time": "13:45:00"}
	got, err := Apply("05/01/2024", tr(mapper.TransformDateTimeCombine, map[string]any{"fields": []any{"event_time"}}), row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2024-05-01T13:45:00" {
		t.Errorf("got %v, want 2024-05-01T13:45:00", got)
	}
}

func TestDateTimeCombineMissingTimeKeepsDate(t *testing.T) {
	row := mapper.Row{"call_date": "05/01/2024"}
	got, err := Apply("05/01/2024", tr(mapper.TransformDateTimeCombine, map[string]any{"fields": []any{"event_time"}}), row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2024-05-01T00:00:00" {
		t.Errorf("got %v, want midnight date", got)
	}
}

func TestDateTimeExtract(t *testing.T) {
	date, err := Apply("2024-05-01T13:45:00", tr(mapper.TransformDateTimeExtract, map[string]any{"extractType": "date"}), nil)
	if err != nil || date != "2024-05-01" {
		t.Errorf("date: got (%v, %v)", date, err)
	}

	clock, err := Apply("2024-05-01T13:45:00", tr(mapper.TransformDateTimeExtract, map[string]any{"extractType": "time"}), nil)
	if err != nil || clock != "13:45:00" {
		t.Errorf("time: got (%v, %v)", clock, err)
	}
}

func TestParseCoordinatesComponents(t *testing.T) {
	lon, err := Apply("POINT (-86.55408 34.730369)", tr(mapper.TransformParseCoordinates, map[string]any{"component": "longitude"}), nil)
	if err != nil || lon != -86.55408 {
		t.Errorf("longitude: got (%v, %v)", lon, err)
	}

	lat, err := Apply("POINT (-86.55408 34.730369)", tr(mapper.TransformParseCoordinates, map[string]any{"component": "latitude"}), nil)
	if err != nil || lat != 34.730369 {
		t.Errorf("latitude: got (%v, %v)", lat, err)
	}

	bad, err := Apply("POINT (200 34.7)", tr(mapper.TransformParseCoordinates, map[string]any{"component": "longitude"}), nil)
	if err == nil || bad != nil {
		t.Errorf("out of range: got (%v, %v), want nil + error", bad, err)
	}
}

func TestApplyDeterministic(t *testing.T) {
	step := tr(mapper.TransformFormat, map[string]any{"format": "YYYY-MM-DD"})
	first, _ := Apply("2024-05-01T13:45:00", step, nil)
	for i := 0; i < 5; i++ {
		again, _ := Apply("2024-05-01T13:45:00", step, nil)
		if again != first {
			t.Fatalf("apply is not deterministic: %v != %v", again, first)
		}
	}
}

func TestApplyMappingChain(t *testing.T) {
	m := mapper.FieldMapping{
		SourceField: "nature",
		TargetField: "incident_type",
		Transformations: []mapper.Transformation{
			tr(mapper.TransformReplace, map[string]any{"from": "_", "to": " "}),
			tr(mapper.TransformSplit, map[string]any{"delimiter": " ", "index": 0}),
		},
	}
	got, err := ApplyMapping(m, mapper.Row{"nature": "FIRE_STRUCTURE"})
	if err != nil || got != "FIRE" {
		t.Errorf("got (%v, %v), want FIRE", got, err)
	}
}

func TestApplyMappingDefaultSentinel(t *testing.T) {
	m := mapper.FieldMapping{
		SourceField: mapper.DefaultValueSource,
		TargetField: "state",
		Transformations: []mapper.Transformation{
			tr(mapper.TransformConvert, map[string]any{"to": "string", "defaultValue": "TX"}),
		},
	}
	got, err := ApplyMapping(m, mapper.Row{"anything": "x"})
	if err != nil || got != "TX" {
		t.Errorf("got (%v, %v), want TX", got, err)
	}
}
