package parsers

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// PatternType classifies how date and time live in a dataset's columns.
type PatternType string

const (
	PatternSplit    PatternType = "split"
	PatternCombined PatternType = "combined"
	PatternUnknown  PatternType = "unknown"
)

// MappingSuggestion is one per-target mapping instruction produced by
// datetime pattern detection. Transform names match the stored
// transformation type strings.
type MappingSuggestion struct {
	SourceField string   `json:"sourceField"`
	ExtraFields []string `json:"extraFields,omitempty"`
	TargetField string   `json:"targetField"`
	Transform   string   `json:"transform,omitempty"`
	ExtractType string   `json:"extractType,omitempty"`
}

// DateTimePattern is the dataset-wide classification of date/time column
// layout, computed once per dataset and read-only thereafter.
type DateTimePattern struct {
	Type        PatternType         `json:"type"`
	Confidence  float64             `json:"confidence"`
	Description string              `json:"description,omitempty"`
	Suggestions []MappingSuggestion `json:"suggestions,omitempty"`
}

// dateTimeLayouts is the ordered table of layouts tried when parsing a raw
// value as a date-time. Combined layouts come before date-only ones so a
// time component is never silently dropped at parse time.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
	"01/02/2006 3:04:05 PM",
	"01/02/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04 PM",
	"02-Jan-2006 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"20060102",
}

// timeOnlyLayouts parse bare clock values.
var timeOnlyLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
	"150405",
}

// ParseDateTime attempts to interpret a raw string as a date or date-time
// using the layout table.
func ParseDateTime(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseClock attempts to interpret a raw string as a bare time of day.
func ParseClock(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range timeOnlyLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var clockComponent = regexp.MustCompile(`\d{1,2}:\d{2}`)

// looksLikeCombined reports whether a value carries both a date and a
// time-of-day component.
func looksLikeCombined(value string) bool {
	t, ok := ParseDateTime(value)
	if !ok {
		return false
	}
	if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 {
		return true
	}
	// Midnight parses identically to a bare date; require a visible clock.
	return clockComponent.MatchString(value)
}

func looksLikeDateOnly(value string) bool {
	if _, ok := ParseDateTime(value); !ok {
		return false
	}
	return !clockComponent.MatchString(value)
}

func looksLikeTimeOnly(value string) bool {
	_, ok := ParseClock(value)
	return ok
}

func normalizeName(name string) string {
	lower := strings.ToLower(name)
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(lower)
}

func firstSample(rows []map[string]any, col string) string {
	for _, row := range rows {
		if v, ok := row[col]; ok && v != nil {
			s := strings.TrimSpace(fmt.Sprintf("%v", v))
			if s != "" {
				return s
			}
		}
	}
	return ""
}

// DetectDateTimePattern inspects column names and sample value shapes to
// decide whether date and time live in one combined column or in separate
// columns, and proposes the mappings that layout needs. Confidence is 0.9
// when both the column name and its sample values agree, 0.6 on name
// evidence alone.
func DetectDateTimePattern(sourceColumns []string, sampleRows []map[string]any) DateTimePattern {
	var dateCol, timeCol, combinedCol string
	combinedByValue := false

	for _, col := range sourceColumns {
		name := normalizeName(col)
		sample := firstSample(sampleRows, col)

		nameHasDate := strings.Contains(name, "date") || strings.Contains(name, "datetime")
		nameHasTime := strings.Contains(name, "time") || strings.Contains(name, "datetime")

		switch {
		case nameHasDate && nameHasTime:
			if combinedCol == "" {
				combinedCol = col
				combinedByValue = looksLikeCombined(sample)
			}
		case nameHasDate:
			if sample != "" && looksLikeCombined(sample) {
				if combinedCol == "" {
					combinedCol = col
					combinedByValue = true
				}
			} else if dateCol == "" {
				dateCol = col
			}
		case nameHasTime:
			if sample != "" && looksLikeCombined(sample) {
				if combinedCol == "" {
					combinedCol = col
					combinedByValue = true
				}
			} else if timeCol == "" && (sample == "" || looksLikeTimeOnly(sample)) {
				timeCol = col
			}
		}
	}

	if combinedCol != "" {
		confidence := 0.6
		if combinedByValue {
			confidence = 0.9
		}
		return DateTimePattern{
			Type:        PatternCombined,
			Confidence:  confidence,
			Description: fmt.Sprintf("Column %q holds a combined date and time; date and time targets extract their component from it.", combinedCol),
			Suggestions: []MappingSuggestion{
				{SourceField: combinedCol, TargetField: "incident_date", Transform: "datetime_extract", ExtractType: "date"},
				{SourceField: combinedCol, TargetField: "incident_time", Transform: "datetime_extract", ExtractType: "time"},
			},
		}
	}

	if dateCol != "" && timeCol != "" {
		confidence := 0.6
		dateSample := firstSample(sampleRows, dateCol)
		timeSample := firstSample(sampleRows, timeCol)
		if looksLikeDateOnly(dateSample) && looksLikeTimeOnly(timeSample) {
			confidence = 0.9
		}
		return DateTimePattern{
			Type:        PatternSplit,
			Confidence:  confidence,
			Description: fmt.Sprintf("Columns %q and %q hold date and time separately; the time target combines them.", dateCol, timeCol),
			Suggestions: []MappingSuggestion{
				{SourceField: dateCol, TargetField: "incident_date"},
				{SourceField: dateCol, ExtraFields: []string{timeCol}, TargetField: "incident_time", Transform: "datetime_combine"},
			},
		}
	}

	if dateCol != "" {
		return DateTimePattern{
			Type:        PatternUnknown,
			Confidence:  0.3,
			Description: fmt.Sprintf("Found a date column %q but no matching time column.", dateCol),
		}
	}

	return DateTimePattern{Type: PatternUnknown, Confidence: 0}
}
