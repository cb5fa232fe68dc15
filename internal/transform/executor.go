package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/mapper"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/parsers"
)

// Placeholder values a failed step degrades to. A step never panics and
// never aborts the row; the caller surfaces the returned error as a
// per-row warning.
const (
	InvalidDate   = "Invalid Date"
	IndexNotFound = "Index not found"
)

// Apply runs a single transformation step against a value. The row is
// needed by multi-source steps (datetime_combine) to reach sibling source
// fields. On failure the returned value is a well-defined placeholder and
// the error explains why; the error is informational, never fatal.
func Apply(value any, tr mapper.Transformation, row mapper.Row) (any, error) {
	switch tr.Type {
	case mapper.TransformFormat:
		return applyFormat(value, tr.Params)
	case mapper.TransformSplit:
		return applySplit(value, tr.Params)
	case mapper.TransformConvert:
		return applyConvert(value, tr.Params)
	case mapper.TransformExtract:
		return applyExtract(value, tr.Params)
	case mapper.TransformReplace:
		return applyReplace(value, tr.Params)
	case mapper.TransformDateTimeCombine:
		return applyDateTimeCombine(value, tr.Params, row)
	case mapper.TransformDateTimeExtract:
		return applyDateTimeExtract(value, tr.Params)
	case mapper.TransformParseCoordinates:
		return applyParseCoordinates(value, tr.Params)
	default:
		return value, fmt.Errorf("unknown transformation type %q", tr.Type)
	}
}

// ApplyMapping resolves a mapping's raw source value from the row and runs
// its transformation chain left to right, each step receiving the prior
// step's output. The chain stops at the first degraded step.
func ApplyMapping(m mapper.FieldMapping, row mapper.Row) (any, error) {
	var value any
	if m.SourceField != mapper.DefaultValueSource {
		value = row[m.SourceField]
	}

	for _, tr := range m.Transformations {
		out, err := Apply(value, tr, row)
		if err != nil {
			return out, fmt.Errorf("target %s: %w", m.TargetField, err)
		}
		value = out
	}
	return value, nil
}

func stringify(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

func paramString(params map[string]any, key string) string {
	if params == nil {
		return ""
	}
	return stringify(params[key])
}

func paramInt(params map[string]any, key string) (int, bool) {
	if params == nil {
		return 0, false
	}
	switch v := params[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	default:
		return 0, false
	}
}

var hasClock = regexp.MustCompile(`\d{1,2}:\d{2}`)

func applyFormat(value any, params map[string]any) (any, error) {
	raw := stringify(value)
	t, ok := parsers.ParseDateTime(raw)
	if !ok {
		return InvalidDate, fmt.Errorf("unparseable date %q", raw)
	}

	format := paramString(params, "format")
	switch format {
	case "", "auto":
		if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || hasClock.MatchString(raw) {
			return t.Format("2006-01-02T15:04:05"), nil
		}
		return t.Format("2006-01-02"), nil
	case "MM/DD/YYYY":
		return t.Format("01/02/2006"), nil
	case "DD/MM/YYYY":
		return t.Format("02/01/2006"), nil
	case "YYYY-MM-DD", "date-only":
		// Date-only tokens always strip the time-of-day component.
		return t.Format("2006-01-02"), nil
	case "custom":
		template := paramString(params, "customFormat")
		if template == "" {
			return InvalidDate, fmt.Errorf("custom format without customFormat param")
		}
		return renderCustom(t, template), nil
	default:
		return InvalidDate, fmt.Errorf("unknown date format token %q", format)
	}
}

// renderCustom substitutes the literal tokens YYYY, MM, DD, HH, mm, ss into
// a user-supplied template. Longer tokens are replaced first so MM never
// clobbers mm's position.
func renderCustom(t time.Time, template string) string {
	r := strings.NewReplacer(
		"YYYY", fmt.Sprintf("%04d", t.Year()),
		"MM", fmt.Sprintf("%02d", int(t.Month())),
		"DD", fmt.Sprintf("%02d", t.Day()),
		"HH", fmt.Sprintf("%02d", t.Hour()),
		"mm", fmt.Sprintf("%02d", t.Minute()),
		"ss", fmt.Sprintf("%02d", t.Second()),
	)
	return r.Replace(template)
}

func applySplit(value any, params map[string]any) (any, error) {
	delimiter := paramString(params, "delimiter")
	if delimiter == "" {
		delimiter = ","
	}
	index, ok := paramInt(params, "index")
	if !ok {
		index = 0
	}

	parts := strings.Split(stringify(value), delimiter)
	if index < 0 || index >= len(parts) {
		return IndexNotFound, fmt.Errorf("split index %d out of range (%d parts)", index, len(parts))
	}
	return strings.TrimSpace(parts[index]), nil
}

func applyConvert(value any, params map[string]any) (any, error) {
	raw := stringify(value)
	if raw == "" {
		if def, ok := params["defaultValue"]; ok {
			value = def
			raw = stringify(def)
		}
	}

	switch paramString(params, "to") {
	case "", "string":
		return raw, nil
	case "number":
		n, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to number", raw)
		}
		return n, nil
	case "boolean":
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "t", "yes", "y", "1":
			return true, nil
		case "false", "f", "no", "n", "0", "":
			return false, nil
		default:
			return nil, fmt.Errorf("cannot convert %q to boolean", raw)
		}
	default:
		return value, fmt.Errorf("unknown convert target %q", paramString(params, "to"))
	}
}

func applyExtract(value any, params map[string]any) (any, error) {
	raw := stringify(value)

	// Address components delegate to the address parser; everything else is
	// a capture-group pattern.
	switch paramString(params, "component") {
	case "city":
		city, _, ok := parsers.ParseAddress(raw)
		if !ok {
			return "", fmt.Errorf("no city found in %q", raw)
		}
		return city, nil
	case "state":
		_, state, ok := parsers.ParseAddress(raw)
		if !ok {
			return "", fmt.Errorf("no state found in %q", raw)
		}
		return state, nil
	}

	pattern := paramString(params, "pattern")
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid extract pattern %q: %w", pattern, err)
	}
	m := re.FindStringSubmatch(raw)
	if len(m) < 2 {
		return "", nil
	}
	return m[1], nil
}

func applyReplace(value any, params map[string]any) (any, error) {
	from := paramString(params, "from")
	if from == "" {
		return value, nil
	}
	return strings.ReplaceAll(stringify(value), from, paramString(params, "to")), nil
}

func siblingFields(params map[string]any) []string {
	var out []string
	if params == nil {
		return out
	}
	switch v := params["fields"].(type) {
	case []string:
		out = v
	case []any:
		for _, f := range v {
			out = append(out, stringify(f))
		}
	}
	return out
}

func applyDateTimeCombine(value any, params map[string]any, row mapper.Row) (any, error) {
	date, ok := parsers.ParseDateTime(stringify(value))
	if !ok {
		return InvalidDate, fmt.Errorf("unparseable date %q", stringify(value))
	}

	for _, field := range siblingFields(params) {
		raw := stringify(row[field])
		if raw == "" {
			continue
		}
		clock, ok := parsers.ParseClock(raw)
		if !ok {
			// The sibling may itself carry a full date-time; use its clock.
			if full, fullOK := parsers.ParseDateTime(raw); fullOK {
				clock = full
				ok = true
			}
		}
		if ok {
			combined := time.Date(date.Year(), date.Month(), date.Day(),
				clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
			return combined.Format("2006-01-02T15:04:05"), nil
		}
	}

	// No usable time component; the date alone is still a valid result.
	return date.Format("2006-01-02T15:04:05"), nil
}

func applyDateTimeExtract(value any, params map[string]any) (any, error) {
	raw := stringify(value)
	t, ok := parsers.ParseDateTime(raw)
	if !ok {
		return InvalidDate, fmt.Errorf("unparseable date-time %q", raw)
	}

	switch paramString(params, "extractType") {
	case "time":
		return t.Format("15:04:05"), nil
	default:
		return t.Format("2006-01-02"), nil
	}
}

func applyParseCoordinates(value any, params map[string]any) (any, error) {
	raw := stringify(value)
	lon, lat, ok := parsers.ParsePointCoordinates(raw)
	if !ok {
		return nil, fmt.Errorf("unparseable coordinates %q", raw)
	}
	if paramString(params, "component") == "latitude" {
		return lat, nil
	}
	return lon, nil
}
