package parsers

import (
	"regexp"
	"strings"
)

// stateAbbreviations is the controlled set of valid two-letter US state and
// territory codes an extracted state must belong to.
var stateAbbreviations = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true, "PR": true, "GU": true, "VI": true,
}

// streetSuffixes are tokens that belong to the street portion of an address
// and must never survive into an extracted city name.
var streetSuffixes = map[string]bool{
	"st": true, "street": true, "ave": true, "avenue": true, "blvd": true,
	"boulevard": true, "rd": true, "road": true, "dr": true, "drive": true,
	"ln": true, "lane": true, "ct": true, "court": true, "pl": true,
	"place": true, "way": true, "pkwy": true, "parkway": true, "cir": true,
	"circle": true, "hwy": true, "highway": true, "ter": true, "terrace": true,
	"trl": true, "trail": true, "loop": true, "aly": true, "alley": true,
}

// directionals are compass tokens excluded from extracted city names.
var directionals = map[string]bool{
	"n": true, "s": true, "e": true, "w": true,
	"ne": true, "nw": true, "se": true, "sw": true,
	"north": true, "south": true, "east": true, "west": true,
}

// addressPattern pairs a compiled shape with the capture indices of its city
// and state groups. Patterns are tried in order; the first match that passes
// validation wins.
type addressPattern struct {
	name     string
	re       *regexp.Regexp
	cityIdx  int
	stateIdx int
}

var addressPatterns = []addressPattern{
	// "2805 Navigation Blvd Houston TX 77003"
	{
		name:     "street-city-state-zip",
		re:       regexp.MustCompile(`(?i)^\d+\s+.+?\s+((?:[A-Za-z.'-]+\s+){0,2}[A-Za-z.'-]+)[,\s]+([A-Za-z]{2})\s+\d{5}(?:-\d{4})?\s*$`),
		cityIdx:  1,
		stateIdx: 2,
	},
	// "2805 Navigation Blvd Houston TX"
	{
		name:     "street-city-state",
		re:       regexp.MustCompile(`(?i)^\d+\s+.+?\s+((?:[A-Za-z.'-]+\s+){0,2}[A-Za-z.'-]+)[,\s]+([A-Za-z]{2})\s*$`),
		cityIdx:  1,
		stateIdx: 2,
	},
	// "123 Main St, Houston, TX 77002"
	{
		name:     "comma-delimited",
		re:       regexp.MustCompile(`(?i),\s*([A-Za-z .'-]{2,50}?)\s*,\s*([A-Za-z]{2})\b`),
		cityIdx:  1,
		stateIdx: 2,
	},
	// "123 Main St   Houston   TX" (fixed-width exports)
	{
		name:     "multi-space-delimited",
		re:       regexp.MustCompile(`(?i)\s{2,}([A-Za-z .'-]{2,50}?)\s{2,}([A-Za-z]{2})\b`),
		cityIdx:  1,
		stateIdx: 2,
	},
}

// ParseAddress extracts a city and two-letter state from a combined address
// string. Returns ok=false when nothing reaches the validity bar (city of
// 2-50 characters, state in the known abbreviation set).
func ParseAddress(text string) (city, state string, ok bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", "", false
	}

	for _, p := range addressPatterns {
		m := p.re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		st := strings.ToUpper(m[p.stateIdx])
		if !stateAbbreviations[st] {
			continue
		}
		c := cleanCity(m[p.cityIdx])
		if validCity(c) {
			return c, st, true
		}
	}

	return fallbackScan(trimmed)
}

// fallbackScan walks backward from a recognized state token and takes the
// preceding 1-3 words as the city, skipping pure numbers, directionals and
// street suffixes.
func fallbackScan(text string) (string, string, bool) {
	words := strings.Fields(strings.ReplaceAll(text, ",", " "))
	stateIdx := -1
	for i := len(words) - 1; i > 0; i-- {
		w := strings.ToUpper(words[i])
		if len(w) == 2 && stateAbbreviations[w] {
			stateIdx = i
			break
		}
	}
	if stateIdx < 1 {
		return "", "", false
	}

	var cityWords []string
	for i := stateIdx - 1; i >= 0 && len(cityWords) < 3; i-- {
		w := words[i]
		lower := strings.ToLower(strings.Trim(w, ".,"))
		if isNumeric(lower) || streetSuffixes[lower] || directionals[lower] {
			break
		}
		cityWords = append([]string{strings.Trim(w, ".,")}, cityWords...)
	}

	city := strings.Join(cityWords, " ")
	if !validCity(city) {
		return "", "", false
	}
	return city, strings.ToUpper(words[stateIdx]), true
}

// cleanCity strips street tokens that bled into a captured city span. Any
// street suffix inside the span means everything up to and including the
// last suffix belongs to the street, not the city.
func cleanCity(raw string) string {
	words := strings.Fields(raw)
	start := 0
	for i, w := range words {
		if streetSuffixes[strings.ToLower(strings.Trim(w, ".,"))] {
			start = i + 1
		}
	}
	for start < len(words) {
		lower := strings.ToLower(strings.Trim(words[start], ".,"))
		if directionals[lower] || isNumeric(lower) {
			start++
			continue
		}
		break
	}
	return strings.Trim(strings.Join(words[start:], " "), " .,")
}

func validCity(city string) bool {
	return len(city) >= 2 && len(city) <= 50
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
