package parsers

import (
	"regexp"
	"strconv"
	"strings"
)

// pointPattern matches WKT-style point text: "POINT (lon lat)" or
// "POINT(lon,lat)", case-insensitive, comma or whitespace separated.
var pointPattern = regexp.MustCompile(`(?i)^\s*POINT\s*\(\s*(-?\d+(?:\.\d+)?)\s*[,\s]\s*(-?\d+(?:\.\d+)?)\s*\)\s*$`)

// ParsePointCoordinates extracts longitude and latitude from POINT text.
// Values outside the valid ranges (longitude [-180,180], latitude [-90,90])
// are rejected.
func ParsePointCoordinates(text string) (lon, lat float64, ok bool) {
	m := pointPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, 0, false
	}

	lon, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	lat, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}

	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return 0, 0, false
	}
	return lon, lat, true
}
