package parsers

import "testing"

func TestParsePointCoordinates(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		wantLon float64
		wantLat float64
		wantOK  bool
	}{
		{"wkt space separated", "POINT (-86.55408 34.730369)", -86.55408, 34.730369, true},
		{"comma separated", "POINT(-86.55408,34.730369)", -86.55408, 34.730369, true},
		{"lowercase", "point (-86.5 34.7)", -86.5, 34.7, true},
		{"longitude out of range", "POINT (200 34.7)", 0, 0, false},
		{"latitude out of range", "POINT (-86.5 95)", 0, 0, false},
		{"not a point", "somewhere in Alabama", 0, 0, false},
		{"empty", "", 0, 0, false},
		{"integer coordinates", "POINT (-86 34)", -86, 34, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lon, lat, ok := ParsePointCoordinates(c.in)
			if ok != c.wantOK {
				t.Fatalf("ok = %v, want %v", ok, c.wantOK)
			}
			if lon != c.wantLon || lat != c.wantLat {
				t.Errorf("got (%v, %v), want (%v, %v)", lon, lat, c.wantLon, c.wantLat)
			}
		})
	}
}
