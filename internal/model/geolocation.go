package model

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// geoPattern matches coordinate pairs as the API emits them: integer
// degrees with an optional four-digit decimal fraction.
var geoPattern = regexp.MustCompile(`^(-?\d+(?:\.\d{4})?),\s*(-?\d+(?:\.\d{4})?)$`)

// GeoLocation is a WGS84 coordinate pair.
type GeoLocation struct {
	Latitude  decimal.Decimal `json:"latitude"`
	Longitude decimal.Decimal `json:"longitude"`
}

// ParseGeoLocation parses the API's "33.7490,-84.3880" form.
func ParseGeoLocation(s string) (*GeoLocation, error) {
	m := geoPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("malformed geo location %q", s)
	}
	lat, err := decimal.NewFromString(m[1])
	if err != nil {
		return nil, fmt.Errorf("malformed latitude %q: %w", m[1], err)
	}
	lng, err := decimal.NewFromString(m[2])
	if err != nil {
		return nil, fmt.Errorf("malformed longitude %q: %w", m[2], err)
	}
	return &GeoLocation{Latitude: lat, Longitude: lng}, nil
}

func (g GeoLocation) String() string {
	return g.Latitude.StringFixed(4) + "," + g.Longitude.StringFixed(4)
}
