package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	// TimeLayout is the timestamp format the API uses.
	TimeLayout = "2006-01-02 15:04:05"

	// timeLayoutT tolerates the ISO 8601 "T" separator variant.
	timeLayoutT = "2006-01-02T15:04:05"

	// notAvailable marks fields the upstream has no data for.
	notAvailable = "NA"
)

// Beacon is one C2 beacon sighting returned by a module lookup.
// String fields the upstream reports as "NA" come back as "".
type Beacon struct {
	Timestamp time.Time

	ActorASNOrg      string
	ActorCity        string
	ActorCountryCode string
	ActorHostname    string
	ActorIP          string
	ActorLocation    *GeoLocation
	ActorRegion      string
	ActorTimezone    string

	C2               string
	C2ASNOrg         string
	C2City           string
	C2CountryCode    string
	C2Domain         string
	C2DomainResolved string
	C2Hostname       string
	C2Location       *GeoLocation
	C2Region         string
	C2Timezone       string

	CookieID  string
	UserAgent string
	Tags      []string

	// Raw holds the record exactly as the API sent it.
	Raw json.RawMessage

	err error
}

// beaconWire mirrors the upstream JSON object.
type beaconWire struct {
	Tstamp           string `json:"tstamp"`
	ActorASNOrg      string `json:"actorasnorg"`
	ActorCity        string `json:"actorcity"`
	ActorCountryCode string `json:"actorcountrycode"`
	ActorHostname    string `json:"actorhostname"`
	ActorIP          string `json:"actorip"`
	ActorLoc         string `json:"actorloc"`
	ActorRegion      string `json:"actorregion"`
	ActorTimezone    string `json:"actortimezone"`
	C2               string `json:"c2"`
	C2ASNOrg         string `json:"c2asnorg"`
	C2City           string `json:"c2city"`
	C2CountryCode    string `json:"c2countrycode"`
	C2Domain         string `json:"c2domain"`
	C2DomainResolved string `json:"c2domainresolved"`
	C2Hostname       string `json:"c2hostname"`
	C2Loc            string `json:"c2loc"`
	C2Region         string `json:"c2region"`
	C2Timezone       string `json:"c2timezone"`
	CookieID         string `json:"cookie_id"`
	UserAgent        string `json:"useragent"`
	Tags             string `json:"tags"`
}

// UnmarshalJSON decodes one upstream record. Field-level problems such
// as an unparseable timestamp or malformed coordinates do not fail the
// decode; they mark the beacon invalid so callers can skip and count it
// without losing the rest of the response.
func (b *Beacon) UnmarshalJSON(data []byte) error {
	var w beaconWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*b = Beacon{
		ActorASNOrg:      clean(w.ActorASNOrg),
		ActorCity:        clean(w.ActorCity),
		ActorCountryCode: clean(w.ActorCountryCode),
		ActorHostname:    clean(w.ActorHostname),
		ActorIP:          clean(w.ActorIP),
		ActorRegion:      clean(w.ActorRegion),
		ActorTimezone:    clean(w.ActorTimezone),
		C2:               clean(w.C2),
		C2ASNOrg:         clean(w.C2ASNOrg),
		C2City:           clean(w.C2City),
		C2CountryCode:    clean(w.C2CountryCode),
		C2Domain:         clean(w.C2Domain),
		C2DomainResolved: clean(w.C2DomainResolved),
		C2Hostname:       clean(w.C2Hostname),
		C2Region:         clean(w.C2Region),
		C2Timezone:       clean(w.C2Timezone),
		CookieID:         clean(w.CookieID),
		UserAgent:        clean(w.UserAgent),
	}
	b.Raw = append(json.RawMessage(nil), data...)

	if tags := clean(w.Tags); tags != "" {
		b.Tags = []string{tags}
	}

	ts, err := parseTimestamp(clean(w.Tstamp))
	if err != nil {
		b.setErr(err)
	}
	b.Timestamp = ts

	b.ActorLocation = b.parseLocation("actorloc", w.ActorLoc)
	b.C2Location = b.parseLocation("c2loc", w.C2Loc)

	return nil
}

func (b *Beacon) parseLocation(field, value string) *GeoLocation {
	s := clean(value)
	if s == "" {
		return nil
	}
	loc, err := ParseGeoLocation(s)
	if err != nil {
		b.setErr(fmt.Errorf("%s: %w", field, err))
		return nil
	}
	return loc
}

func (b *Beacon) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Valid reports whether the beacon decoded cleanly enough to aggregate.
func (b *Beacon) Valid() bool {
	return b.err == nil
}

// Err returns what invalidated the beacon, if anything.
func (b *Beacon) Err() error {
	return b.err
}

func clean(s string) string {
	if s == notAvailable {
		return ""
	}
	return s
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing timestamp")
	}
	for _, layout := range []string{TimeLayout, timeLayoutT} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
