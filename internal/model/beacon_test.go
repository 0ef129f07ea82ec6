package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecord = `{
	"tstamp": "2020-04-26 05:22:53",
	"actorasnorg": "T-Mobile USA",
	"actorcity": "Atlanta",
	"actorcountrycode": "US",
	"actorhostname": "NA",
	"actorip": "172.58.142.74",
	"actorloc": "33.7490,-84.3880",
	"actorregion": "Georgia",
	"actortimezone": "America/New_York",
	"c2": "http://139.28.177.196/wp-content/plugins/wp-spam-shield/in.php",
	"c2asnorg": "HOSTKEY",
	"c2city": "Amsterdam",
	"c2countrycode": "NL",
	"c2domain": "NA",
	"c2domainresolved": "139.28.177.196",
	"c2hostname": "NA",
	"c2loc": "52.3740,4.8897",
	"c2region": "North Holland",
	"c2timezone": "Europe/Amsterdam",
	"cookie_id": "8761.1241",
	"useragent": "Mozilla/5.0 (Linux; Android 10)",
	"tags": "emotet"
}`

func TestBeaconDecodeFullRecord(t *testing.T) {
	var b Beacon
	require.NoError(t, json.Unmarshal([]byte(sampleRecord), &b))

	assert.True(t, b.Valid())
	assert.Equal(t, time.Date(2020, 4, 26, 5, 22, 53, 0, time.UTC), b.Timestamp)
	assert.Equal(t, "T-Mobile USA", b.ActorASNOrg)
	assert.Equal(t, "Atlanta", b.ActorCity)
	assert.Equal(t, "US", b.ActorCountryCode)
	assert.Equal(t, "172.58.142.74", b.ActorIP)
	assert.Equal(t, "Georgia", b.ActorRegion)
	assert.Equal(t, "America/New_York", b.ActorTimezone)
	assert.Equal(t, "http://139.28.177.196/wp-content/plugins/wp-spam-shield/in.php", b.C2)
	assert.Equal(t, "HOSTKEY", b.C2ASNOrg)
	assert.Equal(t, "139.28.177.196", b.C2DomainResolved)
	assert.Equal(t, "8761.1241", b.CookieID)
	assert.Equal(t, "Mozilla/5.0 (Linux; Android 10)", b.UserAgent)
	assert.Equal(t, []string{"emotet"}, b.Tags)

	require.NotNil(t, b.ActorLocation)
	assert.Equal(t, "33.7490,-84.3880", b.ActorLocation.String())
	require.NotNil(t, b.C2Location)
	assert.Equal(t, "52.3740,4.8897", b.C2Location.String())
}

func TestBeaconDecodeNormalizesNA(t *testing.T) {
	var b Beacon
	require.NoError(t, json.Unmarshal([]byte(sampleRecord), &b))

	assert.Empty(t, b.ActorHostname)
	assert.Empty(t, b.C2Domain)
	assert.Empty(t, b.C2Hostname)
}

func TestBeaconDecodeAllNA(t *testing.T) {
	record := `{
		"tstamp": "NA", "actorasnorg": "NA", "actorcity": "NA",
		"actorcountrycode": "NA", "actorhostname": "NA", "actorip": "NA",
		"actorloc": "NA", "actorregion": "NA", "actortimezone": "NA",
		"c2": "NA", "c2asnorg": "NA", "c2city": "NA", "c2countrycode": "NA",
		"c2domain": "NA", "c2domainresolved": "NA", "c2hostname": "NA",
		"c2loc": "NA", "c2region": "NA", "c2timezone": "NA",
		"cookie_id": "NA", "useragent": "NA", "tags": "NA"
	}`

	var b Beacon
	require.NoError(t, json.Unmarshal([]byte(record), &b))

	assert.False(t, b.Valid(), "a beacon without a timestamp cannot be aggregated")
	assert.Empty(t, b.ActorIP)
	assert.Empty(t, b.UserAgent)
	assert.Nil(t, b.ActorLocation)
	assert.Nil(t, b.C2Location)
	assert.Nil(t, b.Tags)
}

func TestBeaconTimestampLayouts(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"space separator", "2020-04-26 05:22:53"},
		{"T separator", "2020-04-26T05:22:53"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b Beacon
			record := `{"tstamp": "` + tc.value + `"}`
			require.NoError(t, json.Unmarshal([]byte(record), &b))
			assert.True(t, b.Valid())
			assert.Equal(t, time.Date(2020, 4, 26, 5, 22, 53, 0, time.UTC), b.Timestamp)
		})
	}
}

func TestBeaconUnparseableTimestamp(t *testing.T) {
	var b Beacon
	require.NoError(t, json.Unmarshal([]byte(`{"tstamp": "yesterday"}`), &b))

	assert.False(t, b.Valid())
	require.Error(t, b.Err())
	assert.Contains(t, b.Err().Error(), "unparseable timestamp")
}

func TestBeaconMalformedLocation(t *testing.T) {
	record := `{"tstamp": "2020-04-26 05:22:53", "actorloc": "not-a-location"}`

	var b Beacon
	require.NoError(t, json.Unmarshal([]byte(record), &b))

	assert.False(t, b.Valid())
	require.Error(t, b.Err())
	assert.Contains(t, b.Err().Error(), "actorloc")
	assert.Nil(t, b.ActorLocation)
}

func TestBeaconRawPreservesUnknownFields(t *testing.T) {
	record := `{"tstamp": "2020-04-26 05:22:53", "future_field": "kept"}`

	var b Beacon
	require.NoError(t, json.Unmarshal([]byte(record), &b))

	assert.JSONEq(t, record, string(b.Raw))
}

func TestBeaconDecodeRejectsNonObject(t *testing.T) {
	var b Beacon
	assert.Error(t, json.Unmarshal([]byte(`"just a string"`), &b))
}

func TestParseGeoLocation(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"four decimals", "33.7490,-84.3880", "33.7490,-84.3880"},
		{"integer degrees", "33,-84", "33.0000,-84.0000"},
		{"space after comma", "52.3740, 4.8897", "52.3740,4.8897"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := ParseGeoLocation(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, loc.String())
		})
	}
}

func TestParseGeoLocationRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"33.7490",
		"33.749,-84.388",
		"33.7490,-84.3880,extra",
		"north,south",
	}
	for _, input := range cases {
		_, err := ParseGeoLocation(input)
		assert.Error(t, err, "input %q", input)
	}
}
