package zipcodes

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	src := "zip, primary_city, area_codes\n06475, Old Saybrook, 860\n10001,New York,\"718, 917\"\n"
	records, err := ParseTable(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, RawRecord{"zip": "06475", "primary_city": "Old Saybrook", "area_codes": "860"}, records[0])
	assert.Equal(t, RawRecord{"zip": "10001", "primary_city": "New York", "area_codes": "718, 917"}, records[1])
}

func TestParseTable_KeepsLeadingZeros(t *testing.T) {
	records, err := ParseTable(strings.NewReader("ZipCode,Latitude\n00501,40.81\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "00501", records[0]["ZipCode"])
}

func TestParseTable_StripsByteOrderMark(t *testing.T) {
	records, err := ParseTable(strings.NewReader("\ufeffZipCode,Latitude\n00501,40.81\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "00501", records[0]["ZipCode"])
}

func TestParseTable_HeaderOnly(t *testing.T) {
	records, err := ParseTable(strings.NewReader("zip,city\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseTable_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty source", src: ""},
		{name: "blank lines only", src: "\n\n"},
		{name: "row too short", src: "zip,city\n06475\n"},
		{name: "row too long", src: "zip,city\n06475,Old Saybrook,CT\n"},
		{name: "unterminated quote", src: "zip,city\n06475,\"Old Saybrook\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseTable(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, ErrMalformedSource)
			assert.Nil(t, records)
		})
	}
}

func TestEnrichCoordinates(t *testing.T) {
	primary := []RawRecord{
		{"zip": "06475", "latitude": "41.29", "longitude": "-72.38"},
		{"zip": "10184", "latitude": "40.71", "longitude": "-74"},
	}
	coords := []RawRecord{
		{"ZipCode": "99999", "Latitude": "0.0", "Longitude": "0.0"},
		{"ZipCode": "06475", "Latitude": "41.3015", "Longitude": "-72.3879"},
	}

	got := EnrichCoordinates(coords, primary)
	require.Len(t, got, 2)
	assert.Equal(t, RawRecord{"zip": "06475", "latitude": "41.3015", "longitude": "-72.3879"}, got[0])
	// Left join: unmatched primary rows keep their coordinates.
	assert.Equal(t, RawRecord{"zip": "10184", "latitude": "40.71", "longitude": "-74"}, got[1])
}

func TestEnrichCoordinates_Idempotent(t *testing.T) {
	newPrimary := func() []RawRecord {
		return []RawRecord{
			{"zip": "06475", "latitude": "41.29", "longitude": "-72.38"},
			{"zip": "10001", "latitude": "40.75", "longitude": "-73.99"},
		}
	}
	coords := []RawRecord{
		{"ZipCode": "10001", "Latitude": "40.7508", "Longitude": "-73.9961"},
	}

	once := EnrichCoordinates(coords, newPrimary())
	twice := EnrichCoordinates(coords, EnrichCoordinates(coords, newPrimary()))
	assert.Equal(t, once, twice)
}

func TestProjectSchema(t *testing.T) {
	records := []RawRecord{
		{"zip": "00501", "primary_city": "Holtsville", "irs_estimated_population_2015": "562"},
	}
	got := ProjectSchema(records, DefaultSchema)
	assert.Equal(t, []RawRecord{{"zip": "00501", "primary_city": "Holtsville"}}, got)
	// The input is left alone.
	assert.Contains(t, records[0], "irs_estimated_population_2015")
}

func TestApplyTransforms(t *testing.T) {
	records := []RawRecord{{
		"zip":                 "06475",
		"type":                "STANDARD",
		"decommissioned":      "0",
		"primary_city":        "Old Saybrook",
		"acceptable_cities":   "",
		"unacceptable_cities": "Fenwick",
		"state":               "CT",
		"county":              "Middlesex County",
		"timezone":            "America/New_York",
		"area_codes":          "860",
		"world_region":        "NA",
		"country":             "US",
		"latitude":            "41.3015",
		"longitude":           "-72.3879",
	}}

	got, err := ApplyTransforms(records, DefaultSchema)
	require.NoError(t, err)
	assert.Equal(t, Table{oldSaybrook}, got)
}

func TestApplyTransforms_MissingListFieldsAreEmpty(t *testing.T) {
	got, err := ApplyTransforms([]RawRecord{{"zip": "09001", "decommissioned": "1"}}, DefaultSchema)
	require.NoError(t, err)
	require.Len(t, got, 1)

	e := got[0]
	assert.Equal(t, "09001", e.ZipCode)
	assert.False(t, e.Active)
	assert.NotNil(t, e.AcceptableCities)
	assert.NotNil(t, e.UnacceptableCities)
	assert.NotNil(t, e.AreaCodes)
	assert.Empty(t, e.AreaCodes)
}

func TestApplyTransforms_BadFlag(t *testing.T) {
	_, err := ApplyTransforms([]RawRecord{{"zip": "06475", "decommissioned": "yes"}}, DefaultSchema)
	assert.ErrorIs(t, err, ErrMalformedSource)
}

func TestTransform_Apply(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		input     string
		want      any
	}{
		{"none", TransformNone, " New York ", " New York "},
		{"split single", TransformSplitList, "860", []string{"860"}},
		{"split many", TransformSplitList, "718,917, 347 ,646", []string{"718", "917", "347", "646"}},
		{"split drops empties", TransformSplitList, "a,, ,b,", []string{"a", "b"}},
		{"split empty", TransformSplitList, "", []string{}},
		{"negate zero", TransformNegateInt, "0", true},
		{"negate one", TransformNegateInt, "1", false},
		{"negate spaced", TransformNegateInt, " 1 ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.transform.apply(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_Testdata(t *testing.T) {
	primary, err := os.Open("testdata/zip_code_database.csv")
	require.NoError(t, err)
	defer primary.Close()
	coords, err := os.Open("testdata/zip-codes-database-FREE.csv")
	require.NoError(t, err)
	defer coords.Close()

	got, err := Build(Sources{Primary: primary, Coordinates: coords}, DefaultSchema)
	require.NoError(t, err)

	// The embedded dataset was built from the same sources.
	want, err := LoadFile("testdata/zips.json")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBuild_Errors(t *testing.T) {
	good := "zip,decommissioned\n06475,0\n"
	gps := "ZipCode,Latitude,Longitude\n06475,41.3015,-72.3879\n"

	tests := []struct {
		name string
		src  Sources
	}{
		{"missing primary", Sources{Coordinates: strings.NewReader(gps)}},
		{"missing coordinates", Sources{Primary: strings.NewReader(good)}},
		{"ragged primary", Sources{Primary: strings.NewReader("zip,decommissioned\n06475\n"), Coordinates: strings.NewReader(gps)}},
		{"empty coordinates", Sources{Primary: strings.NewReader(good), Coordinates: strings.NewReader("")}},
		{"bad flag", Sources{Primary: strings.NewReader("zip,decommissioned\n06475,x\n"), Coordinates: strings.NewReader(gps)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.src, DefaultSchema)
			assert.ErrorIs(t, err, ErrMalformedSource)
			assert.Nil(t, got)
		})
	}
}
