package zipcodes

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"time"
	_ "time/tzdata" // Location must resolve zones on hosts without a zoneinfo database.

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/goccy/go-json"
	"github.com/golang/geo/s2"
)

// Public field names of an Entry, as they appear in the serialized dataset
// and in FilterBy criteria.
const (
	FieldZipCode            = "zip_code"
	FieldZipCodeType        = "zip_code_type"
	FieldActive             = "active"
	FieldCity               = "city"
	FieldAcceptableCities   = "acceptable_cities"
	FieldUnacceptableCities = "unacceptable_cities"
	FieldState              = "state"
	FieldCounty             = "county"
	FieldTimezone           = "timezone"
	FieldAreaCodes          = "area_codes"
	FieldWorldRegion        = "world_region"
	FieldCountry            = "country"
	FieldLat                = "lat"
	FieldLong               = "long"
)

// Entry is one normalized zipcode record.
//
// ZipCode is text: it is zero padded ("06475") and must never be treated as
// a number. The list fields are never nil once an Entry has passed through
// the builder or the loader.
type Entry struct {
	ZipCode            string     `json:"zip_code"`
	ZipCodeType        string     `json:"zip_code_type"`
	Active             bool       `json:"active"`
	City               string     `json:"city"`
	AcceptableCities   []string   `json:"acceptable_cities"`
	UnacceptableCities []string   `json:"unacceptable_cities"`
	State              string     `json:"state"`
	County             string     `json:"county"`
	Timezone           string     `json:"timezone"`
	AreaCodes          []string   `json:"area_codes"`
	WorldRegion        string     `json:"world_region"`
	Country            string     `json:"country"`
	Lat                Coordinate `json:"lat"`
	Long               Coordinate `json:"long"`
}

// Coordinate is a latitude or longitude in decimal degrees, kept as the
// text it was read from. Older datasets store coordinates as JSON numbers,
// newer ones as strings; both decode, and it always encodes as a string.
type Coordinate string

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Coordinate(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("coordinate %s is neither a string nor a number", data)
	}
	*c = Coordinate(data)
	return nil
}

// Field returns the value of the public field name. The second result is
// false when the entry has no such field.
func (e Entry) Field(name string) (any, bool) {
	switch name {
	case FieldZipCode:
		return e.ZipCode, true
	case FieldZipCodeType:
		return e.ZipCodeType, true
	case FieldActive:
		return e.Active, true
	case FieldCity:
		return e.City, true
	case FieldAcceptableCities:
		return e.AcceptableCities, true
	case FieldUnacceptableCities:
		return e.UnacceptableCities, true
	case FieldState:
		return e.State, true
	case FieldCounty:
		return e.County, true
	case FieldTimezone:
		return e.Timezone, true
	case FieldAreaCodes:
		return e.AreaCodes, true
	case FieldWorldRegion:
		return e.WorldRegion, true
	case FieldCountry:
		return e.Country, true
	case FieldLat:
		return string(e.Lat), true
	case FieldLong:
		return string(e.Long), true
	}
	return nil, false
}

// setField assigns v to the public field name. v must have the field's Go
// type.
func (e *Entry) setField(name string, v any) error {
	switch name {
	case FieldActive:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("field %s: want bool, got %T", name, v)
		}
		e.Active = b
		return nil
	case FieldAcceptableCities, FieldUnacceptableCities, FieldAreaCodes:
		l, ok := v.([]string)
		if !ok {
			return fmt.Errorf("field %s: want []string, got %T", name, v)
		}
		switch name {
		case FieldAcceptableCities:
			e.AcceptableCities = l
		case FieldUnacceptableCities:
			e.UnacceptableCities = l
		default:
			e.AreaCodes = l
		}
		return nil
	}

	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("field %s: want string, got %T", name, v)
	}
	switch name {
	case FieldZipCode:
		e.ZipCode = s
	case FieldZipCodeType:
		e.ZipCodeType = s
	case FieldCity:
		e.City = s
	case FieldState:
		e.State = s
	case FieldCounty:
		e.County = s
	case FieldTimezone:
		e.Timezone = s
	case FieldWorldRegion:
		e.WorldRegion = s
	case FieldCountry:
		e.Country = s
	case FieldLat:
		e.Lat = Coordinate(s)
	case FieldLong:
		e.Long = Coordinate(s)
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// normalize replaces nil list fields with empty ones.
func (e *Entry) normalize() {
	if e.AcceptableCities == nil {
		e.AcceptableCities = []string{}
	}
	if e.UnacceptableCities == nil {
		e.UnacceptableCities = []string{}
	}
	if e.AreaCodes == nil {
		e.AreaCodes = []string{}
	}
}

// clone returns a copy of e that shares no memory with it.
func (e Entry) clone() Entry {
	e.AcceptableCities = cloneList(e.AcceptableCities)
	e.UnacceptableCities = cloneList(e.UnacceptableCities)
	e.AreaCodes = cloneList(e.AreaCodes)
	return e
}

func cloneList(l []string) []string {
	if l == nil {
		return []string{}
	}
	return slices.Clone(l)
}

// LatLng parses the entry's coordinates.
// Returns an error if either coordinate is not a number or the pair is
// outside the valid latitude/longitude range.
func (e Entry) LatLng() (s2.LatLng, error) {
	lat, err := strconv.ParseFloat(string(e.Lat), 64)
	if err != nil {
		return s2.LatLng{}, fmt.Errorf("zipcode %s: parsing latitude %q: %w", e.ZipCode, e.Lat, err)
	}
	lng, err := strconv.ParseFloat(string(e.Long), 64)
	if err != nil {
		return s2.LatLng{}, fmt.Errorf("zipcode %s: parsing longitude %q: %w", e.ZipCode, e.Long, err)
	}
	ll := s2.LatLngFromDegrees(lat, lng)
	if !ll.IsValid() {
		return s2.LatLng{}, fmt.Errorf("zipcode %s: coordinates %s,%s out of range", e.ZipCode, e.Lat, e.Long)
	}
	return ll, nil
}

// Geohash encodes the entry's coordinates as a geohash of the given
// precision. Returns "" when the coordinates do not parse.
func (e Entry) Geohash(precision int) string {
	ll, err := e.LatLng()
	if err != nil || precision <= 0 {
		return ""
	}
	return geohash.EncodeWithPrecision(ll.Lat.Degrees(), ll.Lng.Degrees(), precision)
}

// Location resolves the entry's IANA time zone.
func (e Entry) Location() (*time.Location, error) {
	if e.Timezone == "" {
		return nil, fmt.Errorf("zipcode %s: no timezone", e.ZipCode)
	}
	return time.LoadLocation(e.Timezone)
}
