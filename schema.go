package zipcodes

import (
	"fmt"
	"strconv"
	"strings"
)

// Transform identifies the value conversion a FieldRule applies.
type Transform uint8

const (
	// TransformNone keeps the source value as text.
	TransformNone Transform = iota
	// TransformSplitList splits a comma-joined value into a list, trimming
	// each element and dropping empty ones.
	TransformSplitList
	// TransformNegateInt reads an integer flag and stores its logical
	// negation ("1" becomes false).
	TransformNegateInt
)

func (t Transform) String() string {
	switch t {
	case TransformNone:
		return "none"
	case TransformSplitList:
		return "split-list"
	case TransformNegateInt:
		return "negate-int"
	}
	return fmt.Sprintf("Transform(%d)", uint8(t))
}

// apply converts a raw source value.
func (t Transform) apply(v string) (any, error) {
	switch t {
	case TransformNone:
		return v, nil
	case TransformSplitList:
		return splitByComma(v), nil
	case TransformNegateInt:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer flag", v)
		}
		return n == 0, nil
	}
	return nil, fmt.Errorf("unknown transform %s", t)
}

// splitByComma splits s on commas, trims each element and drops empty ones.
// The result is never nil.
func splitByComma(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FieldRule maps one source column to a public Entry field.
type FieldRule struct {
	Source    string    // Column name in the primary source
	Public    string    // Entry field name (FieldZipCode, ...)
	Transform Transform // Conversion applied to the value
}

// Schema is the static field table of the builder. Fields of a source record
// not named by a rule are dropped. Public names must be unique; that is the
// schema author's responsibility and is not checked at build time.
type Schema []FieldRule

// DefaultSchema maps the unitedstateszipcodes.org "zip_code_database.csv"
// layout to the public Entry fields.
var DefaultSchema = Schema{
	{Source: "zip", Public: FieldZipCode},
	{Source: "type", Public: FieldZipCodeType},
	{Source: "decommissioned", Public: FieldActive, Transform: TransformNegateInt},
	{Source: "primary_city", Public: FieldCity},
	{Source: "acceptable_cities", Public: FieldAcceptableCities, Transform: TransformSplitList},
	{Source: "unacceptable_cities", Public: FieldUnacceptableCities, Transform: TransformSplitList},
	{Source: "state", Public: FieldState},
	{Source: "county", Public: FieldCounty},
	{Source: "timezone", Public: FieldTimezone},
	{Source: "area_codes", Public: FieldAreaCodes, Transform: TransformSplitList},
	{Source: "world_region", Public: FieldWorldRegion},
	{Source: "country", Public: FieldCountry},
	{Source: "latitude", Public: FieldLat},
	{Source: "longitude", Public: FieldLong},
}

