package zipcodes

import (
	"fmt"
)

// validationZipcode defines a known zipcode for functional validation.
type validationZipcode struct {
	code      string
	wantCity  string
	wantState string
}

// knownZipcodes are used to validate lookups against a loaded dataset.
// These are long-standing codes present in every release of the sources.
var knownZipcodes = []validationZipcode{
	{"10001", "New York", "NY"},
	{"06475", "Old Saybrook", "CT"},
	{"06905", "Stamford", "CT"},
	{"10055-0001", "New York", "NY"},
}

// ValidateDataset performs integrity and functional checks on the dataset
// served by z. Returns the first problem found, or nil.
//
// Checked: every zipcode is 5 digits and unique, coordinates that are set
// parse and lie in range, time zones that are set resolve, and the known
// zipcodes can be looked up.
func ValidateDataset(z *Zipcodes) error {
	if z == nil {
		return fmt.Errorf("no dataset to validate")
	}
	t := z.table
	if len(t) == 0 {
		return fmt.Errorf("dataset is empty")
	}
	logger := z.config.Logger

	seen := make(map[string]struct{}, len(t))
	for i, e := range t {
		if _, err := Clean(e.ZipCode, Zip5Length); err != nil || len(e.ZipCode) != Zip5Length {
			return fmt.Errorf("entry %d: malformed zipcode %q", i, e.ZipCode)
		}
		if _, dup := seen[e.ZipCode]; dup {
			return fmt.Errorf("entry %d: duplicate zipcode %s", i, e.ZipCode)
		}
		seen[e.ZipCode] = struct{}{}

		if e.Lat != "" || e.Long != "" {
			if _, err := e.LatLng(); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
		}
		if e.Timezone != "" {
			if _, err := e.Location(); err != nil {
				return fmt.Errorf("entry %d: zipcode %s: %w", i, e.ZipCode, err)
			}
		}
	}
	logger.Info("dataset integrity OK", "entries", len(t))

	for _, tc := range knownZipcodes {
		m, err := z.Matching(tc.code)
		if err != nil {
			return fmt.Errorf("matching(%q): %w", tc.code, err)
		}
		if len(m) != 1 {
			return fmt.Errorf("matching(%q) returned %d entries, want 1", tc.code, len(m))
		}
		if m[0].City != tc.wantCity || m[0].State != tc.wantState {
			return fmt.Errorf("matching(%q) = %s, %s, want %s, %s",
				tc.code, m[0].City, m[0].State, tc.wantCity, tc.wantState)
		}
	}
	logger.Info("known zipcodes OK", "count", len(knownZipcodes))
	return nil
}
