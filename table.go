package zipcodes

import (
	"slices"
	"strings"
)

// Table is an ordered collection of entries. A loaded Table is never
// modified; every query returns a new Table whose entries share no memory
// with the receiver, so results can be filtered, sorted or edited freely.
//
// All query operations are methods on Table so that a pre-filtered subset
// can be queried the same way as the full dataset:
//
//	windsor := z.FilterBy(Criteria{"city": "Windsor", "active": true})
//	south, err := windsor.SimilarTo("2")
type Table []Entry

// Criteria maps public field names (FieldCity, FieldActive, ...) to the
// exact value an entry must hold. List fields are matched with a []string.
type Criteria map[string]any

// Matching returns the entries whose zipcode equals code after cleaning.
// code may be a 5-digit code or a ZIP+4 code. Zipcodes are unique, so the
// result holds at most one entry.
func (t Table) Matching(code string) (Table, error) {
	cleaned, err := Clean(code, Zip5Length)
	if err != nil {
		return nil, err
	}

	out := Table{}
	for _, e := range t {
		if e.ZipCode == cleaned {
			out = append(out, e.clone())
		}
	}
	return out, nil
}

// IsReal reports whether code names an entry of the table.
func (t Table) IsReal(code string) (bool, error) {
	m, err := t.Matching(code)
	if err != nil {
		return false, err
	}
	return len(m) > 0, nil
}

// SimilarTo returns the entries whose zipcode starts with prefix, in table
// order. The prefix is validated against its own length, so "1005" and
// "10055-1234" are both accepted.
func (t Table) SimilarTo(prefix string) (Table, error) {
	cleaned, err := Clean(prefix, prefixLength(prefix))
	if err != nil {
		return nil, err
	}

	out := Table{}
	for _, e := range t {
		if strings.HasPrefix(e.ZipCode, cleaned) {
			out = append(out, e.clone())
		}
	}
	return out, nil
}

// FilterBy returns the entries matching every criterion, in table order.
// An entry lacking a queried field never matches. Empty criteria return a
// copy of the whole table.
func (t Table) FilterBy(criteria Criteria) Table {
	out := Table{}
	for _, e := range t {
		if e.matches(criteria) {
			out = append(out, e.clone())
		}
	}
	return out
}

// ListAll returns a copy of the whole table in its original order.
func (t Table) ListAll() Table {
	out := make(Table, len(t))
	for i, e := range t {
		out[i] = e.clone()
	}
	return out
}

func (e Entry) matches(criteria Criteria) bool {
	for name, want := range criteria {
		got, ok := e.Field(name)
		if !ok || !fieldEqual(got, want) {
			return false
		}
	}
	return true
}

// fieldEqual compares an entry value with a criterion. Values of different
// types are never equal; there is no numeric or substring tolerance.
func fieldEqual(got, want any) bool {
	switch g := got.(type) {
	case string:
		w, ok := want.(string)
		return ok && g == w
	case bool:
		w, ok := want.(bool)
		return ok && g == w
	case []string:
		w, ok := want.([]string)
		return ok && slices.Equal(g, w)
	}
	return false
}
