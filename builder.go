package zipcodes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Column names of the raw sources.
const (
	// primary source: unitedstateszipcodes.org zip_code_database.csv
	ColumnZip       = "zip"
	ColumnLatitude  = "latitude"
	ColumnLongitude = "longitude"

	// coordinate source: zip-codes.com free GPS database
	ColumnGPSZip       = "ZipCode"
	ColumnGPSLatitude  = "Latitude"
	ColumnGPSLongitude = "Longitude"
)

// Default file names of the raw sources inside Config.DataDir.
const (
	PrimarySourceFile    = "zip_code_database.csv"
	CoordinateSourceFile = "zip-codes-database-FREE.csv"
)

// RawRecord is one row of a raw source keyed by its header.
type RawRecord map[string]string

// Sources are the two raw inputs of a build.
type Sources struct {
	Primary     io.Reader // zipcode records (PrimarySourceFile layout)
	Coordinates io.Reader // higher precision coordinates (CoordinateSourceFile layout)
}

// ParseTable reads a CSV source into records keyed by its header row, in
// source order. Whitespace following a delimiter is skipped.
//
// Returns an error wrapping ErrMalformedSource if the source has no header
// row or a row's column count differs from the header's.
func ParseTable(r io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", ErrMalformedSource)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	// ReuseRecord: the header must survive the following reads.
	header = append([]string(nil), header...)
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var records []RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
		}
		rec := make(RawRecord, len(header))
		for i, name := range header {
			rec[name] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// EnrichCoordinates overwrites the latitude and longitude of every primary
// record whose zipcode appears in coords. Primary records without a match
// are kept as they are, and coordinate records without a primary record are
// skipped. primary is modified in place and returned.
func EnrichCoordinates(coords, primary []RawRecord) []RawRecord {
	index := make(map[string]int, len(primary))
	for i, rec := range primary {
		index[rec[ColumnZip]] = i
	}

	for _, c := range coords {
		i, ok := index[c[ColumnGPSZip]]
		if !ok {
			continue
		}
		primary[i][ColumnLatitude] = c[ColumnGPSLatitude]
		primary[i][ColumnLongitude] = c[ColumnGPSLongitude]
	}
	return primary
}

// ProjectSchema returns copies of records holding only the columns named by
// schema.
func ProjectSchema(records []RawRecord, schema Schema) []RawRecord {
	out := make([]RawRecord, len(records))
	for i, rec := range records {
		p := make(RawRecord, len(schema))
		for _, rule := range schema {
			if v, ok := rec[rule.Source]; ok {
				p[rule.Source] = v
			}
		}
		out[i] = p
	}
	return out
}

// ApplyTransforms renames each column to its public field and converts its
// value as the schema declares. List fields missing from a record come out
// empty, never nil.
//
// Returns an error wrapping ErrMalformedSource if a value cannot be
// converted.
func ApplyTransforms(records []RawRecord, schema Schema) (Table, error) {
	t := make(Table, 0, len(records))
	for i, rec := range records {
		var e Entry
		for _, rule := range schema {
			raw, ok := rec[rule.Source]
			if !ok {
				continue
			}
			v, err := rule.Transform.apply(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: record %d, column %s: %v", ErrMalformedSource, i+1, rule.Source, err)
			}
			if err := e.setField(rule.Public, v); err != nil {
				return nil, fmt.Errorf("schema rule %s -> %s: %w", rule.Source, rule.Public, err)
			}
		}
		e.normalize()
		t = append(t, e)
	}
	return t, nil
}

// Build produces the normalized table from the raw sources: parse both,
// enrich coordinates, project the schema and apply transforms. Any error
// aborts the build; no partial table is returned. A nil schema means
// DefaultSchema.
func Build(src Sources, schema Schema) (Table, error) {
	return build(src, schema, slog.Default())
}

func build(src Sources, schema Schema, logger *slog.Logger) (Table, error) {
	if src.Primary == nil || src.Coordinates == nil {
		return nil, fmt.Errorf("%w: both sources are required", ErrMalformedSource)
	}
	if schema == nil {
		schema = DefaultSchema
	}

	coords, err := ParseTable(src.Coordinates)
	if err != nil {
		return nil, fmt.Errorf("parsing coordinate source: %w", err)
	}
	primary, err := ParseTable(src.Primary)
	if err != nil {
		return nil, fmt.Errorf("parsing primary source: %w", err)
	}
	logger.Info("parsed raw sources", "primary", len(primary), "coordinates", len(coords))

	start := time.Now()
	primary = EnrichCoordinates(coords, primary)
	logger.Info("updated coordinates from GPS source", "elapsed", time.Since(start))

	t, err := ApplyTransforms(ProjectSchema(primary, schema), schema)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// RegenerateDataset rebuilds the dataset from the raw sources in the data
// directory and writes it to the dataset directory. The raw files must
// already exist:
//
//	./zipcodes-data/zip_code_database.csv
//	./zipcodes-data/zip-codes-database-FREE.csv
//
// Run ValidateDataset on the result before committing it.
func RegenerateDataset(opts ...Option) error {
	cfg := newConfig(opts)
	bc := BuildConfig{
		PrimarySource:    filepath.Join(cfg.DataDir, PrimarySourceFile),
		CoordinateSource: filepath.Join(cfg.DataDir, CoordinateSourceFile),
		Output:           filepath.Join(cfg.DatasetDir, datasetFiles[0]),
	}
	if _, err := bc.Run(cfg.Logger); err != nil {
		return fmt.Errorf("failed to regenerate dataset: %w", err)
	}
	return nil
}

// buildFiles opens the two source files and builds from them.
func buildFiles(primaryPath, coordinatePath string, schema Schema, logger *slog.Logger) (Table, error) {
	pf, err := os.Open(primaryPath)
	if err != nil {
		return nil, fmt.Errorf("opening primary source: %w", err)
	}
	defer pf.Close()

	cf, err := os.Open(coordinatePath)
	if err != nil {
		return nil, fmt.Errorf("opening coordinate source: %w", err)
	}
	defer cf.Close()

	return build(Sources{Primary: pf, Coordinates: cf}, schema, logger)
}
