package zipcodes

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// BuildConfig is a build manifest naming the raw sources and the output
// file of one dataset build. It is usually read from YAML:
//
//	primary_source: ./zipcodes-data/zip_code_database.csv
//	coordinate_source: ./zipcodes-data/zip-codes-database-FREE.csv
//	output: ./zipcodes-dataset/zips.json.gz
type BuildConfig struct {
	PrimarySource    string `yaml:"primary_source" validate:"required"`
	CoordinateSource string `yaml:"coordinate_source" validate:"required"`
	Output           string `yaml:"output" validate:"required"`
}

var buildConfigValidate = validator.New()

// LoadBuildConfig reads and validates a YAML build manifest.
func LoadBuildConfig(path string) (BuildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BuildConfig{}, fmt.Errorf("failed to read the build config: %w", err)
	}

	var bc BuildConfig
	if err := yaml.Unmarshal(data, &bc); err != nil {
		return BuildConfig{}, fmt.Errorf("failed to parse the build config %s: %w", path, err)
	}
	if err := bc.Validate(); err != nil {
		return BuildConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return bc, nil
}

// Validate checks that every path is set.
func (bc BuildConfig) Validate() error {
	if err := buildConfigValidate.Struct(bc); err != nil {
		return fmt.Errorf("invalid build config: %w", err)
	}
	return nil
}

// Run builds the dataset described by bc with DefaultSchema and writes it to
// bc.Output. The built table is returned for inspection. If logger is nil,
// slog.Default() is used.
func (bc BuildConfig) Run(logger *slog.Logger) (Table, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := bc.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	t, err := buildFiles(bc.PrimarySource, bc.CoordinateSource, DefaultSchema, logger)
	if err != nil {
		return nil, err
	}
	if err := writeDatasetFile(bc.Output, t); err != nil {
		return nil, err
	}
	logger.Info("wrote zipcode dataset",
		"entries", len(t),
		"output", bc.Output,
		"elapsed", time.Since(start))
	return t, nil
}
