// Package zipcodes provides offline lookup and validation of U.S. zipcodes
// against a bundled reference dataset.
//
// The dataset is built once, out of band, from two raw CSV sources (see
// Build and RegenerateDataset) and compiled into the package. At runtime it
// is loaded into memory a single time and queried read-only:
//
//	z, err := zipcodes.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ok, err := z.IsReal("06469-1154")
package zipcodes

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Config contains configuration options for Zipcodes and the dataset
// builder.
type Config struct {
	DataDir    string       // Directory holding the raw CSV sources (default: "./zipcodes-data")
	DatasetDir string       // Directory holding the built dataset (default: "./zipcodes-dataset")
	Table      Table        // Preloaded table; skips dataset loading when non-nil
	Logger     *slog.Logger // Logger for load and build events (default: slog.Default())
}

// Option is a functional option for configuring Zipcodes.
type Option func(*Config)

// WithDataDir sets the directory for the raw CSV sources.
func WithDataDir(dir string) Option {
	return func(c *Config) {
		c.DataDir = dir
	}
}

// WithDatasetDir sets the directory searched for a built dataset before the
// embedded one.
func WithDatasetDir(dir string) Option {
	return func(c *Config) {
		c.DatasetDir = dir
	}
}

// WithTable serves queries from t instead of loading a dataset. t is not
// copied and must not be modified afterwards.
func WithTable(t Table) Option {
	return func(c *Config) {
		c.Table = t
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

func defaultConfig() *Config {
	return &Config{
		DataDir:    "./zipcodes-data",
		DatasetDir: "./zipcodes-dataset",
		Logger:     slog.Default(),
	}
}

func newConfig(opts []Option) *Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

// Zipcodes serves queries against one loaded table.
// Safe for concurrent use: nothing mutates the table after New returns.
type Zipcodes struct {
	table  Table
	config *Config
}

// Singleton pattern for the default Zipcodes instance.
var (
	defaultZipcodes     *Zipcodes
	defaultZipcodesOnce sync.Once
	defaultZipcodesErr  error
)

// Default returns a shared Zipcodes instance, loading the dataset on the
// first call. Later calls return the same instance, or the same error.
func Default() (*Zipcodes, error) {
	defaultZipcodesOnce.Do(func() {
		defaultZipcodes, defaultZipcodesErr = New()
	})
	return defaultZipcodes, defaultZipcodesErr
}

// New loads the dataset and returns a Zipcodes serving it.
//
// The dataset directory on the filesystem is tried first and the dataset
// compiled into the package second:
//
//	z, err := New(WithDatasetDir("/var/lib/zipcodes"))
//
// A failure to load is returned wrapped around ErrDatasetLoad; there is no
// degraded mode without a table.
func New(opts ...Option) (*Zipcodes, error) {
	cfg := newConfig(opts)
	z := &Zipcodes{config: cfg}

	if cfg.Table != nil {
		z.table = cfg.Table
		return z, nil
	}

	start := time.Now()
	fh, origin, err := openDataset(cfg.DatasetDir)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	z.table, err = Load(fh)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", origin, err)
	}
	cfg.Logger.Debug("zipcode dataset loaded",
		"origin", origin,
		"entries", len(z.table),
		"elapsed", time.Since(start))
	return z, nil
}

// Len returns the number of entries in the loaded table.
func (z *Zipcodes) Len() int {
	return len(z.table)
}

// Matching returns the entry for a 5-digit or ZIP+4 code, as a table of at
// most one entry.
//
// Example:
//
//	m, _ := z.Matching("06469-1154")
//	// m[0].City == "Moodus", m[0].State == "CT"
func (z *Zipcodes) Matching(code string) (Table, error) {
	return z.table.Matching(code)
}

// IsReal reports whether code is a zipcode of the dataset. It returns an
// error only when code is malformed.
func (z *Zipcodes) IsReal(code string) (bool, error) {
	return z.table.IsReal(code)
}

// SimilarTo returns every entry whose zipcode starts with prefix.
func (z *Zipcodes) SimilarTo(prefix string) (Table, error) {
	return z.table.SimilarTo(prefix)
}

// FilterBy returns every entry matching all criteria.
func (z *Zipcodes) FilterBy(criteria Criteria) Table {
	return z.table.FilterBy(criteria)
}

// ListAll returns a copy of the whole dataset.
func (z *Zipcodes) ListAll() Table {
	return z.table.ListAll()
}
