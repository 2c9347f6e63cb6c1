package zipcodes

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
)

//go:embed zipcodes-dataset
var datasetData embed.FS

// embeddedDatasetDir is the directory of the dataset compiled into the
// package.
const embeddedDatasetDir = "zipcodes-dataset"

// datasetFiles lists the dataset file names in lookup order. Load sniffs the
// compression, so the extension only decides precedence.
var datasetFiles = []string{"zips.json.gz", "zips.json.bz2", "zips.json"}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
)

// Load decodes a serialized table. The stream may be plain JSON, gzip or
// bzip2; the format is detected from its first bytes.
func Load(r io.Reader) (Table, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no data stream", ErrDatasetLoad)
	}

	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if len(head) == 0 {
		if err == nil || err == io.EOF {
			return nil, fmt.Errorf("%w: empty data stream", ErrDatasetLoad)
		}
		return nil, fmt.Errorf("%w: reading data stream: %v", ErrDatasetLoad, err)
	}

	var src io.Reader = br
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: opening gzip stream: %v", ErrDatasetLoad, err)
		}
		defer zr.Close()
		src = zr
	case bytes.HasPrefix(head, bzip2Magic):
		src = bzip2.NewReader(br)
	}

	// Read to the end so a compressed stream's checksum is verified.
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: reading data stream: %v", ErrDatasetLoad, err)
	}

	// Unmarshal rejects anything following the top-level value.
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: decoding: %v", ErrDatasetLoad, err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: dataset is not a list of records", ErrDatasetLoad)
	}
	for i := range t {
		t[i].normalize()
	}
	return t, nil
}

// LoadFile decodes the serialized table stored at path.
func LoadFile(path string) (Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetLoad, err)
	}
	defer fh.Close()

	t, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteDataset serializes t as a gzip-compressed JSON list of records, the
// format Load and the embedded dataset use.
func WriteDataset(w io.Writer, t Table) error {
	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("creating gzip writer: %w", err)
	}

	out := make(Table, len(t))
	for i, e := range t {
		e.normalize()
		out[i] = e
	}
	if err := json.NewEncoder(zw).Encode(out); err != nil {
		zw.Close()
		return fmt.Errorf("encoding dataset: %w", err)
	}

	// Explicitly close to flush the gzip footer.
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing gzip writer: %w", err)
	}
	return nil
}

// writeDatasetFile writes t to path, removing the partial file on error.
func writeDatasetFile(path string, t Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating dataset directory: %w", err)
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}

	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(path) // best-effort cleanup of partial file
		}
	}()

	bw := bufio.NewWriter(out)
	if err := WriteDataset(bw, t); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	// Explicitly close to catch flush errors (e.g., on NFS)
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", path, err)
	}
	success = true
	return nil
}

// openDataset opens the first dataset file found, looking in dir on the
// filesystem before the embedded copy.
// The returned string names where the data came from.
func openDataset(dir string) (fs.File, string, error) {
	if dir != "" {
		for _, name := range datasetFiles {
			path := filepath.Join(dir, name)
			if fh, err := os.Open(path); err == nil {
				return fh, path, nil
			}
		}
	}
	for _, name := range datasetFiles {
		path := embeddedDatasetDir + "/" + name
		if fh, err := datasetData.Open(path); err == nil {
			return fh, "embedded:" + path, nil
		}
	}
	return nil, "", fmt.Errorf("%w: no dataset in %q or embedded", ErrDatasetLoad, dir)
}
