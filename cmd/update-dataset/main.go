// Command update-dataset regenerates the bundled zipcode dataset from the
// raw CSV sources.
//
// Usage:
//
//	go run ./cmd/update-dataset
//
// This reads ./zipcodes-data/zip_code_database.csv and
// ./zipcodes-data/zip-codes-database-FREE.csv, writes
// ./zipcodes-dataset/zips.json.gz, and validates the result.
package main

import (
	"fmt"
	"os"

	"github.com/andreiashu/zipcodes"
)

func main() {
	fmt.Println("Regenerating zipcode dataset from raw data...")

	if err := zipcodes.RegenerateDataset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	z, err := zipcodes.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := zipcodes.ValidateDataset(z); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Dataset regenerated successfully (%d zipcodes).\n", z.Len())
	fmt.Println("Rebuild the package to embed the new dataset.")
}
