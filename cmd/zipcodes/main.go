// Command zipcodes queries the bundled zipcode dataset and rebuilds it from
// raw sources.
//
// Usage:
//
//	zipcodes match 06469-1154
//	zipcodes is-real 91239
//	zipcodes similar 1005
//	zipcodes filter --where city=Windsor --where active=true --prefix 2
//	zipcodes build --config build.yaml
//	zipcodes validate --dataset-dir ./zipcodes-dataset
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
