package main

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/andreiashu/zipcodes"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	datasetDir string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	gf := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "zipcodes",
		Short:         "Offline U.S. zipcode lookup and validation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&gf.datasetDir, "dataset-dir", "./zipcodes-dataset", "Directory searched for a built dataset before the embedded one")
	rootCmd.PersistentFlags().BoolVarP(&gf.verbose, "verbose", "v", false, "Log load and build events to stderr")

	rootCmd.AddCommand(
		newMatchCmd(gf),
		newIsRealCmd(gf),
		newSimilarCmd(gf),
		newFilterCmd(gf),
		newListCmd(gf),
		newValidateCmd(gf),
		newBuildCmd(gf),
	)
	return rootCmd
}

// logger returns a stderr logger; quiet unless --verbose is set.
func (gf *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if gf.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// open loads the dataset for a query subcommand.
func (gf *globalFlags) open(cmd *cobra.Command) (*zipcodes.Zipcodes, error) {
	return zipcodes.New(
		zipcodes.WithDatasetDir(gf.datasetDir),
		zipcodes.WithLogger(gf.logger(cmd)),
	)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// result is the JSON form of an entry printed by the CLI: the entry plus
// its geohash.
type result struct {
	zipcodes.Entry
	Geohash string `json:"geohash,omitempty"`
}

// geohashPrecision is about 5km x 5km, enough to bucket neighbouring codes.
const geohashPrecision = 5

func writeTable(w io.Writer, t zipcodes.Table) error {
	out := make([]result, len(t))
	for i, e := range t {
		out[i] = result{Entry: e, Geohash: e.Geohash(geohashPrecision)}
	}
	return writeJSON(w, out)
}

func writeBool(w io.Writer, b bool) error {
	_, err := io.WriteString(w, strconv.FormatBool(b)+"\n")
	return err
}
