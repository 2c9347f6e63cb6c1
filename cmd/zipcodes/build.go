package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreiashu/zipcodes"
)

func newBuildCmd(gf *globalFlags) *cobra.Command {
	var (
		configPath string
		bc         zipcodes.BuildConfig
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a dataset from the raw CSV sources",
		Long: `Build a dataset from the raw CSV sources.

The sources and output are taken from a YAML manifest (--config) or from
--primary, --coordinates and --output. Flags override the manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := bc
			if configPath != "" {
				loaded, err := zipcodes.LoadBuildConfig(configPath)
				if err != nil {
					return err
				}
				cfg = mergeBuildConfig(loaded, bc)
			}

			t, err := cfg.Run(gf.logger(cmd))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d zipcodes to %s\n", len(t), cfg.Output)
			return err
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML build manifest")
	cmd.Flags().StringVar(&bc.PrimarySource, "primary", "", "Primary CSV source (zip_code_database.csv layout)")
	cmd.Flags().StringVar(&bc.CoordinateSource, "coordinates", "", "Coordinate CSV source (ZipCode, Latitude, Longitude)")
	cmd.Flags().StringVarP(&bc.Output, "output", "o", "", "Dataset file to write")
	return cmd
}

// mergeBuildConfig overlays the non-empty fields of flags on base.
func mergeBuildConfig(base, flags zipcodes.BuildConfig) zipcodes.BuildConfig {
	if flags.PrimarySource != "" {
		base.PrimarySource = flags.PrimarySource
	}
	if flags.CoordinateSource != "" {
		base.CoordinateSource = flags.CoordinateSource
	}
	if flags.Output != "" {
		base.Output = flags.Output
	}
	return base
}

func newValidateCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Run integrity and lookup checks on the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := gf.open(cmd)
			if err != nil {
				return err
			}
			if err := zipcodes.ValidateDataset(z); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Dataset OK: %d zipcodes\n", z.Len())
			return err
		},
	}
}
