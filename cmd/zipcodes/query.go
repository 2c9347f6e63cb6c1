package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andreiashu/zipcodes"
)

func newMatchCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "match <zipcode>",
		Short: "Print the entry for a 5-digit or ZIP+4 code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := gf.open(cmd)
			if err != nil {
				return err
			}
			m, err := z.Matching(args[0])
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), m)
		},
	}
}

func newIsRealCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "is-real <zipcode>",
		Short: "Print whether a zipcode exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := gf.open(cmd)
			if err != nil {
				return err
			}
			ok, err := z.IsReal(args[0])
			if err != nil {
				return err
			}
			return writeBool(cmd.OutOrStdout(), ok)
		},
	}
}

func newSimilarCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "similar <prefix>",
		Short: "Print every entry whose zipcode starts with prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := gf.open(cmd)
			if err != nil {
				return err
			}
			m, err := z.SimilarTo(args[0])
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), m)
		},
	}
}

func newFilterCmd(gf *globalFlags) *cobra.Command {
	var (
		where  []string
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Print entries matching every --where field=value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := parseCriteria(where)
			if err != nil {
				return err
			}
			z, err := gf.open(cmd)
			if err != nil {
				return err
			}
			t := z.FilterBy(criteria)
			if prefix != "" {
				if t, err = t.SimilarTo(prefix); err != nil {
					return err
				}
			}
			return writeTable(cmd.OutOrStdout(), t)
		},
	}
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "field=value criterion, repeatable (list fields take comma-separated values)")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Only keep zipcodes starting with this prefix")
	return cmd
}

func newListCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the whole dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := gf.open(cmd)
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), z.ListAll())
		},
	}
}

// parseCriteria turns field=value pairs into typed criteria: "active" takes
// a boolean, the list fields a comma-separated list, everything else text.
func parseCriteria(pairs []string) (zipcodes.Criteria, error) {
	criteria := zipcodes.Criteria{}
	for _, p := range pairs {
		field, value, ok := strings.Cut(p, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("criterion %q: want field=value", p)
		}
		switch field {
		case zipcodes.FieldActive:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("criterion %q: %w", p, err)
			}
			criteria[field] = b
		case zipcodes.FieldAcceptableCities, zipcodes.FieldUnacceptableCities, zipcodes.FieldAreaCodes:
			list := []string{}
			for _, v := range strings.Split(value, ",") {
				if v = strings.TrimSpace(v); v != "" {
					list = append(list, v)
				}
			}
			criteria[field] = list
		default:
			criteria[field] = value
		}
	}
	return criteria, nil
}
