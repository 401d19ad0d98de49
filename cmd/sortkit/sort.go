package main

import (
	"os"

	"github.com/spf13/cobra"

	"sortkit/internal/config"
	"sortkit/internal/dataset"
	"sortkit/internal/descriptor"
	"sortkit/internal/logging"
	"sortkit/internal/record"
	"sortkit/internal/sortspec"
)

var (
	sortBy        string
	sortOutput    string
	sortFormat    string
	sortReverse   bool
	sortNullsLast bool
	sortFoldCase  bool
	sortCount     bool
)

var sortCmd = &cobra.Command{
	Use:   "sort FILE",
	Short: "Sort a record file by one or more fields",
	Long: `Sort the records of FILE by the given keys and write the result.

The --by expression is a comma-separated list of field names, each with
an optional leading "-" for descending order (or "+" for ascending, the
default). Earlier keys take priority; later keys break ties. Sorting is
stable, so records no key distinguishes keep their input order - an
empty --by reproduces the input unchanged.

Examples:
  sortkit sort people.json --by last,first,-year
  sortkit sort people.csv.gz --by -score --output top.json
  sortkit sort people.yaml --by name --fold-case --format csv`,
	Args: cobra.ExactArgs(1),
	Run:  runSort,
}

func init() {
	sortCmd.Flags().StringVar(&sortBy, "by", "", "Sort keys, e.g. \"last,first,-year\"")
	sortCmd.Flags().StringVar(&sortOutput, "output", "", "Output file (default: stdout)")
	sortCmd.Flags().StringVar(&sortFormat, "format", "", "Stdout format: json, yaml, toml, csv (default from config)")
	sortCmd.Flags().BoolVar(&sortReverse, "reverse", false, "Reverse the combined ordering")
	sortCmd.Flags().BoolVar(&sortNullsLast, "nulls-last", false, "Place missing/null values last")
	sortCmd.Flags().BoolVar(&sortFoldCase, "fold-case", false, "Compare strings case-insensitively")
	sortCmd.Flags().BoolVar(&sortCount, "count", false, "Log the number of comparisons performed")
	rootCmd.AddCommand(sortCmd)
}

// sortOptions resolves comparison options: config supplies defaults,
// explicit flags win.
func sortOptions(cmd *cobra.Command, cfg *config.Config) sortspec.Options {
	opts := sortspec.Options{
		NullsLast:       cfg.Sort.NullsLast,
		CaseInsensitive: cfg.Sort.CaseInsensitive,
	}
	if cmd.Flags().Changed("nulls-last") {
		opts.NullsLast = sortNullsLast
	}
	if cmd.Flags().Changed("fold-case") {
		opts.CaseInsensitive = sortFoldCase
	}
	return opts
}

func runSort(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)
	path := args[0]

	rs, err := dataset.Read(path, dataset.Options{CSVAutodetect: cfg.CSV.Autodetect})
	if err != nil {
		fail("%v", err)
	}

	var keys []sortspec.Key
	if sortBy != "" {
		keys, err = sortspec.Parse(sortBy)
		if err != nil {
			fail("%v", err)
		}
		if err := sortspec.Validate(keys, rs); err != nil {
			fail("%v", err)
		}
	}

	d := sortspec.Descriptor(keys, sortOptions(cmd, cfg))
	if sortReverse {
		d = descriptor.Reverse(d)
	}

	var tally *descriptor.Tally
	if sortCount {
		d, tally = descriptor.Counted(d)
	}

	descriptor.Sort(rs, d)

	if tally != nil {
		logger.Info("sort finished", logging.Fields{
			"records":     len(rs),
			"comparisons": tally.Count(),
		})
	} else {
		logger.Debug("sort finished", logging.Fields{"records": len(rs)})
	}

	if err := writeResult(rs, cfg); err != nil {
		fail("%v", err)
	}
}

// writeResult sends records to --output (format from its extension) or
// to stdout in --format / the configured default.
func writeResult(rs []record.Record, cfg *config.Config) error {
	if sortOutput != "" {
		return dataset.Write(sortOutput, rs)
	}

	name := sortFormat
	if name == "" {
		name = cfg.Output.Format
	}
	format, err := dataset.ParseFormat(name)
	if err != nil {
		return err
	}
	return dataset.WriteTo(os.Stdout, format, rs)
}
