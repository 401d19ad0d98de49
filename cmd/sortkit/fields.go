package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sortkit/internal/dataset"
	"sortkit/internal/record"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields FILE",
	Short: "List the field names present in a record file",
	Long: `Print the union of field names across all records of FILE, one per
line, sorted alphabetically. Useful for building a --by expression.`,
	Args: cobra.ExactArgs(1),
	Run:  runFields,
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}

func runFields(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	rs, err := dataset.Read(args[0], dataset.Options{CSVAutodetect: cfg.CSV.Autodetect})
	if err != nil {
		fail("%v", err)
	}

	for _, name := range record.Fields(rs) {
		fmt.Println(name)
	}
}
