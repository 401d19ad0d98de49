package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"sortkit/internal/config"
	"sortkit/internal/dataset"
	"sortkit/internal/descriptor"
	"sortkit/internal/logging"
	"sortkit/internal/sortspec"
	"sortkit/internal/storage"
)

var (
	storeLoadBy     string
	storeLoadOutput string
	storeLoadFormat string
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local dataset store",
	Long:  "Save record files into a local SQLite store and load them back, sorted or as stored.",
}

var storeSaveCmd = &cobra.Command{
	Use:   "save NAME FILE",
	Short: "Save a record file under a dataset name",
	Args:  cobra.ExactArgs(2),
	Run:   runStoreSave,
}

var storeLoadCmd = &cobra.Command{
	Use:   "load NAME",
	Short: "Load a stored dataset, optionally sorted",
	Args:  cobra.ExactArgs(1),
	Run:   runStoreLoad,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored datasets",
	Args:  cobra.NoArgs,
	Run:   runStoreList,
}

var storeRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete a stored dataset",
	Args:  cobra.ExactArgs(1),
	Run:   runStoreRm,
}

func init() {
	storeLoadCmd.Flags().StringVar(&storeLoadBy, "by", "", "Sort keys applied on load")
	storeLoadCmd.Flags().StringVar(&storeLoadOutput, "output", "", "Output file (default: stdout)")
	storeLoadCmd.Flags().StringVar(&storeLoadFormat, "format", "", "Stdout format (default from config)")

	storeCmd.AddCommand(storeSaveCmd)
	storeCmd.AddCommand(storeLoadCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeRmCmd)
	rootCmd.AddCommand(storeCmd)
}

func openStore(cfg *config.Config, logger *logging.Logger) *storage.Store {
	s, err := storage.Open(cfg.Store.Path, logger)
	if err != nil {
		fail("%v", err)
	}
	return s
}

func runStoreSave(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)
	name, path := args[0], args[1]

	rs, err := dataset.Read(path, dataset.Options{CSVAutodetect: cfg.CSV.Autodetect})
	if err != nil {
		fail("%v", err)
	}

	s := openStore(cfg, logger)
	defer s.Close()

	info, err := s.SaveDataset(name, rs)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Saved %q: %d records (id %s)\n", info.Name, info.RecordCount, info.ID)
	if info.DuplicateOf != "" {
		fmt.Printf("Note: content is identical to dataset %q\n", info.DuplicateOf)
	}
}

func runStoreLoad(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	s := openStore(cfg, logger)
	defer s.Close()

	rs, err := s.LoadDataset(args[0])
	if err != nil {
		fail("%v", err)
	}

	if storeLoadBy != "" {
		keys, err := sortspec.Parse(storeLoadBy)
		if err != nil {
			fail("%v", err)
		}
		if err := sortspec.Validate(keys, rs); err != nil {
			fail("%v", err)
		}
		opts := sortspec.Options{
			NullsLast:       cfg.Sort.NullsLast,
			CaseInsensitive: cfg.Sort.CaseInsensitive,
		}
		descriptor.Sort(rs, sortspec.Descriptor(keys, opts))
	}

	if storeLoadOutput != "" {
		if err := dataset.Write(storeLoadOutput, rs); err != nil {
			fail("%v", err)
		}
		return
	}

	name := storeLoadFormat
	if name == "" {
		name = cfg.Output.Format
	}
	format, err := dataset.ParseFormat(name)
	if err != nil {
		fail("%v", err)
	}
	if err := dataset.WriteTo(os.Stdout, format, rs); err != nil {
		fail("%v", err)
	}
}

func runStoreList(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	s := openStore(cfg, logger)
	defer s.Close()

	infos, err := s.ListDatasets()
	if err != nil {
		fail("%v", err)
	}
	if len(infos) == 0 {
		fmt.Println("No datasets stored.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRECORDS\tCREATED\tID")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			info.Name, info.RecordCount, info.CreatedAt.Format(time.RFC3339), info.ID)
	}
	w.Flush()
}

func runStoreRm(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	s := openStore(cfg, logger)
	defer s.Close()

	if err := s.DeleteDataset(args[0]); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Deleted %q\n", args[0])
}
