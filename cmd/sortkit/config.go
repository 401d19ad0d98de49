package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"sortkit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sortkit configuration",
	Long:  "View and manage the sortkit configuration stored in the config directory.",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Print the effective configuration as JSON: defaults, overridden by the
config file, overridden by SORTKIT_* environment variables.`,
	Args: cobra.NoArgs,
	Run:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	Run:   runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		fail("formatting config: %v", err)
	}
	fmt.Println(string(data))
}

func runConfigInit(cmd *cobra.Command, args []string) {
	dir := configDirFlag
	if dir == "" {
		dir = config.DefaultDir()
	}

	if err := config.DefaultConfig().Save(dir); err != nil {
		fail("writing config: %v", err)
	}
	fmt.Printf("Wrote default config to %s/config.json\n", dir)
}
