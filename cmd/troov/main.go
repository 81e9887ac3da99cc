// Package main is the troov backend server and its maintenance commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// configPath points at an optional YAML file layered under TROOV_ env vars.
	configPath string
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "troov",
	Short: "Troov Studio project planning backend",
	Long: `troov serves the project planning API: section autosave, completion
tracking, summaries, notifications and the realtime event stream.

Configuration comes from an optional YAML file followed by TROOV_ environment
variables. Nested keys use a double underscore, e.g. TROOV_DB__DSN.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (defaults to $TROOV_CONFIG)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(deadlineCmd)
}
