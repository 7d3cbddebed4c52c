package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swoop",
	Short: "Swoop is a page transition engine",
	Long:  `Swoop turns full page loads into fetch-and-swap visits with animated transitions, a content cache and a hook system.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a swoop config file (YAML)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
}
