package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veltran/swoop"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of swoop",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("swoop version %s\n", strings.TrimSpace(swoop.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
