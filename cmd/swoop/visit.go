package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veltran/swoop"
	"github.com/veltran/swoop/internal/logging"
	"github.com/veltran/swoop/internal/presentation/tui"
)

var visitCmd = &cobra.Command{
	Use:   "visit <base-url> [path...]",
	Short: "Run visits against a site",
	Long: `Drives the engine against a live site. With paths given, each one is
visited in order and the hook timeline is printed. Without paths an
interactive session starts: type a URL per line, or "back"/"forward" to
replay history moves.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		levelStr, _ := cmd.Flags().GetString("log-level")
		trace, _ := cmd.Flags().GetBool("trace")

		cfg, err := LoadConfig(cfgPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		level, err := ParseLevel(levelStr)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		logger := logging.New(level)

		opts, cleanup, err := cfg.EngineOptions(logger)
		defer cleanup()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		baseURL := args[0]
		engine, err := swoop.New(baseURL, opts...)
		if err != nil {
			fmt.Printf("Error initializing swoop: %v\n", err)
			os.Exit(1)
		}
		ctx := context.Background()
		defer func() {
			if err := engine.Destroy(ctx); err != nil {
				logger.Warn("destroy failed", "err", err)
			}
		}()

		if trace {
			renderer := tui.NewTraceRenderer(os.Stdout)
			unsub := engine.Hooks().Notify(renderer.Observe)
			defer unsub()
		}

		paths := args[1:]
		if len(paths) == 0 {
			tui.PrintBanner()
			runner := swoop.NewRunner()
			runner.Input = os.Stdin
			runner.Output = os.Stdout
			if err := runner.Run(ctx, engine); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		failed := false
		for _, path := range paths {
			renderer := tui.NewTraceRenderer(os.Stdout)
			err := engine.Navigate(ctx, path)
			renderer.Summary(engine.History().Current(), err)
			if err != nil {
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(visitCmd)
	visitCmd.Flags().Bool("trace", false, "Print the hook timeline of every visit")
}
