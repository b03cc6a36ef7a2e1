package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "task-description-updater/docs" // Swagger docs
)

var Version = "dev"

// @title       Task Description Updater API
// @description Status API of the ClickUp task description updater.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "updater",
		Short:        "Strips configured boilerplate from ClickUp task titles and descriptions",
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, false)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a config file (default: search ./config, . and /etc/task-description-updater)")

	rootCmd.AddCommand(runCmd(&configPath))
	rootCmd.AddCommand(onceCmd(&configPath))
	rootCmd.AddCommand(resolveCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Poll the dispatch list for the configured number of cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), *configPath, false)
		},
	}
}

func onceCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Run a single cycle and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), *configPath, true)
		},
	}
}

func resolveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the ClickUp hierarchy and print it as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return resolve(cmd.Context(), *configPath, cmd.OutOrStdout())
		},
	}
}
