// Package cli wires the hrconsole command line: the HTTP server and the
// catalog inspection commands.
package cli

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "hrconsole",
	Short:         "HR console tables with per-user column settings",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// Overload so the file wins over variables already in the environment.
		if err := godotenv.Overload(envFiles()...); err != nil {
			slog.Debug("no .env file loaded, using environment variables", "file", envFile)
		} else {
			slog.Debug("loaded .env file", "file", envFile, "command", cmd.Name())
		}
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(versionCmd)
}

func envFiles() []string {
	if envFile == "" {
		return nil
	}
	return []string{envFile}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
