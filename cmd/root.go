package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vibelink-server",
	Short: "VibeLink backend: rooms, game sessions, real-time gateway",
	Long:  `HTTP + WebSocket API for the VibeLink social game. Commands: api, migrate, seed.`,
	RunE:  runAPI, // default: run the API, same as "vibelink-server api"
}

func init() {
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// Execute runs the root command and returns the error for main to handle.
func Execute() error {
	return rootCmd.Execute()
}
