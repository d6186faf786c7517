package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"vibelink-backend/internal/application"
	"vibelink-backend/internal/config"
	"vibelink-backend/internal/database"

	"github.com/spf13/cobra"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the HTTP + WebSocket API",
	RunE:  runAPI,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}
		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		return database.AutoMigrate(db)
	},
}

func runAPI(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	api, err := application.NewAPI(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return api.Run(ctx)
}
