package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"portfolio/internal/app"
	"portfolio/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "portfolio",
	Short:        "Portfolio API server",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the YAML config (default $PORTFOLIO_CONFIG_PATH or config/config.yaml)")
	rootCmd.AddCommand(serveCmd, migrateCmd, hashPasswordCmd, createAdminCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log.Printf("[main] configuration loaded")
	return app.Run(ctx, cfg)
}
