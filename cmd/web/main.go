package main

import (
	"fmt"
	"os"

	"github.com/de-tools/tag-atlas/pkg/server"
	"github.com/de-tools/tag-atlas/pkg/services/config"
	"github.com/de-tools/tag-atlas/pkg/services/inventory"
	"github.com/de-tools/tag-atlas/pkg/services/remediation"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Tag Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "tag-atlas.yaml",
		"Path to the configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	f, err := os.Open(cfg.DatasetPath)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	resources, err := inventory.LoadRaw(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	logger.Info().
		Int("resources", len(resources)).
		Str("dataset", cfg.DatasetPath).
		Msg("inventory loaded")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Workbench: remediation.NewWorkbench(resources),
		},
	})

	return api.Start()
}
