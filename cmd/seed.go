package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tbaudier/parkwatch/config"
	"github.com/tbaudier/parkwatch/infra/logger"
	"github.com/tbaudier/parkwatch/infra/store/postgres"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the database schema and load the city fixtures",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database.url is required for seeding")
	}

	store, err := postgres.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	if err := store.Seed(ctx); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	logger.New("seed").Infof("database seeded")
	return nil
}
