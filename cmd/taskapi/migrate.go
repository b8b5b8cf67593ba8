package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"taskapi/internal/config"
	"taskapi/internal/repository"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			db, err := repository.NewDB(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			log.Printf("[info] schema up to date (%s)", cfg.DatabaseURL)
			return nil
		},
	}
}
