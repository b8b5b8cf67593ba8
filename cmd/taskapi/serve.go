package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"taskapi/internal/api"
	"taskapi/internal/auth"
	"taskapi/internal/config"
	"taskapi/internal/repository"
	"taskapi/internal/service"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *configPath)
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.UsesDefaultSecret() {
		log.Println("[warn] JWT_SECRET_KEY is not set; using the insecure development secret")
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	store := repository.NewStore(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	authSvc := service.NewAuthService(store.Users, auth.NewBcryptHasher(cfg.BcryptCost), tokens)
	taskSvc := service.NewTaskService(store)
	categorySvc := service.NewCategoryService(store.Categories)

	server := api.New(authSvc, taskSvc, categorySvc, tokens, &cfg)

	log.Printf("[info] taskapi %s started (env=%s)", version, cfg.Env)
	if err := server.Start(ctx); err != nil {
		return err
	}
	log.Println("[info] shutdown complete")
	return nil
}
