package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yigit/registrar/internal/bootstrap"
	"github.com/yigit/registrar/internal/pkg/logger"
	"github.com/yigit/registrar/internal/seed"
	"github.com/yigit/registrar/internal/server"
)

// @title Registrar API
// @version 1.0
// @description Course catalog and class registration API

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

var (
	version    = "dev"
	configPath string
	seedOpts   = seed.DefaultOptions
)

var rootCmd = &cobra.Command{
	Use:           "registrar",
	Short:         "Course catalog and class registration server",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply pending migrations and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog and account",
	Long: `Load the demo catalog: quarters 2021 Spring and 2021 Winter, CSE 183
offered in Spring 2021, its instructor, and one student with a login account.
Migrations are applied first. Running seed twice is safe.`,
	RunE: runSeed,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", filepath.Join("configs", "config.yaml"),
		"path to the YAML config file")

	seedCmd.Flags().StringVar(&seedOpts.StudentEmail, "email", seedOpts.StudentEmail, "email of the demo student account")
	seedCmd.Flags().StringVar(&seedOpts.Password, "password", seedOpts.Password, "password of the demo student account")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv, err := server.NewServer(cmd.Context(), configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}
	return srv.Run()
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	database, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	return bootstrap.RunMigrations(ctx, database, lgr)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	database, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := bootstrap.RunMigrations(ctx, database, lgr); err != nil {
		return err
	}

	return seed.CreateDefaultData(ctx, database, seedOpts, lgr)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error().Err(err).Msg("registrar exited with an error")
		os.Exit(1)
	}
}
