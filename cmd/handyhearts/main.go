package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/handyheartslabs/handyhearts/internal/account"
	"github.com/handyheartslabs/handyhearts/internal/auth"
	"github.com/handyheartslabs/handyhearts/internal/authorization"
	"github.com/handyheartslabs/handyhearts/internal/booking"
	"github.com/handyheartslabs/handyhearts/internal/catalog"
	"github.com/handyheartslabs/handyhearts/internal/clock"
	"github.com/handyheartslabs/handyhearts/internal/config"
	"github.com/handyheartslabs/handyhearts/internal/inquiry"
	"github.com/handyheartslabs/handyhearts/internal/migration"
	"github.com/handyheartslabs/handyhearts/internal/monitoring"
	"github.com/handyheartslabs/handyhearts/internal/observability"
	"github.com/handyheartslabs/handyhearts/internal/payment"
	"github.com/handyheartslabs/handyhearts/internal/receipt"
	"github.com/handyheartslabs/handyhearts/internal/redis"
	"github.com/handyheartslabs/handyhearts/internal/scheduler"
	"github.com/handyheartslabs/handyhearts/internal/seed"
	"github.com/handyheartslabs/handyhearts/internal/server"
	"github.com/handyheartslabs/handyhearts/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "handyhearts",
		Short:   "HandyHearts CLI",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newServeCmd(), newSchedulerCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and activate schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Provision the first admin account and starter catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newSchedulerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run background maintenance workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			runScheduler()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations and seed, then start API server and scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			if err := runSeed(); err != nil {
				return err
			}
			runMonolith()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
	)
	return startAndStop(app, "migrate")
}

func runSeed() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			return seed.Run(conn, cfg)
		}),
	)
	return startAndStop(app, "seed")
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		authorization.Module,
		account.Module,
		auth.Module,
		catalog.Module,
		booking.Module,
		inquiry.Module,
		monitoring.Module,
		payment.Module,
		receipt.Module,
		server.Module,
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}

func runScheduler() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		account.Module,
		catalog.Module,
		booking.Module,
		payment.Module,
		scheduler.Module,
		fx.Invoke(startScheduler),
	)
	app.Run()
}

func runMonolith() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		authorization.Module,
		account.Module,
		auth.Module,
		catalog.Module,
		booking.Module,
		inquiry.Module,
		monitoring.Module,
		payment.Module,
		receipt.Module,
		server.Module,
		scheduler.Module,
		fx.Invoke(server.RunHTTP),
		fx.Invoke(startScheduler),
	)
	app.Run()
}

func startAndStop(app *fx.App, name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return app.Stop(context.Background())
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}

func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.RunForever(context.Background())
			return nil
		},
	})
}
