// Package db opens the shared gorm handle over a pgx-backed *sql.DB and
// manages its lifecycle through fx.
package db

import (
	"context"
	"database/sql"

	"github.com/handyheartslabs/handyhearts/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormprometheus "gorm.io/plugin/prometheus"
)

var Module = fx.Module("db",
	fx.Provide(New),
)

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
	LC  fx.Lifecycle
}

func New(p Params) (*gorm.DB, error) {
	sqlDB, err := sql.Open("pgx", p.Cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(p.Cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(p.Cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(p.Cfg.Database.ConnMaxLifetime)

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := conn.Use(gormprometheus.New(gormprometheus.Config{
		DBName:          "handyhearts",
		RefreshInterval: 15,
	})); err != nil {
		p.Log.Warn("gorm prometheus plugin not registered", zap.Error(err))
	}

	p.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sqlDB.PingContext(ctx)
		},
		OnStop: func(context.Context) error {
			return sqlDB.Close()
		},
	})

	return conn, nil
}
