// Package db opens the settings database for the configured gorm engine.
package db

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/appsettings/internal/config"
	"github.com/GoPowerDNS-Admin/appsettings/internal/db/dsn"
	"github.com/GoPowerDNS-Admin/appsettings/internal/db/models"
	gormadapter "github.com/GoPowerDNS-Admin/appsettings/internal/logger/adapter/gorm"
)

var (
	// ErrUnsupportedEngine is returned for engines gorm cannot open.
	ErrUnsupportedEngine = errors.New("unsupported gorm engine")
	// ErrConfigNil is returned when Open is called without a config.
	ErrConfigNil = errors.New("config is nil")

	migrate = func(db *gorm.DB) error { //nolint:gochecknoglobals
		return db.AutoMigrate(&models.AppSetting{})
	}
)

// Open connects to the configured database and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		dialector = gormmysql.Open(dsn.Create(cfg)) // open db with gorm mysql driver
	case config.EnginePostgres:
		dialector = postgres.Open(dsn.Postgres(cfg))
	case config.EngineSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0o750); err != nil { //nolint: mnd
			return nil, pkgerrors.Wrap(err, "failed to create database directory")
		}

		dialector = sqlite.Open(cfg.DB.Path)
	default:
		return nil, pkgerrors.Wrap(ErrUnsupportedEngine, cfg.DB.GormEngine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormadapter.New(cfg.Log)})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to access connection pool")
	}

	if cfg.DB.GormEngine == config.EngineSQLite {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	if err = migrate(db); err != nil {
		_ = sqlDB.Close()

		return nil, pkgerrors.Wrap(err, "failed to migrate database")
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Msg("database ready")

	return db, nil
}
