// Package daemon wires the settings catalog, the record store and the web
// service together.
package daemon

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoPowerDNS-Admin/appsettings/internal/appsettings"
	"github.com/GoPowerDNS-Admin/appsettings/internal/appsettings/memstore"
	"github.com/GoPowerDNS-Admin/appsettings/internal/config"
	"github.com/GoPowerDNS-Admin/appsettings/internal/db"
	"github.com/GoPowerDNS-Admin/appsettings/internal/db/store"
	"github.com/GoPowerDNS-Admin/appsettings/internal/settings"
	"github.com/GoPowerDNS-Admin/appsettings/internal/web"
)

// ErrConfigNil is returned when the daemon is built without a config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	close      func() error
}

// Start serves the web service until a shutdown signal arrives.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	err := d.webService.Start(d.webService.Addr())

	if cerr := d.close(); cerr != nil {
		log.Error().Err(cerr).Msg("failed to close record store")
	}

	return err
}

// Web returns the web service.
func (d *Daemon) Web() *web.Service {
	return d.webService
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	r, closeFn, err := OpenReconciler(cfg)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		webService: web.New(cfg, r),
		close:      closeFn,
	}, nil
}

// OpenReconciler builds the built-in catalog and the record store selected
// by cfg.DB.GormEngine. The returned func releases the store.
func OpenReconciler(cfg *config.Config) (*appsettings.Reconciler, func() error, error) {
	if cfg == nil {
		return nil, nil, ErrConfigNil
	}

	catalog, err := settings.NewCatalog()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build settings catalog")
	}

	var (
		recordStore appsettings.RecordStore
		closeFn     = func() error { return nil }
	)

	switch cfg.DB.GormEngine {
	case config.EngineMemory:
		log.Warn().Msg("memory engine selected: settings are lost on exit")

		recordStore = memstore.New()
	default:
		gdb, err := db.Open(cfg)
		if err != nil {
			return nil, nil, err
		}

		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to get database handle")
		}

		closeFn = sqlDB.Close

		if recordStore, err = store.New(gdb, catalog); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
	}

	r, err := appsettings.NewReconciler(catalog, recordStore)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}

	log.Info().
		Str("engine", cfg.DB.GormEngine).
		Strs("entities", catalog.Types()).
		Msg("settings store ready")

	return r, closeFn, nil
}
