// Package service wires the storage backend, the settings store and the
// action dispatcher into the one object commands, the MCP server and the
// HTTP API share.
//
// Design: Every write goes through settings.Store.Mutate so validation and
// persistence happen under the store's write lock. Reads come from the
// live snapshot and never touch the database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jpl-au/shortkey/internal/action"
	"github.com/jpl-au/shortkey/internal/config"
	"github.com/jpl-au/shortkey/internal/repo"
	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/storage"
)

var (
	// ErrNotFound is returned when a reference names no record or group.
	ErrNotFound = settings.ErrNotFound
	// ErrInvalid is returned when a record or group fails validation.
	ErrInvalid = errors.New("invalid")
)

// Options configures New.
type Options struct {
	// Browser executes actions. Nil uses the desktop URL handler with the
	// configured opener.
	Browser action.Browser
	// SyncDisabled is called when a sync write fails and the store falls
	// back to local persistence.
	SyncDisabled func(error)
	Logger       *slog.Logger
}

// Service owns an open data directory.
type Service struct {
	dataDir  string
	backend  *storage.SQLite
	store    *settings.Store
	dispatch *action.Dispatcher
	cfg      *config.Config
}

// Open resolves the data directory (see repo.Resolve) and opens it.
func Open(ctx context.Context, dir string, cfg *config.Config, opts Options) (*Service, error) {
	dataDir, err := repo.Resolve(dir)
	if err != nil {
		return nil, err
	}
	return New(ctx, dataDir, cfg, opts)
}

// New opens the database in dataDir and loads the settings snapshot.
func New(ctx context.Context, dataDir string, cfg *config.Config, opts Options) (*Service, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	backend, err := storage.Open(repo.DBPath(dataDir), storage.WithQuota(cfg.Quota()))
	if err != nil {
		return nil, err
	}

	storeOpts := []settings.Option{
		settings.WithCommands(settings.StaticCommand(cfg.Launch.StartupCommand)),
	}
	if opts.SyncDisabled != nil {
		storeOpts = append(storeOpts, settings.WithSyncDisabled(opts.SyncDisabled))
	}
	if opts.Logger != nil {
		storeOpts = append(storeOpts, settings.WithLogger(opts.Logger))
	}
	store, err := settings.Open(ctx, backend, storeOpts...)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("load settings: %w", err)
	}

	b := opts.Browser
	if b == nil {
		b = action.NewSystem(cfg.Launch.Opener)
	}

	return &Service{
		dataDir:  dataDir,
		backend:  backend,
		store:    store,
		dispatch: action.New(b, store),
		cfg:      cfg,
	}, nil
}

// Close releases the database.
func (s *Service) Close() error {
	return s.backend.Close()
}

// DataDir returns the .shortkey directory in use.
func (s *Service) DataDir() string { return s.dataDir }

// Store returns the settings store.
func (s *Service) Store() *settings.Store { return s.store }

// Dispatcher returns the action dispatcher.
func (s *Service) Dispatcher() *action.Dispatcher { return s.dispatch }

// Config returns the configuration the service was opened with.
func (s *Service) Config() *config.Config { return s.cfg }

// Backend returns the storage backend.
func (s *Service) Backend() *storage.SQLite { return s.backend }

// Reload re-reads the persisted snapshot.
func (s *Service) Reload(ctx context.Context) error {
	return s.store.Reload(ctx)
}

// Usage reports how much of each storage area is in use.
func (s *Service) Usage(ctx context.Context) (map[storage.Area]storage.Usage, error) {
	out := make(map[storage.Area]storage.Usage, 2)
	for _, a := range []storage.Area{storage.AreaSync, storage.AreaLocal} {
		u, err := s.backend.Usage(ctx, a)
		if err != nil {
			return nil, err
		}
		out[a] = u
	}
	return out, nil
}
