/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that discovers
// the data directory, loads config, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern lets extensions declare
// commands before a data directory exists. The service is created once and
// shared across all extensions via the Context.

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/config"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/service"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip store
// initialisation. Bootstrap commands are listed here; anything else
// implements extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"guide":      true,
		"config":     true,
		"help":       true,
		"completion": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *service.Service
	initOnce   sync.Once
	initErr    error
)

// Logger returns the diagnostic logger used by CLI commands. Warnings go
// to stderr so they never mix with command output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// ServiceOptions returns the options every CLI-opened service shares.
func ServiceOptions() service.Options {
	l := Logger()
	return service.Options{
		Logger: l,
		SyncDisabled: func(err error) {
			l.Warn("sync storage disabled, shortcuts are kept locally", "err", err)
		},
	}
}

// initExtensions opens the service and injects it into extensions. It runs
// once per process; later calls return the first result.
func initExtensions(ctx context.Context) error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}
		svc, err := service.Open(ctx, Dir(), cfg, ServiceOptions())
		if err != nil {
			initErr = fmt.Errorf("opening data directory: %w", err)
			return
		}
		extService = svc

		log.SetProject(svc.DataDir())

		extContext = extension.NewContext(svc, cfg)
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
