// init.go implements the "shortkey init" command.
//
// Design: Init creates the data directory and an empty database; the default
// shortcuts are seeded the first time the store is opened. Init does NOT
// create config, which is managed separately via "shortkey config".

package core

import (
	"context"
	"fmt"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/config"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/repo"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new shortkey store",
		Long: `Creates .shortkey/shortkey.db in the current directory and seeds it with
the default shortcuts.

Use --dir to create it elsewhere:
  shortkey init --dir ~/dotfiles

Use --local to keep the database out of git:
  shortkey init --local

Note: init does not create config. Use "shortkey config" for that.`,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	dir := cmd.Dir()

	// --local edits this project's .gitignore, which means nothing for a
	// database created elsewhere.
	if local && dir != "" {
		return cmd.PrintJSONError(fmt.Errorf("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the database elsewhere"))
	}

	dataDir, err := repo.Init(repo.InitOptions{Dir: dir, Force: cmd.Force(), Local: local})
	if err == nil {
		err = seed(c.Context(), dataDir)
	}

	log.Event("core:init", "init").
		Detail("dir", dataDir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"dir": dataDir, "local": local})
	}
	fmt.Fprintf(cmd.Out(), "Initialised shortkey store in %s\n", dataDir)
	return nil
}

// seed opens the new store once so the defaults are written.
func seed(ctx context.Context, dataDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := service.New(ctx, dataDir, cfg, cmd.ServiceOptions())
	if err != nil {
		return err
	}
	return svc.Close()
}
