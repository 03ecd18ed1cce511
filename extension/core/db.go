// db.go implements the "shortkey db" command: where the database lives,
// whether git sees it, and how full each storage area is.
//
// Design: The sync area has a quota, so db reports usage against it. When a
// write exceeds the quota the store falls back to the local area, and this
// is where a user sees why.

package core

import (
	"fmt"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/repo"
	"github.com/jpl-au/shortkey/internal/storage"
	"github.com/spf13/cobra"
)

func (e *Extension) newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db",
		Short: "Show database location, git status and storage usage",
		Long: `Show the database path, whether it is committed, and storage usage.

  shortkey db            # show status
  shortkey db --local    # add the database to .gitignore`,
		Args: cobra.NoArgs,
		RunE: e.runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

type dbStatus struct {
	Path   string                         `json:"path"`
	Local  bool                           `json:"local"`
	Synced bool                           `json:"synced"`
	Quota  storage.Quota                  `json:"quota"`
	Usage  map[storage.Area]storage.Usage `json:"usage"`
}

func (e *Extension) runDB(c *cobra.Command, _ []string) error {
	svc := e.ctx.Service()
	dataDir := svc.DataDir()

	local, _ := c.Flags().GetBool(extension.FlagLocal)
	if local {
		err := repo.IgnoreDB(dataDir)
		log.Event("core:db", "ignore").Detail("dir", dataDir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db ignore: %w", err))
		}
	}

	// A data directory without a .gitignore is not tracked at all.
	ignored, _ := repo.IsIgnored(dataDir)
	usage, err := svc.Usage(c.Context())

	log.Event("core:db", "status").Detail("dir", dataDir).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db usage: %w", err))
	}

	st := dbStatus{
		Path:   repo.DBPath(dataDir),
		Local:  ignored,
		Synced: svc.Store().Snapshot().Synced,
		Quota:  e.ctx.Config().Quota(),
		Usage:  usage,
	}
	if cmd.JSON() {
		return cmd.PrintJSON(st)
	}

	w := cmd.Out()
	git := "shared"
	if st.Local {
		git = "local"
	}
	area := "local (sync disabled)"
	if st.Synced {
		area = "sync"
	}
	fmt.Fprintf(w, "path:    %s\n", st.Path)
	fmt.Fprintf(w, "git:     %s\n", git)
	fmt.Fprintf(w, "storage: %s\n", area)
	s, l := usage[storage.AreaSync], usage[storage.AreaLocal]
	fmt.Fprintf(w, "sync:    %d/%d items, %d/%d bytes\n", s.Items, st.Quota.MaxItems, s.Bytes, st.Quota.Bytes)
	fmt.Fprintf(w, "local:   %d items, %d bytes\n", l.Items, l.Bytes)
	return nil
}
