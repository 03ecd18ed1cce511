// serve.go implements the "shortkey serve" command.
//
// Serve blocks until interrupted. Without flags it speaks MCP over stdio;
// with --http it serves the launcher protocol over REST and WebSocket.
//
// Design: Serve is a NoStoreCommand - it opens the data directory itself so
// the MCP server can start uninitialised. In both modes a watcher reloads
// the store when another process (usually the CLI) changes the database.

package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/config"
	"github.com/jpl-au/shortkey/internal/httpapi"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/mcp"
	"github.com/jpl-au/shortkey/internal/repo"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/jpl-au/shortkey/internal/watch"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server or the HTTP API",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

With --http, serve the launcher API instead:
  shortkey serve --http                  # listen on server.http_addr
  shortkey serve --http 127.0.0.1:9000   # listen on an explicit address

Routes: GET /api/settings, /api/search, /api/find, /api/shortcuts/{ref},
/api/tags; POST /api/use/{id}, /api/reload, /api/message; GET /api/keys/ws
for the WebSocket protocol.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	c.Flags().String(extension.FlagHTTP, "", "Serve the HTTP API on this address")
	c.Flags().Lookup(extension.FlagHTTP).NoOptDefVal = " "
	return c
}

func runServe(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	if c.Flags().Changed(extension.FlagHTTP) {
		addr, _ := c.Flags().GetString(extension.FlagHTTP)
		if addr == " " {
			addr = cfg.HTTPAddr()
		}
		return serveHTTP(ctx, cfg, addr, l)
	}

	return mcp.Serve(ctx, mcp.Options{
		Dir:    cmd.Dir(),
		Config: cfg,
		Tools:  extension.Tools(),
		Logger: l,
		Opened: func(svc *service.Service) {
			log.SetProject(svc.DataDir())
			go watchStore(ctx, svc, l)
		},
	})
}

func serveHTTP(ctx context.Context, cfg *config.Config, addr string, l *slog.Logger) error {
	opts := cmd.ServiceOptions()
	opts.Logger = l
	svc, err := service.Open(ctx, cmd.Dir(), cfg, opts)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	defer svc.Close()
	log.SetProject(svc.DataDir())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go watchStore(ctx, svc, l)

	api := httpapi.New(svc.Store(), svc.Dispatcher(), l, httpapi.WithAllowedOrigins(cfg.Server.AllowedOrigins...))
	err = api.ListenAndServe(ctx, addr)

	log.Event("core:serve", "http").Detail("addr", addr).Write(err)

	return err
}

// watchStore reloads svc whenever its database changes on disk.
func watchStore(ctx context.Context, svc *service.Service, l *slog.Logger) {
	w := watch.New(svc.DataDir(), svc, watch.WithPrefix(repo.DBFile), watch.WithLogger(l))
	if err := w.Run(ctx); err != nil {
		l.Warn("watch data directory", "dir", svc.DataDir(), "err", err)
	}
}
