// Package mcp implements the Model Context Protocol server, exposing
// shortkey operations to LLMs. Assistants can look up, run and manage
// shortcuts through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/action"
	"github.com/jpl-au/shortkey/internal/config"
	"github.com/jpl-au/shortkey/internal/repo"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when no data directory is open.
// The LLM should call shortkey_init to create one first.
const ErrNotInitialised = "shortkey not initialised - call shortkey_init first"

// Options configures Serve.
type Options struct {
	Dir     string         // explicit data directory; empty uses discovery
	Config  *config.Config // nil loads the merged config
	Browser action.Browser // nil uses the desktop URL handler
	Tools   []extension.MCPTool
	Logger  *slog.Logger
	In      io.Reader // defaults to os.Stdin
	Out     io.Writer // defaults to os.Stdout
	// Opened is called with the service once a data directory is open,
	// either at start or after shortkey_init.
	Opened func(*service.Service)
}

// Serve runs the MCP server over stdio until ctx is cancelled or the input
// closes.
//
// Design: The server starts even if no data directory exists, so an LLM
// can call shortkey_init instead of failing with an opaque error. Tools
// that need the store return ErrNotInitialised until then.
func Serve(ctx context.Context, opts Options) error {
	h, err := newHandlers(ctx, opts)
	if err != nil {
		return err
	}
	defer h.close()

	s := newServer(h, opts.Tools)
	h.log.Info("shortkey MCP server ready", "version", Version, "transport", "stdio")

	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	err = server.NewStdioServer(s).Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		h.log.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds the MCP server with every resource and tool registered.
func newServer(h *handlers, tools []extension.MCPTool) *server.MCPServer {
	s := server.NewMCPServer(
		"shortkey",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	for _, t := range tools {
		s.AddTool(t.Tool, h.extension(t.Handler))
	}
	return s
}

// handlers provides MCP request handlers with access to the service. The
// service may be nil until shortkey_init runs.
type handlers struct {
	dir     string
	cfg     *config.Config
	browser action.Browser
	log     *slog.Logger
	opened  func(*service.Service)

	mu  sync.RWMutex
	svc *service.Service
}

func newHandlers(ctx context.Context, opts Options) (*handlers, error) {
	logger := opts.Logger
	if logger == nil {
		// stdout is reserved for MCP JSON-RPC messages
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	h := &handlers{dir: opts.Dir, cfg: cfg, browser: opts.Browser, log: logger, opened: opts.Opened}

	svc, err := service.Open(ctx, opts.Dir, cfg, h.serviceOptions())
	switch {
	case errors.Is(err, repo.ErrNotInitialised):
		logger.Info("shortkey not initialised, starting in uninitialised mode - call shortkey_init to create a data directory")
	case err != nil:
		logger.Error("failed to open data directory", "error", err)
		return nil, err
	default:
		h.setService(svc)
	}
	return h, nil
}

func (h *handlers) serviceOptions() service.Options {
	return service.Options{
		Browser: h.browser,
		Logger:  h.log,
		SyncDisabled: func(err error) {
			h.log.Warn("sync storage disabled, settings are kept locally", "error", err)
		},
	}
}

func (h *handlers) setService(svc *service.Service) {
	h.mu.Lock()
	h.svc = svc
	h.mu.Unlock()
	if h.opened != nil {
		h.opened(svc)
	}
}

func (h *handlers) service() *service.Service {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.svc
}

func (h *handlers) close() {
	if svc := h.service(); svc != nil {
		if err := svc.Close(); err != nil {
			h.log.Warn("closing data directory", "error", err)
		}
	}
}

// requireInit returns the service, or an error result when none is open.
func (h *handlers) requireInit() (*service.Service, *mcp.CallToolResult) {
	svc := h.service()
	if svc == nil {
		return nil, mcp.NewToolResultError(ErrNotInitialised)
	}
	return svc, nil
}

// extension adapts an extension tool handler to the server's signature.
func (h *handlers) extension(fn extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		svc, res := h.requireInit()
		if res != nil {
			return res, nil
		}
		return fn(ctx, extension.NewContext(svc, h.cfg), req)
	}
}

// registerResources adds URI-based read access to shortcuts, groups and
// the settings snapshot.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcp.NewResource(
			"shortkey://settings",
			"Settings",
			mcp.WithResourceDescription("The full settings snapshot: records, groups and preferences"),
			mcp.WithMIMEType("application/json"),
		),
		h.readSettings,
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"shortkey://shortcuts/{ref}",
			"Shortcut",
			mcp.WithTemplateDescription("A shortcut by id or key, as markdown"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readShortcut,
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"shortkey://groups/{ref}",
			"Group",
			mcp.WithTemplateDescription("A group by id or key, with its members"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readGroup,
	)
}

// registerTools exposes shortkey operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	// Init - works without a data directory
	s.AddTool(
		mcp.NewTool("shortkey_init",
			mcp.WithDescription("Create a shortkey data directory. Call this first if other tools return 'shortkey not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, the database is gitignored")),
		),
		h.initStore,
	)

	// Shortcuts
	s.AddTool(
		mcp.NewTool("shortkey_list",
			mcp.WithDescription("List shortcuts in key order"),
			mcp.WithString("tag", mcp.Description("Only shortcuts with this tag")),
			mcp.WithBoolean("include_hidden", mcp.Description("Include hidden shortcuts")),
		),
		h.listShortcuts,
	)
	s.AddTool(
		mcp.NewTool("shortkey_get",
			mcp.WithDescription("Get one shortcut by id or key"),
			mcp.WithString("ref", mcp.Required(), mcp.Description("Shortcut id or key")),
		),
		h.getShortcut,
	)
	s.AddTool(
		mcp.NewTool("shortkey_add",
			mcp.WithDescription("Add a shortcut. Key prefix collisions are reported as warnings."),
			mcp.WithString("key", mcp.Required(), mcp.Description("Trigger key, letters and digits (e.g. GM)")),
			mcp.WithString("title", mcp.Required(), mcp.Description("Display name")),
			mcp.WithString("action", mcp.Description("Action name or id (default open-new-tab)")),
			mcp.WithString("url", mcp.Description("URL for URL-based actions")),
			mcp.WithString("script", mcp.Description("Script for run-script and page scripts")),
			mcp.WithArray("aliases", mcp.Description("Search synonyms"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithArray("tags", mcp.Description("Category tags"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithBoolean("hidden", mcp.Description("Exclude from search and key matching")),
			mcp.WithBoolean("hide_on_popup", mcp.Description("Exclude from the popup list only")),
		),
		h.addShortcut,
	)
	s.AddTool(
		mcp.NewTool("shortkey_edit",
			mcp.WithDescription("Edit a shortcut. Only the given fields change."),
			mcp.WithString("ref", mcp.Required(), mcp.Description("Shortcut id or key")),
			mcp.WithString("key", mcp.Description("New key")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("action", mcp.Description("New action name or id")),
			mcp.WithString("url", mcp.Description("New URL")),
			mcp.WithString("script", mcp.Description("New script")),
			mcp.WithArray("aliases", mcp.Description("Replacement aliases"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithArray("tags", mcp.Description("Replacement tags"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithBoolean("hidden", mcp.Description("Exclude from search and key matching")),
			mcp.WithBoolean("hide_on_popup", mcp.Description("Exclude from the popup list only")),
			mcp.WithBoolean("dry_run", mcp.Description("Return the diff without saving")),
		),
		h.editShortcut,
	)
	s.AddTool(
		mcp.NewTool("shortkey_remove",
			mcp.WithDescription("Remove a shortcut and drop it from every group"),
			mcp.WithString("ref", mcp.Required(), mcp.Description("Shortcut id or key")),
		),
		h.removeShortcut,
	)

	// Lookup
	s.AddTool(
		mcp.NewTool("shortkey_search",
			mcp.WithDescription("Ranked search over titles, aliases, keys, URLs and tags. Handles hiragana/katakana and full-width text."),
			mcp.WithString("query", mcp.Description("Search text; empty lists by use count")),
		),
		h.search,
	)
	s.AddTool(
		mcp.NewTool("shortkey_find",
			mcp.WithDescription("List shortcuts and groups whose key starts with a prefix"),
			mcp.WithString("prefix", mcp.Required(), mcp.Description("Key prefix")),
		),
		h.find,
	)
	s.AddTool(
		mcp.NewTool("shortkey_resolve",
			mcp.WithDescription("Resolve a typed key sequence to the shortcut or group it selects, without running it"),
			mcp.WithString("keys", mcp.Required(), mcp.Description("Keys as typed, e.g. gm")),
		),
		h.resolve,
	)

	// Execution
	s.AddTool(
		mcp.NewTool("shortkey_open",
			mcp.WithDescription("Run a shortcut or group by id or key and count the use"),
			mcp.WithString("ref", mcp.Required(), mcp.Description("Shortcut or group id or key")),
		),
		h.open,
	)
	s.AddTool(
		mcp.NewTool("shortkey_launch",
			mcp.WithDescription("Run whatever a typed key sequence selects"),
			mcp.WithString("keys", mcp.Required(), mcp.Description("Keys as typed")),
		),
		h.launch,
	)

	// Groups
	s.AddTool(
		mcp.NewTool("shortkey_groups",
			mcp.WithDescription("List groups with their member shortcuts"),
		),
		h.listGroups,
	)
	s.AddTool(
		mcp.NewTool("shortkey_group_add",
			mcp.WithDescription("Add a group that opens several shortcuts at once"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Trigger key")),
			mcp.WithString("title", mcp.Required(), mcp.Description("Display name")),
			mcp.WithArray("members", mcp.Required(), mcp.Description("Member shortcut ids or keys, in opening order"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithBoolean("tab_group", mcp.Description("Open the members in a tab group")),
		),
		h.addGroup,
	)
	s.AddTool(
		mcp.NewTool("shortkey_group_edit",
			mcp.WithDescription("Edit a group. Only the given fields change."),
			mcp.WithString("ref", mcp.Required(), mcp.Description("Group id or key")),
			mcp.WithString("key", mcp.Description("New key")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithArray("members", mcp.Description("Replacement members"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithBoolean("tab_group", mcp.Description("Open the members in a tab group")),
		),
		h.editGroup,
	)
	s.AddTool(
		mcp.NewTool("shortkey_group_remove",
			mcp.WithDescription("Remove a group. Its member shortcuts are kept."),
			mcp.WithString("ref", mcp.Required(), mcp.Description("Group id or key")),
		),
		h.removeGroup,
	)

	// Preferences
	s.AddTool(
		mcp.NewTool("shortkey_prefs_get",
			mcp.WithDescription("Get a display or sync preference, or all of them"),
			mcp.WithString("key", mcp.Description("listColumnCount, categoryFilterPosition or sync.enabled; empty for all")),
		),
		h.prefsGet,
	)
	s.AddTool(
		mcp.NewTool("shortkey_prefs_set",
			mcp.WithDescription("Set a display or sync preference"),
			mcp.WithString("key", mcp.Required(), mcp.Description("listColumnCount, categoryFilterPosition or sync.enabled")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.prefsSet,
	)
	s.AddTool(
		mcp.NewTool("shortkey_reload",
			mcp.WithDescription("Re-read the settings from disk after an external change"),
		),
		h.reload,
	)

	// Config
	s.AddTool(
		mcp.NewTool("shortkey_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key or empty for all")),
		),
		h.configGet,
	)
	s.AddTool(
		mcp.NewTool("shortkey_config_set",
			mcp.WithDescription("Set a configuration value in the local config file"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	// Transfer
	s.AddTool(
		mcp.NewTool("shortkey_export",
			mcp.WithDescription("Export every shortcut as JSON or YAML"),
			mcp.WithString("format", mcp.Description("json (default) or yaml"), mcp.Enum("json", "yaml")),
		),
		h.export,
	)
	s.AddTool(
		mcp.NewTool("shortkey_import",
			mcp.WithDescription("Append shortcuts from an export. The import is rejected as a whole if any record is invalid."),
			mcp.WithString("content", mcp.Required(), mcp.Description("Exported JSON or YAML")),
			mcp.WithString("format", mcp.Description("json (default) or yaml"), mcp.Enum("json", "yaml")),
			mcp.WithBoolean("dry_run", mcp.Description("Return the diff without saving")),
		),
		h.importRecords,
	)

	// Guide
	s.AddTool(
		mcp.NewTool("shortkey_guide",
			mcp.WithDescription("Get help/guide content for shortkey commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g. 'keys', 'search') or empty for the index")),
		),
		h.getGuide,
	)
}
