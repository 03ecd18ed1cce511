// Package config provides reading and writing of shortkey configuration.
// Supports both global (~/.shortkey/config.yaml) and local (.shortkey/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/shortkey/internal/storage"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.shortkey/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .shortkey/config.yaml
	ScopeLocal
)

// Storage holds the sync-area quota. Writes that would exceed it fail and
// downgrade the store to local-only.
type Storage struct {
	QuotaBytesPerItem *int `yaml:"quota_bytes_per_item,omitempty"`
	QuotaBytes        *int `yaml:"quota_bytes,omitempty"`
	MaxItems          *int `yaml:"max_items,omitempty"`
}

// Launch holds options for running shortcuts.
type Launch struct {
	// Opener is the command used to open URLs, e.g. "firefox --new-tab".
	// Empty uses the platform default.
	Opener string `yaml:"opener,omitempty"`
	// StartupCommand is the keybinding shown as the launcher shortcut.
	StartupCommand string `yaml:"startup_command,omitempty"`
}

// Server holds HTTP API options.
type Server struct {
	HTTPAddr string `yaml:"http_addr,omitempty"`
	// AllowedOrigins lists browser origins, besides the server's own, that
	// may call the API (e.g. "chrome-extension://<id>").
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// DefaultHTTPAddr is the HTTP API listen address when not configured.
const DefaultHTTPAddr = "127.0.0.1:8765"

// Validation bounds for configuration values.
const (
	MinQuotaBytesPerItem = 64
	MaxQuotaBytesPerItem = 16 * 1024 * 1024
	MinQuotaBytes        = 1024
	MaxQuotaBytes        = 1024 * 1024 * 1024
	MinMaxItems          = 8
	MaxMaxItems          = 1 << 20
)

// Config contains configuration for shortkey.
type Config struct {
	Storage Storage `yaml:"storage,omitempty"`
	Launch  Launch  `yaml:"launch,omitempty"`
	Server  Server  `yaml:"server,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if err := bounded("storage.quota_bytes_per_item", c.Storage.QuotaBytesPerItem, MinQuotaBytesPerItem, MaxQuotaBytesPerItem); err != nil {
		return err
	}
	if err := bounded("storage.quota_bytes", c.Storage.QuotaBytes, MinQuotaBytes, MaxQuotaBytes); err != nil {
		return err
	}
	if err := bounded("storage.max_items", c.Storage.MaxItems, MinMaxItems, MaxMaxItems); err != nil {
		return err
	}
	if c.QuotaBytesPerItem() > c.QuotaBytes() {
		return fmt.Errorf("%w: storage.quota_bytes_per_item (%d) exceeds storage.quota_bytes (%d)",
			ErrInvalidValue, c.QuotaBytesPerItem(), c.QuotaBytes())
	}
	if c.Server.HTTPAddr != "" {
		if _, _, err := net.SplitHostPort(c.Server.HTTPAddr); err != nil {
			return fmt.Errorf("%w: server.http_addr: %w", ErrInvalidValue, err)
		}
	}
	return nil
}

func bounded(key string, p *int, lo, hi int) error {
	if p == nil {
		return nil
	}
	if v := *p; v < lo || v > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidValue, key, lo, hi, v)
	}
	return nil
}

// QuotaBytesPerItem returns the per-item sync quota (defaults to 8 KB).
func (c *Config) QuotaBytesPerItem() int {
	if c.Storage.QuotaBytesPerItem == nil {
		return storage.DefaultQuotaBytesPerItem
	}
	return *c.Storage.QuotaBytesPerItem
}

// QuotaBytes returns the total sync quota (defaults to 100 KB).
func (c *Config) QuotaBytes() int {
	if c.Storage.QuotaBytes == nil {
		return storage.DefaultQuotaBytes
	}
	return *c.Storage.QuotaBytes
}

// MaxItems returns the sync item limit (defaults to 512).
func (c *Config) MaxItems() int {
	if c.Storage.MaxItems == nil {
		return storage.DefaultMaxItems
	}
	return *c.Storage.MaxItems
}

// Quota returns the configured sync quota.
func (c *Config) Quota() storage.Quota {
	return storage.Quota{
		BytesPerItem: c.QuotaBytesPerItem(),
		Bytes:        c.QuotaBytes(),
		MaxItems:     c.MaxItems(),
	}
}

// HTTPAddr returns the HTTP API listen address.
func (c *Config) HTTPAddr() string {
	if c.Server.HTTPAddr == "" {
		return DefaultHTTPAddr
	}
	return c.Server.HTTPAddr
}

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(".shortkey", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.shortkey/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shortkey", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}
	return loadPath(path, scope)
}

func loadPath(path string, scope Scope) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
