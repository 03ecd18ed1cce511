// config_keys.go provides key-value access to configuration settings.
//
// The CLI and MCP tools address config by dotted string keys
// ("storage.max_items"); this file maps those keys onto the YAML structure.
//
// Design: Pointers are used for numeric fields so "not set" (nil) and
// "explicitly set" stay distinct; defaults apply only to unset values.

package config

import (
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"storage.quota_bytes_per_item", "storage.quota_bytes", "storage.max_items",
		"launch.opener", "launch.startup_command",
		"server.http_addr", "server.allowed_origins",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "storage.quota_bytes_per_item":
		return strconv.Itoa(c.QuotaBytesPerItem()), nil
	case "storage.quota_bytes":
		return strconv.Itoa(c.QuotaBytes()), nil
	case "storage.max_items":
		return strconv.Itoa(c.MaxItems()), nil
	case "launch.opener":
		return c.Launch.Opener, nil
	case "launch.startup_command":
		return c.Launch.StartupCommand, nil
	case "server.http_addr":
		return c.HTTPAddr(), nil
	case "server.allowed_origins":
		return strings.Join(c.Server.AllowedOrigins, ","), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "storage.quota_bytes_per_item":
		return setInt(&c.Storage.QuotaBytesPerItem, key, value, MinQuotaBytesPerItem, MaxQuotaBytesPerItem)
	case "storage.quota_bytes":
		return setInt(&c.Storage.QuotaBytes, key, value, MinQuotaBytes, MaxQuotaBytes)
	case "storage.max_items":
		return setInt(&c.Storage.MaxItems, key, value, MinMaxItems, MaxMaxItems)
	case "launch.opener":
		c.Launch.Opener = value
	case "launch.startup_command":
		c.Launch.StartupCommand = value
	case "server.http_addr":
		if _, _, err := net.SplitHostPort(value); err != nil {
			return fmt.Errorf("%w: server.http_addr must be host:port", ErrInvalidValue)
		}
		c.Server.HTTPAddr = value
	case "server.allowed_origins":
		c.Server.AllowedOrigins = nil
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, o)
			}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func setInt(dst **int, key, value string, lo, hi int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, key)
	}
	if err := bounded(key, &n, lo, hi); err != nil {
		return err
	}
	*dst = &n
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		out[k], _ = c.Get(k)
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "storage.quota_bytes_per_item":
		return c.Storage.QuotaBytesPerItem != nil
	case "storage.quota_bytes":
		return c.Storage.QuotaBytes != nil
	case "storage.max_items":
		return c.Storage.MaxItems != nil
	case "launch.opener":
		return c.Launch.Opener != ""
	case "launch.startup_command":
		return c.Launch.StartupCommand != ""
	case "server.http_addr":
		return c.Server.HTTPAddr != ""
	case "server.allowed_origins":
		return len(c.Server.AllowedOrigins) > 0
	default:
		return false
	}
}
