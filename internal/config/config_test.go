package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/shortkey/internal/storage"
)

func TestDefaults(t *testing.T) {
	var c Config
	require.NoError(t, c.Validate())
	assert.Equal(t, storage.DefaultQuota(), c.Quota())
	assert.Equal(t, DefaultHTTPAddr, c.HTTPAddr())
	assert.False(t, c.IsSet("storage.max_items"))
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    error
	}{
		{"storage.max_items", "64", nil},
		{"storage.max_items", "3", ErrInvalidValue},
		{"storage.quota_bytes", "many", ErrInvalidValue},
		{"launch.opener", "firefox --new-tab", nil},
		{"launch.startup_command", "Ctrl+Shift+K", nil},
		{"server.http_addr", "127.0.0.1:9000", nil},
		{"server.http_addr", "nope", ErrInvalidValue},
		{"server.allowed_origins", "chrome-extension://abc,http://localhost:3000", nil},
		{"author.name", "x", ErrUnknownKey},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			var c Config
			err := c.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			got, err := c.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
			assert.True(t, c.IsSet(tt.key))
		})
	}
}

func TestSet_AllowedOriginsTrimsAndClears(t *testing.T) {
	var c Config
	require.NoError(t, c.Set("server.allowed_origins", " chrome-extension://abc , ,http://localhost:3000"))
	assert.Equal(t, []string{"chrome-extension://abc", "http://localhost:3000"}, c.Server.AllowedOrigins)

	require.NoError(t, c.Set("server.allowed_origins", ""))
	assert.Empty(t, c.Server.AllowedOrigins)
	assert.False(t, c.IsSet("server.allowed_origins"))
}

func TestValidate_PerItemAboveTotal(t *testing.T) {
	var c Config
	require.NoError(t, c.Set("storage.quota_bytes", "2048"))
	require.NoError(t, c.Set("storage.quota_bytes_per_item", "4096"))
	assert.ErrorIs(t, c.Validate(), ErrInvalidValue)
}

func TestLoadLocal(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	var c Config
	require.NoError(t, c.Set("storage.max_items", "128"))
	require.NoError(t, c.Set("launch.opener", "echo"))
	require.NoError(t, c.SaveScope(ScopeLocal))

	_, err := os.Stat(filepath.Join(dir, ".shortkey", "config.yaml"))
	require.NoError(t, err)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, loaded.Scope())
	assert.Equal(t, 128, loaded.MaxItems())
	assert.Equal(t, "echo", loaded.Launch.Opener)
	assert.Equal(t, storage.DefaultQuotaBytes, loaded.QuotaBytes())
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(".shortkey", 0755))
	require.NoError(t, os.WriteFile(LocalPath(), []byte("storage: [\n"), 0644))

	_, err := Load()
	assert.ErrorContains(t, err, "malformed config file")
}

func TestAll(t *testing.T) {
	var c Config
	all := c.All()
	assert.Len(t, all, len(ValidKeys()))
	assert.Equal(t, "512", all["storage.max_items"])
}
