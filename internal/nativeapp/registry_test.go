package nativeapp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryYAML = `
development:
  TEST_APP:
    app_id: app_test_123
    integration_url: worldapp://test
production:
  WORLD_CHAT:
    app_id: app_chat_1
    integration_url: worldapp://chat
  WALLET:
    app_id: app_wallet_1
    integration_url: worldapp://wallet
`

func TestParse_SelectsEnvironment(t *testing.T) {
	reg, err := Parse([]byte(registryYAML), "development")
	require.NoError(t, err)

	app, ok := reg.Lookup("TEST_APP")
	require.True(t, ok)
	assert.Equal(t, "app_test_123", app.AppID)
	assert.Equal(t, "worldapp://test", app.IntegrationURL)

	_, ok = reg.Lookup("WORLD_CHAT")
	assert.False(t, ok, "production aliases must not leak into development")
}

func TestParse_UnknownEnvironment(t *testing.T) {
	reg, err := Parse([]byte(registryYAML), "staging")
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestParse_InvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad app id", "production:\n  X:\n    app_id: test_1\n    integration_url: worldapp://x\n"},
		{"missing integration url", "production:\n  X:\n    app_id: app_1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "production")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidEntry))
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("production: [not, a, map"), "production")
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "native-apps.yaml")
	require.NoError(t, os.WriteFile(path, []byte(registryYAML), 0o600))

	reg, err := Load(path, "production")
	require.NoError(t, err)
	assert.Equal(t, []string{"WALLET", "WORLD_CHAT"}, reg.Aliases())
}

func TestLoad_EmptyPath(t *testing.T) {
	reg, err := Load("", "production")
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "production")
	require.Error(t, err)
}
