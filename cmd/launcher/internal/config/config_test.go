package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrogdreamStudios/launcher/pkg/compat"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Root)
	assert.Contains(t, cfg.Network.ManifestURL, "version_manifest")
	assert.Equal(t, 30, cfg.Network.Timeout)
	assert.Equal(t, 3, cfg.Network.Retries)
	assert.Equal(t, "java", cfg.Runtime.JavaPath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LAUNCHER_ROOT", "/custom/root")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/custom/root", cfg.Root)
}

func TestRosettaCutoff(t *testing.T) {
	cfg := &Config{Runtime: RuntimeConfig{RosettaCutoff: "1.20.2"}}
	assert.Equal(t, compat.Version{Major: 1, Minor: 20, Patch: 2}, cfg.RosettaCutoff())

	cfg.Runtime.RosettaCutoff = "not-a-version"
	assert.Equal(t, compat.DefaultRosettaCutoff, cfg.RosettaCutoff())
}

func TestFetchTimeout(t *testing.T) {
	cfg := &Config{Network: NetworkConfig{Timeout: 45}}
	assert.Equal(t, 45*time.Second, cfg.FetchTimeout())
}
