package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(".")
	require.NoError(t, err)

	assert.Equal(t, "https://csp.infoblox.com", cfg.Infoblox.APIURL)
	assert.Equal(t, 30, cfg.Infoblox.TimeoutSeconds)
	assert.Equal(t, 1000, cfg.Infoblox.PageLimit)
	assert.Equal(t, "privatelink.blob.core.windows.net.", cfg.DNS.ZoneName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	// Views have no sane default and must come from the environment.
	assert.Empty(t, cfg.DNS.ViewSource)
	assert.Empty(t, cfg.DNS.ViewTarget)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("INFOBLOX_API_URL", "https://csp.example.test")
	t.Setenv("INFOBLOX_API_TOKEN", "secret-token")
	t.Setenv("DNS_ZONE_NAME", "internal.example.com.")
	t.Setenv("DNS_VIEW_SOURCE", "INTERNAL")
	t.Setenv("DNS_VIEW_TARGET", "EXTERNAL")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(".")
	require.NoError(t, err)

	assert.Equal(t, "https://csp.example.test", cfg.Infoblox.APIURL)
	assert.Equal(t, "secret-token", cfg.Infoblox.APIToken)
	assert.Equal(t, "internal.example.com.", cfg.DNS.ZoneName)
	assert.Equal(t, "INTERNAL", cfg.DNS.ViewSource)
	assert.Equal(t, "EXTERNAL", cfg.DNS.ViewTarget)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.NoError(t, cfg.DNS.Validate())
}
