package config

import (
	"testing"
	"time"

	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Config_Read(t *testing.T) { //nolint:paralleltest
	t.Setenv("STORAGE_MODE", "sqlite")
	t.Setenv("STORAGE_SQLITE_PATH", "/tmp/IPGet.db")
	t.Setenv("PUBLICIP_HTTP_PROVIDERS", "https://ifconfig.co")
	t.Setenv("PUBLICIP_DNS_PROVIDERS", "cloudflare")
	t.Setenv("PUBLICIP_FETCH_TIMEOUT", "3s")
	t.Setenv("SHOUTRRR_DEFAULT_TITLE", "My IP watch")
	t.Setenv("HEALTHCHECKSIO_UUID", "some-uuid")
	t.Setenv("LOG_LEVEL", "debug")

	var config Config
	err := config.Read(reader.New(reader.Settings{}))
	require.NoError(t, err)
	config.SetDefaults()
	err = config.Validate()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", *config.Storage.Mode)
	assert.Equal(t, "/tmp/IPGet.db", *config.Storage.File)
	assert.Equal(t, []string{"https://ifconfig.co"}, config.PubIP.HTTPProviders)
	assert.Equal(t, []string{"cloudflare"}, config.PubIP.DNSProviders)
	assert.Equal(t, 3*time.Second, config.PubIP.Timeout)
	assert.Equal(t, "My IP watch", config.Shoutrrr.DefaultTitle)
	assert.Equal(t, "some-uuid", *config.Health.HealthchecksioUUID)
	assert.Equal(t, log.LevelDebug, *config.Logger.Level)
}

func Test_Config_Validate_invalidShoutrrrAddress(t *testing.T) { //nolint:paralleltest
	t.Setenv("SHOUTRRR_ADDRESSES", "invalid://x")

	var config Config
	err := config.Read(reader.New(reader.Settings{}))
	require.NoError(t, err)
	config.SetDefaults()

	// invalid notification addresses must not fail the settings
	// validation; the notifier downgrades to disabled at setup time
	// so that the address is still resolved and recorded.
	err = config.Validate()
	assert.NoError(t, err)
	assert.Equal(t, []string{"invalid://x"}, config.Shoutrrr.Addresses)
}

func Test_Config_defaults(t *testing.T) { //nolint:paralleltest
	var config Config
	err := config.Read(reader.New(reader.Settings{}))
	require.NoError(t, err)
	config.SetDefaults()
	err = config.Validate()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", *config.Storage.Mode)
	assert.Equal(t, "./data/ipget.db", *config.Storage.File)
	assert.Equal(t, []string{
		"https://ident.me",
		"https://api.ipify.org",
		"https://icanhazip.com",
	}, config.PubIP.HTTPProviders)
	assert.Equal(t, 10*time.Second, config.PubIP.Timeout)
	assert.Empty(t, config.Shoutrrr.Addresses)
	assert.Equal(t, "IPGet", config.Shoutrrr.DefaultTitle)
	assert.Equal(t, "https://hc-ping.com", config.Health.HealthchecksioBaseURL)
	assert.Empty(t, *config.Health.HealthchecksioUUID)
	assert.Equal(t, log.LevelInfo, *config.Logger.Level)
	assert.Empty(t, *config.Logger.Directory)
}
