package config

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/halyard-bootstrap/internal/errors"
	"github.com/olusolaa/halyard-bootstrap/internal/log"
)

func newViper(t *testing.T) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("HALBOOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	require.NoError(t, SetDefaults(v))
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background(), newViper(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Setenv("HALBOOT_HALYARD_READY_TIMEOUT", "90s")
	t.Setenv("HALBOOT_SETTINGS_LOG_LEVEL", "WARNING")

	v := newViper(t)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
settings:
  reporter: json
  reporter_config:
    json:
      compact: true
halyard:
  binary: /usr/local/bin/hal
  ready_poll_interval: 500ms
  deployment_type: distributed
apis:
  enabled: false
credentials:
  service_user: ""
`)))

	cfg, err := Load(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Settings.ReporterType)
	assert.True(t, cfg.Settings.Reporter.JSON.Compact)
	assert.Equal(t, log.LevelWarn, cfg.Settings.Level)
	assert.Equal(t, "/usr/local/bin/hal", cfg.Halyard.Binary)
	assert.Equal(t, 500*time.Millisecond, cfg.Halyard.ReadyPollInterval)
	assert.Equal(t, 90*time.Second, cfg.Halyard.ReadyTimeout)
	assert.Equal(t, "distributed", cfg.Halyard.DeploymentType)
	assert.False(t, cfg.APIs.Enabled)
	assert.Empty(t, cfg.Credentials.ServiceUser)
	assert.Equal(t, "/home/spinnaker/.kube/config", cfg.Credentials.KubeconfigPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "unknown reporter", mutate: func(c *Config) { c.Settings.ReporterType = "xml" }, field: "ReporterType"},
		{name: "empty binary", mutate: func(c *Config) { c.Halyard.Binary = "" }, field: "Binary"},
		{name: "zero poll interval", mutate: func(c *Config) { c.Halyard.ReadyPollInterval = 0 }, field: "ReadyPollInterval"},
		{name: "negative api timeout", mutate: func(c *Config) { c.APIs.Timeout = -time.Second }, field: "Timeout"},
		{name: "bad endpoint", mutate: func(c *Config) { c.Google.ComputeEndpoint = "not a url" }, field: "ComputeEndpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(context.Background(), cfg)
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	require.NoError(t, Validate(context.Background(), DefaultConfig()))
}
