package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 12, cfg.Datastore.WindowMonths)
	assert.Equal(t, 1000, cfg.Datastore.PageSize)
	assert.NotEmpty(t, cfg.Datastore.BaseURL)
	assert.NotEmpty(t, cfg.Datastore.ResourceID)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "reports", cfg.Export.OutputDir)

	require.NoError(t, cfg.validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "missing resource id",
			mutate:  func(c *Config) { c.Datastore.ResourceID = "" },
			wantErr: "resource ID",
		},
		{
			name:    "zero month window",
			mutate:  func(c *Config) { c.Datastore.WindowMonths = 0 },
			wantErr: "at least one month",
		},
		{
			name:    "negative page size",
			mutate:  func(c *Config) { c.Datastore.PageSize = -1 },
			wantErr: "page size",
		},
		{
			name:    "no allowed origins",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: "allowed origin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateNormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}

func TestMergeConfigs(t *testing.T) {
	fileCfg := *Default()
	fileCfg.Server.Port = 9090
	fileCfg.Datastore.WindowMonths = 24

	var envCfg Config // zero: everything comes from the file
	merged := mergeConfigs(fileCfg, envCfg)

	assert.Equal(t, 9090, merged.Server.Port)
	assert.Equal(t, 24, merged.Datastore.WindowMonths)

	envCfg.Server.Port = 7070 // env wins where set
	merged = mergeConfigs(fileCfg, envCfg)
	assert.Equal(t, 7070, merged.Server.Port)
}
