package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	validConfig := func() *Config {
		cfg := &Config{}
		setDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			config: validConfig(),
		},
		{
			name: "missing server listen",
			config: func() *Config {
				cfg := validConfig()
				cfg.Server.Listen = ""
				return cfg
			}(),
			wantErr: true,
			errMsg:  "server.listen is required",
		},
		{
			name: "missing server timeout",
			config: func() *Config {
				cfg := validConfig()
				cfg.Server.Timeout = 0
				return cfg
			}(),
			wantErr: true,
			errMsg:  "server.timeout is required",
		},
		{
			name: "missing api url",
			config: func() *Config {
				cfg := validConfig()
				cfg.API.URL = ""
				return cfg
			}(),
			wantErr: true,
			errMsg:  "api.url is required",
		},
		{
			name: "retries without delay",
			config: func() *Config {
				cfg := validConfig()
				cfg.API.Attempts = 3
				cfg.API.RetryDelay = 0
				return cfg
			}(),
			wantErr: true,
			errMsg:  "api.retry_delay",
		},
		{
			name: "retries with delay",
			config: func() *Config {
				cfg := validConfig()
				cfg.API.Attempts = 3
				cfg.API.RetryDelay = 10 * time.Millisecond
				return cfg
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyAgainstEmbeddedSchema(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSchemaProperties(t *testing.T) {
	t.Run("root definition via $defs", func(t *testing.T) {
		props := schemaProperties(map[string]interface{}{
			"$defs": map[string]interface{}{
				"Config": map[string]interface{}{
					"properties": map[string]interface{}{"server": map[string]interface{}{}},
				},
			},
		})
		assert.Contains(t, props, "server")
	})

	t.Run("inline properties", func(t *testing.T) {
		props := schemaProperties(map[string]interface{}{
			"properties": map[string]interface{}{"api": map[string]interface{}{}},
		})
		assert.Contains(t, props, "api")
	})

	t.Run("no properties", func(t *testing.T) {
		assert.Empty(t, schemaProperties(map[string]interface{}{}))
	})
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := schema.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "session_ttl")
	assert.Contains(t, string(data), "APIConfig")
	assert.Contains(t, string(data), "default_limit")
}
