package pikevm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.True(t, config.Greedy)
	assert.True(t, config.EnablePrefilter)
	assert.Equal(t, 64, config.MaxLiterals)
	assert.Equal(t, 16, config.MaxLiteralLen)
	assert.Equal(t, 1000, config.MaxNestingDepth)
	assert.NotNil(t, config.Logger)
	assert.NoError(t, config.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"defaults", func(*Config) {}, ""},
		{"max literals zero", func(c *Config) { c.MaxLiterals = 0 }, "MaxLiterals"},
		{"max literals too large", func(c *Config) { c.MaxLiterals = 1001 }, "MaxLiterals"},
		{"max literals upper bound", func(c *Config) { c.MaxLiterals = 1000 }, ""},
		{"max literal len zero", func(c *Config) { c.MaxLiteralLen = 0 }, "MaxLiteralLen"},
		{"max literal len too large", func(c *Config) { c.MaxLiteralLen = 65 }, "MaxLiteralLen"},
		{"max literal len upper bound", func(c *Config) { c.MaxLiteralLen = 64 }, ""},
		{"literal limits ignored without prefilter", func(c *Config) {
			c.EnablePrefilter = false
			c.MaxLiterals = 0
			c.MaxLiteralLen = 0
		}, ""},
		{"nesting too shallow", func(c *Config) { c.MaxNestingDepth = 9 }, "MaxNestingDepth"},
		{"nesting lower bound", func(c *Config) { c.MaxNestingDepth = 10 }, ""},
		{"nesting too deep", func(c *Config) { c.MaxNestingDepth = 10_001 }, "MaxNestingDepth"},
		{"nesting checked without prefilter", func(c *Config) {
			c.EnablePrefilter = false
			c.MaxNestingDepth = 0
		}, "MaxNestingDepth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			err := config.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantField, ce.Field)
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Field: "MaxLiterals", Message: "must be between 1 and 1,000"}
	assert.Equal(t, "pikevm: invalid config: MaxLiterals: must be between 1 and 1,000", err.Error())
}
