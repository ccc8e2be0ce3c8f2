package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions_Defaults(t *testing.T) {
	o, err := loadOptions([]string{"a+b", "x.txt", "y.txt"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "a+b", o.Pattern)
	assert.Equal(t, []string{"x.txt", "y.txt"}, o.Files)
	assert.False(t, o.Lazy)
	assert.False(t, o.OnlyMatching)
	assert.False(t, o.Captures)
	assert.False(t, o.Count)
	assert.True(t, o.Prefilter)
	assert.Equal(t, 0, o.Workers)
	assert.Equal(t, "warn", o.LogLevel)
	assert.Equal(t, "", o.LogFile)
	assert.Equal(t, 100, o.LogMaxSizeMB)
}

func TestLoadOptions_Flags(t *testing.T) {
	o, err := loadOptions([]string{
		"--lazy", "-o", "--workers=3", "--prefilter=false", "--log.level", "debug", "(a)",
	}, io.Discard)
	require.NoError(t, err)

	assert.True(t, o.Lazy)
	assert.True(t, o.OnlyMatching)
	assert.False(t, o.Prefilter)
	assert.Equal(t, 3, o.Workers)
	assert.Equal(t, "debug", o.LogLevel)
	assert.Equal(t, "(a)", o.Pattern)
	assert.Empty(t, o.Files)
}

func TestLoadOptions_Env(t *testing.T) {
	t.Setenv("PIKEGREP_COUNT", "true")
	t.Setenv("PIKEGREP_WORKERS", "5")
	t.Setenv("PIKEGREP_LOG_LEVEL", "error")

	o, err := loadOptions([]string{"a"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, o.Count)
	assert.Equal(t, 5, o.Workers)
	assert.Equal(t, "error", o.LogLevel)

	// an explicit flag wins over the environment
	o, err = loadOptions([]string{"--workers", "2", "a"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 2, o.Workers)
}

func TestLoadOptions_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pikegrep.yaml")
	content := "lazy: true\ncaptures: true\nworkers: 4\nlog:\n  level: info\n  max-size-mb: 7\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	o, err := loadOptions([]string{"--config", path, "a"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, o.Lazy)
	assert.True(t, o.Captures)
	assert.Equal(t, 4, o.Workers)
	assert.Equal(t, "info", o.LogLevel)
	assert.Equal(t, 7, o.LogMaxSizeMB)

	t.Setenv("PIKEGREP_WORKERS", "6")
	o, err = loadOptions([]string{"--config", path, "a"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 6, o.Workers)
}

func TestLoadOptions_Errors(t *testing.T) {
	_, err := loadOptions(nil, io.Discard)
	assert.ErrorIs(t, err, errUsage)

	_, err = loadOptions([]string{"--help"}, io.Discard)
	assert.True(t, errors.Is(err, pflag.ErrHelp))

	_, err = loadOptions([]string{"--no-such-flag", "a"}, io.Discard)
	assert.Error(t, err)

	_, err = loadOptions([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "a"}, io.Discard)
	assert.Error(t, err)

	_, err = loadOptions([]string{"--workers=-1", "a"}, io.Discard)
	assert.Error(t, err)

	_, err = loadOptions([]string{"--log.max-size-mb=0", "a"}, io.Discard)
	assert.Error(t, err)

	t.Setenv("PIKEGREP_WORKERS", "many")
	_, err = loadOptions([]string{"a"}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "option workers")
}
