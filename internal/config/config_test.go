package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/phicalc/internal/errors"
	"github.com/agbru/phicalc/internal/sequence"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("phicalc", nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, sequence.DefaultCapacity, cfg.N)
	assert.Equal(t, sequence.DefaultCapacity, cfg.Capacity)
	assert.Equal(t, "all", cfg.Width)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.Broken)
	assert.Empty(t, cfg.ServeAddr)
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := ParseConfig("phicalc",
		[]string{"-n", "10", "-width", "int64", "-q", "-broken", "-timeout", "5s", "-o", "out.txt"},
		io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.N)
	assert.Equal(t, "int64", cfg.Width)
	assert.True(t, cfg.Quiet)
	assert.True(t, cfg.Broken)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "out.txt", cfg.OutputFile)
}

func TestParseConfig_HelpFlag(t *testing.T) {
	_, err := ParseConfig("phicalc", []string{"--help"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestParseConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"n below 2", []string{"-n", "1"}},
		{"n above capacity", []string{"-n", "60", "-cap", "50"}},
		{"capacity above max", []string{"-cap", "4096"}},
		{"capacity below 2", []string{"-cap", "1"}},
		{"unknown width", []string{"-width", "int128"}},
		{"non-positive timeout", []string{"-timeout", "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("phicalc", tt.args, io.Discard)
			var cfgErr apperrors.ConfigError
			require.ErrorAs(t, err, &cfgErr, "args %v", tt.args)
		})
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "12")
	t.Setenv(EnvPrefix+"WIDTH", "big")
	t.Setenv(EnvPrefix+"QUIET", "yes")
	t.Setenv(EnvPrefix+"TIMEOUT", "2m")

	cfg, err := ParseConfig("phicalc", nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.N)
	assert.Equal(t, "big", cfg.Width)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestParseConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "12")
	t.Setenv(EnvPrefix+"WIDTH", "big")

	cfg, err := ParseConfig("phicalc", []string{"-n", "20", "-width", "int32"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.N, "explicit flag must win over env")
	assert.Equal(t, "int32", cfg.Width)
}

func TestParseConfig_AliasBlocksEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"QUIET", "true")

	// Setting the short alias counts as setting the flag: env must not apply.
	cfg, err := ParseConfig("phicalc", []string{"-q=false"}, io.Discard)
	require.NoError(t, err)
	assert.False(t, cfg.Quiet)
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"garbage", true, true},
		{"garbage", false, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseBoolEnv(tt.val, tt.def), "val=%q def=%v", tt.val, tt.def)
	}
}

func TestInvalidEnvValuesAreIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "not-a-number")
	t.Setenv(EnvPrefix+"TIMEOUT", "soon")

	cfg, err := ParseConfig("phicalc", nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, sequence.DefaultCapacity, cfg.N)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}
