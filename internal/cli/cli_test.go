package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/envgrid/internal/app"
)

func TestParse(t *testing.T) {
	t.Run("positional suite path defaults to list mode", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse([]string{"suite.hcl"}, out)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "suite.hcl", cfg.SuitePath)
		assert.Equal(t, app.ModeList, cfg.Mode)
		assert.Equal(t, "text", cfg.Format)
	})

	t.Run("suite flag wins over positional", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-suite", "a.hcl", "b.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.SuitePath)
	})

	t.Run("shorthand flag", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-s", "a.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.SuitePath)
	})

	t.Run("env flag selects show mode", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-env", "py38-6.0", "suite.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, app.ModeShow, cfg.Mode)
		assert.Equal(t, "py38-6.0", cfg.EnvID)
	})

	t.Run("order flag selects order mode", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-order", "suite.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, app.ModeOrder, cfg.Mode)
	})

	t.Run("validate flag selects validate mode", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-validate", "suite.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, app.ModeValidate, cfg.Mode)
	})

	t.Run("mode flags are mutually exclusive", func(t *testing.T) {
		_, _, err := Parse([]string{"-env", "py38-6.0", "-order", "suite.hcl"}, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "mutually exclusive")
	})

	t.Run("passthrough requires show mode", func(t *testing.T) {
		_, _, err := Parse([]string{"-passthrough", "suite.hcl"}, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "-passthrough requires -env")

		cfg, _, err := Parse([]string{"-env", "py38-6.0", "-passthrough", "suite.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.True(t, cfg.Passthrough)
	})

	t.Run("no arguments prints usage and exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(nil, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("version flag exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, exit, err := Parse([]string{"-version"}, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Contains(t, out.String(), app.Version)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, _, err := Parse([]string{"-format", "yaml", "suite.hcl"}, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, _, err := Parse([]string{"-log-level", "loud", "suite.hcl"}, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "invalid log-level")
	})

	t.Run("unknown flag is a usage error", func(t *testing.T) {
		_, _, err := Parse([]string{"-bogus"}, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}
