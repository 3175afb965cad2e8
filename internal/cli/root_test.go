package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/splitpane/internal/cli/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"serve", "demo", "version", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	sub, _, err := cmd.Find([]string{"ui"})
	require.NoError(t, err)
	assert.Equal(t, "serve", sub.Name(), "ui is an alias of serve")

	for _, flag := range []string{"config", "verbose", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_Version(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "splitpane v"+Version)
}

func TestRootCmd_InvalidConfigFails(t *testing.T) {
	t.Setenv("SPLITPANE_LOG__FORMAT", "xml")

	_, err := execute(t, "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}

func TestRootCmd_VerboseLogsToStderr(t *testing.T) {
	out, err := execute(t, "demo", "-v", "--width", "30", "--height", "6", "--no-table", "--seed-colors", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "demo layout built")
	assert.Contains(t, out, "level=DEBUG")
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "splitpane")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}
