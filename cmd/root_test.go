package cmd

import (
	"strings"
	"testing"

	"github.com/huangsam/wrapped/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStdinBlob(t *testing.T) {
	handle, err := readStdinBlob(strings.NewReader(`{"total_number_messages": 3}`))
	require.NoError(t, err)
	defer core.Blobs.Release(handle)

	data, err := core.Blobs.Get(handle)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_number_messages": 3}`, string(data))
}

func TestCommandTree(t *testing.T) {
	for _, name := range []string{"summary", "timeline", "hours", "top", "chats", "export", "session", "mcp", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	for _, name := range []string{"open", "close", "status", "history", "migrate", "clear"} {
		cmd, _, err := rootCmd.Find([]string{"session", name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestMetricFlags(t *testing.T) {
	for name, family := range metricFamilies {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.NotNil(t, cmd.Flags().Lookup("metric"), "%s declares --metric", name)
		assert.NotEmpty(t, family)
	}
	assert.Nil(t, chatsCmd.Flags().Lookup("metric"))
}
