//go:build basic

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/wrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryJSON(t *testing.T) {
	out, err := runWrapped(t, t.TempDir(), nil, nil, "summary", artifactPath(t), "--output", "json")
	require.NoError(t, err)

	var report schema.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "12,345", report.Metrics[0].Display)
	assert.Len(t, report.Chats, 2)
}

func TestSummaryFromStdin(t *testing.T) {
	data, err := os.ReadFile(artifactPath(t))
	require.NoError(t, err)
	out, err := runWrapped(t, t.TempDir(), data, nil, "summary", "-", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"12,345"`)
}

func TestNoDataExitsCleanly(t *testing.T) {
	home := t.TempDir()
	out, err := runWrapped(t, home, nil, nil, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "No wrapped data yet")

	out, err = runWrapped(t, home, nil, nil, "timeline", filepath.Join(home, "missing.json"), "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"no_data"`)
}

func TestSessionLifecycle(t *testing.T) {
	home := t.TempDir()

	_, err := runWrapped(t, home, nil, nil, "session", "open", artifactPath(t))
	require.NoError(t, err)

	out, err := runWrapped(t, home, nil, nil, "top", "--metric", "emoji", "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "😂")

	out, err = runWrapped(t, home, nil, nil, "session", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Sessions: 1")

	_, err = runWrapped(t, home, nil, nil, "session", "close")
	require.NoError(t, err)

	out, err = runWrapped(t, home, nil, nil, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "No wrapped data yet")

	_, err = runWrapped(t, home, nil, nil, "session", "clear")
	require.NoError(t, err)
}

func TestExportParquet(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "wrapped")
	_, err := runWrapped(t, dir, nil, nil, "export", artifactPath(t), "--output-file", prefix)
	require.NoError(t, err)

	for _, suffix := range []string{"_metrics", "_timeline", "_series", "_rankings"} {
		assert.FileExists(t, prefix+suffix+".parquet")
	}
}

func TestInvalidMetricFails(t *testing.T) {
	_, err := runWrapped(t, t.TempDir(), nil, nil, "hours", artifactPath(t), "--metric", "emoji")
	assert.Error(t, err)
}
