package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/internal/loader"
	"github.com/huangsam/wrapped/internal/session"
	"github.com/huangsam/wrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const fixturePath = "testdata/artifact.json"

func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		ResultLimit:    3,
		Output:         schema.JSONOut,
		OutputFile:     filepath.Join(t.TempDir(), "out.json"),
		HTTPTimeout:    time.Second,
		TimelineMetric: schema.MessagesTimeline,
		HourMetric:     schema.ResponseHours,
		TopMetric:      schema.EmojiTop,
	}
}

func quietContext() context.Context {
	return WithSuppressHeader(context.Background())
}

// storeWithCurrent returns a manager whose store reports current as the open session.
func storeWithCurrent(current *schema.SessionRecord) (*session.MockSessionManager, *session.MockSessionStore) {
	store := &session.MockSessionStore{}
	store.On("Current", mock.Anything).Return(current, nil)
	mgr := &session.MockSessionManager{}
	mgr.On("GetSessionStore").Return(store)
	return mgr, store
}

func TestResolveSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("descriptor wins", func(t *testing.T) {
		mgr := &session.MockSessionManager{}
		cfg := &contract.Config{Descriptor: fixturePath}
		sel, err := ResolveSelection(ctx, cfg, mgr)
		require.NoError(t, err)
		assert.Equal(t, fixturePath, sel.String())
		mgr.AssertNotCalled(t, "GetSessionStore")
	})

	t.Run("falls back to current session", func(t *testing.T) {
		mgr, store := storeWithCurrent(&schema.SessionRecord{ID: "s1", Descriptor: "https://example.com/a.json"})
		sel, err := ResolveSelection(ctx, &contract.Config{}, mgr)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a.json", sel.String())
		store.AssertExpectations(t)
	})

	t.Run("skip session", func(t *testing.T) {
		mgr := &session.MockSessionManager{}
		sel, err := ResolveSelection(WithSkipSession(ctx), &contract.Config{}, mgr)
		require.NoError(t, err)
		assert.True(t, sel.IsZero())
		mgr.AssertNotCalled(t, "GetSessionStore")
	})

	t.Run("no session", func(t *testing.T) {
		mgr, _ := storeWithCurrent(nil)
		sel, err := ResolveSelection(ctx, &contract.Config{}, mgr)
		require.NoError(t, err)
		assert.True(t, sel.IsZero())
	})

	t.Run("no store", func(t *testing.T) {
		mgr := &session.MockSessionManager{}
		mgr.On("GetSessionStore").Return(nil)
		sel, err := ResolveSelection(ctx, &contract.Config{}, mgr)
		require.NoError(t, err)
		assert.True(t, sel.IsZero())
	})

	t.Run("store error", func(t *testing.T) {
		store := &session.MockSessionStore{}
		store.On("Current", mock.Anything).Return(nil, assert.AnError)
		mgr := &session.MockSessionManager{}
		mgr.On("GetSessionStore").Return(store)
		_, err := ResolveSelection(ctx, &contract.Config{}, mgr)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestGetReport(t *testing.T) {
	cfg := testConfig(t)
	cfg.Descriptor = fixturePath

	report, res, err := GetReport(quietContext(), cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, loader.Loaded, res.Outcome)
	assert.Equal(t, res.Source, report.Source)
	assert.Len(t, report.Chats, 2)
}

func TestGetReport_NoData(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		outcome    loader.Outcome
	}{
		{"no selection", "", loader.NoSelection},
		{"missing file", filepath.Join(t.TempDir(), "nope.json"), loader.TransportFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Descriptor = tt.descriptor
			report, res, err := GetReport(WithSkipSession(quietContext()), cfg, nil)
			require.NoError(t, err)
			assert.Nil(t, report)
			assert.Equal(t, tt.outcome, res.Outcome)
		})
	}
}

func TestNoDataReason(t *testing.T) {
	assert.Empty(t, noDataReason(loader.Result{Outcome: loader.NoSelection}))
	assert.Equal(t, "malformed-artifact", noDataReason(loader.Result{Outcome: loader.MalformedArtifact}))
	assert.Contains(t, noDataReason(loader.Result{Outcome: loader.TransportFailure, Err: assert.AnError}), "transport-failure: ")
}

func TestExecuteSummary_WritesFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Descriptor = fixturePath
	require.NoError(t, ExecuteSummary(quietContext(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var report schema.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Len(t, report.Metrics, 3)
}

func TestExecuteSections_WriteFile(t *testing.T) {
	tests := []struct {
		name string
		exec ExecutorFunc
		want string
	}{
		{"timeline", ExecuteTimeline, `"messages_timeline"`},
		{"hours", ExecuteHours, `"1.5 hrs"`},
		{"top", ExecuteTop, `"display_name"`},
		{"chats", ExecuteChats, `"Quick Quinn"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Descriptor = fixturePath
			require.NoError(t, tt.exec(quietContext(), cfg, nil))
			data, err := os.ReadFile(cfg.OutputFile)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func TestExecuteSummary_NoDataLeavesFileAlone(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, ExecuteSummary(WithSkipSession(quietContext()), cfg, nil))
	_, err := os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(err))
}

func TestExecuteExport(t *testing.T) {
	cfg := testConfig(t)
	cfg.Descriptor = fixturePath
	cfg.OutputFile = ""
	assert.Error(t, ExecuteExport(quietContext(), cfg, nil))

	cfg.OutputFile = filepath.Join(t.TempDir(), "wrapped.parquet")
	require.NoError(t, ExecuteExport(quietContext(), cfg, nil))
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(cfg.OutputFile), "*.parquet"))
	require.NoError(t, err)
	assert.Len(t, matches, 4)
	assert.Equal(t, schema.JSONOut, cfg.Output, "export must not mutate the caller's config")
}

func TestOpenSession(t *testing.T) {
	ctx := quietContext()

	t.Run("records file transport", func(t *testing.T) {
		store := &session.MockSessionStore{}
		store.On("Open", mock.Anything, fixturePath, "file").
			Return(schema.SessionRecord{ID: "s1", Descriptor: fixturePath, Transport: "file"}, nil)
		mgr := &session.MockSessionManager{}
		mgr.On("GetSessionStore").Return(store)

		cfg := testConfig(t)
		cfg.Descriptor = fixturePath
		rec, err := OpenSession(ctx, cfg, mgr)
		require.NoError(t, err)
		assert.Equal(t, "s1", rec.ID)
		store.AssertExpectations(t)
	})

	t.Run("rejects blob handles", func(t *testing.T) {
		handle := Blobs.Put([]byte(`{}`))
		defer Blobs.Release(handle)
		store := &session.MockSessionStore{}
		mgr := &session.MockSessionManager{}
		mgr.On("GetSessionStore").Return(store)

		cfg := testConfig(t)
		cfg.Descriptor = handle
		_, err := OpenSession(ctx, cfg, mgr)
		assert.ErrorIs(t, err, ErrBlobSession)
		store.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects unloadable artifacts", func(t *testing.T) {
		store := &session.MockSessionStore{}
		mgr := &session.MockSessionManager{}
		mgr.On("GetSessionStore").Return(store)

		cfg := testConfig(t)
		cfg.Descriptor = filepath.Join(t.TempDir(), "missing.json")
		_, err := OpenSession(ctx, cfg, mgr)
		assert.ErrorContains(t, err, "cannot open session")
	})

	t.Run("requires descriptor", func(t *testing.T) {
		mgr := &session.MockSessionManager{}
		mgr.On("GetSessionStore").Return(&session.MockSessionStore{})
		_, err := OpenSession(ctx, testConfig(t), mgr)
		assert.ErrorIs(t, err, loader.ErrNoSelection)
	})

	t.Run("requires store", func(t *testing.T) {
		_, err := OpenSession(ctx, testConfig(t), nil)
		assert.ErrorIs(t, err, ErrNoStore)
	})
}

func TestExecuteSessionCommands(t *testing.T) {
	ctx := context.Background()
	opened := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	records := []schema.SessionRecord{{ID: "s2", Descriptor: "b.json", Transport: "file", OpenedAt: opened}}

	store := &session.MockSessionStore{}
	store.On("Close", mock.Anything).Return(true, nil)
	store.On("History", mock.Anything, 3).Return(records, nil)
	store.On("GetStatus", mock.Anything).Return(schema.SessionStatus{Backend: "sqlite", Connected: true, TotalSessions: 1}, nil)
	mgr := &session.MockSessionManager{}
	mgr.On("GetSessionStore").Return(store)

	require.NoError(t, ExecuteSessionClose(ctx, testConfig(t), mgr))

	cfg := testConfig(t)
	require.NoError(t, ExecuteSessionHistory(ctx, cfg, mgr))
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"s2"`)

	cfg = testConfig(t)
	require.NoError(t, ExecuteSessionStatus(ctx, cfg, mgr))
	data, err = os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_sessions": 1`)

	store.AssertExpectations(t)
}
