// Package core has core logic for shaping a loaded artifact into report sections.
package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/internal/loader"
	"github.com/huangsam/wrapped/internal/outwriter"
	"github.com/huangsam/wrapped/schema"
	"github.com/spf13/afero"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) error

// Blobs holds artifacts handed over in memory, such as stdin or inline MCP payloads.
var Blobs = loader.NewBlobRegistry()

// newLoader returns the loader for one invocation.
func newLoader(cfg *contract.Config) *loader.Loader {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = contract.DefaultHTTPTimeout
	}
	return loader.New(loader.Options{
		Fs:     afero.NewOsFs(),
		Client: &http.Client{Timeout: timeout},
		Blobs:  Blobs,
		Logger: cfg.Logger,
	})
}

// ResolveSelection picks the artifact to load: the configured descriptor first,
// then the open session. With neither it returns the zero Selection.
func ResolveSelection(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) (loader.Selection, error) {
	if cfg.Descriptor != "" {
		return loader.NewSelection(cfg.Descriptor), nil
	}
	if shouldSkipSession(ctx) || mgr == nil {
		return loader.Selection{}, nil
	}
	store := mgr.GetSessionStore()
	if store == nil {
		return loader.Selection{}, nil
	}
	current, err := store.Current(ctx)
	if err != nil {
		return loader.Selection{}, fmt.Errorf("failed to read current session: %w", err)
	}
	if current == nil {
		return loader.Selection{}, nil
	}
	return loader.NewSelection(current.Descriptor), nil
}

// LoadArtifact resolves the selection and loads it. Load failures are
// reported through the Result; only session store errors are returned.
func LoadArtifact(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) (loader.Result, error) {
	sel, err := ResolveSelection(ctx, cfg, mgr)
	if err != nil {
		return loader.Result{}, err
	}
	start := time.Now()
	res := newLoader(cfg).Load(ctx, sel)
	if res.Outcome == loader.Loaded && !shouldSuppressHeader(ctx) {
		logLoadHeader(res, time.Since(start))
	}
	return res, nil
}

// logLoadHeader tells the user which artifact is being shown.
func logLoadHeader(res loader.Result, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "📦 Loaded %s in %v\n", res.Source, duration.Round(time.Millisecond))
}

// noDataReason explains a non-Loaded outcome. No selection needs no explanation.
func noDataReason(res loader.Result) string {
	if res.Outcome == loader.NoSelection || res.Outcome == loader.Loaded {
		return ""
	}
	if res.Err == nil {
		return res.Outcome.String()
	}
	return fmt.Sprintf("%s: %v", res.Outcome, res.Err)
}

// withArtifact loads the selected artifact and hands it to render, or prints the
// no-data state when nothing could be loaded. The no-data state is not an error.
func withArtifact(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager, render func(*Builder, loader.Result) error) error {
	res, err := LoadArtifact(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if res.Outcome != loader.Loaded {
		return outwriter.NewOutWriter().WriteNoData(os.Stdout, noDataReason(res), cfg)
	}
	return render(NewBuilder(cfg.Logger, cfg.ResultLimit), res)
}

// GetReport loads the selected artifact and builds the full report.
// The report is nil when nothing was loaded; the Result says why.
func GetReport(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) (*schema.Report, loader.Result, error) {
	res, err := LoadArtifact(ctx, cfg, mgr)
	if err != nil || res.Outcome != loader.Loaded {
		return nil, res, err
	}
	report, err := NewBuilder(cfg.Logger, cfg.ResultLimit).BuildReport(ctx, res.Artifact(), res.Source)
	return report, res, err
}

// ExecuteSummary prints the headline metrics, rankings and leading chats.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) error {
	report, res, err := GetReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ow := outwriter.NewOutWriter()
	if report == nil {
		return ow.WriteNoData(os.Stdout, noDataReason(res), cfg)
	}
	return ow.WriteSummary(report, cfg)
}

// ExecuteTimeline prints the bucketized timeline selected by cfg.TimelineMetric.
func ExecuteTimeline(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) error {
	return withArtifact(ctx, cfg, mgr, func(b *Builder, res loader.Result) error {
		return outwriter.NewOutWriter().WriteTimeline(b.TimelineFor(res.Artifact(), cfg.TimelineMetric), cfg)
	})
}

// ExecuteHours prints the hour-of-day series selected by cfg.HourMetric.
func ExecuteHours(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) error {
	return withArtifact(ctx, cfg, mgr, func(b *Builder, res loader.Result) error {
		return outwriter.NewOutWriter().WriteHours(b.Hours(res.Artifact(), cfg.HourMetric), cfg)
	})
}

// ExecuteTop prints the top cfg.ResultLimit categories as aligned series.
func ExecuteTop(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) error {
	return withArtifact(ctx, cfg, mgr, func(b *Builder, res loader.Result) error {
		return outwriter.NewOutWriter().WriteTopSeries(b.TopSeries(res.Artifact(), cfg.TopMetric, cfg.ResultLimit), cfg)
	})
}

// ExecuteChats prints the conversation comparison and response-time extremes.
func ExecuteChats(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) error {
	return withArtifact(ctx, cfg, mgr, func(b *Builder, res loader.Result) error {
		chats, ok := b.Chats(res.Artifact())
		return outwriter.NewOutWriter().WriteChats(chats, !ok, b.Extremes(res.Artifact()), cfg)
	})
}

// ExecuteExport writes every report section to Parquet files next to cfg.OutputFile.
func ExecuteExport(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) error {
	if cfg.OutputFile == "" {
		return errors.New("export requires --output-file")
	}
	exportCfg := cfg.Clone()
	exportCfg.Output = schema.ParquetOut
	return ExecuteSummary(ctx, exportCfg, mgr)
}
