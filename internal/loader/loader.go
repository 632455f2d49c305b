// Package loader retrieves and decodes a wrapped artifact from an explicit selection.
//
// Loading never returns an error to the caller. Transport and decoding problems
// are logged and reported through Result.Outcome so renderers can show an empty
// state instead of failing.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/wrapped/core/field"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Defaults for transports.
const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultMaxBytes    = 256 << 20
)

// ErrNoSelection is reported when Load is called without a selection.
var ErrNoSelection = errors.New("no artifact selected")

// ErrUnsupported is reported when no transport can serve a descriptor.
var ErrUnsupported = errors.New("unsupported descriptor")

// Outcome classifies the result of a load.
type Outcome int

// All load outcomes.
const (
	NoSelection Outcome = iota
	Loaded
	TransportFailure
	MalformedArtifact
)

// String returns a short name for o.
func (o Outcome) String() string {
	switch o {
	case NoSelection:
		return "no-selection"
	case Loaded:
		return "loaded"
	case TransportFailure:
		return "transport-failure"
	case MalformedArtifact:
		return "malformed-artifact"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Transport names how a descriptor is retrieved.
type Transport string

// All transports.
const (
	NoTransport   Transport = "none"
	FileTransport Transport = "file"
	HTTPTransport Transport = "http"
	BlobTransport Transport = "blob"
	BestEffort    Transport = "best-effort"
)

// Selection is an explicit artifact descriptor: a filesystem path, a
// file:// URL, an http(s) URL or a blob handle. The zero value selects nothing.
type Selection struct {
	descriptor string
}

// NewSelection wraps a descriptor. Blank descriptors yield the zero Selection.
func NewSelection(desc string) Selection {
	return Selection{descriptor: strings.TrimSpace(desc)}
}

// IsZero reports whether nothing is selected.
func (s Selection) IsZero() bool {
	return s.descriptor == ""
}

// String returns the descriptor.
func (s Selection) String() string {
	return s.descriptor
}

// Result is the outcome of a load. Err holds the absorbed cause for failures.
type Result struct {
	artifact *field.Artifact
	Outcome  Outcome
	Source   string
	Err      error
}

// Artifact returns the decoded artifact, or nil for any outcome other than Loaded.
func (r Result) Artifact() *field.Artifact {
	if r.Outcome != Loaded {
		return nil
	}
	return r.artifact
}

// Options configures a Loader. A nil Fs disables filesystem reads, a nil
// Client uses one with DefaultHTTPTimeout and a nil Blobs disables handles.
type Options struct {
	Fs       afero.Fs
	Client   *http.Client
	Blobs    *BlobRegistry
	Logger   *zap.Logger
	MaxBytes int64
}

// Loader dispatches a Selection to a transport and decodes the artifact.
// Concurrent loads of the same descriptor share one retrieval.
type Loader struct {
	fs       afero.Fs
	client   *http.Client
	blobs    *BlobRegistry
	logger   *zap.Logger
	maxBytes int64
	group    singleflight.Group
}

// New returns a Loader.
func New(opts Options) *Loader {
	l := &Loader{
		fs:       opts.Fs,
		client:   opts.Client,
		blobs:    opts.Blobs,
		logger:   opts.Logger,
		maxBytes: opts.MaxBytes,
	}
	if l.client == nil {
		l.client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	if l.maxBytes <= 0 {
		l.maxBytes = DefaultMaxBytes
	}
	return l
}

// Load retrieves and decodes the selected artifact. With no selection it
// returns NoSelection without touching any transport. Concurrent loads of one
// descriptor share a single retrieval that outlives any one caller's context;
// a cancelled caller gets TransportFailure while the others still receive the
// shared result.
func (l *Loader) Load(ctx context.Context, sel Selection) Result {
	if sel.IsZero() {
		return Result{Outcome: NoSelection, Err: ErrNoSelection}
	}
	ch := l.group.DoChan(sel.descriptor, func() (any, error) {
		return l.load(context.WithoutCancel(ctx), sel.descriptor), nil
	})
	var res Result
	select {
	case <-ctx.Done():
		res = Result{Outcome: TransportFailure, Source: sel.descriptor, Err: ctx.Err()}
	case r := <-ch:
		res = r.Val.(Result)
	}
	switch res.Outcome {
	case Loaded:
		l.logger.Debug("Artifact loaded", zap.String("source", res.Source), zap.Int("keys", res.artifact.Keys()))
	default:
		l.logger.Warn("Artifact load failed", zap.String("source", res.Source), zap.Stringer("outcome", res.Outcome), zap.Error(res.Err))
	}
	return res
}

func (l *Loader) load(ctx context.Context, desc string) Result {
	data, err := l.retrieve(ctx, desc)
	if err != nil {
		return Result{Outcome: TransportFailure, Source: desc, Err: err}
	}
	art, err := Decode(data)
	if err != nil {
		return Result{Outcome: MalformedArtifact, Source: desc, Err: err}
	}
	return Result{artifact: art, Outcome: Loaded, Source: desc}
}

// Decode parses artifact bytes. The root must be a JSON object.
func Decode(data []byte) (*field.Artifact, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode artifact: root is %T, want object", root)
	}
	return field.NewArtifact(obj), nil
}

// Dispatch picks the transport for desc.
func (l *Loader) Dispatch(desc string) Transport {
	lower := strings.ToLower(desc)
	switch {
	case desc == "":
		return NoTransport
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return HTTPTransport
	case IsBlobHandle(desc):
		return BlobTransport
	case strings.HasPrefix(lower, "file://"):
		return FileTransport
	case isPathLike(desc) && l.fs != nil:
		return FileTransport
	default:
		return BestEffort
	}
}

func (l *Loader) retrieve(ctx context.Context, desc string) ([]byte, error) {
	switch l.Dispatch(desc) {
	case HTTPTransport:
		return l.fetch(ctx, desc)
	case BlobTransport:
		return l.readBlob(ctx, desc)
	case FileTransport:
		return l.readFile(strings.TrimPrefix(desc, "file://"))
	case BestEffort:
		if l.fs != nil {
			if data, err := l.readFile(desc); err == nil {
				return data, nil
			}
		}
		return l.fetch(ctx, desc)
	default:
		return nil, ErrNoSelection
	}
}

func (l *Loader) readFile(path string) ([]byte, error) {
	if l.fs == nil {
		return nil, fmt.Errorf("%w: no filesystem for %q", ErrUnsupported, path)
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return l.readAll(f)
}

// readBlob serves a registered handle, falling back to HTTP for
// browser-style handles such as "blob:https://host/id".
func (l *Loader) readBlob(ctx context.Context, desc string) ([]byte, error) {
	if l.blobs != nil {
		if data, err := l.blobs.Get(desc); err == nil {
			return data, nil
		}
	}
	rest := desc[len(BlobScheme):]
	lower := strings.ToLower(rest)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return l.fetch(ctx, rest)
	}
	return nil, fmt.Errorf("%s: %w", desc, ErrBlobNotFound)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return l.readAll(resp.Body)
}

func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("artifact exceeds %d bytes", l.maxBytes)
	}
	return data, nil
}

// isPathLike reports whether desc looks like a filesystem path.
func isPathLike(desc string) bool {
	switch {
	case strings.HasPrefix(desc, "/"), strings.HasPrefix(desc, "./"), strings.HasPrefix(desc, "../"), strings.HasPrefix(desc, "~/"):
		return true
	case filepath.IsAbs(desc):
		return true
	case strings.ContainsRune(desc, filepath.Separator), strings.ContainsRune(desc, '/'):
		return !strings.Contains(desc, "://")
	case strings.HasSuffix(strings.ToLower(desc), ".json"):
		return true
	default:
		return false
	}
}
