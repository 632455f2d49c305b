package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/internal/loader"
	"github.com/huangsam/wrapped/internal/outwriter"
	"github.com/huangsam/wrapped/schema"
)

// DefaultHistoryLimit caps how many sessions `session history` lists.
const DefaultHistoryLimit = 20

// ErrNoStore is returned when a session command runs before the store is initialized.
var ErrNoStore = errors.New("session store is not initialized")

// ErrBlobSession is returned when a blob handle is opened as a session.
// Blobs only live as long as the process that registered them.
var ErrBlobSession = errors.New("blob handles cannot be opened as a session")

func sessionStore(mgr contract.SessionManager) (contract.SessionStore, error) {
	if mgr == nil {
		return nil, ErrNoStore
	}
	store := mgr.GetSessionStore()
	if store == nil {
		return nil, ErrNoStore
	}
	return store, nil
}

// OpenSession records cfg.Descriptor as the current selection. The artifact is
// loaded once first so a bad descriptor is reported instead of remembered.
func OpenSession(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) (schema.SessionRecord, error) {
	store, err := sessionStore(mgr)
	if err != nil {
		return schema.SessionRecord{}, err
	}
	if cfg.Descriptor == "" {
		return schema.SessionRecord{}, loader.ErrNoSelection
	}
	l := newLoader(cfg)
	transport := l.Dispatch(cfg.Descriptor)
	if transport == loader.BlobTransport {
		return schema.SessionRecord{}, ErrBlobSession
	}
	res := l.Load(ctx, loader.NewSelection(cfg.Descriptor))
	if res.Outcome != loader.Loaded {
		return schema.SessionRecord{}, fmt.Errorf("cannot open session for %s: %s", cfg.Descriptor, noDataReason(res))
	}
	return store.Open(ctx, cfg.Descriptor, string(transport))
}

// ExecuteSessionOpen opens a session and prints it.
func ExecuteSessionOpen(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) error {
	rec, err := OpenSession(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	fmt.Printf("Opened session %s for %s (%s)\n", rec.ID, rec.Descriptor, rec.Transport)
	return nil
}

// ExecuteSessionClose closes the current session, if any.
func ExecuteSessionClose(ctx context.Context, _ *contract.Config, mgr contract.SessionManager) error {
	store, err := sessionStore(mgr)
	if err != nil {
		return err
	}
	closed, err := store.Close(ctx)
	if err != nil {
		return err
	}
	if closed {
		fmt.Println("Session closed.")
	} else {
		fmt.Println("No active session.")
	}
	return nil
}

// ExecuteSessionStatus prints store details and the current session.
func ExecuteSessionStatus(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) error {
	store, err := sessionStore(mgr)
	if err != nil {
		return err
	}
	status, err := store.GetStatus(ctx)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSessionStatus(status, cfg)
}

// ExecuteSessionHistory lists recent sessions, newest first.
func ExecuteSessionHistory(ctx context.Context, cfg *contract.Config, mgr contract.SessionManager) error {
	store, err := sessionStore(mgr)
	if err != nil {
		return err
	}
	limit := cfg.ResultLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	records, err := store.History(ctx, limit)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSessions(records, cfg)
}
