// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/wrapped/schema"
)

// SessionManager hands out the store that remembers the current artifact selection.
// This allows the session layer to be mocked for testing.
type SessionManager interface {
	GetSessionStore() SessionStore
}

// SessionStore persists explicit artifact selections. At most one session is
// active at a time: opening a new one closes the previous one.
type SessionStore interface {
	// Open records descriptor as the active selection and returns the new session.
	// transport names how the descriptor will be retrieved.
	Open(ctx context.Context, descriptor, transport string) (schema.SessionRecord, error)

	// Close ends the active session, if any. It reports whether one was closed.
	Close(ctx context.Context) (bool, error)

	// Current returns the active session, or nil when nothing is selected.
	Current(ctx context.Context) (*schema.SessionRecord, error)

	// History returns up to limit sessions, newest first.
	History(ctx context.Context, limit int) ([]schema.SessionRecord, error)

	// GetStatus returns status information about the store.
	GetStatus(ctx context.Context) (schema.SessionStatus, error)

	// Shutdown releases the underlying connection.
	Shutdown() error
}
