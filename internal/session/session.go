// Package session persists the explicit artifact selection between invocations.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/schema"
)

// SessionStoreManager hands out the process-wide session store.
type SessionStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.SessionStore
}

var _ contract.SessionManager = &SessionStoreManager{} // Compile-time check

// GetSessionStore returns the session store, or nil before InitStore.
func (mgr *SessionStoreManager) GetSessionStore() contract.SessionStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// Global Manager instance for main logic.
var (
	Manager   = &SessionStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore initializes the global session manager.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		store, err := NewSessionStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize session store: %w", err)
			return
		}
		Manager.Lock()
		defer Manager.Unlock()
		Manager.store = store
	})
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Shutdown()
		}
	})
}

// Clear removes all persisted sessions for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the session and migration tables.
// For NoneBackend, it does nothing.
func Clear(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		_, dbFilePath, _ := driverFor(backend, connStr)
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		driverName, dsn, err := driverFor(backend, connStr)
		if err != nil {
			return err
		}
		return dropSQLTables(driverName, dsn, sessionsTable, "schema_migrations")

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported session backend for clearing: %s", backend)
	}
}

// dropSQLTables connects to the SQL database and drops the tables if they exist.
func dropSQLTables(driverName, connStr string, tables ...string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}
	for _, table := range tables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
