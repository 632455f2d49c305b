package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // SQLite driver
)

// sessionsTable is the name of the table holding session selections.
const sessionsTable = "wrapped_sessions"

// SessionStoreImpl persists session selections using various database backends.
type SessionStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
	now     func() time.Time

	mu      sync.Mutex // guards entropy
	entropy io.Reader
}

var _ contract.SessionStore = &SessionStoreImpl{} // Compile-time check

// driverFor returns the database/sql driver and DSN for a backend.
func driverFor(backend schema.DatabaseBackend, connStr string) (string, string, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetSessionDBFilePath()
		}
		return "sqlite", dbPath, nil
	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		return "mysql", connStr, nil
	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		return "pgx", connStr, nil
	default:
		return "", "", fmt.Errorf("unsupported session backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

// NewSessionStore migrates the schema to the latest version and returns a store.
func NewSessionStore(backend schema.DatabaseBackend, connStr string) (*SessionStoreImpl, error) {
	store := &SessionStoreImpl{
		backend: backend,
		connStr: connStr,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	if backend == schema.NoneBackend {
		// No-op store for disabled persistence
		return store, nil
	}

	driverName, dsn, err := driverFor(backend, connStr)
	if err != nil {
		return nil, err
	}
	if _, err := runMigrations(backend, connStr, -1); err != nil {
		return nil, fmt.Errorf("failed to prepare %s session schema: %w", backend, err)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s session store: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	store.db = db
	return store, nil
}

// rebind rewrites "?" placeholders into "$n" for PostgreSQL.
func (s *SessionStoreImpl) rebind(query string) string {
	if s.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SessionStoreImpl) newID(at time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(at), s.entropy).String()
}

// Open closes any active session and records a new one in a single transaction.
func (s *SessionStoreImpl) Open(ctx context.Context, descriptor, transport string) (schema.SessionRecord, error) {
	descriptor = strings.TrimSpace(descriptor)
	if descriptor == "" {
		return schema.SessionRecord{}, errors.New("cannot open a session without a descriptor")
	}
	now := s.now()
	rec := schema.SessionRecord{
		ID:         s.newID(now),
		Descriptor: descriptor,
		Transport:  transport,
		OpenedAt:   now,
	}
	if s.db == nil {
		return rec, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return schema.SessionRecord{}, fmt.Errorf("failed to begin session transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	closeQuery := s.rebind(fmt.Sprintf("UPDATE %s SET closed_at = ? WHERE closed_at IS NULL", sessionsTable))
	if _, err := tx.ExecContext(ctx, closeQuery, now.UnixMilli()); err != nil {
		return schema.SessionRecord{}, fmt.Errorf("failed to close previous session: %w", err)
	}
	insertQuery := s.rebind(fmt.Sprintf("INSERT INTO %s (id, descriptor, transport, opened_at) VALUES (?, ?, ?, ?)", sessionsTable))
	if _, err := tx.ExecContext(ctx, insertQuery, rec.ID, rec.Descriptor, rec.Transport, now.UnixMilli()); err != nil {
		return schema.SessionRecord{}, fmt.Errorf("failed to record session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return schema.SessionRecord{}, fmt.Errorf("failed to commit session: %w", err)
	}
	rec.OpenedAt = time.UnixMilli(now.UnixMilli())
	return rec, nil
}

// Close ends the active session.
func (s *SessionStoreImpl) Close(ctx context.Context) (bool, error) {
	if s.db == nil {
		return false, nil
	}
	query := s.rebind(fmt.Sprintf("UPDATE %s SET closed_at = ? WHERE closed_at IS NULL", sessionsTable))
	res, err := s.db.ExecContext(ctx, query, s.now().UnixMilli())
	if err != nil {
		return false, fmt.Errorf("failed to close session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Current returns the active session, or nil.
func (s *SessionStoreImpl) Current(ctx context.Context) (*schema.SessionRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT id, descriptor, transport, opened_at, closed_at FROM %s
		WHERE closed_at IS NULL ORDER BY opened_at DESC, id DESC LIMIT 1`, sessionsTable)
	rec, err := scanRecord(s.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read current session: %w", err)
	}
	return &rec, nil
}

// History returns up to limit sessions, newest first.
func (s *SessionStoreImpl) History(ctx context.Context, limit int) ([]schema.SessionRecord, error) {
	if s.db == nil || limit <= 0 {
		return []schema.SessionRecord{}, nil
	}
	query := s.rebind(fmt.Sprintf(`SELECT id, descriptor, transport, opened_at, closed_at FROM %s
		ORDER BY opened_at DESC, id DESC LIMIT ?`, sessionsTable))
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []schema.SessionRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (schema.SessionRecord, error) {
	var rec schema.SessionRecord
	var opened int64
	var closed sql.NullInt64
	if err := row.Scan(&rec.ID, &rec.Descriptor, &rec.Transport, &opened, &closed); err != nil {
		return rec, err
	}
	rec.OpenedAt = time.UnixMilli(opened)
	if closed.Valid {
		t := time.UnixMilli(closed.Int64)
		rec.ClosedAt = &t
	}
	return rec, nil
}

// GetStatus returns status information about the session store.
func (s *SessionStoreImpl) GetStatus(ctx context.Context) (schema.SessionStatus, error) {
	status := schema.SessionStatus{
		Backend:   string(s.backend),
		Database:  databaseName(s.backend, s.connStr),
		Connected: s.db != nil,
	}
	if s.db == nil {
		return status, nil
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", sessionsTable)
	if err := s.db.QueryRowContext(ctx, countQuery).Scan(&status.TotalSessions); err != nil {
		return status, fmt.Errorf("failed to count sessions: %w", err)
	}
	if status.TotalSessions == 0 {
		return status, nil
	}

	var last int64
	lastQuery := fmt.Sprintf("SELECT MAX(opened_at) FROM %s", sessionsTable)
	if err := s.db.QueryRowContext(ctx, lastQuery).Scan(&last); err != nil {
		return status, fmt.Errorf("failed to get last session time: %w", err)
	}
	status.LastOpened = time.UnixMilli(last)

	current, err := s.Current(ctx)
	if err != nil {
		return status, err
	}
	status.Current = current
	return status, nil
}

// Shutdown closes the underlying DB connection.
func (s *SessionStoreImpl) Shutdown() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// databaseName names the database a store points at, for status output.
func databaseName(backend schema.DatabaseBackend, connStr string) string {
	switch backend {
	case schema.SQLiteBackend:
		_, dsn, _ := driverFor(backend, connStr)
		return dsn
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return ""
		}
		return cfg.DBName
	case schema.PostgreSQLBackend:
		for field := range strings.FieldsSeq(connStr) {
			if name, ok := strings.CutPrefix(field, "dbname="); ok {
				return name
			}
		}
	}
	return ""
}
