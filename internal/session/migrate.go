package session

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/wrapped/schema"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// LatestVersion is the newest schema version shipped in migrations/.
const LatestVersion = 2

// migrationResult describes what a migration run changed.
type migrationResult struct {
	from    uint
	to      uint
	changed bool
}

// Migrate runs database migrations for the session store and prints the outcome.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations (to initial state).
// - If targetVersion > 0, it migrates to the specified version.
func Migrate(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	res, err := runMigrations(backend, connStr, targetVersion)
	if err != nil {
		return err
	}
	switch {
	case !res.changed:
		fmt.Printf("No migration needed. Database is already at version %d\n", res.to)
	case res.to < res.from:
		fmt.Printf("Successfully rolled back from version %d to version %d\n", res.from, res.to)
	default:
		fmt.Printf("Successfully migrated from version %d to version %d\n", res.from, res.to)
	}
	return nil
}

func runMigrations(backend schema.DatabaseBackend, connStr string, targetVersion int) (migrationResult, error) {
	var res migrationResult
	if backend == schema.NoneBackend {
		return res, fmt.Errorf("migrations are not supported for NoneBackend")
	}
	if targetVersion > LatestVersion {
		return res, fmt.Errorf("target version %d is newer than latest version %d", targetVersion, LatestVersion)
	}

	driverName, dsn, err := driverFor(backend, connStr)
	if err != nil {
		return res, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return res, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return res, fmt.Errorf("failed to ping database: %w", err)
	}

	// Create a migrate driver instance
	var driver database.Driver
	switch backend {
	case schema.SQLiteBackend:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	case schema.MySQLBackend:
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	case schema.PostgreSQLBackend:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	}
	if err != nil {
		_ = db.Close()
		return res, fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	migrationFS, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		_ = db.Close()
		return res, fmt.Errorf("failed to access migrations directory: %w", err)
	}
	sourceDriver, err := iofs.New(migrationFS, ".")
	if err != nil {
		_ = db.Close()
		return res, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "wrapped", driver)
	if err != nil {
		_ = db.Close()
		return res, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return res, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return res, fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", current)
	}
	res.from = current

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if errors.Is(err, migrate.ErrNoChange) {
		res.to = current
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("failed to migrate to version %d: %w", targetVersion, err)
	}

	res.changed = true
	newVersion, _, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return res, fmt.Errorf("failed to read new migration version: %w", verr)
	}
	res.to = newVersion
	return res, nil
}
