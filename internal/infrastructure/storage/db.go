package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"NewsIngestor/internal/config"
)

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// DB is an open content store with a dialect-aware query builder.
type DB struct {
	*sql.DB
	driver  string
	dsn     string
	builder sq.StatementBuilderType
	logger  *slog.Logger
}

// Open connects to the configured store and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	builder, err := builderFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == DriverSQLite {
		// single writer
		conn.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "storage")
	logger.Info("store connected", "driver", cfg.Driver)

	return &DB{DB: conn, driver: cfg.Driver, dsn: cfg.DSN, builder: builder, logger: logger}, nil
}

// Driver reports the SQL dialect in use.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies the bundled schema migrations for the current driver. It
// runs on a dedicated connection because closing the migrator closes its database.
func (db *DB) Migrate() error {
	source, err := iofs.New(migrationsFS, "migrations/"+db.driver)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	conn, err := sql.Open(db.driver, db.dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}

	var driver database.Driver
	switch db.driver {
	case DriverPostgres:
		driver, err = postgres.WithInstance(conn, &postgres.Config{})
	case DriverSQLite:
		driver, err = sqlite.WithInstance(conn, &sqlite.Config{})
	}
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, db.driver, driver)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			db.logger.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	db.logger.Info("migrations applied", "version", version, "dirty", dirty)
	return nil
}

func builderFor(driver string) (sq.StatementBuilderType, error) {
	switch driver {
	case DriverPostgres:
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar), nil
	case DriverSQLite:
		return sq.StatementBuilder.PlaceholderFormat(sq.Question), nil
	default:
		return sq.StatementBuilderType{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}
