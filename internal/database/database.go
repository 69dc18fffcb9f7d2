// FilePath: internal/database/database.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/itsatony/smartrooms/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	nuts "github.com/vaudience/go-nuts"
	_ "modernc.org/sqlite"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know about
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// DB is the interface every supported SQL backend implements
type DB interface {
	Close() error
	Ping(ctx context.Context) error
	GetDB() *sqlx.DB
	Dialect() string
}

// Transaction represents a database transaction. *sqlx.Tx satisfies it.
type Transaction interface {
	Commit() error
	Rollback() error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
}

// Repository represents common repository operations
type Repository interface {
	BeginTx(ctx context.Context) (Transaction, error)
}

type sqlDB struct {
	db      *sqlx.DB
	dialect string
}

// Open connects to the database selected by cfg.Driver
func Open(cfg config.DatabaseConfig) (DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgresDB(cfg.Postgres)
	case config.DriverMySQL:
		return NewMySQLDB(cfg.MySQL)
	case config.DriverSQLite:
		return NewSQLiteDB(cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg config.PostgresConfig) (DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sqlx.Connect(config.DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}

	nuts.L.Infof("[PostgresDB] Connected to %s:%d/%s", cfg.Host, cfg.Port, cfg.DBName)
	return &sqlDB{db: db, dialect: config.DriverPostgres}, nil
}

// NewMySQLDB creates a new MySQL database connection
func NewMySQLDB(cfg config.MySQLConfig) (DB, error) {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.DBName
	mc.ParseTime = true
	// report matched rows so an unchanged UPDATE is not mistaken for a missing row
	mc.ClientFoundRows = true

	db, err := sqlx.Connect(config.DriverMySQL, mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("error connecting to MySQL: %w", err)
	}

	nuts.L.Infof("[MySQLDB] Connected to %s/%s", mc.Addr, cfg.DBName)
	return &sqlDB{db: db, dialect: config.DriverMySQL}, nil
}

// NewSQLiteDB opens (and creates if needed) a SQLite database file
func NewSQLiteDB(path string) (DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating SQLite directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sqlx.Connect(config.DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening SQLite: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	nuts.L.Infof("[SQLiteDB] Opened %s", path)
	return &sqlDB{db: db, dialect: config.DriverSQLite}, nil
}

func (d *sqlDB) Close() error {
	return d.db.Close()
}

func (d *sqlDB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *sqlDB) GetDB() *sqlx.DB {
	return d.db
}

func (d *sqlDB) Dialect() string {
	return d.dialect
}
