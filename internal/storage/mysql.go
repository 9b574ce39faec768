package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLClient wraps direct SQL access for log records and options.
type MySQLClient struct {
	db *sql.DB
}

// NewMySQLClient wires a sql.DB; pass a configured instance from main.
func NewMySQLClient(db *sql.DB) *MySQLClient {
	return &MySQLClient{db: db}
}

// DB exposes the underlying pool for health checks and shutdown.
func (c *MySQLClient) DB() *sql.DB {
	return c.db
}

// Open connects to MySQL using dsn and verifies the connection. Timestamps are always
// scanned into time.Time in UTC.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	normalized, err := normalizeDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(60 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func normalizeDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("database DSN is empty")
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid database DSN: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS log_records (
		id BIGINT NOT NULL AUTO_INCREMENT,
		title VARCHAR(255) NOT NULL DEFAULT '',
		message MEDIUMTEXT NOT NULL,
		parent_id BIGINT NOT NULL DEFAULT 0,
		category VARCHAR(64) NOT NULL,
		meta JSON NULL,
		created_at DATETIME(6) NOT NULL,
		PRIMARY KEY (id),
		KEY idx_log_records_parent (parent_id, category, created_at),
		KEY idx_log_records_category (category, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS options (
		option_name VARCHAR(191) NOT NULL,
		option_value MEDIUMTEXT NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		PRIMARY KEY (option_name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the log_records and options tables when missing.
func (c *MySQLClient) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
