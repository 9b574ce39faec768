package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dhima/synclog/internal/models"
)

// GetOption returns the stored value for name. found is false when the option is absent.
func (c *MySQLClient) GetOption(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := c.db.QueryRowContext(ctx,
		`SELECT option_value FROM options WHERE option_name = ?`, name,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get option %s: %w", name, err)
	}
	return value, true, nil
}

// ListOptions returns every option whose name starts with prefix.
func (c *MySQLClient) ListOptions(ctx context.Context, prefix string) ([]models.Option, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT option_name, option_value, updated_at
		FROM options
		WHERE option_name LIKE ?
		ORDER BY option_name
	`, likePrefix(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.Name, &opt.Value, &opt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}

// SetOptions upserts every value in one transaction.
func (c *MySQLClient) SetOptions(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	now := time.Now().UTC()
	for _, name := range names {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO options (option_name, option_value, updated_at)
			VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE option_value = VALUES(option_value), updated_at = VALUES(updated_at)
		`, name, values[name], now); err != nil {
			return fmt.Errorf("failed to set option %s: %w", name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit options: %w", err)
	}
	return nil
}

func likePrefix(prefix string) string {
	escaped := make([]rune, 0, len(prefix)+1)
	for _, r := range prefix {
		if r == '%' || r == '_' || r == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, r)
	}
	return string(escaped) + "%"
}
