package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dhima/synclog/internal/models"
)

// CreateRecord inserts a log record and returns its id. created_at is assigned here.
func (c *MySQLClient) CreateRecord(ctx context.Context, record *models.LogRecord) (int64, error) {
	var meta []byte
	if len(record.Meta) > 0 {
		encoded, err := json.Marshal(record.Meta)
		if err != nil {
			return 0, fmt.Errorf("failed to encode record meta: %w", err)
		}
		meta = encoded
	}

	record.CreatedAt = time.Now().UTC()

	result, err := c.db.ExecContext(ctx, `
		INSERT INTO log_records (title, message, parent_id, category, meta, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		record.Title,
		record.Message,
		record.ParentID,
		record.Category,
		meta,
		record.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create log record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read log record id: %w", err)
	}
	record.ID = id
	return id, nil
}

// ListRecords returns records for the query's parent object, newest first.
func (c *MySQLClient) ListRecords(ctx context.Context, query models.RecordQuery) ([]models.LogRecord, error) {
	where, args := recordWhere(query)

	listQuery := fmt.Sprintf(`
		SELECT id, title, message, parent_id, category, meta, created_at
		FROM log_records
		%s
		ORDER BY created_at DESC, id DESC
	`, where)

	if query.PageSize > 0 {
		listQuery += " LIMIT ? OFFSET ?"
		args = append(args, query.PageSize, query.Offset())
	}

	rows, err := c.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list log records: %w", err)
	}
	defer rows.Close()

	records := []models.LogRecord{}
	for rows.Next() {
		var record models.LogRecord
		var meta sql.NullString

		err := rows.Scan(
			&record.ID,
			&record.Title,
			&record.Message,
			&record.ParentID,
			&record.Category,
			&meta,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log record: %w", err)
		}

		if meta.Valid && meta.String != "" {
			if err := json.Unmarshal([]byte(meta.String), &record.Meta); err != nil {
				return nil, fmt.Errorf("failed to decode meta for record %d: %w", record.ID, err)
			}
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log records: %w", err)
	}

	return records, nil
}

// CountRecords counts records matching the query, including its meta clauses.
func (c *MySQLClient) CountRecords(ctx context.Context, query models.RecordQuery) (int64, error) {
	where, args := recordWhere(query)

	var count int64
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM log_records "+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count log records: %w", err)
	}
	return count, nil
}

// DeleteRecords removes up to filter.Limit records created before filter.Before, oldest
// first. A zero Limit deletes every match.
func (c *MySQLClient) DeleteRecords(ctx context.Context, filter models.PruneFilter) (int64, error) {
	query, args := pruneStatement(filter)

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete log records: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read deleted row count: %w", err)
	}
	return deleted, nil
}

func recordWhere(query models.RecordQuery) (string, []interface{}) {
	clauses := []string{"parent_id = ?"}
	args := []interface{}{query.ParentID}

	if query.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, query.Category)
	}

	for _, clause := range query.Meta {
		clauses = append(clauses, "JSON_UNQUOTE(JSON_EXTRACT(meta, ?)) = ?")
		args = append(args, metaPath(clause.Key), clause.Value)
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func pruneStatement(filter models.PruneFilter) (string, []interface{}) {
	clauses := []string{"created_at < ?"}
	args := []interface{}{filter.Before}

	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}

	query := "DELETE FROM log_records WHERE " + strings.Join(clauses, " AND ") + " ORDER BY created_at ASC, id ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	return query, args
}

// metaPath builds a JSON path selecting a top-level member, quoted so keys may contain
// dots or spaces.
func metaPath(key string) string {
	escaped := strings.ReplaceAll(key, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `$."` + escaped + `"`
}
