// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hearth/internal/platform/dberr"
)

// PostgresEntryRepository implements [EntryRepository] using pgx.
// Tags are stored in a native text[] column.
type PostgresEntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository constructs a PostgreSQL backed journal store.
func NewEntryRepository(pool *pgxpool.Pool) *PostgresEntryRepository {
	return &PostgresEntryRepository{pool: pool}
}

/*
ListByUser returns up to limit entries for a user, newest date first.

Parameters:
  - context: context.Context
  - userID: string
  - limit: int

Returns:
  - []*Entry: Reverse-chronological page
  - error: Execution errors
*/
func (repository *PostgresEntryRepository) ListByUser(context context.Context, userID string, limit int) ([]*Entry, error) {
	const query = `
		SELECT id, userid, title, content, mood, entrydate, tags
		FROM core.diary_entry
		WHERE userid = $1
		ORDER BY entrydate DESC
		LIMIT $2`

	rows, err := repository.pool.Query(context, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_diary_repo_list_failed: %w", err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Title,
			&entry.Content,
			&entry.Mood,
			&entry.Date,
			&entry.Tags,
		); err != nil {
			return nil, fmt.Errorf("postgres_diary_repo_scan_failed: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_diary_repo_rows_failed: %w", err)
	}

	return entries, nil
}

/*
Create persists a new immutable journal entry.

Parameters:
  - context: context.Context
  - entry: *Entry

Returns:
  - error: Persistence failures
*/
func (repository *PostgresEntryRepository) Create(context context.Context, entry *Entry) error {
	const query = `
		INSERT INTO core.diary_entry (id, userid, title, content, mood, entrydate, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := repository.pool.Exec(context, query,
		entry.ID,
		entry.UserID,
		entry.Title,
		entry.Content,
		entry.Mood,
		entry.Date,
		entry.Tags,
	)

	return dberr.Wrap(err, "Diary entry")
}
