// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
This file provides the PostgreSQL implementation of the daily ledger.

The one-entry-per-day invariant lives in the database: the day column is a
DATE under a UNIQUE (userid, day) constraint, and the merge is a single
INSERT ... ON CONFLICT statement. Concurrent upserts for the same bucket
serialize on the constraint instead of racing a find-then-write.
*/
package habit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hearth/internal/platform/dberr"
	"github.com/taibuivan/hearth/pkg/uuidv7"
)

// PostgresEntryRepository implements [EntryRepository] using pgx.
type PostgresEntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository constructs a PostgreSQL backed ledger store.
func NewEntryRepository(pool *pgxpool.Pool) *PostgresEntryRepository {
	return &PostgresEntryRepository{pool: pool}
}

const entryColumns = "id, userid, day, water, meals, exercise, sleep, mood, notes"

/*
FindByDay returns the stored entry for the (user, day) bucket.

Parameters:
  - context: context.Context
  - userID: string
  - day: time.Time (interval start from DayInterval)

Returns:
  - *Entry: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresEntryRepository) FindByDay(context context.Context, userID string, day time.Time) (*Entry, error) {
	const query = `
		SELECT ` + entryColumns + `
		FROM core.habit_entry
		WHERE userid = $1 AND day = $2::date`

	entry := &Entry{}
	err := repository.pool.QueryRow(context, query, userID, day).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Day,
		&entry.Water,
		&entry.Meals,
		&entry.Exercise,
		&entry.Sleep,
		&entry.Mood,
		&entry.Notes,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Habit entry")
	}

	return entry, nil
}

/*
Upsert atomically creates or merges the entry for the (user, day) bucket.

Description: Nil input fields keep the stored value on the merge path and
fall back to the zero default on the create path. The statement returns the
row state after the merge, so the caller always sees the final values.

Parameters:
  - context: context.Context
  - userID: string
  - day: time.Time (interval start from DayInterval)
  - input: UpsertInput

Returns:
  - *Entry: Stored state after the merge
  - error: Execution errors
*/
func (repository *PostgresEntryRepository) Upsert(context context.Context, userID string, day time.Time, input UpsertInput) (*Entry, error) {
	const query = `
		INSERT INTO core.habit_entry (id, userid, day, water, meals, exercise, sleep, mood, notes)
		VALUES (
			$1, $2, $3::date,
			COALESCE($4, 0),
			COALESCE($5, 0),
			COALESCE($6, FALSE),
			COALESCE($7, 0),
			COALESCE($8, 'okay'),
			COALESCE($9, '')
		)
		ON CONFLICT (userid, day) DO UPDATE SET
			water    = COALESCE($4, habit_entry.water),
			meals    = COALESCE($5, habit_entry.meals),
			exercise = COALESCE($6, habit_entry.exercise),
			sleep    = COALESCE($7, habit_entry.sleep),
			mood     = COALESCE($8, habit_entry.mood),
			notes    = COALESCE($9, habit_entry.notes)
		RETURNING ` + entryColumns

	entry := &Entry{}
	err := repository.pool.QueryRow(context, query,
		uuidv7.New(),
		userID,
		day,
		input.Water,
		input.Meals,
		input.Exercise,
		input.Sleep,
		input.Mood,
		input.Notes,
	).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Day,
		&entry.Water,
		&entry.Meals,
		&entry.Exercise,
		&entry.Sleep,
		&entry.Mood,
		&entry.Notes,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Habit entry")
	}

	return entry, nil
}
