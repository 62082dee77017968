// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import (
	"context"
	"time"
)

// EntryRepository defines the data access contract for the daily ledger.
// The day argument is always the interval start produced by [DayInterval].
type EntryRepository interface {

	// FindByDay returns the entry for the (user, day) bucket, or NotFound.
	FindByDay(context context.Context, userID string, day time.Time) (*Entry, error)

	// Upsert atomically creates or merges the entry for the (user, day)
	// bucket and returns the stored state after the merge. Two concurrent
	// calls for the same bucket must resolve to a single row.
	Upsert(context context.Context, userID string, day time.Time, input UpsertInput) (*Entry, error)
}
