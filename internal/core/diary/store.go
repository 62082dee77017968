// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary

import "context"

// EntryRepository defines the data access contract for journal entries.
type EntryRepository interface {

	// ListByUser returns up to limit entries for the user, newest date first.
	ListByUser(context context.Context, userID string, limit int) ([]*Entry, error)

	// Create persists a new immutable entry.
	Create(context context.Context, entry *Entry) error
}
