// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/hearth/internal/platform/validate"
	"github.com/taibuivan/hearth/pkg/uuidv7"
)

const (
	FieldContent = "content"
	FieldMood    = "mood"
)

// # Service Layer

// Service orchestrates the journal's append and list operations.
type Service struct {
	entryRepo EntryRepository
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its repository.
func NewService(entryRepo EntryRepository, logger *slog.Logger) *Service {
	return &Service{
		entryRepo: entryRepo,
		logger:    logger,
	}
}

/*
List returns the user's most recent entries, newest date first, capped at
[ListLimit] regardless of how many exist.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Entry: Up to 20 entries
  - error: Storage errors
*/
func (service *Service) List(context context.Context, userID string) ([]*Entry, error) {
	return service.entryRepo.ListByUser(context, userID, ListLimit)
}

// AppendInput holds the caller-supplied entry fields.
type AppendInput struct {
	Title   string
	Content string
	Mood    string
	Date    *time.Time
	Tags    []string
}

/*
Append validates and persists one new journal entry.

Description: Content must be non-empty and the mood must be one of the six
recognized values. The date defaults to creation time.

Parameters:
  - context: context.Context
  - userID: string
  - input: AppendInput

Returns:
  - *Entry: Created entity
  - error: Validation or persistence errors
*/
func (service *Service) Append(context context.Context, userID string, input AppendInput) (*Entry, error) {

	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content)
	validator.OneOf(FieldMood, input.Mood, Moods()...)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:      uuidv7.New(),
		UserID:  userID,
		Title:   input.Title,
		Content: input.Content,
		Mood:    input.Mood,
		Date:    time.Now(),
		Tags:    input.Tags,
	}
	if input.Date != nil {
		entry.Date = *input.Date
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	if err := service.entryRepo.Create(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("diary_entry_created",
		slog.String("user_id", userID),
		slog.String("mood", entry.Mood),
	)

	return entry, nil
}
