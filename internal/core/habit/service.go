// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/hearth/internal/platform/apperr"
	"github.com/taibuivan/hearth/internal/platform/validate"
)

const (
	FieldWater = "water"
	FieldMeals = "meals"
	FieldSleep = "sleep"
	FieldMood  = "mood"
)

// # Service Layer

// Service orchestrates day resolution, validation, and the atomic merge.
type Service struct {
	entryRepo EntryRepository
	location  *time.Location
	logger    *slog.Logger
}

// NewService constructs a new [Service]. The location fixes the server-local
// notion of "calendar day" used for bucketing.
func NewService(entryRepo EntryRepository, location *time.Location, logger *slog.Logger) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		entryRepo: entryRepo,
		location:  location,
		logger:    logger,
	}
}

/*
Get returns the entry for the requested calendar day.

Description: The date defaults to today. When no entry exists, a zero-valued
default is returned without writing anything; creating the row is left to the
first upsert.

Parameters:
  - context: context.Context
  - userID: string
  - dateRaw: string (optional query parameter)

Returns:
  - *Entry: Stored entry or read-through default
  - error: Invalid date or storage errors
*/
func (service *Service) Get(context context.Context, userID, dateRaw string) (*Entry, error) {
	instant, err := service.resolveDate(dateRaw)
	if err != nil {
		return nil, err
	}

	day, _ := DayInterval(instant, service.location)

	entry, err := service.entryRepo.FindByDay(context, userID, day)
	if err != nil {
		var ae *apperr.AppError
		if errors.As(err, &ae) && ae.Code == "NOT_FOUND" {
			return DefaultEntry(day), nil
		}
		return nil, err
	}

	return entry, nil
}

/*
Upsert creates or merges the entry for the requested calendar day.

Description: Resolution of the day interval is identical to Get. The merge is
a single atomic create-or-update at the storage layer; last write wins per
field, duplicate rows are impossible.

Parameters:
  - context: context.Context
  - userID: string
  - dateRaw: string (optional body field)
  - input: UpsertInput

Returns:
  - *Entry: State after the merge
  - error: Validation or storage errors
*/
func (service *Service) Upsert(context context.Context, userID, dateRaw string, input UpsertInput) (*Entry, error) {
	instant, err := service.resolveDate(dateRaw)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Water != nil {
		validator.NonNegative(FieldWater, float64(*input.Water))
	}
	if input.Meals != nil {
		validator.NonNegative(FieldMeals, float64(*input.Meals))
	}
	if input.Sleep != nil {
		validator.NonNegative(FieldSleep, *input.Sleep)
	}
	if input.Mood != nil {
		validator.OneOf(FieldMood, *input.Mood, Moods()...)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	day, _ := DayInterval(instant, service.location)

	entry, err := service.entryRepo.Upsert(context, userID, day, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("habit_entry_upserted",
		slog.String("user_id", userID),
		slog.String("day", day.Format("2006-01-02")),
	)

	return entry, nil
}

func (service *Service) resolveDate(raw string) (time.Time, error) {
	return ParseDate(raw, service.location)
}
