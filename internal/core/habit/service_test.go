// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hearth/internal/core/habit"
	"github.com/taibuivan/hearth/internal/platform/apperr"
	"github.com/taibuivan/hearth/pkg/pointer"
)

// memEntryRepository is an in-memory EntryRepository keyed on (user, day),
// mirroring the database's create-or-merge semantics.
type memEntryRepository struct {
	entries map[string]*habit.Entry
}

func newMemEntryRepository() *memEntryRepository {
	return &memEntryRepository{entries: make(map[string]*habit.Entry)}
}

func bucketKey(userID string, day time.Time) string {
	return userID + "/" + day.Format("2006-01-02")
}

func (m *memEntryRepository) FindByDay(_ context.Context, userID string, day time.Time) (*habit.Entry, error) {
	if entry, ok := m.entries[bucketKey(userID, day)]; ok {
		clone := *entry
		return &clone, nil
	}
	return nil, apperr.NotFound("Habit entry")
}

func (m *memEntryRepository) Upsert(_ context.Context, userID string, day time.Time, input habit.UpsertInput) (*habit.Entry, error) {
	key := bucketKey(userID, day)

	entry, ok := m.entries[key]
	if !ok {
		entry = habit.DefaultEntry(day)
		entry.ID = key
		entry.UserID = userID
		m.entries[key] = entry
	}

	entry.Water = pointer.Fallback(input.Water, entry.Water)
	entry.Meals = pointer.Fallback(input.Meals, entry.Meals)
	entry.Exercise = pointer.Fallback(input.Exercise, entry.Exercise)
	entry.Sleep = pointer.Fallback(input.Sleep, entry.Sleep)
	entry.Mood = pointer.Fallback(input.Mood, entry.Mood)
	entry.Notes = pointer.Fallback(input.Notes, entry.Notes)

	clone := *entry
	return &clone, nil
}

func newTestService(repo *memEntryRepository) *habit.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return habit.NewService(repo, time.UTC, logger)
}

/*
TestService_Get_ZeroDefault verifies the read-through default for a day with
no entry, and that reading writes nothing.
*/
func TestService_Get_ZeroDefault(t *testing.T) {
	repo := newMemEntryRepository()
	service := newTestService(repo)

	entry, err := service.Get(context.Background(), "user-1", "2024-03-01")

	require.NoError(t, err)
	assert.Equal(t, 0, entry.Water)
	assert.Equal(t, 0, entry.Meals)
	assert.False(t, entry.Exercise)
	assert.Equal(t, float64(0), entry.Sleep)
	assert.Equal(t, habit.MoodOkay, entry.Mood)

	// Read-through, never a write.
	assert.Empty(t, repo.entries)
}

/*
TestService_Upsert_SameDayCollapses verifies two upserts for the same day
resolve to one entry carrying the last-written fields.
*/
func TestService_Upsert_SameDayCollapses(t *testing.T) {
	repo := newMemEntryRepository()
	service := newTestService(repo)
	ctx := context.Background()

	_, err := service.Upsert(ctx, "user-1", "2024-03-01", habit.UpsertInput{
		Water: pointer.To(3),
	})
	require.NoError(t, err)

	_, err = service.Upsert(ctx, "user-1", "2024-03-01", habit.UpsertInput{
		Water: pointer.To(5),
		Mood:  pointer.To(habit.MoodGreat),
	})
	require.NoError(t, err)

	assert.Len(t, repo.entries, 1)

	entry, err := service.Get(ctx, "user-1", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Water)
	assert.Equal(t, habit.MoodGreat, entry.Mood)
}

/*
TestService_Upsert_PartialMerge verifies nil fields never clobber previously
stored values.
*/
func TestService_Upsert_PartialMerge(t *testing.T) {
	service := newTestService(newMemEntryRepository())
	ctx := context.Background()

	_, err := service.Upsert(ctx, "user-1", "2024-03-01", habit.UpsertInput{
		Water:    pointer.To(4),
		Exercise: pointer.To(true),
	})
	require.NoError(t, err)

	entry, err := service.Upsert(ctx, "user-1", "2024-03-01", habit.UpsertInput{
		Sleep: pointer.To(7.5),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, entry.Water)
	assert.True(t, entry.Exercise)
	assert.Equal(t, 7.5, entry.Sleep)
}

/*
TestService_Upsert_DayBoundary verifies the last millisecond of a day and the
next midnight land in distinct buckets.
*/
func TestService_Upsert_DayBoundary(t *testing.T) {
	repo := newMemEntryRepository()
	service := newTestService(repo)
	ctx := context.Background()

	_, err := service.Upsert(ctx, "user-1", "2024-03-01T23:59:59.999", habit.UpsertInput{
		Water: pointer.To(1),
	})
	require.NoError(t, err)

	_, err = service.Upsert(ctx, "user-1", "2024-03-02T00:00:00", habit.UpsertInput{
		Water: pointer.To(2),
	})
	require.NoError(t, err)

	assert.Len(t, repo.entries, 2)

	first, err := service.Get(ctx, "user-1", "2024-03-01")
	require.NoError(t, err)
	second, err := service.Get(ctx, "user-1", "2024-03-02")
	require.NoError(t, err)

	assert.Equal(t, 1, first.Water)
	assert.Equal(t, 2, second.Water)
}

/*
TestService_Upsert_Validation verifies negative counts and unknown moods are
rejected before any write.
*/
func TestService_Upsert_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input habit.UpsertInput
	}{
		{"negative_water", habit.UpsertInput{Water: pointer.To(-1)}},
		{"negative_meals", habit.UpsertInput{Meals: pointer.To(-2)}},
		{"negative_sleep", habit.UpsertInput{Sleep: pointer.To(-0.5)}},
		{"unknown_mood", habit.UpsertInput{Mood: pointer.To("fantastic")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemEntryRepository()
			service := newTestService(repo)

			_, err := service.Upsert(context.Background(), "user-1", "2024-03-01", tt.input)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 400, ae.HTTPStatus)
			assert.Empty(t, repo.entries)
		})
	}
}

/*
TestService_InvalidDate verifies unparseable dates fail on both paths.
*/
func TestService_InvalidDate(t *testing.T) {
	service := newTestService(newMemEntryRepository())
	ctx := context.Background()

	_, err := service.Get(ctx, "user-1", "not-a-date")
	assert.Error(t, err)

	_, err = service.Upsert(ctx, "user-1", "not-a-date", habit.UpsertInput{})
	assert.Error(t, err)
}
