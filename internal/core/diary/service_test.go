// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hearth/internal/core/diary"
	"github.com/taibuivan/hearth/internal/platform/apperr"
)

// memEntryRepository is an in-memory EntryRepository mirroring the store's
// newest-first, limited listing semantics.
type memEntryRepository struct {
	entries []*diary.Entry
}

func (m *memEntryRepository) ListByUser(_ context.Context, userID string, limit int) ([]*diary.Entry, error) {
	owned := []*diary.Entry{}
	for _, entry := range m.entries {
		if entry.UserID == userID {
			owned = append(owned, entry)
		}
	}

	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Date.After(owned[j].Date)
	})

	if len(owned) > limit {
		owned = owned[:limit]
	}
	return owned, nil
}

func (m *memEntryRepository) Create(_ context.Context, entry *diary.Entry) error {
	clone := *entry
	m.entries = append(m.entries, &clone)
	return nil
}

func newTestService() (*diary.Service, *memEntryRepository) {
	repo := &memEntryRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return diary.NewService(repo, logger), repo
}

/*
TestService_Append verifies entry creation with defaulted date and tags.
*/
func TestService_Append(t *testing.T) {
	service, _ := newTestService()

	entry, err := service.Append(context.Background(), "user-1", diary.AppendInput{
		Title:   "A good day",
		Content: "Walked in the park.",
		Mood:    diary.MoodPeaceful,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, diary.MoodPeaceful, entry.Mood)
	assert.WithinDuration(t, time.Now(), entry.Date, time.Minute)
	assert.NotNil(t, entry.Tags)
}

/*
TestService_Append_Validation verifies the empty-content and unknown-mood
guards write nothing.
*/
func TestService_Append_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		mood    string
	}{
		{"empty_content", "", diary.MoodHappy},
		{"whitespace_content", "   ", diary.MoodHappy},
		{"unknown_mood", "some text", "ecstatic"},
		{"missing_mood", "some text", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService()

			_, err := service.Append(context.Background(), "user-1", diary.AppendInput{
				Content: tt.content,
				Mood:    tt.mood,
			})

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 400, ae.HTTPStatus)
			assert.Empty(t, repo.entries)
		})
	}
}

/*
TestService_List_LimitAndOrder verifies the 20-entry cap and newest-first
ordering when more entries exist.
*/
func TestService_List_LimitAndOrder(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		date := base.Add(time.Duration(i) * 24 * time.Hour)
		_, err := service.Append(ctx, "user-1", diary.AppendInput{
			Content: fmt.Sprintf("entry %d", i),
			Mood:    diary.MoodHappy,
			Date:    &date,
		})
		require.NoError(t, err)
	}

	entries, err := service.List(ctx, "user-1")
	require.NoError(t, err)

	assert.Len(t, entries, diary.ListLimit)

	// Newest first: the most recent of the 25 leads the page.
	assert.Equal(t, "entry 24", entries[0].Content)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Date.After(entries[i-1].Date))
	}
}

/*
TestService_List_OwnershipIsolation verifies a user never sees another
user's entries.
*/
func TestService_List_OwnershipIsolation(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.Append(ctx, "user-1", diary.AppendInput{Content: "mine", Mood: diary.MoodHappy})
	require.NoError(t, err)
	_, err = service.Append(ctx, "user-2", diary.AppendInput{Content: "theirs", Mood: diary.MoodSad})
	require.NoError(t, err)

	entries, err := service.List(ctx, "user-1")
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "mine", entries[0].Content)
}
