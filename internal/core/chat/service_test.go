// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chat_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hearth/internal/core/chat"
	"github.com/taibuivan/hearth/internal/core/persona"
	"github.com/taibuivan/hearth/internal/platform/apperr"
)

// # In-Memory Fakes

type sessionKey struct {
	userID  string
	persona persona.Persona
}

// memMessageRepository is an in-memory MessageRepository. AppendExchange is
// atomic by construction: both halves land in one append.
type memMessageRepository struct {
	logs map[sessionKey][]chat.Message
}

func newMemMessageRepository() *memMessageRepository {
	return &memMessageRepository{logs: make(map[sessionKey][]chat.Message)}
}

func (m *memMessageRepository) ListMessages(_ context.Context, userID string, p persona.Persona) ([]chat.Message, error) {
	key := sessionKey{userID, p}
	messages := []chat.Message{}
	messages = append(messages, m.logs[key]...)
	return messages, nil
}

func (m *memMessageRepository) AppendExchange(_ context.Context, userID string, p persona.Persona, userMessage, aiMessage chat.Message) error {
	key := sessionKey{userID, p}
	m.logs[key] = append(m.logs[key], userMessage, aiMessage)
	return nil
}

// staticProfiles returns a fixed profile for every user.
type staticProfiles struct {
	profile persona.Profile
}

func (s staticProfiles) ProfileFor(context.Context, string) (persona.Profile, error) {
	return s.profile, nil
}

// echoPolicy replies deterministically so tests can assert content.
type echoPolicy struct{}

func (echoPolicy) Reply(_ context.Context, p persona.Persona, message string, profile persona.Profile) (string, error) {
	return profile.DisplayName(p) + " heard: " + message, nil
}

func newTestService(repo *memMessageRepository) *chat.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	profiles := staticProfiles{profile: persona.Profile{MotherName: "Sarah"}}
	return chat.NewService(repo, profiles, echoPolicy{}, logger)
}

// # Tests

/*
TestService_Messages_EmptyBeforeFirstPost verifies that a fresh session reads
as an empty list, not an error.
*/
func TestService_Messages_EmptyBeforeFirstPost(t *testing.T) {
	service := newTestService(newMemMessageRepository())

	messages, err := service.Messages(context.Background(), "user-1", "mother")

	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

/*
TestService_Post_Ordering verifies that two sequential turns produce four
messages ordered user, ai, user, ai.
*/
func TestService_Post_Ordering(t *testing.T) {
	service := newTestService(newMemMessageRepository())
	ctx := context.Background()

	first, err := service.Post(ctx, "user-1", "mother", "hi")
	require.NoError(t, err)
	second, err := service.Post(ctx, "user-1", "mother", "hi again")
	require.NoError(t, err)

	assert.Equal(t, chat.SenderAI, first.Sender)
	assert.Equal(t, chat.SenderAI, second.Sender)

	messages, err := service.Messages(ctx, "user-1", "mother")
	require.NoError(t, err)
	require.Len(t, messages, 4)

	assert.Equal(t, chat.SenderUser, messages[0].Sender)
	assert.Equal(t, "hi", messages[0].Content)
	assert.Equal(t, chat.SenderAI, messages[1].Sender)
	assert.Equal(t, chat.SenderUser, messages[2].Sender)
	assert.Equal(t, "hi again", messages[2].Content)
	assert.Equal(t, chat.SenderAI, messages[3].Sender)
}

/*
TestService_Post_PersonalizedReply verifies the profile flows through to the
reply policy.
*/
func TestService_Post_PersonalizedReply(t *testing.T) {
	service := newTestService(newMemMessageRepository())

	reply, err := service.Post(context.Background(), "user-1", "mother", "I'm stressed")

	require.NoError(t, err)
	assert.Equal(t, "Sarah heard: I'm stressed", reply.Content)
}

/*
TestService_Post_EmptyMessage verifies the empty-message guard writes nothing.
*/
func TestService_Post_EmptyMessage(t *testing.T) {
	repo := newMemMessageRepository()
	service := newTestService(repo)
	ctx := context.Background()

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := service.Post(ctx, "user-1", "mother", text)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 400, ae.HTTPStatus)
	}

	assert.Empty(t, repo.logs)
}

/*
TestService_UnknownPersona verifies dispatch is a closed enumeration on both
read and write paths.
*/
func TestService_UnknownPersona(t *testing.T) {
	service := newTestService(newMemMessageRepository())
	ctx := context.Background()

	_, err := service.Messages(ctx, "user-1", "grandma")
	assert.Error(t, err)

	_, err = service.Post(ctx, "user-1", "grandma", "hello?")
	assert.Error(t, err)
}

/*
TestService_SessionsAreIsolated verifies per-persona and per-user logs never
bleed into each other.
*/
func TestService_SessionsAreIsolated(t *testing.T) {
	service := newTestService(newMemMessageRepository())
	ctx := context.Background()

	_, err := service.Post(ctx, "user-1", "mother", "hi mom")
	require.NoError(t, err)
	_, err = service.Post(ctx, "user-1", "father", "hi dad")
	require.NoError(t, err)
	_, err = service.Post(ctx, "user-2", "mother", "hello")
	require.NoError(t, err)

	motherLog, err := service.Messages(ctx, "user-1", "mother")
	require.NoError(t, err)
	fatherLog, err := service.Messages(ctx, "user-1", "father")
	require.NoError(t, err)
	otherLog, err := service.Messages(ctx, "user-2", "mother")
	require.NoError(t, err)

	assert.Len(t, motherLog, 2)
	assert.Len(t, fatherLog, 2)
	assert.Len(t, otherLog, 2)
	assert.Equal(t, "hi mom", motherLog[0].Content)
	assert.Equal(t, "hi dad", fatherLog[0].Content)
}
