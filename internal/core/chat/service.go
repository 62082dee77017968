// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/hearth/internal/core/persona"
	"github.com/taibuivan/hearth/internal/platform/apperr"
)

const FieldMessage = "message"

// ProfileSource resolves the persona configuration of a user so replies can
// be personalized without this package depending on the identity domain.
type ProfileSource interface {
	ProfileFor(context context.Context, userID string) (persona.Profile, error)
}

// # Service Layer

// Service orchestrates conversation reads and the synchronous request/reply turn.
type Service struct {
	messageRepo MessageRepository
	profiles    ProfileSource
	policy      persona.ResponsePolicy
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(messageRepo MessageRepository, profiles ProfileSource, policy persona.ResponsePolicy, logger *slog.Logger) *Service {
	return &Service{
		messageRepo: messageRepo,
		profiles:    profiles,
		policy:      policy,
		logger:      logger,
	}
}

/*
Messages returns the ordered conversation log for one persona.

Description: An absent session is not an error; the caller receives an
empty list.

Parameters:
  - context: context.Context
  - userID: string
  - personaRaw: string (route parameter)

Returns:
  - []Message: Ordered log, possibly empty
  - error: Unknown persona or storage errors
*/
func (service *Service) Messages(context context.Context, userID, personaRaw string) ([]Message, error) {
	p, err := persona.Parse(personaRaw)
	if err != nil {
		return nil, err
	}

	return service.messageRepo.ListMessages(context, userID, p)
}

/*
Post runs one full chat turn: append the user's message, generate the
companion reply synchronously, and append the reply in the same atomic unit.

Description: Only the reply message is returned; the caller already has the
message it sent.

Parameters:
  - context: context.Context
  - userID: string
  - personaRaw: string (route parameter)
  - text: string (user message body)

Returns:
  - *Message: The companion reply
  - error: Empty message, unknown persona, or storage errors
*/
func (service *Service) Post(context context.Context, userID, personaRaw, text string) (*Message, error) {
	p, err := persona.Parse(personaRaw)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, apperr.ValidationError("Message cannot be empty",
			apperr.FieldError{Field: FieldMessage, Message: "is required"})
	}

	// Personalization context. A profile lookup failure should not kill the
	// turn; the policy just works with an empty profile.
	profile, err := service.profiles.ProfileFor(context, userID)
	if err != nil {
		profile = persona.Profile{}
	}

	reply, err := service.policy.Reply(context, p, text, profile)
	if err != nil {
		return nil, fmt.Errorf("chat_service_reply_failed: %w", err)
	}
	if reply == "" {
		return nil, apperr.Internal(fmt.Errorf("chat_service_empty_reply: persona=%s", p))
	}

	now := time.Now()
	userMessage := Message{Sender: SenderUser, Content: text, Timestamp: now}
	aiMessage := Message{Sender: SenderAI, Content: reply, Timestamp: time.Now()}

	if err := service.messageRepo.AppendExchange(context, userID, p, userMessage, aiMessage); err != nil {
		return nil, err
	}

	service.logger.Info("chat_turn_completed",
		slog.String("user_id", userID),
		slog.String("persona", string(p)),
	)

	return &aiMessage, nil
}
