// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chat

import (
	"context"

	"github.com/taibuivan/hearth/internal/core/persona"
)

// MessageRepository defines the data access contract for conversation logs.
type MessageRepository interface {

	// ListMessages returns the full ordered log for the (user, persona)
	// session, or an empty slice when no session exists yet.
	ListMessages(context context.Context, userID string, p persona.Persona) ([]Message, error)

	// AppendExchange atomically appends one user message and its companion
	// reply, creating the session lazily and bumping lastactivity. A
	// concurrent reader must never observe the user half without the reply.
	AppendExchange(context context.Context, userID string, p persona.Persona, userMessage, aiMessage Message) error
}
