// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
This file provides the PostgreSQL implementation of the conversation store.

Ordering and atomicity both hang off the session row:

  - The session upsert's ON CONFLICT DO UPDATE takes a row lock, so concurrent
    turns for the same (user, persona) serialize at the database. Each turn's
    user/ai pair therefore lands adjacent, with sequence numbers the single
    source of ordering truth.
  - Both message inserts run inside the same transaction as the session bump;
    a reader never observes a half-written turn.
*/
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hearth/internal/core/persona"
	"github.com/taibuivan/hearth/internal/platform/dberr"
	"github.com/taibuivan/hearth/pkg/uuidv7"
)

// PostgresMessageRepository implements [MessageRepository] using pgx.
type PostgresMessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository constructs a PostgreSQL backed conversation store.
func NewMessageRepository(pool *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{pool: pool}
}

/*
ListMessages returns the ordered log for one (user, persona) session.

Description: Orders by the per-session sequence number, never by timestamp.
No session means an empty slice, not an error.

Parameters:
  - context: context.Context
  - userID: string
  - p: persona.Persona

Returns:
  - []Message: Ordered conversation log
  - error: Execution errors
*/
func (repository *PostgresMessageRepository) ListMessages(context context.Context, userID string, p persona.Persona) ([]Message, error) {
	const query = `
		SELECT m.sender, m.content, m.createdat
		FROM core.chat_message m
		JOIN core.chat_session s ON s.id = m.sessionid
		WHERE s.userid = $1 AND s.persona = $2
		ORDER BY m.seq`

	rows, err := repository.pool.Query(context, query, userID, string(p))
	if err != nil {
		return nil, fmt.Errorf("postgres_chat_repo_list_failed: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var message Message
		if err := rows.Scan(&message.Sender, &message.Content, &message.Timestamp); err != nil {
			return nil, fmt.Errorf("postgres_chat_repo_scan_failed: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_chat_repo_rows_failed: %w", err)
	}

	return messages, nil
}

/*
AppendExchange atomically appends a user/ai message pair to the session.

Description: Upserts the session row first; the row lock taken by
ON CONFLICT DO UPDATE serializes concurrent turns for the same pair, so the
two sequence numbers claimed here are always adjacent.

Parameters:
  - context: context.Context
  - userID: string
  - p: persona.Persona
  - userMessage: Message
  - aiMessage: Message

Returns:
  - error: Transaction failures
*/
func (repository *PostgresMessageRepository) AppendExchange(context context.Context, userID string, p persona.Persona, userMessage, aiMessage Message) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_chat_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	sessionID, err := repository.upsertSession(context, transaction, userID, p)
	if err != nil {
		return err
	}

	// Claim the next two sequence slots. Safe without further locking because
	// the session row lock above serializes writers.
	var lastSeq int
	const seqQuery = "SELECT COALESCE(MAX(seq), 0) FROM core.chat_message WHERE sessionid = $1"
	if err := transaction.QueryRow(context, seqQuery, sessionID).Scan(&lastSeq); err != nil {
		return fmt.Errorf("postgres_chat_repo_seq_failed: %w", err)
	}

	const insertQuery = `
		INSERT INTO core.chat_message (id, sessionid, seq, sender, content, createdat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	batch := &pgx.Batch{}
	batch.Queue(insertQuery, uuidv7.New(), sessionID, lastSeq+1, userMessage.Sender, userMessage.Content, userMessage.Timestamp)
	batch.Queue(insertQuery, uuidv7.New(), sessionID, lastSeq+2, aiMessage.Sender, aiMessage.Content, aiMessage.Timestamp)

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return fmt.Errorf("postgres_chat_repo_append_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_chat_repo_commit_failed: %w", err)
	}

	return nil
}

// upsertSession lazily creates the session and stamps its activity, returning
// the session ID. The conflict path takes the row lock that serializes turns.
func (repository *PostgresMessageRepository) upsertSession(context context.Context, transaction pgx.Tx, userID string, p persona.Persona) (string, error) {
	const query = `
		INSERT INTO core.chat_session (id, userid, persona, lastactivity, createdat)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (userid, persona)
		DO UPDATE SET lastactivity = EXCLUDED.lastactivity
		RETURNING id`

	var sessionID string
	err := transaction.QueryRow(context, query, uuidv7.New(), userID, string(p), time.Now()).Scan(&sessionID)
	if err != nil {
		return "", dberr.Wrap(err, "Chat session")
	}

	return sessionID, nil
}
