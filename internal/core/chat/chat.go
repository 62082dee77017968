// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chat implements the per-persona conversation log.

Each user holds at most one session per persona. Messages are append-only and
strictly ordered by insertion; the timestamp is advisory, a per-session
sequence number is authoritative.
*/
package chat

import "time"

// Message senders.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message is a single chat turn half, from either the user or the companion.
type Message struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
