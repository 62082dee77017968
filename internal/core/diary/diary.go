// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package diary implements the append-only mood journal.

Entries are immutable once created; no update or delete surface exists.
Listing is reverse-chronological and bounded.
*/
package diary

import "time"

// ListLimit caps how many entries a listing returns, newest first.
const ListLimit = 20

// Moods a diary entry can be tagged with.
const (
	MoodHappy    = "happy"
	MoodSad      = "sad"
	MoodAngry    = "angry"
	MoodExcited  = "excited"
	MoodAnxious  = "anxious"
	MoodPeaceful = "peaceful"
)

// Moods returns the closed mood set.
func Moods() []string {
	return []string{MoodHappy, MoodSad, MoodAngry, MoodExcited, MoodAnxious, MoodPeaceful}
}

// Entry is one journal record, owned by exactly one user.
type Entry struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	Title   string    `json:"title,omitempty"`
	Content string    `json:"content"`
	Mood    string    `json:"mood"`
	Date    time.Time `json:"date"`
	Tags    []string  `json:"tags"`
}
