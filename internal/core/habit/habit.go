// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package habit implements the daily wellness ledger.

The central correctness property is one entry per (user, calendar day). Day
bucketing is a pure function over a half-open local-time interval, and the
storage layer enforces uniqueness with an atomic upsert so concurrent writes
can never produce duplicate days.
*/
package habit

import "time"

// Moods a habit entry can carry.
const (
	MoodGreat    = "great"
	MoodGood     = "good"
	MoodOkay     = "okay"
	MoodBad      = "bad"
	MoodTerrible = "terrible"
)

// Moods returns the closed mood set.
func Moods() []string {
	return []string{MoodGreat, MoodGood, MoodOkay, MoodBad, MoodTerrible}
}

// Entry is one day's wellness log for one user.
type Entry struct {
	ID       string    `json:"id,omitempty"`
	UserID   string    `json:"user_id,omitempty"`
	Day      time.Time `json:"date"`
	Water    int       `json:"water"`
	Meals    int       `json:"meals"`
	Exercise bool      `json:"exercise"`
	Sleep    float64   `json:"sleep"`
	Mood     string    `json:"mood"`
	Notes    string    `json:"notes,omitempty"`
}

// DefaultEntry is the zero-valued read-through default returned when no
// entry exists for the requested day. It is never written to storage.
func DefaultEntry(day time.Time) *Entry {
	return &Entry{
		Day:      day,
		Water:    0,
		Meals:    0,
		Exercise: false,
		Sleep:    0,
		Mood:     MoodOkay,
	}
}

// UpsertInput holds the caller-supplied fields for a merge. Nil fields leave
// the stored value untouched, so partial updates compose across the day.
type UpsertInput struct {
	Water    *int
	Meals    *int
	Exercise *bool
	Sleep    *float64
	Mood     *string
	Notes    *string
}
