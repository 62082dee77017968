// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and account lifecycle layer.

It defines the core domain entity (User) and the logic for registration,
credential verification, persona setup, and password recovery.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of the Hearth companion app.
//
// Beyond identity, the record carries the user's one-time persona setup: the
// names they give their virtual family members and their check-in preferences.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Explicitly omitted from JSON for security.

	// IsSetupComplete starts false and flips permanently true once the
	// one-time persona setup succeeds.
	IsSetupComplete bool `json:"is_setup_complete"`

	// Persona configuration. Display names for the three fixed companions.
	MotherName  string `json:"mother_name,omitempty"`
	FatherName  string `json:"father_name,omitempty"`
	SiblingName string `json:"sibling_name,omitempty"`
	SiblingType string `json:"sibling_type,omitempty"` // "sister" or "brother"

	// Check-in preferences.
	Goals         string `json:"goals,omitempty"`
	Interests     string `json:"interests,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"` // morning, afternoon, evening
	Timezone      string `json:"timezone,omitempty"`

	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Closed Enumerations

// Sibling types a user may configure.
const (
	SiblingSister  = "sister"
	SiblingBrother = "brother"
)

// Preferred daily check-in windows.
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
)

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPassword      = "password"
	FieldToken         = "token"
	FieldSiblingType   = "sibling_type"
	FieldPreferredTime = "preferred_time"
	FieldMessage       = "message"
	FieldUser          = "user"
)
