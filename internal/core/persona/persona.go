// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package persona defines the fixed registry of virtual family-member companions
and the pluggable policy that produces their chat replies.

The registry is a closed enumeration. Users personalize display names on their
own profile, but the set of personas and their personality tags never changes
at runtime.
*/
package persona

import (
	"github.com/taibuivan/hearth/internal/platform/apperr"
)

// Persona identifies one of the three fixed companions.
type Persona string

const (
	Mother  Persona = "mother"
	Father  Persona = "father"
	Sibling Persona = "sibling"
)

// Tag is the personality trait driving a persona's tone.
type Tag string

const (
	TagNurturing    Tag = "nurturing"
	TagMotivational Tag = "motivational"
	TagFriendly     Tag = "friendly"
)

// registry holds the static persona metadata. Read-only after init.
var registry = map[Persona]Tag{
	Mother:  TagNurturing,
	Father:  TagMotivational,
	Sibling: TagFriendly,
}

// Parse validates a raw route parameter against the closed persona set.
//
// Dispatch is by enumeration, never by open-ended string matching, so a
// future reply backend can rely on the set being exactly these three.
func Parse(raw string) (Persona, error) {
	p := Persona(raw)
	if _, ok := registry[p]; !ok {
		return "", apperr.ValidationError("Unknown persona")
	}
	return p, nil
}

// TagOf returns the personality tag for a known persona.
// It falls back to the friendly tag for safety, though callers are expected
// to pass values produced by [Parse].
func TagOf(p Persona) Tag {
	if tag, ok := registry[p]; ok {
		return tag
	}
	return TagFriendly
}

// All returns the complete persona set in a stable order.
func All() []Persona {
	return []Persona{Mother, Father, Sibling}
}

// # User Context

// Profile is the snapshot of user configuration handed to a reply policy.
// It lets a policy personalize tone without reaching back into storage.
type Profile struct {
	UserName    string
	MotherName  string
	FatherName  string
	SiblingName string
	SiblingType string
	Goals       string
	Interests   string
}

// DisplayName resolves the user-configured name for a persona, falling back
// to the persona identifier itself when setup has not named it.
func (profile Profile) DisplayName(p Persona) string {
	var name string
	switch p {
	case Mother:
		name = profile.MotherName
	case Father:
		name = profile.FatherName
	case Sibling:
		name = profile.SiblingName
	}

	if name == "" {
		return string(p)
	}
	return name
}
