// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persona_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hearth/internal/core/persona"
	"github.com/taibuivan/hearth/internal/platform/apperr"
)

/*
TestParse verifies the closed persona enumeration.
*/
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    persona.Persona
		isValid bool
	}{
		{"mother", "mother", persona.Mother, true},
		{"father", "father", persona.Father, true},
		{"sibling", "sibling", persona.Sibling, true},
		{"unknown", "grandma", "", false},
		{"empty", "", "", false},
		{"case_sensitive", "Mother", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := persona.Parse(tt.raw)

			if tt.isValid {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			} else {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, 400, ae.HTTPStatus)
			}
		})
	}
}

/*
TestTagOf verifies persona-to-personality mapping.
*/
func TestTagOf(t *testing.T) {
	assert.Equal(t, persona.TagNurturing, persona.TagOf(persona.Mother))
	assert.Equal(t, persona.TagMotivational, persona.TagOf(persona.Father))
	assert.Equal(t, persona.TagFriendly, persona.TagOf(persona.Sibling))
}

/*
TestProfile_DisplayName verifies configured-name resolution and fallback.
*/
func TestProfile_DisplayName(t *testing.T) {
	profile := persona.Profile{MotherName: "Sarah", SiblingName: "Max"}

	assert.Equal(t, "Sarah", profile.DisplayName(persona.Mother))
	assert.Equal(t, "Max", profile.DisplayName(persona.Sibling))

	// Unconfigured personas fall back to their identifier.
	assert.Equal(t, "father", profile.DisplayName(persona.Father))
}

/*
TestPhraseBank_Reply verifies that the canned policy always produces a
non-empty reply for every persona.
*/
func TestPhraseBank_Reply(t *testing.T) {
	policy := persona.NewPhraseBank()
	ctx := context.Background()

	for _, p := range persona.All() {
		// Sample repeatedly; the pick is random but must never be empty.
		for range 20 {
			reply, err := policy.Reply(ctx, p, "I'm stressed", persona.Profile{})
			require.NoError(t, err)
			assert.NotEmpty(t, reply)
		}
	}
}
