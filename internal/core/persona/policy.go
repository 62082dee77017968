// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persona

import (
	"context"
	"math/rand/v2"
)

// # Reply Policy Contract

// ResponsePolicy produces a companion's reply to an incoming chat message.
//
// Implementations must be pure with respect to persistence (no side effects),
// must always return a non-empty string on success, and must complete
// synchronously within the request path. The incoming message and profile are
// available for personalization but an implementation may ignore them.
type ResponsePolicy interface {
	Reply(ctx context.Context, p Persona, message string, profile Profile) (string, error)
}

// # Canned Phrase Bank

// phraseBank holds the default replies, keyed by personality tag.
var phraseBank = map[Tag][]string{
	TagNurturing: {
		"I love you so much, sweetheart. Remember to take care of yourself today! 💕",
		"You're doing amazing, my dear. I'm so proud of you! 🌟",
		"Have you eaten something healthy today? Don't forget to drink water! 💧",
		"No matter what happens, you're strong and capable. I believe in you! 💪",
	},
	TagMotivational: {
		"You've got this, champ! Every challenge is an opportunity to grow stronger. 💪",
		"Success isn't about being perfect, it's about not giving up. Keep pushing forward! 🚀",
		"I'm proud of the person you're becoming. Stay focused on your goals! 🎯",
		"Remember, every expert was once a beginner. Keep learning and growing! 📚",
	},
	TagFriendly: {
		"Yo! How's life treating you? Got any cool stories to share? 😄",
		"You're awesome, and don't let anyone tell you otherwise! ✨",
		"Let's make today epic! What adventure are we going on? 🎉",
		"Hey, remember when we used to dream big? Let's make those dreams happen! 🌟",
	},
}

// PhraseBank is the shipped default [ResponsePolicy]: a uniform random pick
// from a small fixed phrase bank keyed by personality tag. It ignores the
// incoming message and profile entirely. A stand-in for a real generation
// backend behind the same contract.
type PhraseBank struct{}

// NewPhraseBank constructs the canned-reply policy.
func NewPhraseBank() *PhraseBank {
	return &PhraseBank{}
}

// Reply selects a random phrase for the persona's personality tag.
func (*PhraseBank) Reply(_ context.Context, p Persona, _ string, _ Profile) (string, error) {
	phrases := phraseBank[TagOf(p)]
	return phrases[rand.IntN(len(phrases))], nil
}
