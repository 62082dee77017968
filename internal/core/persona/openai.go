// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persona

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// modelCallTimeout caps a single completion call so a slow provider degrades
// to the fallback instead of holding the chat turn until the request deadline.
const modelCallTimeout = 10 * time.Second

// ModelPolicy is a [ResponsePolicy] backed by an OpenAI chat model.
//
// It personalizes the system prompt with the persona's personality tag and
// the user's configured names and goals. When the model call fails or returns
// an empty completion, it degrades to the fallback policy so a chat turn is
// never left without a reply.
type ModelPolicy struct {
	client   *openai.Client
	model    string
	fallback ResponsePolicy
}

// NewModelPolicy constructs a model-backed reply policy.
func NewModelPolicy(apiKey, model string, fallback ResponsePolicy) *ModelPolicy {
	return &ModelPolicy{
		client:   openai.NewClient(apiKey),
		model:    model,
		fallback: fallback,
	}
}

// Reply asks the chat model for a short in-character response.
func (policy *ModelPolicy) Reply(ctx context.Context, p Persona, message string, profile Profile) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()

	response, err := policy.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:     policy.model,
		MaxTokens: 160,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(p, profile),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: message,
			},
		},
	})

	if err != nil || len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return policy.fallback.Reply(ctx, p, message, profile)
	}

	return response.Choices[0].Message.Content, nil
}

// systemPrompt frames the model as the user's configured family member.
func systemPrompt(p Persona, profile Profile) string {
	prompt := fmt.Sprintf(
		"You are %s, the user's %s in a supportive wellness companion app. "+
			"Your personality is %s. Reply warmly in one or two sentences.",
		profile.DisplayName(p), string(p), string(TagOf(p)),
	)

	if profile.UserName != "" {
		prompt += fmt.Sprintf(" The user's name is %s.", profile.UserName)
	}
	if profile.Goals != "" {
		prompt += fmt.Sprintf(" Their goals: %s.", profile.Goals)
	}
	if profile.Interests != "" {
		prompt += fmt.Sprintf(" Their interests: %s.", profile.Interests)
	}

	return prompt
}
