// Package rephrase turns a stored milestone into a fresh, time-aware
// message via an LLM.
package rephrase

import (
	"context"
	"log"
	"strings"

	"github.com/jo/awesomejar/internal/catalog"
	"github.com/jo/awesomejar/internal/daytime"
	"github.com/jo/awesomejar/internal/llm"
)

// fallbackPrefix decorates the raw milestone when the LLM is unavailable.
const fallbackPrefix = "☀️ "

type Engine struct {
	client llm.Client
}

func New(client llm.Client) *Engine {
	return &Engine{client: client}
}

// Contextualize rephrases a milestone for the given wall-clock time. The
// tone template follows the 4-way day bucket and the prompt embeds the
// localized time string.
//
// Rephrasing never fails upward: on any provider error or empty reply the
// original text comes back with a fixed emoji prefix.
func (e *Engine) Contextualize(ctx context.Context, item catalog.Item, hour, minute int) string {
	tone := daytime.ToneFor(hour)
	timeStr := daytime.FormatLocalTime(hour, minute)
	userPrompt := llm.UserPrompt(tone, timeStr, item.Text)

	reply, err := e.client.Chat(ctx, llm.SystemPrompt, []llm.Message{
		{Role: "user", Content: userPrompt},
	})
	if err != nil {
		log.Printf("rephrase: llm error, using fallback: %v", err)
		return fallbackPrefix + item.Text
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		log.Println("rephrase: empty reply, using fallback")
		return fallbackPrefix + item.Text
	}
	return reply
}
