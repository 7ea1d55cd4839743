// Package llm abstracts the generative text collaborator used for chat
// conversation and email synthesis.
package llm

import (
	"context"
	"errors"
)

// Message is one turn in a generated conversation.
type Message struct {
	Role      string `json:"role"`
	Message   string `json:"message"`
	Turn      int    `json:"turn"`
	Timestamp string `json:"timestamp"`
}

// Conversation is a generated multi-turn exchange.
type Conversation struct {
	ConversationID string    `json:"conversation_id"`
	Domain         string    `json:"domain"`
	Topic          string    `json:"topic"`
	NumTurns       int       `json:"num_turns"`
	Messages       []Message `json:"messages"`
}

// Email is a single generated email.
type Email struct {
	EmailID   string `json:"email_id"`
	Domain    string `json:"domain"`
	Topic     string `json:"topic"`
	EmailType string `json:"email_type"`
	Subject   string `json:"subject"`
	From      string `json:"from"`
	To        string `json:"to"`
	Body      string `json:"body"`
}

// ConversationInput carries the parameters for one conversation.
type ConversationInput struct {
	Domain   string
	Topic    string
	NumTurns int
}

// EmailInput carries the parameters for one email.
type EmailInput struct {
	Domain    string
	Topic     string
	EmailType string
}

// Client abstracts LLM providers for text synthesis.
type Client interface {
	GenerateConversation(ctx context.Context, input ConversationInput) (Conversation, error)
	GenerateEmail(ctx context.Context, input EmailInput) (Email, error)
}

// ErrBadResponse indicates the provider returned output that could not be
// parsed into the expected shape.
var ErrBadResponse = errors.New("malformed provider response")
