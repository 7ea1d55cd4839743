package llm

import (
	"context"
	"fmt"
	"time"
)

// TemplateClient produces deterministic output from canned exchanges. It is
// the provider of last resort when no API key is configured, and the default
// collaborator in tests.
type TemplateClient struct{}

type templateTurn struct {
	role    string
	message string
}

var conversationTemplates = map[string][]templateTurn{
	"customer_support": {
		{"customer", "Hi, I'm having trouble with my order #12345"},
		{"agent", "Hello! I'd be happy to help you with your order. Can you provide more details about the issue?"},
		{"customer", "I ordered a laptop but received a different model than what I ordered"},
		{"agent", "I apologize for the inconvenience. Let me check your order details and help you resolve this."},
		{"customer", "Thank you, I appreciate your help"},
		{"agent", "You're welcome! I'll process a replacement order for you right away."},
	},
	"chatbot_training": {
		{"user", "What's the weather like today?"},
		{"bot", "I can help you check the weather. What city are you in?"},
		{"user", "I'm in New York"},
		{"bot", "The weather in New York is currently 72°F with partly cloudy skies."},
		{"user", "Will it rain later?"},
		{"bot", "There's a 30% chance of rain this afternoon in New York."},
	},
	"spam_detection": {
		{"sender", "URGENT: You've won $1,000,000! Click here to claim now!"},
		{"recipient", "This looks like spam"},
		{"sender", "Limited time offer! Don't miss out on this amazing opportunity!"},
		{"recipient", "I'm not interested, please stop contacting me"},
		{"sender", "Last chance! Claim your prize before it expires!"},
		{"recipient", "This is definitely spam, I'm blocking this sender"},
	},
	"business_communication": {
		{"sender", "Hi John, I wanted to discuss the Q4 project timeline"},
		{"recipient", "Hi Sarah, sure! What specific aspects would you like to review?"},
		{"sender", "I'm concerned about meeting the December deadline"},
		{"recipient", "I understand your concern. Let's schedule a meeting to review the current progress"},
		{"sender", "That would be great. How about tomorrow at 2 PM?"},
		{"recipient", "Perfect! I'll send you a calendar invite for tomorrow at 2 PM"},
	},
}

type emailTemplate struct {
	subject string
	from    string
	to      string
	body    string
}

var emailTemplates = map[string]emailTemplate{
	"spam_detection": {
		subject: "URGENT: You've won $1,000,000!",
		from:    "winner@lottery.com",
		to:      "user@example.com",
		body:    "Congratulations! You have been selected to receive $1,000,000. Click here to claim your prize now! Limited time offer!",
	},
	"business_communication": {
		subject: "Q4 Project Update",
		from:    "sarah.manager@company.com",
		to:      "john.employee@company.com",
		body:    "Hi John,\n\nI wanted to discuss the Q4 project timeline and address some concerns about meeting our December deadline.\n\nBest regards,\nSarah",
	},
}

// GenerateConversation expands the domain template into a conversation,
// cycling through the canned turns when more are requested than the template
// holds.
func (TemplateClient) GenerateConversation(ctx context.Context, input ConversationInput) (Conversation, error) {
	if err := ctx.Err(); err != nil {
		return Conversation{}, err
	}

	turns, ok := conversationTemplates[input.Domain]
	if !ok {
		turns = conversationTemplates["customer_support"]
	}

	topic := input.Topic
	if topic == "" {
		topic = "general"
	}

	now := time.Now().UTC()
	conv := Conversation{
		ConversationID: fmt.Sprintf("conv_%s_%s", input.Domain, now.Format("20060102_150405")),
		Domain:         input.Domain,
		Topic:          topic,
		NumTurns:       input.NumTurns,
		Messages:       make([]Message, 0, input.NumTurns),
	}
	for i := 0; i < input.NumTurns; i++ {
		turn := turns[i%len(turns)]
		conv.Messages = append(conv.Messages, Message{
			Role:      turn.role,
			Message:   turn.message,
			Turn:      i + 1,
			Timestamp: now.Add(-time.Duration(input.NumTurns-i) * time.Minute).Format(time.RFC3339),
		})
	}
	return conv, nil
}

// GenerateEmail returns the canned email for the domain.
func (TemplateClient) GenerateEmail(ctx context.Context, input EmailInput) (Email, error) {
	if err := ctx.Err(); err != nil {
		return Email{}, err
	}

	tpl, ok := emailTemplates[input.Domain]
	if !ok {
		tpl = emailTemplates["business_communication"]
	}

	topic := input.Topic
	if topic == "" {
		topic = "general"
	}
	emailType := input.EmailType
	if emailType == "" {
		emailType = "business"
	}

	now := time.Now().UTC()
	return Email{
		EmailID:   fmt.Sprintf("email_%s_%s", input.Domain, now.Format("20060102_150405")),
		Domain:    input.Domain,
		Topic:     topic,
		EmailType: emailType,
		Subject:   tpl.subject,
		From:      tpl.from,
		To:        tpl.to,
		Body:      tpl.body,
	}, nil
}

var _ Client = TemplateClient{}
