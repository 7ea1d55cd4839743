package openai

import (
	"fmt"

	"synthdata-backend/internal/llm"
)

var conversationRoles = map[string][2]string{
	"customer_support":       {"customer", "agent"},
	"chatbot_training":       {"user", "bot"},
	"spam_detection":         {"sender", "recipient"},
	"business_communication": {"sender", "recipient"},
}

func conversationPrompt(input llm.ConversationInput) []chatMessage {
	roles, ok := conversationRoles[input.Domain]
	if !ok {
		roles = [2]string{"user", "assistant"}
	}
	topic := input.Topic
	if topic == "" {
		topic = "a typical scenario for this domain"
	}
	system := "You generate realistic synthetic training conversations. " +
		"Respond with a JSON object of the form " +
		`{"messages": [{"role": "...", "message": "..."}]}` +
		" and nothing else."
	user := fmt.Sprintf(
		"Generate a %s conversation about %s with exactly %d messages. "+
			"Alternate between the roles %q and %q, starting with %q.",
		input.Domain, topic, input.NumTurns, roles[0], roles[1], roles[0],
	)
	return []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

func emailPrompt(input llm.EmailInput) []chatMessage {
	topic := input.Topic
	if topic == "" {
		topic = "a typical scenario for this domain"
	}
	emailType := input.EmailType
	if emailType == "" {
		emailType = "business"
	}
	system := "You generate realistic synthetic emails for dataset construction. " +
		"Respond with a JSON object of the form " +
		`{"subject": "...", "from": "...", "to": "...", "body": "..."}` +
		" and nothing else."
	user := fmt.Sprintf(
		"Generate one %s email in the %s domain about %s. "+
			"Use plausible fictional addresses; never real people.",
		emailType, input.Domain, topic,
	)
	return []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}
