package llm

import (
	"context"
	"testing"
)

func TestTemplateConversationHonorsNumTurns(t *testing.T) {
	client := TemplateClient{}
	ctx := context.Background()

	for _, turns := range []int{1, 5, 6, 20} {
		conv, err := client.GenerateConversation(ctx, ConversationInput{
			Domain:   "customer_support",
			Topic:    "orders",
			NumTurns: turns,
		})
		if err != nil {
			t.Fatalf("GenerateConversation(%d): %v", turns, err)
		}
		if len(conv.Messages) != turns {
			t.Fatalf("expected %d messages, got %d", turns, len(conv.Messages))
		}
		for i, msg := range conv.Messages {
			if msg.Turn != i+1 {
				t.Fatalf("message %d: expected turn %d, got %d", i, i+1, msg.Turn)
			}
			if msg.Role == "" || msg.Message == "" {
				t.Fatalf("message %d: missing role or text", i)
			}
		}
	}
}

func TestTemplateConversationDefaultsTopic(t *testing.T) {
	client := TemplateClient{}
	conv, err := client.GenerateConversation(context.Background(), ConversationInput{
		Domain:   "chatbot_training",
		NumTurns: 2,
	})
	if err != nil {
		t.Fatalf("GenerateConversation: %v", err)
	}
	if conv.Topic != "general" {
		t.Fatalf("expected topic general, got %s", conv.Topic)
	}
	if conv.Domain != "chatbot_training" {
		t.Fatalf("expected domain chatbot_training, got %s", conv.Domain)
	}
}

func TestTemplateEmailShape(t *testing.T) {
	client := TemplateClient{}
	email, err := client.GenerateEmail(context.Background(), EmailInput{
		Domain:    "spam_detection",
		Topic:     "lottery",
		EmailType: "spam",
	})
	if err != nil {
		t.Fatalf("GenerateEmail: %v", err)
	}
	if email.Subject == "" || email.From == "" || email.To == "" || email.Body == "" {
		t.Fatalf("incomplete email: %+v", email)
	}
	if email.EmailType != "spam" {
		t.Fatalf("expected email_type spam, got %s", email.EmailType)
	}
}

func TestTemplateEmailDefaultsType(t *testing.T) {
	client := TemplateClient{}
	email, err := client.GenerateEmail(context.Background(), EmailInput{Domain: "business_communication"})
	if err != nil {
		t.Fatalf("GenerateEmail: %v", err)
	}
	if email.EmailType != "business" {
		t.Fatalf("expected default email_type business, got %s", email.EmailType)
	}
}
