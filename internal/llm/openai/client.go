// Package openai implements llm.Client against the OpenAI Chat Completions
// API with JSON-mode responses.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"synthdata-backend/internal/llm"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	ResponseFormat responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// GenerateConversation asks the model for a JSON conversation and fills in
// the identifying fields the prompt does not control.
func (c *Client) GenerateConversation(ctx context.Context, input llm.ConversationInput) (llm.Conversation, error) {
	raw, err := c.completeOnce(ctx, conversationPrompt(input))
	if err != nil {
		return llm.Conversation{}, err
	}

	var parsed struct {
		Messages []struct {
			Role    string `json:"role"`
			Message string `json:"message"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Messages) == 0 {
		return llm.Conversation{}, fmt.Errorf("%w: conversation", llm.ErrBadResponse)
	}

	topic := input.Topic
	if topic == "" {
		topic = "general"
	}
	now := time.Now().UTC()
	conv := llm.Conversation{
		ConversationID: fmt.Sprintf("conv_%s_%s", input.Domain, now.Format("20060102_150405")),
		Domain:         input.Domain,
		Topic:          topic,
		NumTurns:       input.NumTurns,
		Messages:       make([]llm.Message, 0, len(parsed.Messages)),
	}
	for i, msg := range parsed.Messages {
		if i >= input.NumTurns {
			break
		}
		conv.Messages = append(conv.Messages, llm.Message{
			Role:      msg.Role,
			Message:   msg.Message,
			Turn:      i + 1,
			Timestamp: now.Add(-time.Duration(input.NumTurns-i) * time.Minute).Format(time.RFC3339),
		})
	}
	return conv, nil
}

// GenerateEmail asks the model for a JSON email.
func (c *Client) GenerateEmail(ctx context.Context, input llm.EmailInput) (llm.Email, error) {
	raw, err := c.completeOnce(ctx, emailPrompt(input))
	if err != nil {
		return llm.Email{}, err
	}

	var parsed struct {
		Subject string `json:"subject"`
		From    string `json:"from"`
		To      string `json:"to"`
		Body    string `json:"body"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Subject == "" || parsed.Body == "" {
		return llm.Email{}, fmt.Errorf("%w: email", llm.ErrBadResponse)
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
	return llm.Email{
		EmailID:   fmt.Sprintf("email_%s_%s", input.Domain, now.Format("20060102_150405")),
		Domain:    input.Domain,
		Topic:     topic,
		EmailType: emailType,
		Subject:   parsed.Subject,
		From:      parsed.From,
		To:        parsed.To,
		Body:      parsed.Body,
	}, nil
}

func (c *Client) completeOnce(ctx context.Context, messages []chatMessage) (json.RawMessage, error) {
	temp := float32(0.8)
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: &temp,
		ResponseFormat: responseFormat{
			Type: "json_object",
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("openai response empty content")
	}
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("%w: invalid JSON from OpenAI", llm.ErrBadResponse)
	}
	return json.RawMessage(content), nil
}

var _ llm.Client = (*Client)(nil)
