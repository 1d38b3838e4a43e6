// Package assistant wraps the remote assistant used for claim verification
// and summary synthesis. Conversations are long-lived chat sessions carrying
// a system instruction; messages within one conversation share history.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
)

var (
	// ErrNotConfigured indicates no assistant credentials were supplied.
	ErrNotConfigured = errors.New("assistant not configured")
	// ErrEmptyReply indicates the assistant answered with no usable text.
	ErrEmptyReply = errors.New("assistant returned an empty reply")
)

const (
	defaultModel = "gemini-2.0-flash"
	maxRetries   = 3
	baseBackoff  = 2 * time.Second
)

// Conversation is one thread of messages with the assistant.
type Conversation interface {
	// Send posts a message and returns the assistant's text reply.
	Send(ctx context.Context, message string) (string, error)
}

// Service creates conversations. The zero client is unconfigured and every
// conversation attempt fails with ErrNotConfigured.
type Service interface {
	Configured() bool
	StartConversation(ctx context.Context, name, systemPrompt string) (Conversation, error)
}

// Client is the genai-backed Service implementation.
type Client struct {
	client *genai.Client
	model  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// ClientWithModel overrides the assistant model.
func ClientWithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// NewClient wraps an existing genai client. A nil genai client produces an
// unconfigured Service, which the cascade skips.
func NewClient(client *genai.Client, opts ...ClientOption) *Client {
	c := &Client{client: client, model: defaultModel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Configured() bool {
	return c != nil && c.client != nil
}

// StartConversation opens a chat session with the given system prompt. The
// name is used only for logging on the caller's side.
func (c *Client) StartConversation(ctx context.Context, name, systemPrompt string) (Conversation, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	model := c.client.GenerativeModel(c.model)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}
	return &conversation{session: model.StartChat()}, nil
}

type conversation struct {
	session *genai.ChatSession
}

// Send posts one message, retrying transient failures with exponential
// backoff before giving up.
func (conv *conversation) Send(ctx context.Context, message string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := baseBackoff * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		resp, err := conv.session.SendMessage(ctx, genai.Text(message))
		if err != nil {
			lastErr = err
			continue
		}
		text := responseText(resp)
		if text == "" {
			lastErr = ErrEmptyReply
			continue
		}
		return text, nil
	}
	return "", fmt.Errorf("assistant message failed after %d attempts: %w", maxRetries, lastErr)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
