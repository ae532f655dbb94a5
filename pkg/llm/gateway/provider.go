package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"college-portal-be/pkg/llm"
)

// GatewayProvider talks to a hosted OpenAI-compatible chat completions
// endpoint (the college's managed AI gateway).
type GatewayProvider struct {
	URL       string
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ llm.LLMProvider = &GatewayProvider{}

// ErrRateLimited and ErrCreditsExhausted surface the gateway's throttling so
// callers can show a friendly retry message instead of a generic failure.
var (
	ErrRateLimited      = fmt.Errorf("ai gateway: rate limit exceeded")
	ErrCreditsExhausted = fmt.Errorf("ai gateway: credits exhausted")
)

func NewGatewayProvider(url, apiKey, modelName string) *GatewayProvider {
	return &GatewayProvider{
		URL:       url,
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type gatewayMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type gatewayChatRequest struct {
	Model       string           `json:"model"`
	Messages    []gatewayMessage `json:"messages"`
	Stream      bool             `json:"stream"`
	Temperature float64          `json:"temperature,omitempty"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
}

type gatewayChatResponse struct {
	Choices []struct {
		Message gatewayMessage `json:"message"`
	} `json:"choices"`
}

func (g *GatewayProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]gatewayMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = gatewayMessage{Role: role, Content: msg.Content}
	}

	payload, err := json.Marshal(gatewayChatRequest{
		Model:       model,
		Messages:    messages,
		Stream:      false,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through
	case http.StatusTooManyRequests:
		return "", ErrRateLimited
	case http.StatusPaymentRequired:
		return "", ErrCreditsExhausted
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed gatewayChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("gateway returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
