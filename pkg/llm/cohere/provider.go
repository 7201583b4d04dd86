package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"doc-chat-be/pkg/llm"
)

// CohereProvider talks to the Cohere v2 chat API. Temperature defaults to 0
// so repeated questions over the same context produce stable answers.
type CohereProvider struct {
	APIKey    string
	ModelName string
	BaseURL   string
	Client    *http.Client
}

var _ llm.LLMProvider = &CohereProvider{}

func NewCohereProvider(apiKey, modelName string) *CohereProvider {
	if modelName == "" {
		modelName = "command-r"
	}
	return &CohereProvider{
		APIKey:    apiKey,
		ModelName: modelName,
		BaseURL:   "https://api.cohere.com/v2/chat",
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type cohereChatRequest struct {
	Model       string          `json:"model"`
	Messages    []cohereMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type cohereMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type cohereChatResponse struct {
	Message struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"message"`
}

func (c *CohereProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	cohereMessages := make([]cohereMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		cohereMessages[i] = cohereMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := c.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := cohereChatRequest{
		Model:       model,
		Messages:    cohereMessages,
		Temperature: options.Temperature,
	}
	if options.MaxTokens > 0 {
		reqPayload.MaxTokens = options.MaxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cohere request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cohere error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var cohereResp cohereChatResponse
	if err := json.Unmarshal(bodyBytes, &cohereResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	for _, part := range cohereResp.Message.Content {
		if part.Type == "text" {
			return part.Text, nil
		}
	}

	return "", fmt.Errorf("cohere response contained no text content")
}

func (c *CohereProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return c.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
