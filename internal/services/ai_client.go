package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/astralisgame/astralis-backend/internal/platform/envutil"
	"github.com/astralisgame/astralis-backend/internal/platform/logger"
)

// AIClient is the one blocking external dependency: an OpenAI-compatible
// chat-completion endpoint. Single attempt, no retries; callers degrade to
// static content on failure.
type AIClient interface {
	Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (string, error)
}

type AIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AIOptions struct {
	MaxTokens   int
	Temperature float32
}

type aiClient struct {
	httpClient *http.Client
	log        *logger.Logger
	apiKey     string
	baseURL    string
	model      string
}

func NewAIClient(log *logger.Logger) AIClient {
	serviceLog := log.With("service", "AIClient")
	apiKey := envutil.GetEnv("API_KEY", "", serviceLog)
	if apiKey == "" {
		serviceLog.Warn("API_KEY not set; chat completions will fall back to static content")
	}
	baseURL := envutil.GetEnv("AI_BASE_URL", "https://api.groq.com/openai/v1", serviceLog)
	model := envutil.GetEnv("AI_CHAT_MODEL", "llama-3.1-8b-instant", serviceLog)
	timeoutSeconds := envutil.GetEnvAsInt("AI_TIMEOUT_SECONDS", 60, serviceLog)
	return &aiClient{
		httpClient: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
		log:        serviceLog,
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
	}
}

type chatCompletionRequest struct {
	Model       string      `json:"model"`
	Messages    []AIMessage `json:"messages"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
	Temperature float32     `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *aiClient) Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("ai client: no api key configured")
	}

	reqBody := chatCompletionRequest{Model: c.model, Messages: messages}
	if opts != nil {
		reqBody.MaxTokens = opts.MaxTokens
		reqBody.Temperature = opts.Temperature
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("Chat completion returned non-200", "status", resp.StatusCode)
		return "", fmt.Errorf("chat completion status %d", resp.StatusCode)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse chat response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}
	return parsed.Choices[0].Message.Content, nil
}
