package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/pkg/resilience"
)

// Summarizer turns transcript text into raw model output. Parsing the output
// into sections is a separate stage and never happens here.
type Summarizer interface {
	Summarize(ctx context.Context, transcriptText, promptTemplate string) (string, error)
}

// ChatMessage is one turn of an OpenAI-compatible chat request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// GroqConfig configures the live summarizer.
type GroqConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

// GroqSummarizer calls an OpenAI-compatible chat-completions endpoint.
type GroqSummarizer struct {
	cfg      GroqConfig
	client   *http.Client
	executor *resilience.Executor
	logger   *zap.Logger
}

func NewGroqSummarizer(cfg GroqConfig, executor *resilience.Executor, logger *zap.Logger) *GroqSummarizer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com"
	}
	if cfg.Model == "" {
		cfg.Model = "llama-3.3-70b-versatile"
	}
	return &GroqSummarizer{
		cfg:      cfg,
		executor: executor,
		logger:   logger,
		// Outer bound only; the per-call deadline arrives via ctx.
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (g *GroqSummarizer) Summarize(ctx context.Context, transcriptText, promptTemplate string) (string, error) {
	if strings.TrimSpace(transcriptText) == "" {
		return "", errors.ErrEmptyInput("transcript")
	}

	prompt := RenderPrompt(promptTemplate, transcriptText)
	if g.logger != nil {
		g.logger.Info("🤖 Requesting summary",
			zap.String("model", g.cfg.Model),
			zap.Int("transcript_length", len(transcriptText)))
	}

	var content string
	err := g.executor.Execute(ctx, "groq.chat", func(ctx context.Context) error {
		out, callErr := g.chat(ctx, prompt)
		if callErr != nil {
			return callErr
		}
		content = out
		return nil
	}, ClassifyProviderError)
	if err != nil {
		return "", WrapProviderError("groq", err)
	}

	if g.logger != nil {
		g.logger.Info("✅ Summary received", zap.Int("response_length", len(content)))
	}
	return content, nil
}

func (g *GroqSummarizer) chat(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model: g.cfg.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	endpoint := g.cfg.BaseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", newHTTPStatusError("groq", "chat", resp)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}
