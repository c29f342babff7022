// Package openai calls chat-completion models through the OpenAI API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/heartmarshall/drugverify-backend/internal/config"
	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// ErrEmptyResponse is returned when no choice carried any content.
var ErrEmptyResponse = errors.New("openai: empty response")

// Client is a single chat-completion model.
type Client struct {
	api       sdk.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// New creates a Client with SDK retries disabled.
func New(cfg config.LLMConfig, logger *slog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	return &Client{
		api:       sdk.NewClient(opts...),
		model:     cfg.OpenAIModel,
		maxTokens: maxTokens,
		log:       logger.With("adapter", "openai"),
	}
}

// Name returns the model identifier used as verdict provenance.
func (c *Client) Name() string { return c.model }

// Complete sends req and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, req domain.ModelRequest) (string, error) {
	messages := make([]sdk.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, sdk.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		if m.Role == domain.ChatRoleModel {
			messages = append(messages, sdk.AssistantMessage(m.Content))
		} else {
			messages = append(messages, sdk.UserMessage(m.Content))
		}
	}

	resp, err := c.api.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model:               sdk.ChatModel(c.model),
		Messages:            messages,
		MaxCompletionTokens: sdk.Int(c.maxTokens),
	})
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			c.log.WarnContext(ctx, "openai api error", slog.Int("status", apiErr.StatusCode))
		}
		return "", fmt.Errorf("openai.Complete: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}

	c.log.DebugContext(ctx, "openai response",
		slog.String("model", c.model),
		slog.Int64("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)

	return text, nil
}
