// Package anthropic calls Claude models through the Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/drugverify-backend/internal/config"
	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// ErrEmptyResponse is returned when the model answered without any text.
var ErrEmptyResponse = errors.New("anthropic: empty response")

// Client is a single Claude model.
type Client struct {
	api       sdk.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// New creates a Client. SDK retries are disabled: the caller falls back to
// the next model instead of retrying this one.
func New(cfg config.LLMConfig, logger *slog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.AnthropicBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.AnthropicBaseURL))
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
		model:     cfg.AnthropicModel,
		maxTokens: maxTokens,
		log:       logger.With("adapter", "anthropic"),
	}
}

// Name returns the model identifier used as verdict provenance.
func (c *Client) Name() string { return c.model }

// Complete sends req and returns the concatenated text blocks of the reply.
func (c *Client) Complete(ctx context.Context, req domain.ModelRequest) (string, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  toMessages(req.Messages),
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			c.log.WarnContext(ctx, "anthropic api error", slog.Int("status", apiErr.StatusCode))
		}
		return "", fmt.Errorf("anthropic.Complete: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}

	c.log.DebugContext(ctx, "anthropic response",
		slog.String("model", c.model),
		slog.Int64("input_tokens", msg.Usage.InputTokens),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	return text, nil
}

func toMessages(in []domain.ChatMessage) []sdk.MessageParam {
	out := make([]sdk.MessageParam, 0, len(in))
	for _, m := range in {
		block := sdk.NewTextBlock(m.Content)
		if m.Role == domain.ChatRoleModel {
			out = append(out, sdk.NewAssistantMessage(block))
		} else {
			out = append(out, sdk.NewUserMessage(block))
		}
	}
	return out
}
