// Package ai adapts the chat completion API to the report generation ports.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/writing-compass/internal/adapter/ai/tokencount"
	"github.com/fairyhunter13/writing-compass/internal/adapter/observability"
	"github.com/fairyhunter13/writing-compass/internal/analysis"
	"github.com/fairyhunter13/writing-compass/internal/config"
	"github.com/fairyhunter13/writing-compass/internal/domain"
)

const (
	provider = "openai"

	opReport     = "report"
	opSuggestion = "paragraph_suggestion"

	// maxPromptTokens bounds system plus user prompt so long essays fail fast.
	maxPromptTokens = 12000
	temperature     = 0.2
)

// ChatCompleter is the subset of *openai.Client the adapter calls.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client generates evaluation reports and paragraph suggestions.
type Client struct {
	cfg     config.Config
	api     ChatCompleter
	rubric  analysis.Rubric
	counter *tokencount.Counter
	cleaner *ResponseCleaner
}

// New constructs a client against the configured OpenAI-compatible endpoint.
func New(cfg config.Config, rubric analysis.Rubric) *Client {
	oc := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.OpenAIBaseURL, "/")
	}
	oc.HTTPClient = &http.Client{
		Timeout:   cfg.LLMTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	return NewWithAPI(cfg, rubric, openai.NewClientWithConfig(oc))
}

// NewWithAPI constructs a client over an existing completer.
func NewWithAPI(cfg config.Config, rubric analysis.Rubric, api ChatCompleter) *Client {
	return &Client{
		cfg:     cfg,
		api:     api,
		rubric:  rubric,
		counter: tokencount.DefaultCounter,
		cleaner: NewResponseCleaner(),
	}
}

// Model returns the configured model id.
func (c *Client) Model() string { return c.cfg.LLMModel }

// GenerateReport asks the model for the free-form evaluation report of essay.
func (c *Client) GenerateReport(ctx domain.Context, essay domain.EssayMetadata) (string, error) {
	system, user := BuildReportPrompt(c.rubric, essay)
	out, err := c.chat(ctx, opReport, system, user, false)
	if err != nil {
		return "", fmt.Errorf("op=ai.GenerateReport: %w", err)
	}
	return c.cleaner.CleanReportText(out), nil
}

// SuggestParagraphs asks the model to split content into paragraphs and returns
// the cleaned JSON object. Output that is still not JSON after cleaning fails
// with ErrSchemaInvalid.
func (c *Client) SuggestParagraphs(ctx domain.Context, content string) (string, error) {
	system, user := BuildSuggestionPrompt(content)
	out, err := c.chat(ctx, opSuggestion, system, user, true)
	if err != nil {
		return "", fmt.Errorf("op=ai.SuggestParagraphs: %w", err)
	}
	cleaned, err := c.cleaner.CleanAndValidateJSON(out)
	if err != nil {
		return "", fmt.Errorf("op=ai.SuggestParagraphs: %w", err)
	}
	return cleaned, nil
}

func (c *Client) getBackoffConfig() *backoff.ExponentialBackOff {
	expo := backoff.NewExponentialBackOff()
	maxElapsedTime, initialInterval, maxInterval, multiplier := c.cfg.GetAIBackoffConfig()
	expo.MaxElapsedTime = maxElapsedTime
	expo.InitialInterval = initialInterval
	expo.MaxInterval = maxInterval
	expo.Multiplier = multiplier
	return expo
}

func (c *Client) checkBudget(system, user string) error {
	n, err := c.counter.CountChatTokens(system, user, c.cfg.LLMModel)
	if err != nil {
		slog.Warn("token count failed, using estimate", slog.String("model", c.cfg.LLMModel), slog.Any("error", err))
		n = tokencount.EstimateTokens(system, user)
	}
	if n > maxPromptTokens {
		return fmt.Errorf("%w: essay too long (%d prompt tokens, max %d)", domain.ErrInvalidArgument, n, maxPromptTokens)
	}
	return nil
}

func (c *Client) chat(ctx domain.Context, operation, system, user string, jsonMode bool) (string, error) {
	if c.cfg.OpenAIAPIKey == "" {
		slog.Error("OpenAI API key missing", slog.String("provider", provider))
		return "", fmt.Errorf("%w: OPENAI_API_KEY missing", domain.ErrInvalidArgument)
	}
	if err := c.checkBudget(system, user); err != nil {
		return "", err
	}
	lg := observability.LoggerFromContext(ctx)

	req := openai.ChatCompletionRequest{
		Model:       c.cfg.LLMModel,
		Temperature: temperature,
		MaxTokens:   c.cfg.LLMMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	var (
		content     string
		rateLimited bool
	)
	op := func() error {
		start := time.Now()
		resp, err := c.api.CreateChatCompletion(ctx, req)
		status := statusOf(err)
		observability.ObserveAIRequest(provider, operation, outcomeOf(err, status), time.Since(start))
		rateLimited = status == http.StatusTooManyRequests
		if err != nil {
			switch {
			case rateLimited:
				lg.Warn("ai provider rate limited", slog.String("provider", provider), slog.String("op", operation))
				return err
			case status >= 400 && status < 500:
				lg.Warn("ai provider 4xx", slog.String("provider", provider), slog.String("op", operation), slog.Int("status", status), slog.Any("error", err))
				return backoff.Permanent(err)
			case ctx.Err() != nil:
				return backoff.Permanent(ctx.Err())
			default:
				lg.Error("ai provider error", slog.String("provider", provider), slog.String("op", operation), slog.Int("status", status), slog.Any("error", err))
				return err
			}
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return backoff.Permanent(fmt.Errorf("%w: empty completion", domain.ErrSchemaInvalid))
		}
		content = resp.Choices[0].Message.Content
		lg.Debug("ai completion received",
			slog.String("provider", provider),
			slog.String("op", operation),
			slog.String("model", resp.Model),
			slog.Int("prompt_tokens", resp.Usage.PromptTokens),
			slog.Int("completion_tokens", resp.Usage.CompletionTokens))
		return nil
	}

	expo := c.getBackoffConfig()
	if err := backoff.Retry(op, backoff.WithContext(expo, ctx)); err != nil {
		return "", classify(err, rateLimited)
	}
	return content, nil
}

func classify(err error, rateLimited bool) error {
	switch {
	case errors.Is(err, domain.ErrSchemaInvalid):
		return err
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
	case rateLimited:
		return fmt.Errorf("%w: %v", domain.ErrUpstreamRateLimit, err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func outcomeOf(err error, status int) string {
	switch {
	case err == nil:
		return "ok"
	case status == http.StatusTooManyRequests:
		return "rate_limited"
	case status != 0:
		return "http_" + strconv.Itoa(status)
	default:
		return "error"
	}
}
