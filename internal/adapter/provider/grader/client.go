// Package grader calls an OpenAI-compatible chat-completions endpoint to
// score a learner's explanation of a term. The model is asked for strict
// JSON; anything it wraps around the JSON (markdown fences, prose) is
// stripped before decoding.
package grader

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/heartmarshall/feynman-backend/internal/config"
	"github.com/heartmarshall/feynman-backend/internal/domain"
)

// Client grades explanations via an LLM provider.
type Client struct {
	httpClient       *resty.Client
	model            string
	temperature      float64
	maxRetryAttempts uint
	log              *slog.Logger
}

// NewClient builds a grader client from config.
func NewClient(cfg config.GraderConfig, logger *slog.Logger) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}

	return &Client{
		httpClient:       client,
		model:            cfg.Model,
		temperature:      cfg.Temperature,
		maxRetryAttempts: uint(cfg.RetryAttempts),
		log:              logger.With("adapter", "grader"),
	}
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
}

type choice struct {
	Index        int           `json:"index"`
	Message      choiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type choiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// evaluationJSON is the shape the model is instructed to emit.
type evaluationJSON struct {
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback"`
	Highlights  []string `json:"highlights"`
	Suggestions []string `json:"suggestions"`
}

// isRetryableError reports whether a grading failure is worth another round
// trip: truncated JSON, network hiccups, 5xx and rate limiting.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "decode evaluation") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	if strings.Contains(errStr, "response error 5") || strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// Grade asks the model to score an explanation of term given to the
// audience role. Retries transient failures with backoff; a persistent
// failure wraps domain.ErrGradingUnavailable so callers can fall back.
func (c *Client) Grade(ctx context.Context, term, role, explanation string) (domain.GradeResult, error) {
	var result domain.GradeResult
	err := retry.Do(
		func() error {
			r, err := c.grade(ctx, term, role, explanation)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, cfg *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, cfg)
		}),
	)
	if err != nil {
		return domain.GradeResult{}, fmt.Errorf("%w: %w", domain.ErrGradingUnavailable, err)
	}

	return result, nil
}

func (c *Client) grade(ctx context.Context, term, role, explanation string) (domain.GradeResult, error) {
	requestBody := chatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(term, role, explanation)},
		},
	}

	response, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&chatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return domain.GradeResult{}, fmt.Errorf("post chat completion: %w", err)
	}
	if response.IsError() {
		return domain.GradeResult{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*chatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return domain.GradeResult{}, fmt.Errorf("empty choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return domain.GradeResult{}, fmt.Errorf("empty response content")
	}

	c.log.DebugContext(ctx, "grader response",
		slog.String("term", term),
		slog.String("model", responseBody.Model),
	)

	return parseEvaluation(content)
}

// parseEvaluation extracts the JSON object from the model output and maps
// it to a GradeResult. Scores outside 0..100 are clamped rather than
// rejected; the model occasionally overshoots.
func parseEvaluation(content string) (domain.GradeResult, error) {
	raw := extractJSON(content)
	if raw == "" {
		return domain.GradeResult{}, fmt.Errorf("no JSON object in model output")
	}

	var ev evaluationJSON
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return domain.GradeResult{}, fmt.Errorf("decode evaluation: %w", err)
	}

	score := ev.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return domain.GradeResult{
		Score:       score,
		Feedback:    ev.Feedback,
		Highlights:  ev.Highlights,
		Suggestions: ev.Suggestions,
		Raw:         json.RawMessage(raw),
	}, nil
}

// extractJSON pulls a JSON object out of model output: a ```json fence
// first, then the outermost brace pair.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if i := strings.Index(text, "```"); i != -1 {
		rest := text[i+3:]
		rest = strings.TrimPrefix(rest, "json")
		if j := strings.Index(rest, "```"); j != -1 {
			return strings.TrimSpace(rest[:j])
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return ""
}
