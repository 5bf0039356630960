package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout     = 120 * time.Second
	defaultMaxTokens   = 4096
	defaultTemperature = 0.7
	maxBackoff         = 10 * time.Second
)

// Options configures an OpenRouterProvider.
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	// MaxTokens returns the completion cap for a model. Nil means 4096.
	MaxTokens func(model string) int
	// Referer and Title are sent as HTTP-Referer and X-Title.
	Referer string
	Title   string
	// RateLimit is the number of attempts allowed per second; 0 disables pacing.
	RateLimit float64
}

// OpenRouterProvider calls an OpenAI-compatible /chat/completions endpoint
// with bounded retries.
type OpenRouterProvider struct {
	client     *http.Client
	endpoint   string
	apiKey     string
	referer    string
	title      string
	maxRetries int
	maxTokens  func(string) int
	limiter    *rate.Limiter

	sleep func(ctx context.Context, d time.Duration) error
}

func NewOpenRouterProvider(opts Options) *OpenRouterProvider {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	p := &OpenRouterProvider{
		client:     &http.Client{Timeout: opts.Timeout},
		endpoint:   strings.TrimRight(opts.BaseURL, "/") + "/chat/completions",
		apiKey:     opts.APIKey,
		referer:    opts.Referer,
		title:      opts.Title,
		maxRetries: opts.MaxRetries,
		maxTokens:  opts.MaxTokens,
		sleep:      sleepContext,
	}
	if opts.RateLimit > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return p
}

// completionResponse is the subset of the upstream payload we read. OpenRouter
// reports failures either with a non-2xx status or with an error object in a
// 200 body.
type completionResponse struct {
	Model   string                        `json:"model"`
	Choices []openai.ChatCompletionChoice `json:"choices"`
	Usage   *openai.Usage                 `json:"usage"`
	Error   *apiError                     `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Code    any    `json:"code"`
}

// Complete sends req, retrying transient failures up to MaxRetries attempts in
// total. The delay after attempt n is min(2n, 10) seconds.
func (p *OpenRouterProvider) Complete(ctx context.Context, req *CompletionRequest) (*Completion, error) {
	body, err := p.encodeRequest(req)
	if err != nil {
		return nil, err
	}

	var lastErr *UpstreamError
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return nil, &UpstreamError{Kind: KindTransient, Message: "rate limiter wait aborted", Err: err}
			}
		}

		completion, upErr := p.attempt(ctx, req.Model, body)
		if upErr == nil {
			return completion, nil
		}

		slog.Warn("Completion attempt failed",
			"attempt", attempt,
			"max_attempts", p.maxRetries,
			"model", req.Model,
			"status", upErr.StatusCode,
			"kind", upErr.Kind,
			"error", upErr.Message,
		)
		if !upErr.Retryable() {
			return nil, upErr
		}
		lastErr = upErr

		if attempt < p.maxRetries {
			if err := p.sleep(ctx, backoffDelay(attempt)); err != nil {
				return nil, lastErr
			}
		}
	}

	if lastErr == nil {
		return nil, &UpstreamError{
			Kind:    KindTransient,
			Message: fmt.Sprintf("failed to connect to upstream after %d attempts", p.maxRetries),
		}
	}
	return nil, lastErr
}

func (p *OpenRouterProvider) encodeRequest(req *CompletionRequest) ([]byte, error) {
	maxTokens := defaultMaxTokens
	if p.maxTokens != nil {
		if n := p.maxTokens(req.Model); n > 0 {
			maxTokens = n
		}
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: defaultTemperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal completion request: %w", err)
	}
	return body, nil
}

func (p *OpenRouterProvider) attempt(ctx context.Context, model string, body []byte) (*Completion, *UpstreamError) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &UpstreamError{Kind: KindClient, Message: err.Error(), Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if p.referer != "" {
		httpReq.Header.Set("HTTP-Referer", p.referer)
	}
	if p.title != "" {
		httpReq.Header.Set("X-Title", p.title)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Kind: KindTransient, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Kind: KindTransient, StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}

	var payload completionResponse
	decodeErr := json.Unmarshal(raw, &payload)

	switch {
	case resp.StatusCode >= 500:
		return nil, &UpstreamError{Kind: KindTransient, StatusCode: resp.StatusCode, Message: errorMessage(payload, resp.StatusCode)}
	case resp.StatusCode >= 400:
		return nil, &UpstreamError{Kind: KindClient, StatusCode: resp.StatusCode, Message: errorMessage(payload, resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &UpstreamError{Kind: KindLogical, StatusCode: resp.StatusCode, Message: errorMessage(payload, resp.StatusCode)}
	case decodeErr != nil:
		return nil, &UpstreamError{Kind: KindLogical, StatusCode: resp.StatusCode, Message: "invalid JSON in completion response", Err: decodeErr}
	case payload.Error != nil:
		return nil, &UpstreamError{Kind: KindLogical, StatusCode: resp.StatusCode, Message: errorMessage(payload, resp.StatusCode)}
	}

	completion := &Completion{Model: payload.Model}
	if completion.Model == "" {
		completion.Model = model
	}
	if len(payload.Choices) > 0 {
		completion.Content = payload.Choices[0].Message.Content
	}
	if payload.Usage != nil {
		tokens := payload.Usage.TotalTokens
		completion.TokensUsed = &tokens
	}
	return completion, nil
}

func errorMessage(payload completionResponse, status int) string {
	if payload.Error != nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return fmt.Sprintf("upstream returned status %d", status)
}

func backoffDelay(attempt int) time.Duration {
	return min(time.Duration(attempt)*2*time.Second, maxBackoff)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ Provider = (*OpenRouterProvider)(nil)

// AsUpstreamError extracts the UpstreamError carried by err, if any.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	ok := errors.As(err, &upErr)
	return upErr, ok
}
