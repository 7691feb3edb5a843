// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package assistant

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cradlecart/internal/config"
	"github.com/tomtom215/cradlecart/internal/logging"
	"github.com/tomtom215/cradlecart/internal/metrics"
)

// ErrRateLimited is returned when the client-side limiter has no budget
// for the call.
var ErrRateLimited = errors.New("assistant rate limit exceeded")

const breakerName = "assistant-llm"

// LLMClient calls an OpenAI-compatible chat-completions endpoint. Calls are
// bounded client-side by a token-bucket limiter and guarded by a circuit
// breaker so a degraded upstream degrades chat to canned replies instead of
// stalling request handlers.
type LLMClient struct {
	httpClient *http.Client
	cfg        config.AssistantConfig
	breaker    *gobreaker.CircuitBreaker[string]
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewLLMClient creates a client from the assistant configuration.
func NewLLMClient(cfg config.AssistantConfig) *LLMClient {
	logger := logging.With().Str("component", "assistant-llm").Logger()

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // closed

	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Open after 3 consecutive failures; chat traffic is too
			// sparse for a ratio-based trip to be meaningful.
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	ratePerSec := cfg.RatePerSecond
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &LLMClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		breaker:    breaker,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), burst),
		logger:     logger,
	}
}

// chatMessage is one turn in the OpenAI-compatible request body.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ChatCompletion sends one system+user exchange and returns the model's
// reply text.
func (c *LLMClient) ChatCompletion(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if !c.limiter.Allow() {
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		return "", ErrRateLimited
	}

	reply, err := c.breaker.Execute(func() (string, error) {
		return c.doRequest(ctx, systemPrompt, userMessage)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			c.logger.Warn().Err(err).Msg("LLM request rejected by circuit breaker")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		return "", err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return reply, nil
}

func (c *LLMClient) doRequest(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse chat response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", errors.New("chat API returned no choices")
	}

	c.logger.Debug().
		Dur("duration", time.Since(start)).
		Int("response_bytes", len(respBody)).
		Msg("LLM completion received")

	return parsed.Choices[0].Message.Content, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
