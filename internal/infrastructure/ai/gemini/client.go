// Package gemini wraps the Gemini generateContent call for the assistant.
// The service falls back to the rule-based responder whenever this client is
// unconfigured or returns an error.
package gemini

import (
	"context"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/turtacn/warrify/internal/config"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

// PlaceholderKey is the sample value shipped in example env files.
const PlaceholderKey = "YOUR_GEMINI_API_KEY_HERE"

var (
	ErrNotConfigured   = errors.New(errors.ErrCodeAIUnavailable, "gemini api key not configured")
	ErrEmptyCompletion = errors.New(errors.ErrCodeAIEmpty, "gemini returned no text")
)

// Client generates single-turn completions. The genai client is only built
// for a configured key.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	apiVersion string
	httpClient *http.Client
	logger     logging.Logger

	sdk    *genai.Client
	sdkErr error
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(cfg config.AIConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = config.DefaultGeminiBaseURL
	}
	version := cfg.APIVersion
	if version == "" {
		version = config.DefaultGeminiVersion
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultGeminiModel
	}
	c := &Client{
		apiKey:     strings.TrimSpace(cfg.GeminiAPIKey),
		model:      model,
		baseURL:    base,
		apiVersion: version,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Configured() {
		c.sdk, c.sdkErr = genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:     c.apiKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: c.httpClient,
			HTTPOptions: genai.HTTPOptions{
				BaseURL:    c.baseURL,
				APIVersion: c.apiVersion,
			},
		})
	}
	return c
}

// Configured reports whether a real key is set.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.apiKey != PlaceholderKey
}

func (c *Client) Model() string { return c.model }

// Complete sends prompt as a single user turn and returns the concatenated
// text of the first candidate.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if c.sdkErr != nil {
		return "", errors.Wrap(c.sdkErr, errors.ErrCodeAIUnavailable, "failed to create gemini client")
	}

	start := time.Now()
	resp, err := c.sdk.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		c.logger.Debug("gemini request failed",
			logging.String("model", c.model),
			logging.Duration("elapsed", time.Since(start)),
			logging.Err(err))
		return "", errors.Wrap(err, errors.ErrCodeAIUnavailable, "gemini request failed")
	}
	c.logger.Debug("gemini response",
		logging.String("model", c.model),
		logging.Duration("elapsed", time.Since(start)))

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			sb.WriteString(p.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyCompletion
	}
	return sb.String(), nil
}
