// Package textgen is the client for the text generation service. It speaks
// the Ollama HTTP API: /api/generate for completions and /api/tags for the
// installed model list.
package textgen

//go:generate mockgen -destination=mock/mock_client.go -package=textgenmock github.com/KirkDiggler/rpg-loot/internal/clients/textgen Client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

const (
	// DefaultBaseURL is the local Ollama endpoint
	DefaultBaseURL = "http://localhost:11434"

	// DefaultTimeout bounds one generation call
	DefaultTimeout = 2 * time.Minute

	// DefaultPingTimeout bounds the connectivity probe
	DefaultPingTimeout = 30 * time.Second

	// DefaultModelsCacheTTL is how long a model listing is reused
	DefaultModelsCacheTTL = 5 * time.Minute

	generatePath = "/api/generate"
	tagsPath     = "/api/tags"
	modelsKey    = "models"
	pingPrompt   = "Reply with the single word: ready"

	maxErrorBody = 4 << 10
)

// Client defines the interface for text generation calls
type Client interface {
	// Generate sends one prompt and returns the raw completion text.
	// Returns errors.Unavailable when the service cannot be reached,
	// errors.NotFound when the model is not installed and
	// errors.DeadlineExceeded when the call outlives its timeout.
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)

	// ListModels returns the installed model names in service order.
	// Failures are absorbed and reported as an empty list.
	ListModels(ctx context.Context) []string

	// Ping reports whether the model answered a trivial prompt
	Ping(ctx context.Context, model string) bool
}

// GenerateInput defines the request for a completion
type GenerateInput struct {
	// Model overrides the configured default model when set
	Model  string
	Prompt string
	// Format is the target JSON schema for the response; nil leaves the
	// output unconstrained
	Format json.RawMessage
}

// GenerateOutput defines the response for a completion
type GenerateOutput struct {
	Model string
	Text  string
}

// Config contains configuration options for the text generation client
type Config struct {
	// BaseURL of the service (optional, defaults to DefaultBaseURL)
	BaseURL string
	// Model used when a call does not name one
	Model string
	// Timeout per generation call (optional, defaults to DefaultTimeout)
	Timeout time.Duration
	// PingTimeout for the connectivity probe (optional, defaults to DefaultPingTimeout)
	PingTimeout time.Duration
	// ModelsCacheTTL for model listings (optional, defaults to DefaultModelsCacheTTL)
	ModelsCacheTTL time.Duration
	// HTTPClient (optional, defaults to a client without a global timeout)
	HTTPClient *http.Client
}

// Validate validates the Config and sets defaults if not provided
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Model == "" {
		vb.RequiredField("Model")
	}
	if cfg.Timeout < 0 {
		vb.InvalidField("Timeout", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PingTimeout == 0 {
		cfg.PingTimeout = DefaultPingTimeout
	}
	if cfg.ModelsCacheTTL == 0 {
		cfg.ModelsCacheTTL = DefaultModelsCacheTTL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	return nil
}

type client struct {
	baseURL     string
	model       string
	timeout     time.Duration
	pingTimeout time.Duration
	httpClient  *http.Client
	models      *expirable.LRU[string, []string]
}

// New creates a new text generation client
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &client{
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		pingTimeout: cfg.PingTimeout,
		httpClient:  cfg.HTTPClient,
		models:      expirable.NewLRU[string, []string](1, nil, cfg.ModelsCacheTTL),
	}, nil
}

type generateRequest struct {
	Model  string          `json:"model"`
	Prompt string          `json:"prompt"`
	Stream bool            `json:"stream"`
	Format json.RawMessage `json:"format,omitempty"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *client) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil || strings.TrimSpace(input.Prompt) == "" {
		return nil, errors.InvalidArgument("prompt cannot be empty")
	}
	return c.generate(ctx, input, c.timeout)
}

func (c *client) generate(ctx context.Context, input *GenerateInput, timeout time.Duration) (*GenerateOutput, error) {
	model := input.Model
	if model == "" {
		model = c.model
	}

	body, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: input.Prompt,
		Stream: false,
		Format: input.Format,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal generate request")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build generate request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrapf(errors.FromContext(ctx.Err()), "generation with %s did not finish", model)
		}
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "text generation service unreachable at %s", c.baseURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, model)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrapf(errors.FromContext(ctx.Err()), "generation with %s did not finish", model)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to decode generate response")
	}

	slog.DebugContext(ctx, "text generation finished",
		"model", model,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_bytes", len(decoded.Response))

	if decoded.Model != "" {
		model = decoded.Model
	}
	return &GenerateOutput{Model: model, Text: decoded.Response}, nil
}

func statusError(resp *http.Response, model string) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := strings.TrimSpace(string(data))
	var decoded errorResponse
	if json.Unmarshal(data, &decoded) == nil && decoded.Error != "" {
		message = decoded.Error
	}

	if resp.StatusCode == http.StatusNotFound {
		return errors.NotFoundf("model %s not available: %s", model, message).
			WithMeta("status", resp.StatusCode)
	}
	return errors.Unavailablef("text generation failed with status %d: %s", resp.StatusCode, message).
		WithMeta("status", resp.StatusCode)
}

func (c *client) ListModels(ctx context.Context) []string {
	if cached, ok := c.models.Get(modelsKey); ok {
		return append([]string(nil), cached...)
	}

	models, err := c.fetchModels(ctx)
	if err != nil {
		slog.DebugContext(ctx, "model listing failed",
			"base_url", c.baseURL,
			"error", err)
		return []string{}
	}

	c.models.Add(modelsKey, models)
	return append([]string(nil), models...)
}

func (c *client) fetchModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+tagsPath, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var decoded tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	models := make([]string, 0, len(decoded.Models))
	for _, m := range decoded.Models {
		models = append(models, m.Name)
	}
	return models, nil
}

func (c *client) Ping(ctx context.Context, model string) bool {
	_, err := c.generate(ctx, &GenerateInput{Model: model, Prompt: pingPrompt}, c.pingTimeout)
	if err != nil {
		slog.DebugContext(ctx, "connectivity probe failed",
			"model", model,
			"error", err)
		return false
	}
	return true
}
