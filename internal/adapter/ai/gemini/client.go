// Package gemini implements the Generator port on the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"

	"github.com/fairyhunter13/ai-career-coach/internal/adapter/observability"
	"github.com/fairyhunter13/ai-career-coach/internal/config"
	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

// Client sends prompts to the Gemini text-generation service. It performs a
// single call per Generate with no retries; retry policy belongs to callers.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

// New constructs a Client from configuration.
func New(ctx context.Context, cfg config.Config) (*Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("op=gemini.new: api key required: %w", domain.ErrInvalidArgument)
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("op=gemini.new: %w", err)
	}
	model := cl.GenerativeModel(cfg.GeminiModel)
	model.SetTemperature(cfg.GenerationTemp)
	model.SetMaxOutputTokens(cfg.GenerationMaxTokens)
	return &Client{client: cl, model: model, name: cfg.GeminiModel}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error { return c.client.Close() }

// Generate sends one prompt and returns the raw response text. Provider and
// network failures map to ErrGenerationUnavailable; an empty candidate list
// yields empty text, which downstream parsing rejects.
func (c *Client) Generate(ctx domain.Context, prompt string) (string, error) {
	tracer := otel.Tracer("ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("gen_ai.request.model", c.name))

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	observability.GenerationRequestDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.GenerationRequestsTotal.WithLabelValues(c.name, "error").Inc()
		return "", fmt.Errorf("op=gemini.generate: %v: %w", err, domain.ErrGenerationUnavailable)
	}
	observability.GenerationRequestsTotal.WithLabelValues(c.name, "ok").Inc()
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}
	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out += string(txt)
		}
	}
	return out, nil
}
