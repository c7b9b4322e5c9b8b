// Package ai asks a hosted Gemini model to suggest rooms for an event
// description.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"room-booking/internal/data/entity"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const apiVersion = "v1beta"

const promptTemplate = `You are a helpful assistant that suggests rooms based on the description of a class or event.

Suggest the top 3 rooms that would be suitable for the following description:
%s

Consider the capacity and availability of the rooms.
Return the rooms in a JSON format as {"rooms":[{"name":string,"capacity":number,"availability":string}]}.
`

var ErrEmptyAnswer = errors.New("model returned no content")

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Client struct {
	models *genai.Models
	model  string
	log    *zap.Logger
}

// NewClient builds a Gemini API client. The key is sent as a request header,
// never in the URL, so transport errors do not carry it.
func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		models: gc.Models,
		model:  cfg.Model,
		log:    log.With(zap.String("component", "ai"), zap.String("model", cfg.Model)),
	}, nil
}

// Suggest asks the model for rooms matching description. It does not cap the
// number of rooms returned.
func (c *Client) Suggest(ctx context.Context, description string) ([]entity.SuggestedRoom, error) {
	start := time.Now()
	res, err := c.models.GenerateContent(ctx, c.model,
		genai.Text(fmt.Sprintf(promptTemplate, description)),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	c.log.Debug("Model answered", zap.Duration("duration", time.Since(start)))
	return parseAnswer(res.Text())
}

// parseAnswer decodes the rooms listed in the model text. Text wrapped in a
// markdown code fence is accepted.
func parseAnswer(text string) ([]entity.SuggestedRoom, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyAnswer
	}

	answer := stripFence(text)
	if !gjson.Valid(answer) {
		return nil, fmt.Errorf("model answer is not json: %q", answer)
	}

	rooms := gjson.Get(answer, "rooms")
	if !rooms.IsArray() {
		// some models answer with the bare list
		if parsed := gjson.Parse(answer); parsed.IsArray() {
			rooms = parsed
		} else {
			return nil, fmt.Errorf("model answer has no rooms list")
		}
	}

	out := make([]entity.SuggestedRoom, 0, len(rooms.Array()))
	for _, r := range rooms.Array() {
		name := strings.TrimSpace(r.Get("name").String())
		if name == "" {
			continue
		}
		out = append(out, entity.SuggestedRoom{
			Name:         name,
			Capacity:     int(r.Get("capacity").Int()),
			Availability: r.Get("availability").String(),
		})
	}
	return out, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
