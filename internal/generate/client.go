// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate acquires structured articles from a generative model.
// It owns the request prompt, the typed failure taxonomy, and the boundary
// parse that turns free-form model output into an ArticlePayload.
package generate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/luckysolanki/dailicle/pkg/types"
)

// Client produces one article per call. Implementations translate every
// failure into a typed *Error.
type Client interface {
	Generate(ctx context.Context, req types.GenerationRequest) (*types.ArticlePayload, error)
}

// OpenAIClient implements Client using the OpenAI chat completions API.
// It also works with any OpenAI-compatible service via a custom base URL.
type OpenAIClient struct {
	model       string
	targetWords int
	opts        []option.RequestOption
}

// NewOpenAIClient builds a client from the generator configuration.
func NewOpenAIClient(cfg types.GeneratorConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key missing")
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}

	return &OpenAIClient{
		model:       model,
		targetWords: cfg.TargetWords,
		opts:        opts,
	}, nil
}

// Generate sends one prompt and parses the response. The exclusion lists in
// req are passed to the model as guidance; the seed, when present, steers
// topic choice.
func (c *OpenAIClient) Generate(ctx context.Context, req types.GenerationRequest) (*types.ArticlePayload, error) {
	client := openai.NewClient(c.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(req, c.targetWords)),
		},
	})
	if err != nil {
		return nil, wrap(classify(err), err)
	}
	if len(resp.Choices) == 0 {
		return nil, wrap(KindInvalidResponse, fmt.Errorf("empty choices"))
	}

	payload, err := Parse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, wrap(KindInvalidResponse, err)
	}
	return payload, nil
}

// classify maps transport and API errors onto the failure taxonomy.
func classify(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return KindAuthFailure
		case http.StatusTooManyRequests:
			return KindRateLimited
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return KindTimeout
		}
	}
	return KindUnknown
}
