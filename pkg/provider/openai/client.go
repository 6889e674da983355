// Package openai implements the provider interfaces on the OpenAI API.
package openai

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sanctum-app/sanctum/pkg/provider"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

var (
	_ provider.Completer = (*Client)(nil)
	_ provider.Analyzer  = (*Client)(nil)
)

type Client struct {
	apiKey string

	chatModel     string
	analysisModel string
}

type Option func(*Client)

func New(apiKey string, options ...Option) (*Client, error) {
	c := &Client{
		apiKey: apiKey,

		chatModel:     "gpt-4o",
		analysisModel: "gpt-4o-mini",
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func WithChatModel(model string) Option {
	return func(c *Client) {
		c.chatModel = model
	}
}

func WithAnalysisModel(model string) Option {
	return func(c *Client) {
		c.analysisModel = model
	}
}

func (c *Client) client() (*openai.Client, error) {
	if c.apiKey == "" {
		return nil, errors.New("openai: api key not configured")
	}

	client := openai.NewClient(option.WithAPIKey(c.apiKey))
	return &client, nil
}

func (c *Client) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (string, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	client, err := c.client()

	if err != nil {
		return "", err
	}

	var input []openai.ChatCompletionMessageParamUnion

	if options.Instruction != "" {
		input = append(input, openai.SystemMessage(options.Instruction))
	}

	for _, m := range messages {
		switch m.Role {
		case provider.MessageRoleUser:
			input = append(input, openai.UserMessage(m.Content))

		case provider.MessageRoleModel:
			input = append(input, openai.AssistantMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.chatModel),
		Messages: input,
	}

	if options.Temperature != nil {
		params.Temperature = openai.Float(float64(*options.Temperature))
	}

	resp, err := client.Chat.Completions.New(ctx, params)

	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) Analyze(ctx context.Context, content string) (*provider.Analysis, error) {
	client, err := c.client()

	if err != nil {
		return nil, err
	}

	prompt := `Analyze this journal entry. Return JSON with: mood (One of: Great, Good, Neutral, Stressed, Bad), tags (array of strings), and insights (a short 1-sentence psychological observation). Entry: "` + content + `"`

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.analysisModel),

		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},

		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	resp, err := client.Chat.Completions.New(ctx, params)

	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: empty analysis response")
	}

	var analysis provider.Analysis

	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &analysis); err != nil {
		return nil, err
	}

	return &analysis, nil
}
