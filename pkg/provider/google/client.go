// Package google implements the provider interfaces on the Gemini API.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sanctum-app/sanctum/pkg/provider"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
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

		chatModel:     "gemini-3-pro-preview",
		analysisModel: "gemini-3-flash-preview",
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

// client dials a fresh API client. The key is checked here so a missing
// credential surfaces as a call-time error, not a startup failure.
func (c *Client) client(ctx context.Context) (*genai.Client, error) {
	if c.apiKey == "" {
		return nil, errors.New("google: api key not configured")
	}

	return genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
}

func (c *Client) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (string, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	client, err := c.client(ctx)

	if err != nil {
		return "", err
	}

	defer client.Close()

	model := client.GenerativeModel(c.chatModel)

	if options.Temperature != nil {
		model.SetTemperature(*options.Temperature)
	}

	if options.Instruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(options.Instruction)},
		}
	}

	if len(messages) == 0 {
		return "", errors.New("google: no messages")
	}

	history, last := messages[:len(messages)-1], messages[len(messages)-1]

	session := model.StartChat()

	for _, m := range history {
		session.History = append(session.History, &genai.Content{
			Role:  string(m.Role),
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(last.Content))

	if err != nil {
		return "", err
	}

	return responseText(resp), nil
}

func (c *Client) Analyze(ctx context.Context, content string) (*provider.Analysis, error) {
	client, err := c.client(ctx)

	if err != nil {
		return nil, err
	}

	defer client.Close()

	model := client.GenerativeModel(c.analysisModel)

	model.ResponseMIMEType = "application/json"

	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,

		Properties: map[string]*genai.Schema{
			"mood": {Type: genai.TypeString},
			"tags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"insights": {Type: genai.TypeString},
		},
	}

	prompt := `Analyze this journal entry. Return JSON with: mood (One of: Great, Good, Neutral, Stressed, Bad), tags (array of strings), and insights (a short 1-sentence psychological observation). Entry: "` + content + `"`

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))

	if err != nil {
		return nil, err
	}

	text := responseText(resp)

	if text == "" {
		return nil, errors.New("google: empty analysis response")
	}

	var analysis provider.Analysis

	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, err
	}

	return &analysis, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var sb strings.Builder

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}

		break
	}

	return sb.String()
}
