// Package ai wraps the LLM backend behind typed generation services. Every
// structured response is constrained with a JSON schema and validated before
// it is unmarshalled, so a misbehaving model surfaces as an error instead of
// corrupt state.
package ai

import (
	"context"
	"encoding/json"

	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/sashabaranov/go-openai"
)

const MaxTokens = 4096

type Config struct {
	APIKey string
	// BaseURL overrides the API endpoint, e.g. for a test server.
	BaseURL string
	Model   string
}

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(cfg Config) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

// generate sends a schema-constrained completion and unmarshals the validated
// response into out.
func (c *Client) generate(ctx context.Context, system string, user string, schema *Schema, out any) error {
	completion, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
		Model:     c.model,
		MaxTokens: MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schema.Name,
				Schema: schema.Definition,
				Strict: true,
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return errors.New("no choices in completion")
	}

	content := json.RawMessage(completion.Choices[0].Message.Content)
	if err = schema.Validate(content); err != nil {
		return errors.Wrap(err, "validate completion")
	}
	if err = json.Unmarshal(content, out); err != nil {
		return errors.Wrap(err, "unmarshal completion")
	}
	return nil
}
