package openai

import (
	"context"
	"errors"
	"fmt"

	openaiapi "github.com/sashabaranov/go-openai"

	"portfolio-chat/internal/usecase/chat"
)

type Client struct {
	api *openaiapi.Client
}

// NewClient talks to any OpenAI-compatible chat-completion endpoint rooted at
// baseURL, such as Groq's.
func NewClient(token, baseURL string) *Client {
	cfg := openaiapi.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api: openaiapi.NewClientWithConfig(cfg),
	}
}

func (c *Client) Complete(ctx context.Context, req chat.CompletionRequest) (string, error) {
	apiReq := openaiapi.ChatCompletionRequest{
		Model:    req.Model,
		Stream:   false,
		Messages: toAPIMessages(req.Messages),
	}

	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return "", describe(err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

// describe reduces status failures to "API error: <status>" and leaves
// transport errors untouched.
func describe(err error) error {
	var apiErr *openaiapi.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return fmt.Errorf("API error: %d", apiErr.HTTPStatusCode)
	}
	var reqErr *openaiapi.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return fmt.Errorf("API error: %d", reqErr.HTTPStatusCode)
	}
	return err
}

func toAPIMessages(msgs []chat.Message) []openaiapi.ChatCompletionMessage {
	res := make([]openaiapi.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, openaiapi.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Text,
		})
	}
	return res
}
