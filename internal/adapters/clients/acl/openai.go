package acl

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

const openAITemperature = 0.2

// openAICompleter speaks the chat completions API.
type openAICompleter struct {
	transport
	apiKey string
	model  string
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (c *openAICompleter) complete(ctx context.Context, system, user string) (string, error) {
	in := openAIRequest{
		Model: c.model,
		Messages: []openAIMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: openAITemperature,
	}
	header := http.Header{"Authorization": {"Bearer " + c.apiKey}}

	resp, err := postJSON[openAIResponse](ctx, c.transport, "chat completion", "/chat/completions", header, in)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", domain.NewParseError("chat completion", errors.New("no choices returned"))
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
