package acl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

const geminiTemperature = 0.2

// geminiCompleter speaks the generateContent API.
type geminiCompleter struct {
	transport
	apiKey string
	model  string
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction geminiContent   `json:"systemInstruction"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func (c *geminiCompleter) complete(ctx context.Context, system, user string) (string, error) {
	in := geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: user}}}},
	}
	in.GenerationConfig.Temperature = geminiTemperature

	path := "/models/" + url.PathEscape(c.model) + ":generateContent"
	header := http.Header{"X-Goog-Api-Key": {c.apiKey}}

	resp, err := postJSON[geminiResponse](ctx, c.transport, "generate content", path, header, in)
	if err != nil {
		return "", err
	}

	if reason := resp.PromptFeedback.BlockReason; reason != "" {
		return "", fmt.Errorf("prompt blocked: %s", reason)
	}

	if len(resp.Candidates) == 0 {
		return "", domain.NewParseError("generate content", errors.New("no candidates returned"))
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}

	return strings.TrimSpace(b.String()), nil
}
