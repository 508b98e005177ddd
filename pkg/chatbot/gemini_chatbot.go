package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChatProvider generates a model reply for an assembled prompt.
type ChatProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GeminiChatParts struct {
	Text string `json:"text"`
}

type GeminiChatContent struct {
	Parts []*GeminiChatParts `json:"parts"`
	Role  string             `json:"role"`
}

// GeminiGoogleSearchTool enables provider-native web grounding. It is layered
// on top of the explicit web digest in the prompt on purpose: the digest is
// captured into the knowledge base, the native grounding is not.
type GeminiGoogleSearchTool struct {
	GoogleSearch struct{} `json:"google_search"`
}

type GeminiChatRequest struct {
	Contents []*GeminiChatContent      `json:"contents"`
	Tools    []*GeminiGoogleSearchTool `json:"tools,omitempty"`
}

type GeminiChatCandidate struct {
	Content *GeminiChatContent `json:"content"`
}

type GeminiChatResponse struct {
	Candidates []*GeminiChatCandidate `json:"candidates"`
}

type GeminiChatbot struct {
	ApiKey    string
	Model     string
	BaseURL   string
	Grounding bool
	client    *http.Client
}

func NewGeminiChatbot(apiKey string, model string, grounding bool) *GeminiChatbot {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiChatbot{
		ApiKey:    apiKey,
		Model:     model,
		BaseURL:   "https://generativelanguage.googleapis.com/v1",
		Grounding: grounding,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *GeminiChatbot) Generate(ctx context.Context, prompt string) (string, error) {
	payload := GeminiChatRequest{
		Contents: []*GeminiChatContent{
			{
				Parts: []*GeminiChatParts{{Text: prompt}},
				Role:  "user",
			},
		},
	}
	if c.Grounding {
		payload.Tools = []*GeminiGoogleSearchTool{{}}
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, c.Model)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		endpoint,
		bytes.NewBuffer(payloadJson),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", c.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	client := c.client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiChatResponse
	err = json.Unmarshal(resBody, &geminiRes)
	if err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response contains no candidates")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}
