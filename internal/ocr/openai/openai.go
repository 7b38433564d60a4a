package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kamelth/ocr-to-markdown/internal/ocr"
	"github.com/kamelth/ocr-to-markdown/pkg/utils"
)

// Engine talks to an OpenAI-compatible chat completions endpoint, sending
// the image inline as a base64 data URL.
type Engine struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	httpc     *http.Client
}

func New(key, model, baseURL string, maxTokens int) *Engine {
	return &Engine{
		APIKey:    key,
		Model:     model,
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		MaxTokens: maxTokens,
		httpc:     &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string { return "openai" }

func (e *Engine) ExtractMarkdown(ctx context.Context, image []byte, mimeType string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("openai: API key is empty")
	}
	dataURL := utils.MakeDataURL(mimeType, image)

	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": ocr.ExtractionPrompt},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": dataURL}},
				},
			},
		},
		// Near-zero temperature: transcription, not paraphrase.
		"temperature": 0.1,
		"max_tokens":  e.MaxTokens,
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai extract %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", nil
	}
	return utils.StripCodeFences(raw.Choices[0].Message.Content), nil
}
