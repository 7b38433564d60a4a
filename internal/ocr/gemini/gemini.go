package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/kamelth/ocr-to-markdown/internal/ocr"
	"github.com/kamelth/ocr-to-markdown/pkg/utils"
)

// Engine runs extraction through the Gemini API. The underlying client is
// created once at startup and shared by all requests; Close releases it.
type Engine struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// New builds the engine. An empty API key does not fail construction: the
// pipeline validates the credential before ever invoking an engine, and a
// missing key must surface as a request error, not a crash at boot.
func New(ctx context.Context, apiKey, model string, maxTokens int) (*Engine, error) {
	e := &Engine{}
	if strings.TrimSpace(apiKey) == "" {
		return e, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     ptrFloat32(0.1),
		MaxOutputTokens: ptrInt32(int32(maxTokens)),
	}

	e.client = client
	e.model = m
	return e, nil
}

func (e *Engine) Name() string { return "gemini" }

func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

func (e *Engine) ExtractMarkdown(ctx context.Context, image []byte, mimeType string) (string, error) {
	if e.client == nil {
		return "", fmt.Errorf("gemini: API key is empty")
	}

	resp, err := e.model.GenerateContent(ctx,
		genai.Text(ocr.ExtractionPrompt),
		&genai.Blob{MIMEType: mimeType, Data: image},
	)
	if err != nil {
		return "", fmt.Errorf("gemini extract: %w", err)
	}
	return utils.StripCodeFences(firstText(resp)), nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
