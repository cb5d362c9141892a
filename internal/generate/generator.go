package generate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/photocalener/photo-calener/internal/model"
	"google.golang.org/genai"
)

// Generation defaults
const (
	DefaultModel = "gemini-2.5-flash-image"
)

// ErrNoAPIKey is wrapped in a GenerationError when no credential is configured
var ErrNoAPIKey = errors.New("API key is not configured")

// ErrNoImage is wrapped in a GenerationError when the response carries no image part
var ErrNoImage = errors.New("no image data found in the response")

// GenerationError reports a failed generation request
type GenerationError struct {
	Prompt string
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %q: %v", e.Prompt, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Generator produces an image from a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (model.ImageReference, error)
}

// contentGenerator is the slice of *genai.Models the generator needs
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator calls the Gemini image model
type GeminiGenerator struct {
	apiKey string
	model  string

	mu     sync.Mutex
	models contentGenerator
}

// NewGeminiGenerator creates a generator; the client is created on first use
func NewGeminiGenerator(apiKey, modelName string) *GeminiGenerator {
	if modelName == "" {
		modelName = DefaultModel
	}
	return &GeminiGenerator{apiKey: strings.TrimSpace(apiKey), model: modelName}
}

// Model returns the configured model name
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate requests an image for prompt and returns it as an inline reference
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (model.ImageReference, error) {
	models, err := g.client(ctx)
	if err != nil {
		return model.ImageReference{}, &GenerationError{Prompt: prompt, Err: err}
	}

	log.Printf("Generating image with %s", g.model)

	resp, err := models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
	})
	if err != nil {
		return model.ImageReference{}, &GenerationError{Prompt: prompt, Err: err}
	}

	ref, err := extractImage(resp)
	if err != nil {
		return model.ImageReference{}, &GenerationError{Prompt: prompt, Err: err}
	}
	return ref, nil
}

// client lazily creates the Gemini client
func (g *GeminiGenerator) client(ctx context.Context) (contentGenerator, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.models != nil {
		return g.models, nil
	}
	if g.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	g.models = c.Models
	return g.models, nil
}

// extractImage returns the first inline image part of the first candidate
func extractImage(resp *genai.GenerateContentResponse) (model.ImageReference, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return model.ImageReference{}, ErrNoImage
	}

	content := resp.Candidates[0].Content
	if content == nil {
		return model.ImageReference{}, ErrNoImage
	}

	for _, part := range content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		return model.NewInlineReference(part.InlineData.MIMEType, part.InlineData.Data), nil
	}
	return model.ImageReference{}, ErrNoImage
}
