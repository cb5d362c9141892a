package generate

import (
	"context"
	"strings"
	"sync"

	"github.com/photocalener/photo-calener/internal/model"
)

// Credentials supplies the API key and model name at call time
type Credentials func() (apiKey, modelName string)

// DynamicGenerator rebuilds its Gemini generator whenever the supplied
// credentials change, so settings edits apply without a restart
type DynamicGenerator struct {
	credentials Credentials

	mu      sync.Mutex
	current *GeminiGenerator
	apiKey  string
	model   string
}

// NewDynamicGenerator creates a generator reading credentials on every call
func NewDynamicGenerator(credentials Credentials) *DynamicGenerator {
	return &DynamicGenerator{credentials: credentials}
}

// Generate delegates to a generator built from the current credentials
func (d *DynamicGenerator) Generate(ctx context.Context, prompt string) (model.ImageReference, error) {
	return d.generator().Generate(ctx, prompt)
}

func (d *DynamicGenerator) generator() *GeminiGenerator {
	apiKey, modelName := d.credentials()
	apiKey = strings.TrimSpace(apiKey)
	if modelName == "" {
		modelName = DefaultModel
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil || d.apiKey != apiKey || d.model != modelName {
		d.current = NewGeminiGenerator(apiKey, modelName)
		d.apiKey = apiKey
		d.model = modelName
	}
	return d.current
}
