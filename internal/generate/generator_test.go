package generate

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

type fakeModels struct {
	resp      *genai.GenerateContentResponse
	err       error
	model     string
	modality  []string
	callCount int
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.callCount++
	f.model = model
	if config != nil {
		f.modality = config.ResponseModalities
	}
	return f.resp, f.err
}

func response(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestExtractImage_FirstInlinePart(t *testing.T) {
	resp := response(
		&genai.Part{Text: "here you go"},
		&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("first")}},
		&genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("second")}},
	)

	ref, err := extractImage(resp)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(ref.Data()) != "first" || ref.MediaType() != "image/png" {
		t.Errorf("Expected first inline part, got %s %q", ref.MediaType(), ref.Data())
	}
}

func TestExtractImage_MissingMediaTypeDefaultsToPNG(t *testing.T) {
	ref, err := extractImage(response(&genai.Part{InlineData: &genai.Blob{Data: []byte("x")}}))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ref.MediaType() != "image/png" {
		t.Errorf("Expected image/png, got %s", ref.MediaType())
	}
}

func TestExtractImage_NoImage(t *testing.T) {
	tests := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
		response(&genai.Part{Text: "sorry"}),
	}

	for i, resp := range tests {
		if _, err := extractImage(resp); !errors.Is(err, ErrNoImage) {
			t.Errorf("case %d: expected ErrNoImage, got %v", i, err)
		}
	}
}

func TestGenerate_UsesImageModality(t *testing.T) {
	fake := &fakeModels{resp: response(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("img")}})}
	g := NewGeminiGenerator("key", "")
	g.models = fake

	ref, err := g.Generate(context.Background(), "a husky wearing sunglasses")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !ref.IsInline() {
		t.Error("Expected inline reference")
	}
	if fake.model != DefaultModel {
		t.Errorf("Expected model %s, got %s", DefaultModel, fake.model)
	}
	if len(fake.modality) != 1 || fake.modality[0] != "IMAGE" {
		t.Errorf("Expected IMAGE modality, got %v", fake.modality)
	}
}

func TestGenerate_Errors(t *testing.T) {
	_, err := NewGeminiGenerator("", "").Generate(context.Background(), "p")
	var genErr *GenerationError
	if !errors.As(err, &genErr) || !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected GenerationError wrapping ErrNoAPIKey, got %v", err)
	}

	g := NewGeminiGenerator("key", "custom-model")
	g.models = &fakeModels{err: errors.New("quota exceeded")}
	_, err = g.Generate(context.Background(), "p")
	if !errors.As(err, &genErr) || genErr.Prompt != "p" {
		t.Errorf("Expected GenerationError for API failure, got %v", err)
	}

	g.models = &fakeModels{resp: response(&genai.Part{Text: "no"})}
	_, err = g.Generate(context.Background(), "p")
	if !errors.Is(err, ErrNoImage) {
		t.Errorf("Expected ErrNoImage, got %v", err)
	}
}
