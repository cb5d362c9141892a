package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/photocalener/photo-calener/internal/model"
)

func TestResolveReference(t *testing.T) {
	remote, err := resolveReference("https://example.com/a.png")
	if err != nil || remote.Kind() != model.SourceRemote {
		t.Fatalf("Expected remote reference, got %v, %v", remote.Kind(), err)
	}

	inline, err := resolveReference("data:image/png;base64,aGVsbG8=")
	if err != nil || !inline.IsInline() {
		t.Fatalf("Expected inline reference, got %v, %v", inline.Kind(), err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 3, 3))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	file, err := resolveReference(path)
	if err != nil {
		t.Fatalf("Expected file reference, got %v", err)
	}
	if !file.IsInline() || file.MediaType() != "image/png" {
		t.Errorf("Expected inline png, got %s %s", file.Kind(), file.MediaType())
	}

	if _, err := resolveReference(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
