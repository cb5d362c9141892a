package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestReader_Read(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		mediaType string
	}{
		{"photo.png", pngBytes(t), "image/png"},
		{"photo.jpg", jpegBytes(t), "image/jpeg"},
		{"misnamed.txt", pngBytes(t), "image/png"},
	}

	for _, test := range tests {
		ref, err := NewReader().Read(test.name, bytes.NewReader(test.data))
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", test.name, err)
		}
		if !ref.IsInline() {
			t.Errorf("%s: expected inline reference", test.name)
		}
		if ref.MediaType() != test.mediaType {
			t.Errorf("%s: expected %s, got %s", test.name, test.mediaType, ref.MediaType())
		}
		if !bytes.Equal(ref.Data(), test.data) {
			t.Errorf("%s: payload mismatch", test.name)
		}
	}
}

func TestReader_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"notes.txt", []byte("just some text")},
		{"empty.png", nil},
		{"truncated.png", pngBytes(t)[:20]},
	}

	for _, test := range tests {
		_, err := NewReader().Read(test.name, bytes.NewReader(test.data))
		var readErr *UploadReadError
		if !errors.As(err, &readErr) {
			t.Errorf("%s: expected UploadReadError, got %v", test.name, err)
			continue
		}
		if readErr.Name != test.name {
			t.Errorf("%s: error carries name %q", test.name, readErr.Name)
		}
	}
}

func TestReader_SizeCap(t *testing.T) {
	reader := &Reader{MaxBytes: 10}
	_, err := reader.Read("big.png", strings.NewReader(strings.Repeat("x", 11)))
	var readErr *UploadReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Expected UploadReadError, got %v", err)
	}
}

func TestReader_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holiday.png")
	if err := os.WriteFile(path, pngBytes(t), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ref, err := NewReader().ReadFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ref.MediaType() != "image/png" {
		t.Errorf("Expected image/png, got %s", ref.MediaType())
	}

	_, err = NewReader().ReadFile(filepath.Join(dir, "missing.png"))
	var readErr *UploadReadError
	if !errors.As(err, &readErr) || readErr.Name != "missing.png" {
		t.Errorf("Expected UploadReadError for missing file, got %v", err)
	}
}
