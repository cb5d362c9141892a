package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/photocalener/photo-calener/internal/model"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func imageServer(t *testing.T, allowOrigin string, status int) (*httptest.Server, *string) {
	t.Helper()
	payload := encodePNG(t, 5, 4)
	var gotOrigin string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrigin = r.Header.Get(OriginHeader)
		if allowOrigin != "" {
			w.Header().Set(AllowOriginHeader, allowOrigin)
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(status)
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv, &gotOrigin
}

func TestHTTPLoader_CrossOriginGranted(t *testing.T) {
	for _, allow := range []string{"*", DefaultOrigin} {
		srv, gotOrigin := imageServer(t, allow, http.StatusOK)
		ref, _ := model.NewRemoteReference(srv.URL + "/img.png")

		img, err := NewHTTPLoader(true).Load(context.Background(), ref)
		if err != nil {
			t.Fatalf("allow %q: expected no error, got %v", allow, err)
		}
		if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 4 {
			t.Errorf("Expected 5x4 image, got %v", img.Bounds())
		}
		if *gotOrigin != DefaultOrigin {
			t.Errorf("Expected Origin header %q, got %q", DefaultOrigin, *gotOrigin)
		}
	}
}

func TestHTTPLoader_CrossOriginRefused(t *testing.T) {
	for _, allow := range []string{"", "https://other.example"} {
		srv, _ := imageServer(t, allow, http.StatusOK)
		ref, _ := model.NewRemoteReference(srv.URL + "/img.png")

		_, err := NewHTTPLoader(true).Load(context.Background(), ref)
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("allow %q: expected LoadError, got %v", allow, err)
		}
		if !errors.Is(err, ErrCrossOriginRefused) {
			t.Errorf("allow %q: expected ErrCrossOriginRefused, got %v", allow, err)
		}
	}
}

func TestHTTPLoader_CrossOriginDisabled(t *testing.T) {
	srv, gotOrigin := imageServer(t, "", http.StatusOK)
	ref, _ := model.NewRemoteReference(srv.URL + "/img.png")

	if _, err := NewHTTPLoader(false).Load(context.Background(), ref); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if *gotOrigin != "" {
		t.Errorf("Expected no Origin header, got %q", *gotOrigin)
	}
}

func TestHTTPLoader_BadStatus(t *testing.T) {
	srv, _ := imageServer(t, "*", http.StatusNotFound)
	ref, _ := model.NewRemoteReference(srv.URL + "/missing.png")

	_, err := NewHTTPLoader(true).Load(context.Background(), ref)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected LoadError, got %v", err)
	}
}

func TestHTTPLoader_Inline(t *testing.T) {
	ref := model.NewInlineReference("image/png", encodePNG(t, 3, 2))

	img, err := NewHTTPLoader(true).Load(context.Background(), ref)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if img.Bounds().Dx() != 3 {
		t.Errorf("Expected width 3, got %d", img.Bounds().Dx())
	}

	_, err = NewHTTPLoader(true).Load(context.Background(), model.NewInlineReference("image/png", []byte("not an image")))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected LoadError for garbage, got %v", err)
	}
	if loadErr.Source != InlineSource {
		t.Errorf("Expected source %q, got %q", InlineSource, loadErr.Source)
	}
}

func TestHTTPLoader_SetCrossOrigin(t *testing.T) {
	srv, _ := imageServer(t, "", http.StatusOK)
	ref, _ := model.NewRemoteReference(srv.URL + "/img.png")

	loader := NewHTTPLoader(true)
	if _, err := loader.Load(context.Background(), ref); err == nil {
		t.Fatal("Expected refusal in cross-origin mode")
	}

	loader.SetCrossOrigin(false)
	if loader.CrossOrigin() {
		t.Error("Expected cross-origin mode off")
	}
	if _, err := loader.Load(context.Background(), ref); err != nil {
		t.Errorf("Expected load to succeed, got %v", err)
	}
}
