package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	// Registered decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/photocalener/photo-calener/internal/model"
)

// HTTP defaults
const (
	DefaultOrigin       = "app://photo-calener"
	DefaultMaxBytes     = 32 << 20
	DefaultHTTPTimeout  = 60 * time.Second
	AllowOriginHeader   = "Access-Control-Allow-Origin"
	OriginHeader        = "Origin"
	AllowAnyOriginValue = "*"
)

// ErrCrossOriginRefused is wrapped in a LoadError when the server does not grant access
var ErrCrossOriginRefused = errors.New("cross-origin access refused")

// HTTPLoader decodes inline references directly and downloads remote ones.
// In cross-origin mode a remote image is only accepted when the response
// grants the configured origin access.
type HTTPLoader struct {
	Client   *http.Client
	Origin   string
	MaxBytes int64

	crossOrigin atomic.Bool
}

// NewHTTPLoader creates a loader with default client and limits
func NewHTTPLoader(crossOrigin bool) *HTTPLoader {
	l := &HTTPLoader{
		Client:   &http.Client{Timeout: DefaultHTTPTimeout},
		Origin:   DefaultOrigin,
		MaxBytes: DefaultMaxBytes,
	}
	l.crossOrigin.Store(crossOrigin)
	return l
}

// SetCrossOrigin switches cross-origin mode for subsequent loads
func (l *HTTPLoader) SetCrossOrigin(enabled bool) {
	l.crossOrigin.Store(enabled)
}

// CrossOrigin reports whether cross-origin mode is on
func (l *HTTPLoader) CrossOrigin() bool {
	return l.crossOrigin.Load()
}

// Load decodes the referenced image. Every failure is a *LoadError.
func (l *HTTPLoader) Load(ctx context.Context, ref model.ImageReference) (image.Image, error) {
	source := sourceLabel(ref)

	var data []byte
	if ref.IsInline() {
		data = ref.Data()
	} else {
		var err error
		data, err = l.download(ctx, ref.URL())
		if err != nil {
			return nil, &LoadError{Source: source, Err: err}
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	return img, nil
}

func (l *HTTPLoader) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	crossOrigin := l.CrossOrigin()
	if crossOrigin {
		req.Header.Set(OriginHeader, l.origin())
	}

	resp, err := client(l.Client).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if crossOrigin && !l.allowed(resp.Header.Get(AllowOriginHeader)) {
		return nil, ErrCrossOriginRefused
	}

	return readLimited(resp.Body, l.MaxBytes)
}

// allowed checks the Access-Control-Allow-Origin value against our origin
func (l *HTTPLoader) allowed(value string) bool {
	value = strings.TrimSpace(value)
	return value == AllowAnyOriginValue || (value != "" && value == l.origin())
}

func (l *HTTPLoader) origin() string {
	if l.Origin == "" {
		return DefaultOrigin
	}
	return l.Origin
}
