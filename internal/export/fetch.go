package export

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/photocalener/photo-calener/internal/model"
)

// HTTPFetcher retrieves the original bytes of a reference without decoding them
type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// NewHTTPFetcher creates a fetcher with default client and limits
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: DefaultHTTPTimeout},
		MaxBytes: DefaultMaxBytes,
	}
}

// Fetch returns the payload and its media type. Inline references resolve to
// their own bytes. Non-2xx responses and transport failures are *NetworkError.
func (f *HTTPFetcher) Fetch(ctx context.Context, ref model.ImageReference) ([]byte, string, error) {
	if ref.IsInline() {
		return ref.Data(), ref.MediaType(), nil
	}

	rawURL := ref.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", &NetworkError{URL: rawURL, Err: err}
	}

	resp, err := client(f.Client).Do(req)
	if err != nil {
		return nil, "", &NetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &NetworkError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	payload, err := readLimited(resp.Body, f.MaxBytes)
	if err != nil {
		return nil, "", &NetworkError{URL: rawURL, Err: err}
	}

	return payload, detectMediaType(resp.Header.Get("Content-Type"), payload), nil
}

// detectMediaType prefers the declared content type and sniffs otherwise
func detectMediaType(contentType string, payload []byte) string {
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType != "application/octet-stream" {
			return mediaType
		}
	}
	if len(payload) == 0 {
		return ""
	}
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(payload))
	return mediaType
}

// readLimited reads the whole body, failing when it exceeds maxBytes
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("payload exceeds %d bytes", maxBytes)
	}
	return data, nil
}

func client(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}
