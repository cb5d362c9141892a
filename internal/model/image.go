package model

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// Data URI constants
const (
	DataURIPrefix    = "data:"
	DataURIBase64    = ";base64"
	DefaultMediaType = "image/png"
)

// SourceKind tells whether an image lives behind a URL or inside the reference
type SourceKind string

const (
	SourceRemote SourceKind = "remote"
	SourceInline SourceKind = "inline"
)

// ImageReference identifies an image either by remote locator or by inline
// payload. The zero value is an empty reference.
type ImageReference struct {
	kind      SourceKind
	url       string
	mediaType string
	data      []byte
}

// NewRemoteReference creates a reference to an image served at rawURL
func NewRemoteReference(rawURL string) (ImageReference, error) {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ImageReference{}, fmt.Errorf("invalid image URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ImageReference{}, fmt.Errorf("image URL must start with http:// or https://")
	}
	return ImageReference{kind: SourceRemote, url: rawURL}, nil
}

// NewInlineReference creates a reference that carries the encoded image itself
func NewInlineReference(mediaType string, data []byte) ImageReference {
	if mediaType == "" {
		mediaType = DefaultMediaType
	}
	return ImageReference{
		kind:      SourceInline,
		mediaType: mediaType,
		data:      bytes.Clone(data),
	}
}

// ParseReference accepts either a data URI or an http(s) URL
func ParseReference(s string) (ImageReference, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, DataURIPrefix) {
		return parseDataURI(s)
	}
	return NewRemoteReference(s)
}

// parseDataURI decodes data:<type>;base64,<payload>
func parseDataURI(s string) (ImageReference, error) {
	header, payload, found := strings.Cut(strings.TrimPrefix(s, DataURIPrefix), ",")
	if !found {
		return ImageReference{}, fmt.Errorf("malformed data URI: missing payload separator")
	}
	if !strings.HasSuffix(header, DataURIBase64) {
		return ImageReference{}, fmt.Errorf("malformed data URI: only base64 payloads are supported")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ImageReference{}, fmt.Errorf("malformed data URI: %w", err)
	}
	return NewInlineReference(strings.TrimSuffix(header, DataURIBase64), data), nil
}

// Kind returns the reference kind
func (r ImageReference) Kind() SourceKind {
	return r.kind
}

// IsInline reports whether the image payload is embedded in the reference
func (r ImageReference) IsInline() bool {
	return r.kind == SourceInline
}

// IsZero reports whether the reference points nowhere
func (r ImageReference) IsZero() bool {
	return r.kind == ""
}

// URL returns the remote locator; empty for inline references
func (r ImageReference) URL() string {
	return r.url
}

// MediaType returns the declared media type of an inline payload
func (r ImageReference) MediaType() string {
	return r.mediaType
}

// Data returns a copy of the inline payload
func (r ImageReference) Data() []byte {
	return bytes.Clone(r.data)
}

// Size returns the inline payload size in bytes
func (r ImageReference) Size() int {
	return len(r.data)
}

// String returns the URL or the data URI form of the reference
func (r ImageReference) String() string {
	switch r.kind {
	case SourceRemote:
		return r.url
	case SourceInline:
		var b strings.Builder
		b.WriteString(DataURIPrefix)
		b.WriteString(r.mediaType)
		b.WriteString(DataURIBase64)
		b.WriteString(",")
		b.WriteString(base64.StdEncoding.EncodeToString(r.data))
		return b.String()
	default:
		return ""
	}
}

// Equal reports whether two references identify the same image
func (r ImageReference) Equal(other ImageReference) bool {
	if r.kind != other.kind {
		return false
	}
	if r.kind == SourceInline {
		return r.mediaType == other.mediaType && bytes.Equal(r.data, other.data)
	}
	return r.url == other.url
}
