package upload

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/photocalener/photo-calener/internal/model"
)

// DefaultMaxBytes caps uploaded files
const DefaultMaxBytes = 20 << 20

// AcceptedMediaTypes lists the image types an upload may carry
var AcceptedMediaTypes = []string{"image/png", "image/jpeg", "image/webp"}

// AcceptedExtensions is used by file pickers
var AcceptedExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// UploadReadError reports a file that could not be turned into an image
type UploadReadError struct {
	Name string
	Err  error
}

func (e *UploadReadError) Error() string {
	return fmt.Sprintf("read upload %s: %v", e.Name, e.Err)
}

func (e *UploadReadError) Unwrap() error { return e.Err }

// Reader turns local files into inline image references
type Reader struct {
	MaxBytes int64
}

// NewReader creates a reader with the default size cap
func NewReader() *Reader {
	return &Reader{MaxBytes: DefaultMaxBytes}
}

// ReadFile reads the file at path
func (r *Reader) ReadFile(path string) (model.ImageReference, error) {
	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return model.ImageReference{}, &UploadReadError{Name: name, Err: err}
	}
	defer f.Close()

	return r.Read(name, f)
}

// Read consumes src and returns an inline reference. The media type is
// sniffed from the content, not taken from the name.
func (r *Reader) Read(name string, src io.Reader) (model.ImageReference, error) {
	maxBytes := r.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		return model.ImageReference{}, &UploadReadError{Name: name, Err: err}
	}
	if int64(len(data)) > maxBytes {
		return model.ImageReference{}, &UploadReadError{Name: name, Err: fmt.Errorf("file exceeds %d bytes", maxBytes)}
	}
	if len(data) == 0 {
		return model.ImageReference{}, &UploadReadError{Name: name, Err: fmt.Errorf("file is empty")}
	}

	mediaType := http.DetectContentType(data)
	if !accepted(mediaType) {
		return model.ImageReference{}, &UploadReadError{Name: name, Err: fmt.Errorf("unsupported file type %s", mediaType)}
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return model.ImageReference{}, &UploadReadError{Name: name, Err: fmt.Errorf("corrupt image: %w", err)}
	}

	return model.NewInlineReference(mediaType, data), nil
}

func accepted(mediaType string) bool {
	for _, t := range AcceptedMediaTypes {
		if t == mediaType {
			return true
		}
	}
	return false
}
