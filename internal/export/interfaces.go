package export

import (
	"context"
	"image"

	"github.com/photocalener/photo-calener/internal/model"
)

// Loader decodes a referenced image into memory.
type Loader interface {
	Load(ctx context.Context, ref model.ImageReference) (image.Image, error)
}

// Rasterizer allocates off-screen surfaces.
type Rasterizer interface {
	NewSurface(width, height int) (Surface, error)
}

// Surface is an off-screen drawing target that can be encoded to bytes.
type Surface interface {
	// SetTransform sets the composite filter applied to subsequent draws
	SetTransform(transform string) error
	DrawImage(img image.Image, x, y int) error
	// Encode returns the encoded payload; an empty payload means the encoder produced nothing
	Encode(ctx context.Context, mediaType string) ([]byte, error)
	Close() error
}

// Fetcher retrieves the raw bytes of a reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref model.ImageReference) (payload []byte, mediaType string, err error)
}

// Saver persists a payload under a file name and returns where it ended up.
type Saver interface {
	Save(ctx context.Context, payload []byte, mediaType, fileName string) (string, error)
}

// Exporter defines the interface for the export service.
type Exporter interface {
	SetUpdateCallback(func(*model.ExportTask))
	Export(ctx context.Context, req Request) (*Result, error)
	GetTask(id string) (*model.ExportTask, bool)
	GetAllTasks() []*model.ExportTask

	// SetMediaType configures the encoding used on the direct path (image/png or image/jpeg)
	SetMediaType(mediaType string)
}
