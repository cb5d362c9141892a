package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/photocalener/photo-calener/internal/filter"
)

// DefaultJPEGQuality is used when no quality is configured
const DefaultJPEGQuality = 90

// GGRasterizer allocates CPU surfaces backed by gg contexts
type GGRasterizer struct {
	jpegQuality atomic.Int32
}

// NewGGRasterizer creates a rasterizer with the given JPEG quality
func NewGGRasterizer(jpegQuality int) *GGRasterizer {
	r := &GGRasterizer{}
	r.SetJPEGQuality(jpegQuality)
	return r
}

// SetJPEGQuality sets the quality for subsequent JPEG encodes;
// values outside 1-100 select DefaultJPEGQuality
func (r *GGRasterizer) SetJPEGQuality(quality int) {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	r.jpegQuality.Store(int32(quality))
}

// JPEGQuality returns the configured JPEG quality
func (r *GGRasterizer) JPEGQuality() int {
	return int(r.jpegQuality.Load())
}

// NewSurface allocates a width x height transparent surface
func (r *GGRasterizer) NewSurface(width, height int) (Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}

	return &ggSurface{
		dc:      gg.NewContext(width, height),
		quality: r.JPEGQuality(),
	}, nil
}

// ggSurface applies the filter chain to images before drawing them
type ggSurface struct {
	dc      *gg.Context
	chain   filter.Chain
	quality int
}

func (s *ggSurface) SetTransform(transform string) error {
	adjustments, err := filter.ParseTransform(transform)
	if err != nil {
		return err
	}
	s.chain = filter.Compile(adjustments)
	return nil
}

func (s *ggSurface) DrawImage(img image.Image, x, y int) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	if !s.chain.IsIdentity() {
		img = filter.Apply(img, s.chain)
	}

	s.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             float64(x),
		Y:             float64(y),
		Interpolation: gg.InterpNearest,
		Opacity:       1.0,
		BlendMode:     gg.BlendNormal,
	})
	return nil
}

func (s *ggSurface) Encode(ctx context.Context, mediaType string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch mediaType {
	case MediaTypePNG, "":
		if err := s.dc.EncodePNG(&buf); err != nil {
			return nil, err
		}
	case MediaTypeJPEG:
		if err := s.dc.EncodeJPEG(&buf, s.quality); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported media type %q", mediaType)
	}
	return buf.Bytes(), nil
}

func (s *ggSurface) Close() error {
	return s.dc.Close()
}
