package export

import "fmt"

// LoadError means the image could not be decoded or cross-origin access was refused.
// It is recovered by the network fallback.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// RasterizeError means the off-screen surface could not be prepared or drawn.
// It is recovered by the network fallback.
type RasterizeError struct {
	Err error
}

func (e *RasterizeError) Error() string {
	return fmt.Sprintf("rasterize: %v", e.Err)
}

func (e *RasterizeError) Unwrap() error { return e.Err }

// EncodeError means the rasterizer produced no payload.
// It is recovered by the network fallback.
type EncodeError struct {
	MediaType string
	Err       error
}

func (e *EncodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("encode %s: empty payload", e.MediaType)
	}
	return fmt.Sprintf("encode %s: %v", e.MediaType, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// NetworkError means the fallback fetch failed. It ends the export.
type NetworkError struct {
	URL        string
	StatusCode int // zero when the request never got a response
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// PipelineError wraps any unexpected failure, including save failures and panics.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
