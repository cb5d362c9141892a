package model

import (
	"path/filepath"
	"strings"
	"time"
)

// ExportTask represents a single export of the displayed image
type ExportTask struct {
	ID         string
	Title      string       // image title at the time of export
	FilterKey  string       // active filter key
	Source     string       // URL or "inline"
	Status     ExportStatus // current status
	Path       ExportPath   // strategy that produced the file
	MediaType  string       // media type of the saved payload
	FileName   string       // derived file name
	OutputPath string       // where the file was saved
	FileSize   int64        // saved size in bytes
	LastError  string       // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the export took, or zero while it runs
func (et *ExportTask) Duration() time.Duration {
	if et.FinishedAt.IsZero() || et.StartedAt.IsZero() {
		return 0
	}
	return et.FinishedAt.Sub(et.StartedAt)
}

// GetDisplayTitle returns title, saved file name, or source in order of preference
func (et *ExportTask) GetDisplayTitle() string {
	if et.Title != "" {
		return et.Title
	}

	if et.OutputPath != "" {
		name := filepath.Base(et.OutputPath)
		if idx := strings.LastIndex(name, "."); idx > 0 {
			name = name[:idx]
		}
		return name
	}

	if et.FileName != "" {
		return et.FileName
	}

	return et.Source
}
