package model

// ExportStatus represents the status of an export task
type ExportStatus string

const (
	// ExportStatusIdle means nothing is being exported
	ExportStatusIdle ExportStatus = "Idle"

	// ExportStatusExporting means the export is in progress
	ExportStatusExporting ExportStatus = "Exporting"

	// ExportStatusSaved means the file was produced and saved
	ExportStatusSaved ExportStatus = "Saved"

	// ExportStatusFailed means the export ended with an error
	ExportStatusFailed ExportStatus = "Failed"
)

// String returns the string representation of ExportStatus
func (es ExportStatus) String() string {
	return string(es)
}

// IsActive returns true if an export is running
func (es ExportStatus) IsActive() bool {
	return es == ExportStatusExporting
}

// IsFinished returns true if the export reached a final state (saved or failed)
func (es ExportStatus) IsFinished() bool {
	return es == ExportStatusSaved || es == ExportStatusFailed
}

// ExportPath tells which strategy produced the exported file
type ExportPath string

const (
	// ExportPathNone means no file has been produced yet
	ExportPathNone ExportPath = ""

	// ExportPathDirect means the image was rasterized with the active filter
	ExportPathDirect ExportPath = "direct"

	// ExportPathFallback means the original bytes were fetched unfiltered
	ExportPathFallback ExportPath = "fallback"
)

// String returns the string representation of ExportPath
func (ep ExportPath) String() string {
	if ep == ExportPathNone {
		return "none"
	}
	return string(ep)
}

// AppliesFilter reports whether files produced on this path carry the filter
func (ep ExportPath) AppliesFilter() bool {
	return ep == ExportPathDirect
}
