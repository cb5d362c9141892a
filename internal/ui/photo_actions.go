package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/photocalener/photo-calener/internal/model"
)

// buttonState describes how the download button renders an export status
type buttonState struct {
	TextKey    string
	Icon       fyne.Resource
	Importance widget.Importance
	Disabled   bool
}

// downloadButtonState maps an export status to the download button look
func downloadButtonState(status model.ExportStatus) buttonState {
	switch status {
	case model.ExportStatusExporting:
		return buttonState{TextKey: KeyDownloading, Icon: theme.ViewRefreshIcon(), Importance: widget.MediumImportance, Disabled: true}
	case model.ExportStatusSaved:
		return buttonState{TextKey: KeyDownloaded, Icon: theme.ConfirmIcon(), Importance: widget.SuccessImportance, Disabled: true}
	case model.ExportStatusFailed:
		return buttonState{TextKey: KeyDownloadFailed, Icon: theme.ErrorIcon(), Importance: widget.DangerImportance, Disabled: true}
	default:
		return buttonState{TextKey: KeyDownload, Icon: theme.DownloadIcon(), Importance: widget.HighImportance}
	}
}

// PhotoActions is the Upload / Share / Download row under the photo
type PhotoActions struct {
	loc    *Localization
	status model.ExportStatus

	uploadBtn   *widget.Button
	shareBtn    *widget.Button
	downloadBtn *widget.Button
}

// NewPhotoActions creates the action row
func NewPhotoActions(loc *Localization, onUpload, onShare, onDownload func()) *PhotoActions {
	pa := &PhotoActions{loc: loc, status: model.ExportStatusIdle}

	pa.uploadBtn = widget.NewButtonWithIcon("", theme.UploadIcon(), onUpload)
	pa.shareBtn = widget.NewButtonWithIcon("", theme.MailForwardIcon(), onShare)
	pa.downloadBtn = widget.NewButtonWithIcon("", theme.DownloadIcon(), onDownload)

	pa.RefreshTexts()
	return pa
}

// Object returns the canvas object to place in the layout
func (pa *PhotoActions) Object() fyne.CanvasObject {
	return container.NewGridWithColumns(3, pa.uploadBtn, pa.shareBtn, pa.downloadBtn)
}

// SetStatus renders the download button for status
func (pa *PhotoActions) SetStatus(status model.ExportStatus) {
	if status == "" {
		status = model.ExportStatusIdle
	}
	pa.status = status

	state := downloadButtonState(status)
	pa.downloadBtn.SetText(pa.loc.GetText(state.TextKey))
	pa.downloadBtn.SetIcon(state.Icon)
	pa.downloadBtn.Importance = state.Importance
	if state.Disabled {
		pa.downloadBtn.Disable()
	} else {
		pa.downloadBtn.Enable()
	}
	pa.downloadBtn.Refresh()
}

// Status returns the rendered export status
func (pa *PhotoActions) Status() model.ExportStatus {
	return pa.status
}

// RefreshTexts re-applies localized labels
func (pa *PhotoActions) RefreshTexts() {
	pa.uploadBtn.SetText(pa.loc.GetText(KeyUpload))
	pa.shareBtn.SetText(pa.loc.GetText(KeyShare))
	pa.SetStatus(pa.status)
}
