package ui

import (
	"fmt"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/photocalener/photo-calener/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	loc      *Localization
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	downloadDirEntry *widget.Entry
	formatSelect     *widget.Select
	qualitySlider    *widget.Slider
	qualityLabel     *widget.Label
	crossOriginCheck *widget.Check
	apiKeyEntry      *widget.Entry
	modelEntry       *widget.Entry
	languageSelect   *widget.Select
	autoRevealCheck  *widget.Check

	languageCodes map[string]string // display name -> code
}

// ShowSettingsDialog opens the settings dialog; onSaved runs after the
// values have been stored
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, loc *Localization, onSaved func()) {
	NewSettingsDialog(settings, loc, window, onSaved).Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, loc *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:      settings,
		loc:           loc,
		window:        window,
		onSaved:       onSaved,
		languageCodes: make(map[string]string),
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Download directory selection
	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(sd.loc.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	// Export format and quality
	formatOptions := []string{}
	for _, format := range sd.settings.GetExportFormatOptions() {
		formatOptions = append(formatOptions, string(format))
	}
	sd.formatSelect = widget.NewSelect(formatOptions, nil)

	sd.qualityLabel = widget.NewLabel("")
	sd.qualitySlider = widget.NewSlider(1, 100)
	sd.qualitySlider.Step = 1
	sd.qualitySlider.OnChanged = func(v float64) {
		sd.qualityLabel.SetText(fmt.Sprintf("%.0f", v))
	}
	qualityRow := container.NewBorder(nil, nil, nil, sd.qualityLabel, sd.qualitySlider)

	sd.crossOriginCheck = widget.NewCheck(sd.loc.GetText(KeyCrossOrigin), nil)

	// Generation
	sd.apiKeyEntry = widget.NewPasswordEntry()
	sd.apiKeyEntry.SetPlaceHolder(config.EnvAPIKey)
	sd.modelEntry = widget.NewEntry()
	sd.modelEntry.SetPlaceHolder(config.DefaultGenerationModel)

	// Language selection, ordered by display name
	names := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		names = append(names, name)
	}
	sort.Strings(names)
	sd.languageSelect = widget.NewSelect(names, nil)

	sd.autoRevealCheck = widget.NewCheck(sd.loc.GetText(KeyAutoReveal), nil)

	form := widget.NewForm(
		widget.NewFormItem(sd.loc.GetText(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(sd.loc.GetText(KeyExportFormat), sd.formatSelect),
		widget.NewFormItem(sd.loc.GetText(KeyJPEGQuality), qualityRow),
		widget.NewFormItem("", sd.crossOriginCheck),
		widget.NewFormItem("", sd.autoRevealCheck),
		widget.NewFormItem(sd.loc.GetText(KeyAPIKey), sd.apiKeyEntry),
		widget.NewFormItem(sd.loc.GetText(KeyGenerationModel), sd.modelEntry),
		widget.NewFormItem(sd.loc.GetText(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.loc.GetText(KeySettings),
		sd.loc.GetText(KeySave),
		sd.loc.GetText(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(PhoneWidth-20, 520))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.formatSelect.SetSelected(string(sd.settings.GetExportFormat()))
	sd.qualitySlider.SetValue(float64(sd.settings.GetJPEGQuality()))
	sd.qualityLabel.SetText(fmt.Sprintf("%d", sd.settings.GetJPEGQuality()))
	sd.crossOriginCheck.SetChecked(sd.settings.GetCrossOriginMode())
	sd.apiKeyEntry.SetText(sd.settings.GetStoredAPIKey())
	sd.modelEntry.SetText(sd.settings.GetGenerationModel())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
		}
	}
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	sd.apply()

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// apply stores the form values
func (sd *SettingsDialog) apply() {
	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if sd.formatSelect.Selected != "" {
		sd.settings.SetExportFormat(config.ExportFormat(sd.formatSelect.Selected))
	}

	sd.settings.SetJPEGQuality(int(sd.qualitySlider.Value))
	sd.settings.SetCrossOriginMode(sd.crossOriginCheck.Checked)
	sd.settings.SetAPIKey(sd.apiKeyEntry.Text)
	sd.settings.SetGenerationModel(sd.modelEntry.Text)
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
}
