package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/photocalener/photo-calener/internal/config"
)

func TestSettingsDialog_LoadAndApply(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvGeminiAPIKey, "")

	settings := config.NewSettings(a)
	settings.SetExportFormat(config.FormatJPEG)
	settings.SetJPEGQuality(70)
	settings.SetLanguage("ru")

	saved := 0
	sd := NewSettingsDialog(settings, NewLocalization(), a.NewWindow("test"), func() { saved++ })
	sd.loadCurrentSettings()

	if sd.formatSelect.Selected != string(config.FormatJPEG) {
		t.Errorf("Expected jpeg selected, got %q", sd.formatSelect.Selected)
	}
	if sd.qualitySlider.Value != 70 {
		t.Errorf("Expected quality 70, got %v", sd.qualitySlider.Value)
	}
	if sd.languageSelect.Selected != "Русский" {
		t.Errorf("Expected Russian selected, got %q", sd.languageSelect.Selected)
	}

	sd.downloadDirEntry.SetText(t.TempDir())
	sd.formatSelect.SetSelected(string(config.FormatPNG))
	sd.qualitySlider.SetValue(55)
	sd.crossOriginCheck.SetChecked(false)
	sd.apiKeyEntry.SetText("secret")
	sd.modelEntry.SetText("")
	sd.autoRevealCheck.SetChecked(true)
	sd.languageSelect.SetSelected("Português")

	sd.onSave(false)
	if saved != 0 {
		t.Error("Expected cancel to skip the callback")
	}

	sd.onSave(true)
	if saved != 1 {
		t.Errorf("Expected one save callback, got %d", saved)
	}

	if settings.GetExportFormat() != config.FormatPNG {
		t.Errorf("Expected png, got %s", settings.GetExportFormat())
	}
	if settings.GetJPEGQuality() != 55 {
		t.Errorf("Expected quality 55, got %d", settings.GetJPEGQuality())
	}
	if settings.GetCrossOriginMode() {
		t.Error("Expected cross-origin mode off")
	}
	if settings.GetAPIKey() != "secret" {
		t.Errorf("Expected stored key, got %q", settings.GetAPIKey())
	}
	if settings.GetGenerationModel() != config.DefaultGenerationModel {
		t.Errorf("Expected default model, got %s", settings.GetGenerationModel())
	}
	if !settings.GetAutoRevealOnComplete() {
		t.Error("Expected auto-reveal on")
	}
	if settings.GetLanguage() != "pt" {
		t.Errorf("Expected pt, got %s", settings.GetLanguage())
	}
}
