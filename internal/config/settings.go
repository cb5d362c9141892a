package config

import (
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/photocalener/photo-calener/internal/generate"
	"github.com/photocalener/photo-calener/internal/platform"
)

// ExportFormat is the encoding used for exported images
type ExportFormat string

const (
	FormatPNG  ExportFormat = "png"
	FormatJPEG ExportFormat = "jpeg"
)

// MediaType returns the media type for the format
func (f ExportFormat) MediaType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyExportFormat       = "export_format"
	KeyJPEGQuality        = "jpeg_quality"
	KeyCrossOrigin        = "cross_origin_mode"
	KeyAPIKey             = "api_key"
	KeyGenerationModel    = "generation_model"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyInstalled          = "installed"
)

// Environment variables holding the generation credential
const (
	EnvAPIKey       = "API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// Default values
const (
	DefaultExportFormat       = FormatPNG
	DefaultJPEGQuality        = 90
	DefaultCrossOrigin        = true
	DefaultGenerationModel    = generate.DefaultModel
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = os.TempDir()
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetExportFormat returns the configured export format
func (s *Settings) GetExportFormat() ExportFormat {
	format := ExportFormat(s.app.Preferences().String(KeyExportFormat))
	if format != FormatPNG && format != FormatJPEG {
		s.SetExportFormat(DefaultExportFormat)
		return DefaultExportFormat
	}
	return format
}

// SetExportFormat sets the export format; unknown formats select PNG
func (s *Settings) SetExportFormat(format ExportFormat) {
	if format != FormatJPEG {
		format = FormatPNG
	}
	s.app.Preferences().SetString(KeyExportFormat, string(format))
}

// GetExportFormatOptions returns available export formats
func (s *Settings) GetExportFormatOptions() []ExportFormat {
	return []ExportFormat{FormatPNG, FormatJPEG}
}

// GetJPEGQuality returns the JPEG quality (1-100)
func (s *Settings) GetJPEGQuality() int {
	value := s.app.Preferences().Int(KeyJPEGQuality)
	if value <= 0 {
		s.SetJPEGQuality(DefaultJPEGQuality)
		return DefaultJPEGQuality
	}
	return value
}

// SetJPEGQuality sets the JPEG quality
func (s *Settings) SetJPEGQuality(quality int) {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	s.app.Preferences().SetInt(KeyJPEGQuality, quality)
}

// GetCrossOriginMode returns whether remote images must grant cross-origin access
func (s *Settings) GetCrossOriginMode() bool {
	return s.app.Preferences().BoolWithFallback(KeyCrossOrigin, DefaultCrossOrigin)
}

// SetCrossOriginMode sets the cross-origin mode
func (s *Settings) SetCrossOriginMode(enabled bool) {
	s.app.Preferences().SetBool(KeyCrossOrigin, enabled)
}

// GetAPIKey returns the stored API key, falling back to the environment
func (s *Settings) GetAPIKey() string {
	if key := s.GetStoredAPIKey(); key != "" {
		return key
	}
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv(EnvGeminiAPIKey))
}

// GetStoredAPIKey returns the key saved in preferences, ignoring the environment
func (s *Settings) GetStoredAPIKey() string {
	return strings.TrimSpace(s.app.Preferences().String(KeyAPIKey))
}

// SetAPIKey stores the API key; an empty key clears the override
func (s *Settings) SetAPIKey(key string) {
	s.app.Preferences().SetString(KeyAPIKey, strings.TrimSpace(key))
}

// GetGenerationModel returns the model used for AI generation
func (s *Settings) GetGenerationModel() string {
	model := s.app.Preferences().String(KeyGenerationModel)
	if model == "" {
		s.SetGenerationModel(DefaultGenerationModel)
		return DefaultGenerationModel
	}
	return model
}

// SetGenerationModel sets the generation model
func (s *Settings) SetGenerationModel(model string) {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultGenerationModel
	}
	s.app.Preferences().SetString(KeyGenerationModel, model)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal saved files
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal saved files
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// IsInstalled reports whether the user accepted the install prompt
func (s *Settings) IsInstalled() bool {
	return s.app.Preferences().Bool(KeyInstalled)
}

// SetInstalled records the install outcome
func (s *Settings) SetInstalled(installed bool) {
	s.app.Preferences().SetBool(KeyInstalled, installed)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
