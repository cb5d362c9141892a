package ui

import "strings"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyTagline           = "tagline"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyInstall           = "install"
	KeyLogin             = "login"
	KeyLoginUnavailable  = "login_unavailable"
	KeyUpload            = "upload"
	KeyShare             = "share"
	KeyDownload          = "download"
	KeyDownloading       = "downloading"
	KeyDownloaded        = "downloaded"
	KeyDownloadFailed    = "download_failed"
	KeySavedUnfiltered   = "saved_unfiltered"
	KeyEditPhoto         = "edit_photo"
	KeyFilters           = "filters"
	KeyAITool            = "ai_tool"
	KeyPromptPlaceholder = "prompt_placeholder"
	KeyGenerate          = "generate"
	KeyGenerationFailed  = "generation_failed"
	KeyGallery           = "gallery"
	KeyGalleryEmpty      = "gallery_empty"
	KeyCalendar          = "calendar"
	KeyCalendarMonth     = "calendar_month"
	KeyWeekdays          = "weekdays"
	KeyLinkCopied        = "link_copied"
	KeyNothingToShare    = "nothing_to_share"
	KeyUploadFailed      = "upload_failed"
	KeyInstallTitle      = "install_title"
	KeyInstallMessage    = "install_message"
	KeyInstallAccepted   = "install_accepted"
	KeyDownloadDirectory = "download_directory"
	KeyExportFormat      = "export_format"
	KeyJPEGQuality       = "jpeg_quality"
	KeyCrossOrigin       = "cross_origin"
	KeyAPIKey            = "api_key"
	KeyGenerationModel   = "generation_model"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyReveal            = "reveal"
	KeyOpen              = "open"
	KeyPathCopied        = "path_copied"
	KeyNoFilePath        = "no_file_path"
	KeyErrorOpeningFile  = "error_opening_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Weekdays returns the seven calendar column headers, Monday first
func (l *Localization) Weekdays() []string {
	return strings.Split(l.GetText(KeyWeekdays), ",")
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Photo Calener",
		KeyTagline:           "Your photos, your days",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyInstall:           "Install",
		KeyLogin:             "Login",
		KeyLoginUnavailable:  "Sign-in is not available yet",
		KeyUpload:            "Upload",
		KeyShare:             "Share",
		KeyDownload:          "Download",
		KeyDownloading:       "Downloading...",
		KeyDownloaded:        "Downloaded",
		KeyDownloadFailed:    "Download failed",
		KeySavedUnfiltered:   "Saved without the filter",
		KeyEditPhoto:         "Edit photo",
		KeyFilters:           "Filters",
		KeyAITool:            "AI Image Generator",
		KeyPromptPlaceholder: "A husky wearing sunglasses on a beach",
		KeyGenerate:          "Generate",
		KeyGenerationFailed:  "Image generation failed",
		KeyGallery:           "Gallery",
		KeyGalleryEmpty:      "Uploaded and generated images appear here",
		KeyCalendar:          "Calendar",
		KeyCalendarMonth:     "September",
		KeyWeekdays:          "Mo,Tu,We,Th,Fr,Sa,Su",
		KeyLinkCopied:        "Image link copied to clipboard",
		KeyNothingToShare:    "Only web images can be shared as a link",
		KeyUploadFailed:      "Could not read the selected image",
		KeyInstallTitle:      "Install Photo Calener",
		KeyInstallMessage:    "Add Photo Calener to your device for quick access?",
		KeyInstallAccepted:   "Photo Calener installed",
		KeyDownloadDirectory: "Download Directory",
		KeyExportFormat:      "Export Format",
		KeyJPEGQuality:       "JPEG Quality",
		KeyCrossOrigin:       "Request cross-origin access for web images",
		KeyAPIKey:            "Gemini API Key",
		KeyGenerationModel:   "Generation Model",
		KeyAutoReveal:        "Reveal file after download",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyReveal:            "Reveal",
		KeyOpen:              "Open",
		KeyPathCopied:        "Path copied to clipboard",
		KeyNoFilePath:        "File path not available",
		KeyErrorOpeningFile:  "Error opening file",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Photo Calener",
		KeyTagline:           "Ваши фото, ваши дни",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyInstall:           "Установить",
		KeyLogin:             "Войти",
		KeyLoginUnavailable:  "Вход пока недоступен",
		KeyUpload:            "Загрузить",
		KeyShare:             "Поделиться",
		KeyDownload:          "Скачать",
		KeyDownloading:       "Скачивание...",
		KeyDownloaded:        "Скачано",
		KeyDownloadFailed:    "Ошибка скачивания",
		KeySavedUnfiltered:   "Сохранено без фильтра",
		KeyEditPhoto:         "Редактировать",
		KeyFilters:           "Фильтры",
		KeyAITool:            "Генератор изображений",
		KeyPromptPlaceholder: "Хаски в солнечных очках на пляже",
		KeyGenerate:          "Создать",
		KeyGenerationFailed:  "Не удалось создать изображение",
		KeyGallery:           "Галерея",
		KeyGalleryEmpty:      "Здесь появятся загруженные и созданные изображения",
		KeyCalendar:          "Календарь",
		KeyCalendarMonth:     "Сентябрь",
		KeyWeekdays:          "Пн,Вт,Ср,Чт,Пт,Сб,Вс",
		KeyLinkCopied:        "Ссылка на изображение скопирована",
		KeyNothingToShare:    "Ссылкой можно поделиться только для веб-изображений",
		KeyUploadFailed:      "Не удалось прочитать выбранное изображение",
		KeyInstallTitle:      "Установить Photo Calener",
		KeyInstallMessage:    "Добавить Photo Calener на устройство для быстрого доступа?",
		KeyInstallAccepted:   "Photo Calener установлен",
		KeyDownloadDirectory: "Папка загрузки",
		KeyExportFormat:      "Формат экспорта",
		KeyJPEGQuality:       "Качество JPEG",
		KeyCrossOrigin:       "Запрашивать кросс-доменный доступ для веб-изображений",
		KeyAPIKey:            "Ключ Gemini API",
		KeyGenerationModel:   "Модель генерации",
		KeyAutoReveal:        "Показывать файл после скачивания",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyReveal:            "Показать",
		KeyOpen:              "Открыть",
		KeyPathCopied:        "Путь скопирован в буфер обмена",
		KeyNoFilePath:        "Путь к файлу недоступен",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Photo Calener",
		KeyTagline:           "Suas fotos, seus dias",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyInstall:           "Instalar",
		KeyLogin:             "Entrar",
		KeyLoginUnavailable:  "O login ainda não está disponível",
		KeyUpload:            "Enviar",
		KeyShare:             "Compartilhar",
		KeyDownload:          "Baixar",
		KeyDownloading:       "Baixando...",
		KeyDownloaded:        "Baixado",
		KeyDownloadFailed:    "Falha no download",
		KeySavedUnfiltered:   "Salvo sem o filtro",
		KeyEditPhoto:         "Editar foto",
		KeyFilters:           "Filtros",
		KeyAITool:            "Gerador de Imagens IA",
		KeyPromptPlaceholder: "Um husky de óculos escuros na praia",
		KeyGenerate:          "Gerar",
		KeyGenerationFailed:  "Falha ao gerar a imagem",
		KeyGallery:           "Galeria",
		KeyGalleryEmpty:      "Imagens enviadas e geradas aparecem aqui",
		KeyCalendar:          "Calendário",
		KeyCalendarMonth:     "Setembro",
		KeyWeekdays:          "Se,Te,Qa,Qi,Sx,Sá,Do",
		KeyLinkCopied:        "Link da imagem copiado",
		KeyNothingToShare:    "Apenas imagens da web podem ser compartilhadas por link",
		KeyUploadFailed:      "Não foi possível ler a imagem selecionada",
		KeyInstallTitle:      "Instalar Photo Calener",
		KeyInstallMessage:    "Adicionar o Photo Calener ao seu dispositivo para acesso rápido?",
		KeyInstallAccepted:   "Photo Calener instalado",
		KeyDownloadDirectory: "Diretório de Download",
		KeyExportFormat:      "Formato de Exportação",
		KeyJPEGQuality:       "Qualidade JPEG",
		KeyCrossOrigin:       "Solicitar acesso de origem cruzada para imagens da web",
		KeyAPIKey:            "Chave da API Gemini",
		KeyGenerationModel:   "Modelo de Geração",
		KeyAutoReveal:        "Mostrar arquivo após o download",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Procurar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyReveal:            "Mostrar",
		KeyOpen:              "Abrir",
		KeyPathCopied:        "Caminho copiado para a área de transferência",
		KeyNoFilePath:        "Caminho do arquivo indisponível",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
	}
}
