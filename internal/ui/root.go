package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/photocalener/photo-calener/internal/config"
	"github.com/photocalener/photo-calener/internal/export"
	"github.com/photocalener/photo-calener/internal/filter"
	"github.com/photocalener/photo-calener/internal/install"
	"github.com/photocalener/photo-calener/internal/model"
	"github.com/photocalener/photo-calener/internal/platform"
	"github.com/photocalener/photo-calener/internal/session"
	"github.com/photocalener/photo-calener/internal/upload"
)

// Services bundles what the screen talks to
type Services struct {
	Session  *session.Controller
	Exporter export.Exporter
	Install  *install.Controller
	Settings *config.Settings

	// Loader decodes images for display
	Loader export.Loader

	// ApplySettings pushes saved settings into running services
	ApplySettings func(*config.Settings)
}

// RootUI represents the main UI structure
type RootUI struct {
	window        fyne.Window
	app           fyne.App
	session       *session.Controller
	exporter      export.Exporter
	install       *install.Controller
	loader        export.Loader
	settings      *config.Settings
	localization  *Localization
	mobile        *MobileUI
	applySettings func(*config.Settings)

	// Header
	appTitle    *canvas.Text
	installBtn  *widget.Button
	loginBtn    *widget.Button
	settingsBtn *widget.Button

	// Photo card
	photo   *PhotoView
	actions *PhotoActions
	editBtn *widget.Button
	filters *FilterStrip

	// AI tool and gallery
	aiHeading      *widget.Label
	promptEntry    *widget.Entry
	generateBtn    *widget.Button
	galleryHeading *widget.Label
	gallery        *GalleryStrip

	// Calendar
	calendarHeading *widget.Label
	calendarBox     *fyne.Container

	content fyne.CanvasObject

	// Display state, touched on the UI goroutine only
	last          session.State
	shownRef      model.ImageReference
	shownFilter   string
	baseImage     image.Image
	imageLoading  bool
	loadSeq       uint64
	thumbsPending map[string]bool
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, services Services) *RootUI {
	settings := services.Settings

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	// Ensure directory exists
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		log.Printf("Failed to create download directory: %v", err)
	}

	ui := &RootUI{
		window:        window,
		app:           app,
		session:       services.Session,
		exporter:      services.Exporter,
		install:       services.Install,
		loader:        services.Loader,
		settings:      settings,
		localization:  localization,
		mobile:        NewMobileUI(app),
		applySettings: services.ApplySettings,
		thumbsPending: make(map[string]bool),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.mobile.SetupWindow(window)

	ui.exporter.SetUpdateCallback(ui.onExportUpdate)
	ui.session.OnChange(ui.onStateChange)
	ui.install.OnChange(ui.onInstallChange)

	ui.setupUI()
	ui.render(ui.session.Snapshot())
	return ui
}

// Start shows the splash screen, then the main screen. The install prompt is
// captured unless the user already accepted it.
func (ui *RootUI) Start() {
	ui.window.SetContent(newSplash(ui.localization))

	if !ui.settings.IsInstalled() {
		ui.install.Capture(newDialogSignal(ui.window, ui.localization))
	}

	time.AfterFunc(SplashDuration, func() {
		fyne.Do(func() {
			ui.window.SetContent(ui.content)
		})
	})
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// Header
	ui.appTitle = canvas.NewText(ui.localization.GetText(KeyAppTitle), ColorAccent)
	ui.appTitle.TextStyle = fyne.TextStyle{Bold: true}
	ui.appTitle.TextSize = theme.Size(theme.SizeNameHeadingText)

	ui.installBtn = widget.NewButton(IconInstall+" "+ui.localization.GetText(KeyInstall), ui.onInstallClick)
	ui.installBtn.Importance = widget.HighImportance
	ui.installBtn.Hide()

	ui.loginBtn = widget.NewButton(IconLogin+" "+ui.localization.GetText(KeyLogin), ui.onLoginClick)
	ui.loginBtn.Importance = widget.LowImportance

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, ui.appTitle, container.NewHBox(ui.installBtn, ui.loginBtn, ui.settingsBtn))

	// Photo card with actions and filters
	ui.photo = NewPhotoView(ui.mobile.PhotoHeight())
	ui.photo.OnGesture = ui.onPhotoGesture

	ui.actions = NewPhotoActions(ui.localization, ui.onUploadClick, ui.onShareClick, ui.onDownloadClick)

	ui.editBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyEditPhoto), theme.ColorPaletteIcon(), ui.session.ToggleFilters)
	ui.editBtn.Importance = widget.LowImportance

	ui.filters = NewFilterStrip(ui.onFilterSelected)

	// AI tool
	ui.aiHeading = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.promptEntry = widget.NewEntry()
	ui.promptEntry.OnSubmitted = func(string) {
		ui.onGenerateClick()
	}
	ui.generateBtn = widget.NewButton("", ui.onGenerateClick)
	ui.generateBtn.Importance = widget.HighImportance
	aiTool := container.NewBorder(nil, nil, nil, ui.generateBtn, ui.promptEntry)

	// Gallery
	ui.galleryHeading = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.gallery = NewGalleryStrip(ui.localization.GetText(KeyGalleryEmpty), ui.onGallerySelected)

	// Calendar
	ui.calendarHeading = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.calendarBox = container.NewStack(newCalendarView(ui.localization))

	body := container.NewVBox(
		header,
		ui.photo,
		ui.actions.Object(),
		ui.editBtn,
		ui.filters.Object(),
		widget.NewSeparator(),
		ui.mobile.Section(ui.aiHeading, aiTool),
		ui.mobile.Section(ui.galleryHeading, ui.gallery.Object()),
		widget.NewSeparator(),
		ui.mobile.Section(ui.calendarHeading, ui.calendarBox),
	)

	ui.content = container.NewVScroll(container.NewPadded(body))
	ui.refreshUITexts()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	// Settings menu item
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	loc := ui.localization

	ui.window.SetTitle(loc.GetText(KeyAppTitle))
	ui.appTitle.Text = loc.GetText(KeyAppTitle)
	ui.appTitle.Refresh()

	ui.installBtn.SetText(IconInstall + " " + loc.GetText(KeyInstall))
	ui.loginBtn.SetText(IconLogin + " " + loc.GetText(KeyLogin))
	ui.actions.RefreshTexts()
	ui.editBtn.SetText(loc.GetText(KeyEditPhoto))

	ui.aiHeading.SetText(IconSparkles + " " + loc.GetText(KeyAITool))
	ui.promptEntry.SetPlaceHolder(loc.GetText(KeyPromptPlaceholder))
	ui.generateBtn.SetText(loc.GetText(KeyGenerate))

	ui.galleryHeading.SetText(loc.GetText(KeyGallery))
	ui.gallery.SetEmptyText(loc.GetText(KeyGalleryEmpty))

	ui.calendarHeading.SetText(loc.GetText(KeyCalendar))
	ui.calendarBox.Objects = []fyne.CanvasObject{newCalendarView(loc)}
	ui.calendarBox.Refresh()
}

// onStateChange is called by the session controller from any goroutine
func (ui *RootUI) onStateChange(state session.State) {
	fyne.Do(func() {
		ui.render(state)
	})
}

// render brings the widgets in line with a session snapshot
func (ui *RootUI) render(state session.State) {
	ui.last = state

	ui.photo.SetTitle(state.Title)
	ui.photo.SetLoading(state.Loading || ui.imageLoading)
	ui.actions.SetStatus(state.Export)
	ui.filters.SetVisible(state.FiltersVisible)
	ui.filters.SetSelected(state.Filter.Key)

	if state.Loading {
		ui.generateBtn.Disable()
	} else {
		ui.generateBtn.Enable()
	}

	if !state.Image.Equal(ui.shownRef) {
		ui.shownRef = state.Image
		ui.loadImage(state.Image)
	} else if state.Filter.Key != ui.shownFilter {
		ui.refreshPhoto()
	}

	for _, entry := range ui.gallery.SetEntries(state.Gallery, state.Image) {
		ui.loadThumbnail(entry)
	}
}

// loadImage decodes ref in the background; results of superseded loads are dropped
func (ui *RootUI) loadImage(ref model.ImageReference) {
	ui.loadSeq++
	seq := ui.loadSeq

	if ref.IsZero() {
		ui.setBaseImage(nil)
		return
	}

	ui.imageLoading = true
	ui.photo.SetLoading(true)

	go func() {
		img, err := ui.loader.Load(context.Background(), ref)
		if err == nil {
			img = downscale(img, PhotoPreviewMaxSide)
		}

		fyne.Do(func() {
			if seq != ui.loadSeq {
				return
			}
			ui.imageLoading = false
			ui.photo.SetLoading(ui.last.Loading)

			if err != nil {
				log.Printf("Failed to load image for display: %v", err)
				ui.setBaseImage(nil)
				return
			}
			ui.setBaseImage(img)
		})
	}()
}

// setBaseImage replaces the decoded photo and every preview derived from it
func (ui *RootUI) setBaseImage(img image.Image) {
	ui.baseImage = img
	ui.filters.SetSource(img)
	ui.refreshPhoto()
}

// refreshPhoto re-applies the active filter to the decoded photo
func (ui *RootUI) refreshPhoto() {
	ui.shownFilter = ui.last.Filter.Key
	if ui.baseImage == nil {
		ui.photo.SetImage(nil)
		return
	}
	ui.photo.SetImage(filter.Preview(ui.baseImage, ui.last.Filter))
}

// loadThumbnail decodes a gallery entry for the strip
func (ui *RootUI) loadThumbnail(entry model.GalleryEntry) {
	if ui.thumbsPending[entry.ID] {
		return
	}
	ui.thumbsPending[entry.ID] = true

	go func() {
		img, err := ui.loader.Load(context.Background(), entry.Image)
		if err == nil {
			img = downscale(img, ThumbPreviewMaxSide)
		}

		fyne.Do(func() {
			delete(ui.thumbsPending, entry.ID)
			if err != nil {
				log.Printf("Failed to load thumbnail %s: %v", entry.ID, err)
				return
			}
			ui.gallery.SetThumbnail(entry.ID, img)
		})
	}()
}

// onFilterSelected handles taps on the filter strip
func (ui *RootUI) onFilterSelected(key string) {
	if err := ui.session.SetFilter(key); err != nil {
		log.Printf("Failed to set filter: %v", err)
	}
}

// onGallerySelected handles taps on the gallery strip
func (ui *RootUI) onGallerySelected(id string) {
	if err := ui.session.Select(id); err != nil {
		log.Printf("Failed to select gallery entry: %v", err)
	}
}

// onPhotoGesture pages through the gallery with swipes; a long press
// toggles the filter strip
func (ui *RootUI) onPhotoGesture(gesture GestureType) {
	step := 0
	switch gesture {
	case GestureSwipeLeft:
		step = 1
	case GestureSwipeRight:
		step = -1
	case GestureLongPress:
		ui.session.ToggleFilters()
		return
	default:
		return
	}

	ui.session.SelectAdjacent(step)
}

// onUploadClick opens a file picker limited to supported images
func (ui *RootUI) onUploadClick() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return
		}

		go func() {
			defer reader.Close()

			name := reader.URI().Name()
			if err := ui.session.Upload(context.Background(), name, reader); err != nil {
				fyne.Do(func() {
					dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyUploadFailed), err), ui.window)
				})
			}
		}()
	}, ui.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(upload.AcceptedExtensions))
	fileDialog.Show()
}

// onShareClick copies the image link to the clipboard
func (ui *RootUI) onShareClick() {
	ref := ui.last.Image
	if ref.Kind() != model.SourceRemote {
		ui.showMessage(ui.localization.GetText(KeyNothingToShare))
		return
	}

	fyne.CurrentApp().Clipboard().SetContent(ref.URL())
	ui.showMessage(ui.localization.GetText(KeyLinkCopied))
}

// onDownloadClick exports the displayed image with the active filter
func (ui *RootUI) onDownloadClick() {
	if ui.last.Export.IsActive() {
		return
	}

	go func() {
		result, err := ui.session.Download(context.Background())
		if errors.Is(err, session.ErrExportInProgress) {
			return
		}

		fyne.Do(func() {
			if err != nil {
				log.Printf("Download failed: %v", err)
				dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyDownloadFailed), err), ui.window)
				ui.session.ResetExport()
				return
			}

			log.Printf("Download saved to %s (%s)", result.OutputPath, result.Path)
			time.AfterFunc(DownloadResetDelay, ui.session.ResetExport)
		})
	}()
}

// onGenerateClick sends the prompt to the AI generator
func (ui *RootUI) onGenerateClick() {
	prompt := strings.TrimSpace(ui.promptEntry.Text)
	if prompt == "" || ui.last.Loading {
		return
	}

	go func() {
		if err := ui.session.Generate(context.Background(), prompt); err != nil {
			fyne.Do(func() {
				ui.showMessage(ui.localization.GetText(KeyGenerationFailed) + ": " + err.Error())
			})
		}
	}()
}

// onInstallChange shows the Install button while a prompt is captured
func (ui *RootUI) onInstallChange(install.State) {
	fyne.Do(func() {
		if ui.install.Available() {
			ui.installBtn.Show()
		} else {
			ui.installBtn.Hide()
		}
	})
}

// onInstallClick shows the captured install prompt
func (ui *RootUI) onInstallClick() {
	go func() {
		outcome, err := ui.install.Trigger(context.Background())
		if err != nil {
			log.Printf("Install prompt failed: %v", err)
			return
		}
		if outcome != install.OutcomeAccepted {
			return
		}

		ui.settings.SetInstalled(true)
		fyne.Do(func() {
			ui.showMessage(ui.localization.GetText(KeyInstallAccepted))
		})
	}()
}

// onLoginClick is a placeholder until accounts exist
func (ui *RootUI) onLoginClick() {
	ui.showMessage(ui.localization.GetText(KeyLoginUnavailable))
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		if ui.applySettings != nil {
			ui.applySettings(ui.settings)
		}
		if err := platform.CreateDirectoryIfNotExists(ui.settings.GetDownloadDirectory()); err != nil {
			log.Printf("Failed to create download directory: %v", err)
		}

		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()

		ui.showMessage(ui.localization.GetText(KeySettingsSaved))
	})
}

// showMessage shows a transient pop-up
func (ui *RootUI) showMessage(message string) {
	widget.ShowPopUp(widget.NewLabel(message), ui.window.Canvas())
}

// onExportUpdate is called by the export service from its goroutine
func (ui *RootUI) onExportUpdate(task *model.ExportTask) {
	log.Printf("Export %s: %s", task.ID, task.Status)

	if task.Status != model.ExportStatusSaved {
		return
	}

	fyne.Do(func() {
		ui.sendCompletionNotification(task)

		if ui.settings.GetAutoRevealOnComplete() && task.OutputPath != "" {
			log.Printf("Auto-revealing export %s: %s", task.ID, task.OutputPath)
			ui.onRevealFile(task.OutputPath)
		}
	})
}

// sendCompletionNotification sends a system notification for a saved export
func (ui *RootUI) sendCompletionNotification(task *model.ExportTask) {
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyDownloaded),
		Content: task.GetDisplayTitle(),
	})

	ui.showToastNotification(task)
}

// showToastNotification shows an in-app toast with file actions
func (ui *RootUI) showToastNotification(task *model.ExportTask) {
	titleLabel := widget.NewLabel(ui.localization.GetText(KeyDownloaded))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(task.GetDisplayTitle())
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	lines := []fyne.CanvasObject{messageLabel}
	if !task.Path.AppliesFilter() {
		note := widget.NewLabel(ui.localization.GetText(KeySavedUnfiltered))
		note.Importance = widget.WarningImportance
		lines = append(lines, note)
	}

	revealBtn := widget.NewButton(ui.localization.GetText(KeyReveal), func() {
		ui.onRevealFile(task.OutputPath)
	})
	revealBtn.Importance = widget.HighImportance

	openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() {
		ui.onOpenFile(task.OutputPath)
	})

	copyBtn := widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
		ui.onCopyPath(task.OutputPath)
	})
	copyBtn.Importance = widget.LowImportance

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, titleLabel, closeBtn)
	actions := container.NewHBox(revealBtn, openBtn, copyBtn)
	content := container.NewVBox(header)
	content.Objects = append(content.Objects, lines...)
	content.Add(actions)

	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	// Position in top-right corner
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(min(ToastWidth, canvasSize.Width-2*ToastMargin), ToastHeight)
	toastPos := fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin)

	toastPopup.Resize(toastSize)
	toastPopup.Move(toastPos)
	toastPopup.Show()

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toastPopup.Hide)
	})
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		ui.showMessage(ui.localization.GetText(KeyNoFilePath))
		return
	}

	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.showMessage(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onOpenFile handles opening a saved file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if filePath == "" {
		ui.showMessage(ui.localization.GetText(KeyNoFilePath))
		return
	}

	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		ui.showMessage(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onCopyPath handles copying file path to clipboard
func (ui *RootUI) onCopyPath(filePath string) {
	if filePath == "" {
		ui.showMessage(ui.localization.GetText(KeyNoFilePath))
		return
	}

	fyne.CurrentApp().Clipboard().SetContent(filePath)
	ui.showMessage(ui.localization.GetText(KeyPathCopied))
}
