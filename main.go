package main

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2/app"
	"github.com/gogpu/gg"

	"github.com/photocalener/photo-calener/internal/config"
	"github.com/photocalener/photo-calener/internal/export"
	"github.com/photocalener/photo-calener/internal/generate"
	"github.com/photocalener/photo-calener/internal/install"
	"github.com/photocalener/photo-calener/internal/platform"
	"github.com/photocalener/photo-calener/internal/session"
	"github.com/photocalener/photo-calener/internal/ui"
	"github.com/photocalener/photo-calener/internal/upload"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.photocalener.app"
	AppName = "Photo Calener"
)

func main() {
	// Log version information
	fmt.Printf("Photo Calener v%s starting...\n", version)

	// Route rasterizer diagnostics through the default logger
	gg.SetLogger(slog.Default())

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))

	// Initialize services
	settings := config.NewSettings(myApp)

	exportLoader := export.NewHTTPLoader(settings.GetCrossOriginMode())
	rasterizer := export.NewGGRasterizer(settings.GetJPEGQuality())
	saver := platform.NewFileSaver(settings.GetDownloadDirectory)

	exportSvc := export.NewService(exportLoader, rasterizer, export.NewHTTPFetcher(), saver)
	exportSvc.SetMediaType(settings.GetExportFormat().MediaType())

	generator := generate.NewDynamicGenerator(func() (string, string) {
		return settings.GetAPIKey(), settings.GetGenerationModel()
	})

	sessionCtrl := session.NewController(exportSvc, generator, upload.NewReader())

	// Create and setup UI
	root := ui.NewRootUI(myWindow, myApp, ui.Services{
		Session:  sessionCtrl,
		Exporter: exportSvc,
		Install:  install.NewController(),
		Settings: settings,
		Loader:   export.NewHTTPLoader(false),
		ApplySettings: func(s *config.Settings) {
			exportLoader.SetCrossOrigin(s.GetCrossOriginMode())
			rasterizer.SetJPEGQuality(s.GetJPEGQuality())
			exportSvc.SetMediaType(s.GetExportFormat().MediaType())
		},
	})
	root.Start()

	// Show and run
	myWindow.ShowAndRun()
}
