package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// newSplash builds the start-up screen
func newSplash(loc *Localization) fyne.CanvasObject {
	title := canvas.NewText(loc.GetText(KeyAppTitle), ColorAccent)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = theme.Size(theme.SizeNameHeadingText) * 1.5
	title.Alignment = fyne.TextAlignCenter

	tagline := canvas.NewText(loc.GetText(KeyTagline), ColorMuted)
	tagline.Alignment = fyne.TextAlignCenter

	objects := []fyne.CanvasObject{}
	if logo, err := LoadLogoResource(); err == nil {
		img := canvas.NewImageFromResource(logo)
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(96, 96))
		objects = append(objects, img)
	}

	spinner := widget.NewProgressBarInfinite()
	objects = append(objects, title, tagline, spinner)

	return container.NewCenter(container.NewVBox(objects...))
}
