package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// PhotoView shows the current photo with its title overlay and a loading
// indicator. Horizontal swipes and long presses are reported through OnGesture.
type PhotoView struct {
	widget.BaseWidget

	OnGesture func(GestureType)

	photo    *canvas.Image
	title    *canvas.Text
	shade    *canvas.LinearGradient
	spinner  *widget.ProgressBarInfinite
	gestures *GestureHandler

	dragging bool
	lastDrag fyne.Position
	height   float32
}

// NewPhotoView creates an empty photo card of the given height
func NewPhotoView(height float32) *PhotoView {
	pv := &PhotoView{height: height}

	pv.photo = canvas.NewImageFromImage(nil)
	pv.photo.FillMode = canvas.ImageFillContain
	pv.photo.ScaleMode = canvas.ImageScaleSmooth

	pv.title = canvas.NewText("", color.White)
	pv.title.TextStyle = fyne.TextStyle{Bold: true}
	pv.title.TextSize = 18

	pv.shade = canvas.NewVerticalGradient(color.Transparent, ColorOverlay)

	pv.spinner = widget.NewProgressBarInfinite()
	pv.spinner.Hide()

	pv.gestures = NewGestureHandler(func(g GestureType) {
		if pv.OnGesture != nil {
			pv.OnGesture(g)
		}
	})

	pv.ExtendBaseWidget(pv)
	return pv
}

// SetImage replaces the displayed photo; nil clears it
func (pv *PhotoView) SetImage(img image.Image) {
	pv.photo.Image = img
	pv.photo.Refresh()
}

// Image returns the displayed photo
func (pv *PhotoView) Image() image.Image {
	return pv.photo.Image
}

// SetTitle updates the overlay text
func (pv *PhotoView) SetTitle(title string) {
	pv.title.Text = title
	pv.title.Refresh()
}

// Title returns the overlay text
func (pv *PhotoView) Title() string {
	return pv.title.Text
}

// SetLoading shows or hides the loading indicator
func (pv *PhotoView) SetLoading(loading bool) {
	if loading {
		pv.spinner.Show()
		pv.spinner.Start()
		return
	}
	pv.spinner.Stop()
	pv.spinner.Hide()
}

// Loading reports whether the loading indicator is shown
func (pv *PhotoView) Loading() bool {
	return pv.spinner.Visible()
}

// CreateRenderer builds the card layers
func (pv *PhotoView) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.NRGBA{A: 255})
	background.CornerRadius = 16
	background.SetMinSize(fyne.NewSize(0, pv.height))

	overlay := container.NewBorder(nil,
		container.NewStack(pv.shade, container.NewPadded(pv.title)),
		nil, nil)

	content := container.NewStack(
		background,
		pv.photo,
		overlay,
		container.NewBorder(pv.spinner, nil, nil, nil),
	)
	return widget.NewSimpleRenderer(content)
}

// Dragged tracks pointer drags so desktop users can swipe with the mouse
func (pv *PhotoView) Dragged(ev *fyne.DragEvent) {
	if !pv.dragging {
		pv.dragging = true
		pv.gestures.Begin(ev.Position.Subtract(ev.Dragged))
	}
	pv.lastDrag = ev.Position
}

// DragEnd completes a pointer swipe
func (pv *PhotoView) DragEnd() {
	if !pv.dragging {
		return
	}
	pv.dragging = false
	pv.gestures.End(pv.lastDrag)
}

// TouchDown forwards mobile touches to the gesture handler
func (pv *PhotoView) TouchDown(ev *mobile.TouchEvent) {
	pv.gestures.TouchDown(ev)
}

// TouchUp forwards mobile touches to the gesture handler
func (pv *PhotoView) TouchUp(ev *mobile.TouchEvent) {
	pv.gestures.TouchUp(ev)
}

// TouchCancel forwards mobile touches to the gesture handler
func (pv *PhotoView) TouchCancel(ev *mobile.TouchEvent) {
	pv.gestures.TouchCancel(ev)
}
