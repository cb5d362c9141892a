package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Thumb is a tappable square preview with a caption and a selection ring
type Thumb struct {
	widget.BaseWidget

	OnTapped func()

	image    *canvas.Image
	caption  *canvas.Text
	ring     *canvas.Rectangle
	size     float32
	selected bool
}

// NewThumb creates a thumbnail of the given edge length
func NewThumb(size float32, caption string, onTapped func()) *Thumb {
	t := &Thumb{OnTapped: onTapped, size: size}

	t.image = canvas.NewImageFromImage(nil)
	t.image.FillMode = canvas.ImageFillContain
	t.image.SetMinSize(fyne.NewSize(size, size))

	t.caption = canvas.NewText(caption, theme.Color(theme.ColorNameForeground))
	t.caption.Alignment = fyne.TextAlignCenter
	t.caption.TextSize = theme.Size(theme.SizeNameCaptionText)

	t.ring = canvas.NewRectangle(color.Transparent)
	t.ring.CornerRadius = ThumbCornerRadius
	t.ring.StrokeWidth = SelectedBorderStroke

	t.ExtendBaseWidget(t)
	return t
}

// SetImage replaces the preview
func (t *Thumb) SetImage(img image.Image) {
	t.image.Image = img
	t.image.Refresh()
}

// SetSelected toggles the selection ring
func (t *Thumb) SetSelected(selected bool) {
	t.selected = selected
	if selected {
		t.ring.StrokeColor = ColorAccent
	} else {
		t.ring.StrokeColor = color.Transparent
	}
	t.ring.Refresh()
}

// Selected reports whether the ring is shown
func (t *Thumb) Selected() bool {
	return t.selected
}

// Tapped handles taps and clicks
func (t *Thumb) Tapped(*fyne.PointEvent) {
	if t.OnTapped != nil {
		t.OnTapped()
	}
}

// CreateRenderer stacks the ring over the image above the caption
func (t *Thumb) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(ColorAccentSoft)
	background.CornerRadius = ThumbCornerRadius

	tile := container.NewStack(background, container.NewPadded(t.image), t.ring)
	content := container.NewVBox(tile)
	if t.caption.Text != "" {
		content.Add(t.caption)
	}
	return widget.NewSimpleRenderer(content)
}
