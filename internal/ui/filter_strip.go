package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/photocalener/photo-calener/internal/filter"
)

// FilterStrip shows one live preview per catalog filter
type FilterStrip struct {
	content  *fyne.Container
	scroll   *container.Scroll
	thumbs   map[string]*Thumb
	onSelect func(key string)
	selected string
}

// NewFilterStrip creates the strip; onSelect receives the tapped filter key
func NewFilterStrip(onSelect func(key string)) *FilterStrip {
	fs := &FilterStrip{
		content:  container.NewHBox(),
		thumbs:   make(map[string]*Thumb),
		onSelect: onSelect,
		selected: filter.KeyNone,
	}

	for _, d := range filter.All() {
		key := d.Key // Capture for closure
		thumb := NewThumb(FilterThumbSize, d.Name, func() {
			if fs.onSelect != nil {
				fs.onSelect(key)
			}
		})
		fs.thumbs[key] = thumb
		fs.content.Add(thumb)
	}
	fs.thumbs[fs.selected].SetSelected(true)

	fs.scroll = container.NewHScroll(fs.content)
	return fs
}

// Object returns the canvas object to place in the layout
func (fs *FilterStrip) Object() fyne.CanvasObject {
	return fs.scroll
}

// SetSource renders every preview from img
func (fs *FilterStrip) SetSource(img image.Image) {
	small := downscale(img, ThumbPreviewMaxSide)
	for _, d := range filter.All() {
		var preview image.Image
		if small != nil {
			preview = filter.Preview(small, d)
		}
		fs.thumbs[d.Key].SetImage(preview)
	}
}

// SetSelected moves the selection ring to key
func (fs *FilterStrip) SetSelected(key string) {
	if key == fs.selected {
		return
	}
	if thumb, ok := fs.thumbs[fs.selected]; ok {
		thumb.SetSelected(false)
	}
	if thumb, ok := fs.thumbs[key]; ok {
		thumb.SetSelected(true)
	}
	fs.selected = key
}

// Selected returns the highlighted filter key
func (fs *FilterStrip) Selected() string {
	return fs.selected
}

// SetVisible shows or hides the strip
func (fs *FilterStrip) SetVisible(visible bool) {
	if visible {
		fs.scroll.Show()
	} else {
		fs.scroll.Hide()
	}
}
