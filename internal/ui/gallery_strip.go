package ui

import (
	"image"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/photocalener/photo-calener/internal/model"
)

// GalleryStrip lists remembered images, newest first
type GalleryStrip struct {
	content  *fyne.Container
	empty    *widget.Label
	ids      []string
	thumbs   map[string]*Thumb
	images   map[string]image.Image
	onSelect func(id string)
}

// NewGalleryStrip creates an empty strip; onSelect receives the tapped entry ID
func NewGalleryStrip(emptyText string, onSelect func(id string)) *GalleryStrip {
	gs := &GalleryStrip{
		content:  container.NewHBox(),
		thumbs:   make(map[string]*Thumb),
		images:   make(map[string]image.Image),
		onSelect: onSelect,
	}
	gs.empty = widget.NewLabel(emptyText)
	gs.empty.Wrapping = fyne.TextWrapWord
	return gs
}

// Object returns the canvas object to place in the layout
func (gs *GalleryStrip) Object() fyne.CanvasObject {
	return container.NewStack(gs.empty, container.NewHScroll(gs.content))
}

// SetEmptyText updates the placeholder shown while the gallery is empty
func (gs *GalleryStrip) SetEmptyText(text string) {
	gs.empty.SetText(text)
}

// SetEntries syncs the strip with the gallery and highlights the entry
// showing current. It returns the entries that still need a thumbnail.
func (gs *GalleryStrip) SetEntries(entries []model.GalleryEntry, current model.ImageReference) []model.GalleryEntry {
	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ID
	}

	if !slices.Equal(ids, gs.ids) {
		gs.rebuild(entries)
		gs.ids = ids
	}

	if len(entries) == 0 {
		gs.empty.Show()
	} else {
		gs.empty.Hide()
	}

	var missing []model.GalleryEntry
	for _, entry := range entries {
		gs.thumbs[entry.ID].SetSelected(entry.Image.Equal(current))
		if _, ok := gs.images[entry.ID]; !ok {
			missing = append(missing, entry)
		}
	}
	return missing
}

// SetThumbnail attaches a decoded preview to an entry
func (gs *GalleryStrip) SetThumbnail(id string, img image.Image) {
	gs.images[id] = img
	if thumb, ok := gs.thumbs[id]; ok {
		thumb.SetImage(img)
	}
}

// Len returns the number of displayed entries
func (gs *GalleryStrip) Len() int {
	return len(gs.ids)
}

// rebuild recreates thumbs for the new entry list, dropping evicted ones
func (gs *GalleryStrip) rebuild(entries []model.GalleryEntry) {
	thumbs := make(map[string]*Thumb, len(entries))
	images := make(map[string]image.Image, len(entries))
	gs.content.RemoveAll()

	for _, entry := range entries {
		id := entry.ID // Capture for closure
		thumb, ok := gs.thumbs[id]
		if !ok {
			thumb = NewThumb(ThumbSize, "", func() {
				if gs.onSelect != nil {
					gs.onSelect(id)
				}
			})
		}
		if img, ok := gs.images[id]; ok {
			images[id] = img
			thumb.SetImage(img)
		}
		thumbs[id] = thumb
		gs.content.Add(thumb)
	}

	gs.thumbs = thumbs
	gs.images = images
}
