package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/photocalener/photo-calener/internal/export"
	"github.com/photocalener/photo-calener/internal/filter"
	"github.com/photocalener/photo-calener/internal/generate"
	"github.com/photocalener/photo-calener/internal/model"
)

// Initial content and title conventions
const (
	DefaultImageURL       = "https://i.imgur.com/zAe45cl.jpeg"
	DefaultTitle          = "Summer Memories"
	UploadedTitlePrefix   = "Uploaded: "
	GeneratedTitlePrefix  = "AI: "
	GenerationFailedTitle = "Generation Failed"
)

var (
	// ErrNoImage is returned by Download when no image is displayed
	ErrNoImage = errors.New("no image to download")

	// ErrExportInProgress is returned by Download while another export runs
	ErrExportInProgress = errors.New("an export is already in progress")
)

// Uploader reads a picked file into an image reference
type Uploader interface {
	Read(name string, src io.Reader) (model.ImageReference, error)
}

// State is an immutable snapshot of the screen state
type State struct {
	Image          model.ImageReference
	Title          string
	Filter         filter.Descriptor
	Gallery        []model.GalleryEntry
	FiltersVisible bool
	Loading        bool
	Export         model.ExportStatus
	LastExport     *export.Result
}

// Controller serializes every state change and notifies listeners
type Controller struct {
	mu             sync.Mutex
	image          model.ImageReference
	title          string
	filter         filter.Descriptor
	gallery        *model.Gallery
	filtersVisible bool
	loading        bool
	exportStatus   model.ExportStatus
	lastExport     *export.Result

	exporter  export.Exporter
	generator generate.Generator
	uploader  Uploader
	listeners []func(State)
}

// NewController creates a controller showing the default image
func NewController(exporter export.Exporter, generator generate.Generator, uploader Uploader) *Controller {
	image, err := model.NewRemoteReference(DefaultImageURL)
	if err != nil {
		log.Printf("Invalid default image URL: %v", err)
	}

	return &Controller{
		image:        image,
		title:        DefaultTitle,
		filter:       filter.Default(),
		gallery:      model.NewGallery(model.DefaultGalleryCapacity),
		exportStatus: model.ExportStatusIdle,
		exporter:     exporter,
		generator:    generator,
		uploader:     uploader,
	}
}

// OnChange registers a listener called with a snapshot after every change
func (c *Controller) OnChange(listener func(State)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, listener)
	c.mu.Unlock()
}

// Snapshot returns the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetImage displays ref under title
func (c *Controller) SetImage(ref model.ImageReference, title string) {
	c.update(func() {
		c.image = ref
		c.title = title
	})
}

// SetFilter activates the catalog filter with the given key
func (c *Controller) SetFilter(key string) error {
	d, ok := filter.Lookup(key)
	if !ok {
		return fmt.Errorf("unknown filter: %s", key)
	}
	c.update(func() {
		c.filter = d
	})
	return nil
}

// ToggleFilters shows or hides the filter strip
func (c *Controller) ToggleFilters() {
	c.update(func() {
		c.filtersVisible = !c.filtersVisible
	})
}

// AppendGallery adds an entry to the front of the gallery
func (c *Controller) AppendGallery(title string, ref model.ImageReference) {
	c.update(func() {
		c.gallery.Add(title, ref)
	})
}

// Select displays the gallery entry with the given ID
func (c *Controller) Select(id string) error {
	c.mu.Lock()
	entry, ok := c.gallery.Get(id)
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("gallery entry not found: %s", id)
	}

	c.SetImage(entry.Image, entry.Title)
	return nil
}

// SelectAdjacent shows the gallery entry step positions away from the
// current image and reports whether one existed
func (c *Controller) SelectAdjacent(step int) bool {
	c.mu.Lock()
	entry, ok := c.gallery.Adjacent(c.image, step)
	c.mu.Unlock()
	if !ok {
		return false
	}

	c.SetImage(entry.Image, entry.Title)
	return true
}

// Upload reads a picked file, displays it and resets the filter
func (c *Controller) Upload(ctx context.Context, name string, src io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ref, err := c.uploader.Read(name, src)
	if err != nil {
		log.Printf("Upload of %s failed: %v", name, err)
		return err
	}

	c.update(func() {
		c.image = ref
		c.title = name
		c.gallery.Add(UploadedTitlePrefix+name, ref)
		c.filter = filter.Default()
	})
	log.Printf("Uploaded %s (%d bytes)", name, ref.Size())
	return nil
}

// Generate asks the generator for an image. Empty prompts and calls made
// while a generation runs are ignored.
func (c *Controller) Generate(ctx context.Context, prompt string) error {
	prompt = strings.TrimSpace(prompt)

	c.mu.Lock()
	if prompt == "" || c.loading {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.title = GeneratedTitlePrefix + prompt
	c.mu.Unlock()
	c.notify()

	ref, err := c.generator.Generate(ctx, prompt)

	c.update(func() {
		c.loading = false
		if err != nil {
			c.title = GenerationFailedTitle
			return
		}
		c.image = ref
		c.gallery.Add(GeneratedTitlePrefix+prompt, ref)
	})

	if err != nil {
		log.Printf("Generation failed: %v", err)
		return err
	}
	return nil
}

// Download exports the displayed image with the active filter.
// Only one export may run at a time.
func (c *Controller) Download(ctx context.Context) (*export.Result, error) {
	c.mu.Lock()
	if c.exportStatus.IsActive() {
		c.mu.Unlock()
		return nil, ErrExportInProgress
	}
	if c.image.IsZero() {
		c.mu.Unlock()
		return nil, ErrNoImage
	}
	req := export.Request{Image: c.image, Title: c.title, Filter: c.filter}
	c.exportStatus = model.ExportStatusExporting
	c.mu.Unlock()
	c.notify()

	result, err := c.exporter.Export(ctx, req)

	c.update(func() {
		if err != nil {
			c.exportStatus = model.ExportStatusFailed
			return
		}
		c.exportStatus = model.ExportStatusSaved
		c.lastExport = result
	})
	return result, err
}

// ResetExport returns a finished export to idle
func (c *Controller) ResetExport() {
	c.mu.Lock()
	if !c.exportStatus.IsFinished() {
		c.mu.Unlock()
		return
	}
	c.exportStatus = model.ExportStatusIdle
	c.mu.Unlock()
	c.notify()
}

// update applies fn under the lock and notifies listeners
func (c *Controller) update(fn func()) {
	c.mu.Lock()
	fn()
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	c.mu.Lock()
	state := c.snapshotLocked()
	listeners := append(([]func(State))(nil), c.listeners...)
	c.mu.Unlock()

	for _, listener := range listeners {
		listener(state)
	}
}

func (c *Controller) snapshotLocked() State {
	d := c.filter
	d.Adjustments = append([]filter.Adjustment(nil), d.Adjustments...)
	return State{
		Image:          c.image,
		Title:          c.title,
		Filter:         d,
		Gallery:        c.gallery.Entries(),
		FiltersVisible: c.filtersVisible,
		Loading:        c.loading,
		Export:         c.exportStatus,
		LastExport:     c.lastExport,
	}
}
