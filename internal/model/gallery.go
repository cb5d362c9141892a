package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultGalleryCapacity is the number of recent images kept in the gallery
const DefaultGalleryCapacity = 15

// GalleryEntryIDPrefix prefixes generated gallery entry IDs
const GalleryEntryIDPrefix = "img-"

// GalleryEntry is a remembered, previously displayed image
type GalleryEntry struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Image   ImageReference `json:"-"`
	AddedAt time.Time      `json:"added_at"`
}

// Gallery keeps the most recent images, newest first
type Gallery struct {
	entries  []GalleryEntry
	capacity int
}

// NewGallery creates a gallery holding at most capacity entries
func NewGallery(capacity int) *Gallery {
	if capacity <= 0 {
		capacity = DefaultGalleryCapacity
	}
	return &Gallery{
		entries:  make([]GalleryEntry, 0, capacity),
		capacity: capacity,
	}
}

// Add prepends an entry, evicts the oldest ones beyond capacity and returns
// a snapshot of the gallery
func (g *Gallery) Add(title string, image ImageReference) []GalleryEntry {
	entry := GalleryEntry{
		ID:      generateEntryID(),
		Title:   title,
		Image:   image,
		AddedAt: time.Now(),
	}

	entries := make([]GalleryEntry, 0, len(g.entries)+1)
	entries = append(entries, entry)
	entries = append(entries, g.entries...)
	if len(entries) > g.capacity {
		entries = entries[:g.capacity]
	}
	g.entries = entries

	return g.Entries()
}

// Entries returns a snapshot of the gallery, newest first
func (g *Gallery) Entries() []GalleryEntry {
	out := make([]GalleryEntry, len(g.entries))
	copy(out, g.entries)
	return out
}

// Get returns the entry with the given ID
func (g *Gallery) Get(id string) (GalleryEntry, bool) {
	for _, entry := range g.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return GalleryEntry{}, false
}

// IndexOf returns the position of the entry showing image, or -1
func (g *Gallery) IndexOf(image ImageReference) int {
	for i, entry := range g.entries {
		if entry.Image.Equal(image) {
			return i
		}
	}
	return -1
}

// Adjacent returns the entry step positions away from the one showing image.
// An image outside the gallery steps forward onto the newest entry.
func (g *Gallery) Adjacent(image ImageReference, step int) (GalleryEntry, bool) {
	if len(g.entries) == 0 || step == 0 {
		return GalleryEntry{}, false
	}

	index := g.IndexOf(image)
	if index < 0 {
		if step > 0 {
			return g.entries[0], true
		}
		return GalleryEntry{}, false
	}

	next := index + step
	if next < 0 || next >= len(g.entries) {
		return GalleryEntry{}, false
	}
	return g.entries[next], true
}

// Len returns the number of entries
func (g *Gallery) Len() int {
	return len(g.entries)
}

// Capacity returns the maximum number of entries
func (g *Gallery) Capacity() int {
	return g.capacity
}

// generateEntryID generates a time-ordered entry ID
func generateEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(GalleryEntryIDPrefix+"%d", time.Now().UnixNano())
	}
	return GalleryEntryIDPrefix + id.String()
}
