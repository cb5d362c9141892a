package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestThumb_TapAndSelect(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	taps := 0
	thumb := NewThumb(ThumbSize, "Clarendon", func() { taps++ })

	test.Tap(thumb)
	if taps != 1 {
		t.Errorf("Expected 1 tap, got %d", taps)
	}

	thumb.SetSelected(true)
	if !thumb.Selected() {
		t.Error("Expected thumb to be selected")
	}
	thumb.SetSelected(false)
	if thumb.Selected() {
		t.Error("Expected thumb to be deselected")
	}
}
