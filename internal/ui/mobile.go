package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
)

// MobileUI provides mobile-specific UI enhancements
type MobileUI struct {
	app fyne.App
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile()
}

// SetupWindow sizes the window as a phone frame on desktop; mobile windows
// are always full screen
func (m *MobileUI) SetupWindow(window fyne.Window) {
	if m.IsMobileDevice() {
		return
	}
	window.Resize(fyne.NewSize(PhoneWidth, PhoneHeight))
	window.SetFixedSize(true)
}

// Section stacks a heading over its content
func (m *MobileUI) Section(heading, content fyne.CanvasObject) fyne.CanvasObject {
	return container.NewVBox(
		heading,
		content,
		layout.NewSpacer(),
	)
}

// GetDeviceOrientation returns the current device orientation
func (m *MobileUI) GetDeviceOrientation() fyne.DeviceOrientation {
	return fyne.CurrentDevice().Orientation()
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	orientation := m.GetDeviceOrientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}

// PhotoHeight returns the main photo height; landscape phones get a shorter card
func (m *MobileUI) PhotoHeight() float32 {
	if m.IsMobileDevice() && m.IsLandscape() {
		return PhotoHeight * 2 / 3
	}
	return PhotoHeight
}
