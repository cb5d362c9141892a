package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconSparkles = "✨"
	IconLogin    = "👤"
	IconInstall  = "⬇"
)

// Phone frame sizing
const (
	PhoneWidth  float32 = 390
	PhoneHeight float32 = 844

	PhotoHeight       float32 = 300
	ThumbSize         float32 = 64
	FilterThumbSize   float32 = 72
	CalendarCellSize  float32 = 36
	CalendarDotRadius float32 = 3
)

// Preview rendering: decoded images are downscaled before filtering
const (
	PhotoPreviewMaxSide  = 1024
	ThumbPreviewMaxSide  = 128
	ThumbCornerRadius    = 8
	SelectedBorderStroke = 2
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Delays
const (
	SplashDuration     = 2500 * time.Millisecond
	DownloadResetDelay = 2500 * time.Millisecond
)
