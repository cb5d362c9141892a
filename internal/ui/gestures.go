package ui

import (
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
)

// GestureType represents different types of gestures
type GestureType int

const (
	GestureNone GestureType = iota
	GestureTap
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeUp
	GestureSwipeDown
	GestureLongPress
)

// Gesture thresholds constants
const (
	DefaultSwipeThreshold    float32 = 50.0
	DefaultLongPressDuration         = 500 * time.Millisecond
)

// GestureHandler turns touch or pointer drags into gestures
type GestureHandler struct {
	onGesture func(GestureType)

	// Touch tracking
	active         bool
	touchStartTime time.Time
	touchStartPos  fyne.Position

	// Gesture thresholds
	swipeThreshold    float32
	longPressDuration time.Duration

	now func() time.Time
}

// NewGestureHandler creates a new gesture handler
func NewGestureHandler(onGesture func(GestureType)) *GestureHandler {
	return &GestureHandler{
		onGesture:         onGesture,
		swipeThreshold:    DefaultSwipeThreshold,
		longPressDuration: DefaultLongPressDuration,
		now:               time.Now,
	}
}

// Begin starts tracking at pos
func (gh *GestureHandler) Begin(pos fyne.Position) {
	gh.active = true
	gh.touchStartTime = gh.now()
	gh.touchStartPos = pos
}

// End finishes tracking at pos and fires the detected gesture
func (gh *GestureHandler) End(pos fyne.Position) {
	if !gh.active {
		return
	}
	gh.active = false

	gesture := gh.classify(pos.X-gh.touchStartPos.X, pos.Y-gh.touchStartPos.Y, gh.now().Sub(gh.touchStartTime))
	if gesture != GestureNone && gh.onGesture != nil {
		gh.onGesture(gesture)
	}
}

// Cancel drops the gesture in progress
func (gh *GestureHandler) Cancel() {
	gh.active = false
}

// classify maps a movement and duration to a gesture
func (gh *GestureHandler) classify(dx, dy float32, duration time.Duration) GestureType {
	distance := float32(math.Hypot(float64(dx), float64(dy)))

	if distance >= gh.swipeThreshold {
		return swipeDirection(dx, dy)
	}
	if duration >= gh.longPressDuration {
		return GestureLongPress
	}
	return GestureTap
}

// swipeDirection determines the primary direction of a swipe
func swipeDirection(dx, dy float32) GestureType {
	if abs32(dx) > abs32(dy) {
		if dx > 0 {
			return GestureSwipeRight
		}
		return GestureSwipeLeft
	}
	if dy > 0 {
		return GestureSwipeDown
	}
	return GestureSwipeUp
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// TouchDown handles touch down events for gesture detection
func (gh *GestureHandler) TouchDown(event *mobile.TouchEvent) {
	gh.Begin(event.Position)
}

// TouchUp handles touch up events for gesture detection
func (gh *GestureHandler) TouchUp(event *mobile.TouchEvent) {
	gh.End(event.Position)
}

// TouchCancel handles touch cancel events
func (gh *GestureHandler) TouchCancel(*mobile.TouchEvent) {
	gh.Cancel()
}
