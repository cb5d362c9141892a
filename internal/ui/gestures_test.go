package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
)

func TestGestureHandler_Classify(t *testing.T) {
	tests := []struct {
		name     string
		end      fyne.Position
		duration time.Duration
		expected GestureType
	}{
		{"tap", fyne.NewPos(103, 102), 100 * time.Millisecond, GestureTap},
		{"long press", fyne.NewPos(101, 100), time.Second, GestureLongPress},
		{"swipe left", fyne.NewPos(20, 110), 200 * time.Millisecond, GestureSwipeLeft},
		{"swipe right", fyne.NewPos(180, 90), 200 * time.Millisecond, GestureSwipeRight},
		{"swipe up", fyne.NewPos(110, 20), 200 * time.Millisecond, GestureSwipeUp},
		{"swipe down", fyne.NewPos(90, 180), 200 * time.Millisecond, GestureSwipeDown},
		{"slow swipe", fyne.NewPos(20, 100), time.Second, GestureSwipeLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got GestureType
			clock := time.Unix(0, 0)
			gh := NewGestureHandler(func(g GestureType) { got = g })
			gh.now = func() time.Time { return clock }

			gh.Begin(fyne.NewPos(100, 100))
			clock = clock.Add(tt.duration)
			gh.End(tt.end)

			if got != tt.expected {
				t.Errorf("Expected gesture %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestGestureHandler_CancelAndUnmatchedEnd(t *testing.T) {
	calls := 0
	gh := NewGestureHandler(func(GestureType) { calls++ })

	gh.End(fyne.NewPos(10, 10))
	if calls != 0 {
		t.Error("Expected End without Begin to be ignored")
	}

	gh.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(0, 0)}})
	gh.TouchCancel(&mobile.TouchEvent{})
	gh.TouchUp(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(200, 0)}})
	if calls != 0 {
		t.Error("Expected a cancelled touch to fire no gesture")
	}
}
