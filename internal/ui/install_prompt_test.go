package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/photocalener/photo-calener/internal/install"
)

func TestDialogSignal_WithController(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	tests := []struct {
		name      string
		confirmed bool
		expected  install.Outcome
	}{
		{"accepted", true, install.OutcomeAccepted},
		{"dismissed", false, install.OutcomeDismissed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := newDialogSignal(a.NewWindow("test"), NewLocalization())
			var shownTitle string
			signal.show = func(title, message string, callback func(bool), _ fyne.Window) {
				shownTitle = title
				callback(tt.confirmed)
			}

			controller := install.NewController()
			controller.Capture(signal)
			if !controller.Available() {
				t.Fatal("Expected prompt to be available after capture")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			outcome, err := controller.Trigger(ctx)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if outcome != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, outcome)
			}
			if shownTitle != NewLocalization().GetText(KeyInstallTitle) {
				t.Errorf("Expected install title, got %q", shownTitle)
			}
			if controller.Available() {
				t.Error("Expected prompt to be consumed")
			}
		})
	}
}

func TestDialogSignal_CancelledWait(t *testing.T) {
	signal := newDialogSignal(nil, NewLocalization())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := signal.Prompt(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled from Prompt, got %v", err)
	}
	if _, err := signal.UserChoice(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled from UserChoice, got %v", err)
	}
}

func TestDialogSignal_SecondAnswerDropped(t *testing.T) {
	signal := newDialogSignal(nil, NewLocalization())
	signal.answer(true)
	signal.answer(false)

	outcome, err := signal.UserChoice(context.Background())
	if err != nil || outcome != install.OutcomeAccepted {
		t.Errorf("Expected first answer to win, got %s, %v", outcome, err)
	}
}
