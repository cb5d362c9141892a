package ui

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/photocalener/photo-calener/internal/install"
)

// dialogSignal is the installability signal raised at start-up on platforms
// without a native install banner. Its prompt is a confirm dialog.
type dialogSignal struct {
	window fyne.Window
	loc    *Localization
	choice chan install.Outcome
	show   func(title, message string, callback func(bool), window fyne.Window)
}

func newDialogSignal(window fyne.Window, loc *Localization) *dialogSignal {
	return &dialogSignal{
		window: window,
		loc:    loc,
		choice: make(chan install.Outcome, 1),
		show:   dialog.ShowConfirm,
	}
}

// PreventDefault defers the prompt until the user presses Install
func (s *dialogSignal) PreventDefault() {
	log.Printf("Install prompt deferred until requested")
}

// Prompt opens the confirm dialog on the UI goroutine
func (s *dialogSignal) Prompt(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fyne.Do(func() {
		s.show(s.loc.GetText(KeyInstallTitle), s.loc.GetText(KeyInstallMessage), s.answer, s.window)
	})
	return nil
}

// UserChoice waits for the dialog to be answered
func (s *dialogSignal) UserChoice(ctx context.Context) (install.Outcome, error) {
	select {
	case outcome := <-s.choice:
		return outcome, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// answer resolves the choice; later answers are dropped
func (s *dialogSignal) answer(confirmed bool) {
	outcome := install.OutcomeDismissed
	if confirmed {
		outcome = install.OutcomeAccepted
	}

	select {
	case s.choice <- outcome:
	default:
	}
}
