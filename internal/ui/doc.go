package ui

// Package ui contains the Fyne user interface: a single phone-style screen with
// the photo card, filter and gallery strips, the AI tool, and the calendar. It
// forwards user actions to the session controller and renders its snapshots.
// All UI strings are localized via Localization.
