package install

// Package install tracks the one-shot "install this app" prompt. A platform
// raises a Signal once the app is installable; the controller holds on to it
// until the user asks to install, shows the prompt once and reports the
// outcome.
