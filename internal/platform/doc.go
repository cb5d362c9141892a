package platform

// Package platform contains OS integration: the downloads directory, saving
// exported images without clobbering existing files, media scanner
// notification on Android, and revealing or opening saved files.
