package upload

// Package upload reads user-picked image files into inline image references.
