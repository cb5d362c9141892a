package filter

// Package filter holds the static filter catalog and the colour-matrix engine
// that evaluates it. Both the on-screen previews and the export rasterizer
// compile filters through this package, so a filter looks the same in the
// filter strip and in the saved file.
