package ui

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// downscale returns img resized so that its longer side is at most maxSide.
// Smaller images are returned unchanged.
func downscale(img image.Image, maxSide int) image.Image {
	if img == nil || maxSide <= 0 {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	if w >= h {
		h = max(1, h*maxSide/w)
		w = maxSide
	} else {
		w = max(1, w*maxSide/h)
		h = maxSide
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
