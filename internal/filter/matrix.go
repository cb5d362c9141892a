package filter

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Luminance weights from the Filter Effects colour matrices
const (
	lumR = 0.213
	lumG = 0.715
	lumB = 0.072
)

// Matrix is a 4x5 colour transformation in row-major order working on
// straight-alpha channel values in [0, 255]:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
type Matrix [20]float64

// Identity returns a matrix that leaves colours unchanged
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// SaturateMatrix scales saturation: 0 = gray, 1 = unchanged
func SaturateMatrix(s float64) Matrix {
	return Matrix{
		lumR + (1-lumR)*s, lumG - lumG*s, lumB - lumB*s, 0, 0,
		lumR - lumR*s, lumG + (1-lumG)*s, lumB - lumB*s, 0, 0,
		lumR - lumR*s, lumG - lumG*s, lumB + (1-lumB)*s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// GrayscaleMatrix converts towards gray: 0 = unchanged, 1 = fully gray
func GrayscaleMatrix(amount float64) Matrix {
	return SaturateMatrix(1 - clamp01(amount))
}

// SepiaMatrix tones towards sepia: 0 = unchanged, 1 = full sepia
func SepiaMatrix(amount float64) Matrix {
	inv := 1 - clamp01(amount)
	return Matrix{
		0.393 + 0.607*inv, 0.769 - 0.769*inv, 0.189 - 0.189*inv, 0, 0,
		0.349 - 0.349*inv, 0.686 + 0.314*inv, 0.168 - 0.168*inv, 0, 0,
		0.272 - 0.272*inv, 0.534 - 0.534*inv, 0.131 + 0.869*inv, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// InvertMatrix inverts colours: 0 = unchanged, 1 = fully inverted
func InvertMatrix(amount float64) Matrix {
	a := clamp01(amount)
	scale := 1 - 2*a
	offset := 255 * a
	return Matrix{
		scale, 0, 0, 0, offset,
		0, scale, 0, 0, offset,
		0, 0, scale, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// BrightnessMatrix multiplies colour channels by factor
func BrightnessMatrix(factor float64) Matrix {
	return Matrix{
		factor, 0, 0, 0, 0,
		0, factor, 0, 0, 0,
		0, 0, factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// ContrastMatrix scales channel distance from mid-gray by factor
func ContrastMatrix(factor float64) Matrix {
	offset := 127.5 * (1 - factor)
	return Matrix{
		factor, 0, 0, 0, offset,
		0, factor, 0, 0, offset,
		0, 0, factor, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// HueRotateMatrix rotates hue by the given angle in degrees
func HueRotateMatrix(degrees float64) Matrix {
	rad := degrees * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix{
		lumR + cos*(1-lumR) - sin*lumR, lumG - cos*lumG - sin*lumG, lumB - cos*lumB + sin*(1-lumB), 0, 0,
		lumR - cos*lumR + sin*0.143, lumG + cos*(1-lumG) + sin*0.140, lumB - cos*lumB - sin*0.283, 0, 0,
		lumR - cos*lumR - sin*(1-lumR), lumG - cos*lumG + sin*lumG, lumB + cos*(1-lumB) + sin*lumB, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// MatrixFor returns the matrix for a single adjustment
func MatrixFor(adj Adjustment) Matrix {
	f := adj.Factor()
	switch adj.Kind {
	case KindSaturate:
		return SaturateMatrix(f)
	case KindContrast:
		return ContrastMatrix(f)
	case KindBrightness:
		return BrightnessMatrix(f)
	case KindHueRotate:
		return HueRotateMatrix(f)
	case KindSepia:
		return SepiaMatrix(f)
	case KindGrayscale:
		return GrayscaleMatrix(f)
	case KindInvert:
		return InvertMatrix(f)
	default:
		return Identity()
	}
}

// ApplyNRGBA transforms one straight-alpha colour
func (m *Matrix) ApplyNRGBA(c color.NRGBA) color.NRGBA {
	r, g, b, a := float64(c.R), float64(c.G), float64(c.B), float64(c.A)
	return color.NRGBA{
		R: clampByte(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]),
		G: clampByte(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]),
		B: clampByte(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]),
		A: clampByte(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]),
	}
}

// Chain is an ordered list of matrices. Each step clamps its output, so
// chained adjustments behave like consecutive filter functions.
type Chain []Matrix

// Compile turns adjustments into a chain, preserving order
func Compile(adjustments []Adjustment) Chain {
	chain := make(Chain, 0, len(adjustments))
	for _, adj := range adjustments {
		chain = append(chain, MatrixFor(adj))
	}
	return chain
}

// IsIdentity reports whether the chain has no steps
func (c Chain) IsIdentity() bool {
	return len(c) == 0
}

// ApplyColor runs a colour through every step of the chain
func (c Chain) ApplyColor(col color.NRGBA) color.NRGBA {
	for i := range c {
		col = c[i].ApplyNRGBA(col)
	}
	return col
}

// Apply returns a filtered copy of img with bounds starting at (0,0)
func Apply(img image.Image, chain Chain) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	if chain.IsIdentity() {
		return dst
	}

	for y := 0; y < dst.Rect.Dy(); y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+dst.Rect.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			out := chain.ApplyColor(color.NRGBA{R: row[x], G: row[x+1], B: row[x+2], A: row[x+3]})
			row[x], row[x+1], row[x+2], row[x+3] = out.R, out.G, out.B, out.A
		}
	}
	return dst
}

// Preview renders img through the descriptor for on-screen display
func Preview(img image.Image, d Descriptor) image.Image {
	if d.IsIdentity() {
		return img
	}
	return Apply(img, d.Chain())
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
