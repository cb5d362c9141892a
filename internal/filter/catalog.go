package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind names a primitive adjustment
type Kind string

const (
	KindSaturate   Kind = "saturate"
	KindContrast   Kind = "contrast"
	KindBrightness Kind = "brightness"
	KindHueRotate  Kind = "hue-rotate"
	KindSepia      Kind = "sepia"
	KindGrayscale  Kind = "grayscale"
	KindInvert     Kind = "invert"
)

// Transform syntax
const (
	DegreeUnit  = "deg"
	PercentUnit = "%"
)

// Filter keys
const (
	KeyNone      = "none"
	KeySepia     = "sepia"
	KeyGrayscale = "grayscale"
	KeyVintage   = "vintage"
	KeyCool      = "cool"
	KeyInvert    = "invert"
)

// Adjustment is one primitive step of a filter. Amount is a percentage,
// except for hue rotation where it is an angle in degrees.
type Adjustment struct {
	Kind   Kind
	Amount float64
}

// Factor maps the amount to the multiplicative factor used by the rasterizer:
// percent/100 for percentage kinds, the angle unchanged for hue rotation.
func (a Adjustment) Factor() float64 {
	if a.Kind == KindHueRotate {
		return a.Amount
	}
	return a.Amount / 100
}

// String renders the adjustment in composite-transform syntax
func (a Adjustment) String() string {
	if a.Kind == KindHueRotate {
		return fmt.Sprintf("%s(%s%s)", a.Kind, formatNumber(a.Factor()), DegreeUnit)
	}
	return fmt.Sprintf("%s(%s)", a.Kind, formatNumber(a.Factor()))
}

// Descriptor is a named, ordered list of adjustments
type Descriptor struct {
	Key         string
	Name        string
	Adjustments []Adjustment
}

// IsIdentity reports whether the descriptor leaves pixels untouched
func (d Descriptor) IsIdentity() bool {
	return len(d.Adjustments) == 0
}

// Transform renders the adjustment list as a composite-transform string,
// e.g. "saturate(0.5) contrast(1.25) brightness(0.9)". Identity renders "".
func (d Descriptor) Transform() string {
	parts := make([]string, 0, len(d.Adjustments))
	for _, adj := range d.Adjustments {
		parts = append(parts, adj.String())
	}
	return strings.Join(parts, " ")
}

// Chain compiles the descriptor into colour matrices
func (d Descriptor) Chain() Chain {
	return Compile(d.Adjustments)
}

var catalog = []Descriptor{
	{Key: KeyNone, Name: "None"},
	{Key: KeySepia, Name: "Sepia", Adjustments: []Adjustment{{KindSepia, 100}}},
	{Key: KeyGrayscale, Name: "Grayscale", Adjustments: []Adjustment{{KindGrayscale, 100}}},
	{Key: KeyVintage, Name: "Vintage", Adjustments: []Adjustment{
		{KindSaturate, 50},
		{KindContrast, 125},
		{KindBrightness, 90},
	}},
	{Key: KeyCool, Name: "Cool", Adjustments: []Adjustment{
		{KindSaturate, 150},
		{KindContrast, 90},
		{KindHueRotate, -15},
	}},
	{Key: KeyInvert, Name: "Invert", Adjustments: []Adjustment{{KindInvert, 100}}},
}

// All returns the catalog in display order
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	for i, d := range catalog {
		out[i] = d
		out[i].Adjustments = append([]Adjustment(nil), d.Adjustments...)
	}
	return out
}

// Keys returns the catalog keys in display order
func Keys() []string {
	keys := make([]string, len(catalog))
	for i, d := range catalog {
		keys[i] = d.Key
	}
	return keys
}

// Lookup finds a descriptor by key
func Lookup(key string) (Descriptor, bool) {
	for _, d := range All() {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Default returns the identity descriptor
func Default() Descriptor {
	d, _ := Lookup(KeyNone)
	return d
}

// ParseTransform parses a composite-transform string back into adjustments
func ParseTransform(s string) ([]Adjustment, error) {
	var out []Adjustment
	for _, field := range strings.Fields(s) {
		open := strings.IndexByte(field, '(')
		if open <= 0 || !strings.HasSuffix(field, ")") {
			return nil, fmt.Errorf("malformed transform %q", field)
		}

		kind := Kind(field[:open])
		arg := field[open+1 : len(field)-1]

		switch kind {
		case KindHueRotate:
			deg, err := strconv.ParseFloat(strings.TrimSuffix(arg, DegreeUnit), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid angle in %q: %w", field, err)
			}
			out = append(out, Adjustment{Kind: kind, Amount: deg})
		case KindSaturate, KindContrast, KindBrightness, KindSepia, KindGrayscale, KindInvert:
			amount, err := parseAmount(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid amount in %q: %w", field, err)
			}
			out = append(out, Adjustment{Kind: kind, Amount: amount})
		default:
			return nil, fmt.Errorf("unknown transform %q", kind)
		}
	}
	return out, nil
}

// parseAmount accepts "0.5" or "50%" and returns the percentage
func parseAmount(arg string) (float64, error) {
	if strings.HasSuffix(arg, PercentUnit) {
		return strconv.ParseFloat(strings.TrimSuffix(arg, PercentUnit), 64)
	}
	factor, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, err
	}
	return roundTo(factor*100, 1e6), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(roundTo(v, 1e6), 'f', -1, 64)
}

func roundTo(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}
