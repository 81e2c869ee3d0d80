// Package colorspace holds the pure numeric conversions between hex, sRGB,
// HSL, XYZ and CIELAB used by the classifier, sorter and harmony finders.
//
// Every function is deterministic and safe for concurrent use. Hex strings are
// the canonical representation; the other triples are derived on demand.
package colorspace

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned for any value that is not exactly six hex digits
// after an optional leading '#'.
var ErrInvalidHex = errors.New("invalid hex color")

var hexPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// RGB is an sRGB triple with 0-255 channels.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSL holds integer degrees (h in [0,360)) and integer percentages.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// XYZ is a CIE 1931 tristimulus value relative to Y=1 white.
type XYZ struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Lab is a CIELAB (D65) color.
type Lab struct {
	L float64 `json:"L"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Hex formats the triple as canonical '#RRGGBB'.
func (c RGB) Hex() string {
	return RGBToHex(float64(c.R), float64(c.G), float64(c.B))
}

// IsValidHex reports whether hex is six hex digits with an optional '#'.
func IsValidHex(hex string) bool {
	return hexPattern.MatchString(hex)
}

// NormalizeHex returns the canonical uppercase, '#'-prefixed form of hex.
func NormalizeHex(hex string) (string, error) {
	trimmed := strings.TrimSpace(hex)
	if !IsValidHex(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	return "#" + strings.ToUpper(strings.TrimPrefix(trimmed, "#")), nil
}

// HexToRGB parses a six digit hex color.
func HexToRGB(hex string) (RGB, error) {
	normalized, err := NormalizeHex(hex)
	if err != nil {
		return RGB{}, err
	}

	value, err := strconv.ParseUint(normalized[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}

	return RGB{
		R: int(value >> 16 & 0xFF),
		G: int(value >> 8 & 0xFF),
		B: int(value & 0xFF),
	}, nil
}

// RGBToHex clamps each channel to [0,255], rounds half away from zero and
// formats the result as uppercase '#RRGGBB'.
func RGBToHex(r, g, b float64) string {
	return fmt.Sprintf("#%02X%02X%02X", channelByte(r), channelByte(g), channelByte(b))
}

func channelByte(value float64) int {
	if math.IsNaN(value) {
		return 0
	}
	return int(clamp(math.Round(value), 0, 255))
}

// HexToHSL converts hex to HSL with rounded integer components.
func HexToHSL(hex string) (HSL, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(rgb), nil
}

// RGBToHSL applies the standard max/min/diff formulation.
func RGBToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	var h, s float64
	l := (maxC + minC) / 2

	if diff != 0 {
		if l > 0.5 {
			s = diff / (2 - maxC - minC)
		} else {
			s = diff / (maxC + minC)
		}

		switch maxC {
		case r:
			h = (g - b) / diff
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/diff + 2
		default:
			h = (r-g)/diff + 4
		}
		h /= 6
	}

	hue := int(math.Round(h * 360))
	if hue >= 360 {
		hue -= 360
	}

	return HSL{
		H: hue,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// HSLToHex is the inverse of HexToHSL. h is taken modulo 360; s and l are
// percentages clamped to [0,100].
func HSLToHex(h, s, l float64) string {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp(s, 0, 100) / 100
	l = clamp(l, 0, 100) / 100

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGBToHex((r+m)*255, (g+m)*255, (b+m)*255)
}

// ComplementaryHex rotates the HSL hue of hex by 180 degrees.
func ComplementaryHex(hex string) (string, error) {
	hsl, err := HexToHSL(hex)
	if err != nil {
		return "", err
	}
	return HSLToHex(float64((hsl.H+180)%360), float64(hsl.S), float64(hsl.L)), nil
}

// Brightness is the perceived luma 0.299R + 0.587G + 0.114B, rounded.
func Brightness(hex string) (int, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return 0, err
	}
	return int(math.Round(0.299*float64(rgb.R) + 0.587*float64(rgb.G) + 0.114*float64(rgb.B))), nil
}

// CircularHueDistance is min(|h1-h2|, 360-|h1-h2|).
func CircularHueDistance(h1, h2 float64) float64 {
	delta := math.Abs(h1 - h2)
	if delta > 360 {
		delta = math.Mod(delta, 360)
	}
	return math.Min(delta, 360-delta)
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
