// Package calibration corrects sampled colors against black and white
// reference patches photographed alongside a chart.
package calibration

import (
	"math"

	"github.com/luciasjperez85-svg/markersinorder/colorspace"
)

const (
	TargetBlack = 0.0
	TargetWhite = 255.0
)

// ChannelCorrection maps a sampled channel value v to v*Scale + Offset.
type ChannelCorrection struct {
	Scale  float64 `json:"scale"`
	Offset float64 `json:"offset"`
}

// Channels holds one correction per RGB channel.
type Channels struct {
	R ChannelCorrection `json:"r"`
	G ChannelCorrection `json:"g"`
	B ChannelCorrection `json:"b"`
}

// Matrix is an immutable per-channel linear correction. Recompute rather
// than edit.
type Matrix struct {
	PerChannel Channels `json:"perChannel"`
}

// Compute derives a matrix that maps black to 0 and white to 255 on every
// channel. Identical samples on a channel clamp the denominator to 1.
func Compute(black, white colorspace.RGB) *Matrix {
	return &Matrix{
		PerChannel: Channels{
			R: channel(black.R, white.R),
			G: channel(black.G, white.G),
			B: channel(black.B, white.B),
		},
	}
}

func channel(black, white int) ChannelCorrection {
	scale := (TargetWhite - TargetBlack) / math.Max(1, float64(white-black))
	return ChannelCorrection{
		Scale:  scale,
		Offset: TargetBlack - float64(black)*scale,
	}
}

func (c ChannelCorrection) apply(value int) int {
	corrected := math.Round(float64(value)*c.Scale + c.Offset)
	return int(math.Max(0, math.Min(255, corrected)))
}

// Apply corrects rgb. A nil matrix returns rgb unchanged.
func (m *Matrix) Apply(rgb colorspace.RGB) colorspace.RGB {
	if m == nil {
		return rgb
	}
	return colorspace.RGB{
		R: m.PerChannel.R.apply(rgb.R),
		G: m.PerChannel.G.apply(rgb.G),
		B: m.PerChannel.B.apply(rgb.B),
	}
}

// ApplyHex corrects a hex color and returns the canonical corrected hex.
func (m *Matrix) ApplyHex(hex string) (string, error) {
	rgb, err := colorspace.HexToRGB(hex)
	if err != nil {
		return "", err
	}
	return m.Apply(rgb).Hex(), nil
}

// Apply is the free-function form of (*Matrix).Apply.
func Apply(rgb colorspace.RGB, m *Matrix) colorspace.RGB {
	return m.Apply(rgb)
}

// ApplyHex is the free-function form of (*Matrix).ApplyHex.
func ApplyHex(hex string, m *Matrix) (string, error) {
	return m.ApplyHex(hex)
}
