package colorspace

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// sRGB transfer function threshold and exponent (IEC 61966-2-1).
const (
	SRGBGammaThreshold = 0.04045
	SRGBGammaExponent  = 2.4
)

// CIE constants for the XYZ -> Lab mapping.
const (
	LabEpsilon = 0.008856
	LabKappa   = 903.3
)

// D65 is the reference white used for Lab conversion.
var D65 = XYZ{X: 0.95047, Y: 1.0, Z: 1.08883}

// SRGBToXYZ is the linear sRGB -> XYZ (D65) matrix, rows X, Y, Z.
var SRGBToXYZ = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

// SRGBInverseGamma linearises one normalised sRGB channel.
func SRGBInverseGamma(value float64) float64 {
	if value > SRGBGammaThreshold {
		return math.Pow((value+0.055)/1.055, SRGBGammaExponent)
	}
	return value / 12.92
}

// RGBToXYZ converts 0-255 sRGB to XYZ.
func RGBToXYZ(c RGB) XYZ {
	r := SRGBInverseGamma(float64(c.R) / 255)
	g := SRGBInverseGamma(float64(c.G) / 255)
	b := SRGBInverseGamma(float64(c.B) / 255)

	m := SRGBToXYZ
	return XYZ{
		X: r*m[0][0] + g*m[0][1] + b*m[0][2],
		Y: r*m[1][0] + g*m[1][1] + b*m[1][2],
		Z: r*m[2][0] + g*m[2][1] + b*m[2][2],
	}
}

// XYZToLab converts XYZ to CIELAB against the D65 white.
func XYZToLab(c XYZ) Lab {
	fx := labF(c.X / D65.X)
	fy := labF(c.Y / D65.Y)
	fz := labF(c.Z / D65.Z)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

func labF(t float64) float64 {
	if t > LabEpsilon {
		return math.Cbrt(t)
	}
	return (LabKappa*t + 16) / 116
}

// RGBToLab chains RGBToXYZ and XYZToLab.
func RGBToLab(c RGB) Lab {
	return XYZToLab(RGBToXYZ(c))
}

// HexToLab converts a hex color to CIELAB.
func HexToLab(hex string) (Lab, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return Lab{}, err
	}
	return RGBToLab(rgb), nil
}

// LabHueChroma returns the CIELAB polar hue in [0,360) and chroma.
// The hue is not comparable with an HSL hue for the same color.
func LabHueChroma(a, b float64) (hue, chroma float64) {
	chroma = math.Sqrt(a*a + b*b)
	hue = math.Atan2(b, a) * (180 / math.Pi)
	if hue < 0 {
		hue += 360
	}
	return hue, chroma
}

// HueChroma is LabHueChroma applied to the receiver.
func (c Lab) HueChroma() (hue, chroma float64) {
	return LabHueChroma(c.A, c.B)
}

// DeltaE returns the CIEDE2000 difference between two hex colors on the
// conventional 0-100 scale.
func DeltaE(hexA, hexB string) (float64, error) {
	a, err := parseColorful(hexA)
	if err != nil {
		return 0, err
	}
	b, err := parseColorful(hexB)
	if err != nil {
		return 0, err
	}
	return a.DistanceCIEDE2000(b) * 100, nil
}

func parseColorful(hex string) (colorful.Color, error) {
	normalized, err := NormalizeHex(hex)
	if err != nil {
		return colorful.Color{}, err
	}
	c, err := colorful.Hex(normalized)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return c, nil
}
