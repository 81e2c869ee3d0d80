package models

import (
	"errors"
	"strings"
)

// Palette types
const (
	PaletteAnalogous     = "analogous"
	PaletteComplementary = "complementary"
	PaletteTriadic       = "triadic"
	PaletteMonochromatic = "monochromatic"
	PaletteSplit         = "split"
)

// Palette is a derived, freely copyable set of swatches around a base color.
type Palette struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	BaseColorHex string   `json:"baseColorHex"`
	Colors       []Swatch `json:"colors"`
}

// SortMode selects how the stored collection is ordered.
type SortMode string

const (
	SortHue        SortMode = "hue"
	SortSaturation SortMode = "saturation"
	SortLightness  SortMode = "lightness"
	SortChromatic  SortMode = "chromatic"

	DefaultSortMode = SortHue
)

var ErrInvalidSortMode = errors.New("invalid sort mode")

// ParseSortMode accepts any case; empty input yields the default mode.
func ParseSortMode(value string) (SortMode, error) {
	mode := SortMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case "":
		return DefaultSortMode, nil
	case SortHue, SortSaturation, SortLightness, SortChromatic:
		return mode, nil
	}
	return "", ErrInvalidSortMode
}
