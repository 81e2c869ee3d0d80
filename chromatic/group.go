// Package chromatic classifies colors into perceptual families and orders
// swatch collections by them.
package chromatic

import (
	"github.com/luciasjperez85-svg/markersinorder/colorspace"
)

// Group is a chromatic family. Its integer value is the sort rank.
type Group int

const (
	Yellow Group = iota
	YellowOrange
	Orange
	Red
	PinkMagenta
	VioletPurple
	Blue
	Turquoise
	Green
	YellowGreen
	Brown
	SkinTone
	WarmGray
	CoolGray
	BlackNeutral
)

var groupNames = [...]string{
	Yellow:       "YELLOW",
	YellowOrange: "YELLOW_ORANGE",
	Orange:       "ORANGE",
	Red:          "RED",
	PinkMagenta:  "PINK_MAGENTA",
	VioletPurple: "VIOLET_PURPLE",
	Blue:         "BLUE",
	Turquoise:    "TURQUOISE",
	Green:        "GREEN",
	YellowGreen:  "YELLOW_GREEN",
	Brown:        "BROWN",
	SkinTone:     "SKIN_TONE",
	WarmGray:     "WARM_GRAY",
	CoolGray:     "COOL_GRAY",
	BlackNeutral: "BLACK_NEUTRAL",
}

// Groups lists every family in rank order.
func Groups() []Group {
	groups := make([]Group, len(groupNames))
	for i := range groupNames {
		groups[i] = Group(i)
	}
	return groups
}

// Rank is the ordinal used as the primary sort key.
func (g Group) Rank() int {
	return int(g)
}

func (g Group) String() string {
	if g < 0 || int(g) >= len(groupNames) {
		return "UNKNOWN"
	}
	return groupNames[g]
}

// MarshalText renders the group by name.
func (g Group) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Neutral reports whether g is one of the achromatic families.
func (g Group) Neutral() bool {
	return g == WarmGray || g == CoolGray || g == BlackNeutral
}

// Thresholds for the achromatic and earth-tone carve-outs.
const (
	NeutralChroma  = 5.0
	LowChroma      = 20.0
	PaleChroma     = 10.0
	BlackLightness = 20.0
	DarkLightness  = 25.0
	PaleLightness  = 75.0
	BrownMinHue    = 30.0
	BrownMaxHue    = 70.0
	BrownMinL      = 15.0
	BrownMaxL      = 55.0
	BrownMaxChroma = 50.0
	SkinMinHue     = 40.0
	SkinMaxHue     = 80.0
	SkinMinL       = 60.0
	SkinMaxL       = 85.0
	SkinMinChroma  = 15.0
	SkinMaxChroma  = 40.0
)

// hueBand maps a half-open CIELAB hue interval [From, To) onto a group.
type hueBand struct {
	From, To float64
	Group    Group
}

// hueBands is checked in order after the neutral and earth-tone rules. The
// band ending at 360 is closed so that a hue rounding up to 360 stays red.
var hueBands = []hueBand{
	{From: 85, To: 100, Group: Yellow},
	{From: 70, To: 85, Group: YellowOrange},
	{From: 45, To: 70, Group: Orange},
	{From: 0, To: 45, Group: Red},
	{From: 345, To: 360, Group: Red},
	{From: 310, To: 345, Group: PinkMagenta},
	{From: 270, To: 310, Group: VioletPurple},
	{From: 220, To: 270, Group: Blue},
	{From: 170, To: 220, Group: Turquoise},
	{From: 130, To: 170, Group: Green},
	{From: 100, To: 130, Group: YellowGreen},
}

func (band hueBand) contains(hue float64) bool {
	if hue < band.From {
		return false
	}
	return hue < band.To || (band.To == 360 && hue == 360)
}

// Classify assigns a Lab color to its chromatic group.
func Classify(lab colorspace.Lab) Group {
	hue, chroma := lab.HueChroma()
	return ClassifyLCh(lab.L, lab.A, lab.B, hue, chroma)
}

// ClassifyLCh applies the decision table; the first matching rule wins.
// a and b decide warm against cool for the gray rules.
func ClassifyLCh(l, a, b, hue, chroma float64) Group {
	warm := a > 0 || b > 0

	if chroma < NeutralChroma {
		if l < BlackLightness {
			return BlackNeutral
		}
		return grayFor(warm)
	}

	if chroma < LowChroma && l < DarkLightness {
		return BlackNeutral
	}

	if chroma < LowChroma && l > PaleLightness && chroma < PaleChroma {
		return grayFor(warm)
	}

	if hue >= BrownMinHue && hue <= BrownMaxHue && l > BrownMinL && l < BrownMaxL && chroma < BrownMaxChroma {
		return Brown
	}

	if hue >= SkinMinHue && hue <= SkinMaxHue && l >= SkinMinL && l <= SkinMaxL &&
		chroma >= SkinMinChroma && chroma <= SkinMaxChroma {
		return SkinTone
	}

	for _, band := range hueBands {
		if band.contains(hue) {
			return band.Group
		}
	}

	return Green
}

func grayFor(warm bool) Group {
	if warm {
		return WarmGray
	}
	return CoolGray
}
