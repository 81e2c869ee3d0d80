package chromatic

import (
	"github.com/luciasjperez85-svg/markersinorder/colorspace"
)

// Description is every representation of one color the service reports.
type Description struct {
	Hex           string         `json:"hex"`
	RGB           colorspace.RGB `json:"rgb"`
	HSL           colorspace.HSL `json:"hsl"`
	Lab           colorspace.Lab `json:"lab"`
	LabHue        float64        `json:"labHue"`
	Chroma        float64        `json:"chroma"`
	Group         Group          `json:"group"`
	Brightness    int            `json:"brightness"`
	Complementary string         `json:"complementary"`
}

func Describe(hex string) (Description, error) {
	normalized, err := colorspace.NormalizeHex(hex)
	if err != nil {
		return Description{}, err
	}

	rgb, _ := colorspace.HexToRGB(normalized)
	lab := colorspace.RGBToLab(rgb)
	hue, chroma := lab.HueChroma()
	brightness, _ := colorspace.Brightness(normalized)
	complementary, _ := colorspace.ComplementaryHex(normalized)

	return Description{
		Hex:           normalized,
		RGB:           rgb,
		HSL:           colorspace.RGBToHSL(rgb),
		Lab:           lab,
		LabHue:        hue,
		Chroma:        chroma,
		Group:         ClassifyLCh(lab.L, lab.A, lab.B, hue, chroma),
		Brightness:    brightness,
		Complementary: complementary,
	}, nil
}
