package harmony

import (
	"fmt"

	"github.com/luciasjperez85-svg/markersinorder/models"
)

const (
	MinSuggestionColors = 3
	maxSuggestionBases  = 5
	analogousBases      = 3
	contrastBases       = 2
)

// Suggest builds ready-made palettes from the first few swatches of a
// collection. Palettes with fewer than three colors are dropped. The result
// keeps generation order.
func Suggest(collection []models.Swatch) []models.Palette {
	suggestions := []models.Palette{}
	if len(collection) < MinSuggestionColors {
		return suggestions
	}

	bases := collection[:min(maxSuggestionBases, len(collection))]
	for i, base := range bases {
		if i < analogousBases {
			suggestions = appendIfFull(suggestions, models.Palette{
				Name:         fmt.Sprintf("Analogous from %s", base.Name),
				Type:         models.PaletteAnalogous,
				BaseColorHex: base.Hex,
				Colors:       FindAnalogous(collection, base.Hex, DefaultAnalogousCount),
			})
		}

		if i < contrastBases {
			suggestions = appendIfFull(suggestions, models.Palette{
				Name:         fmt.Sprintf("Complementary from %s", base.Name),
				Type:         models.PaletteComplementary,
				BaseColorHex: base.Hex,
				Colors:       FindComplementary(collection, base.Hex, DefaultComplementaryCount),
			})
			suggestions = appendIfFull(suggestions, models.Palette{
				Name:         fmt.Sprintf("Triadic from %s", base.Name),
				Type:         models.PaletteTriadic,
				BaseColorHex: base.Hex,
				Colors:       FindTriadic(collection, base.Hex, DefaultTriadicCount),
			})
		}
	}
	return suggestions
}

func appendIfFull(palettes []models.Palette, palette models.Palette) []models.Palette {
	if len(palette.Colors) < MinSuggestionColors {
		return palettes
	}
	return append(palettes, palette)
}
