package chromatic

import (
	"cmp"
	"math"
	"slices"

	"github.com/luciasjperez85-svg/markersinorder/colorspace"
	"github.com/luciasjperez85-svg/markersinorder/models"
)

// Comparator tolerances. Differences at or below these are ties.
const (
	HueTolerance       = 3.0
	LightnessTolerance = 2.0
)

// Analysis is the per-swatch scratch data computed during a chromatic sort.
type Analysis struct {
	Swatch models.Swatch  `json:"swatch"`
	Lab    colorspace.Lab `json:"lab"`
	Hue    float64        `json:"hue"`
	Chroma float64        `json:"chroma"`
	Group  Group          `json:"group"`
	Valid  bool           `json:"valid"`
}

// Analyze computes Lab, hue, chroma and group for a swatch. Malformed hex
// yields the neutral fallback with Valid unset.
func Analyze(swatch models.Swatch) Analysis {
	lab, err := colorspace.HexToLab(swatch.Hex)
	if err != nil {
		return Analysis{
			Swatch: swatch,
			Lab:    colorspace.Lab{L: 50},
			Group:  BlackNeutral,
		}
	}

	hue, chroma := lab.HueChroma()
	return Analysis{
		Swatch: swatch,
		Lab:    lab,
		Hue:    hue,
		Chroma: chroma,
		Group:  ClassifyLCh(lab.L, lab.A, lab.B, hue, chroma),
		Valid:  true,
	}
}

// AnalyzeAll annotates every swatch in input order.
func AnalyzeAll(swatches []models.Swatch) []Analysis {
	analyses := make([]Analysis, len(swatches))
	for i, swatch := range swatches {
		analyses[i] = Analyze(swatch)
	}
	return analyses
}

func compareAnalysis(a, b Analysis) int {
	if a.Group != b.Group {
		return cmp.Compare(a.Group.Rank(), b.Group.Rank())
	}
	if math.Abs(a.Hue-b.Hue) > HueTolerance {
		return cmp.Compare(a.Hue, b.Hue)
	}
	if math.Abs(a.Lab.L-b.Lab.L) > LightnessTolerance {
		return cmp.Compare(b.Lab.L, a.Lab.L)
	}
	return cmp.Compare(b.Chroma, a.Chroma)
}

// SortAnalyzed orders analyses in place by group, hue, lightness and chroma.
// On return every adjacent pair compares <= 0, and input already in that
// state is left untouched, so sorting twice gives the same order.
func SortAnalyzed(analyses []Analysis) {
	if inOrder(analyses) {
		return
	}
	slices.SortStableFunc(analyses, compareAnalysis)

	// The tolerances make compareAnalysis non-transitive, so the merge above
	// can leave adjacent inversions. Settle them with a stable insertion pass.
	for i := 1; i < len(analyses); i++ {
		for j := i; j > 0 && compareAnalysis(analyses[j-1], analyses[j]) > 0; j-- {
			analyses[j-1], analyses[j] = analyses[j], analyses[j-1]
		}
	}
}

func inOrder(analyses []Analysis) bool {
	for i := 1; i < len(analyses); i++ {
		if compareAnalysis(analyses[i-1], analyses[i]) > 0 {
			return false
		}
	}
	return true
}

// SortChromatic returns a new slice ordered by chromatic group rank, then
// Lab hue ascending, lightness descending and chroma descending. The input
// is not modified.
func SortChromatic(swatches []models.Swatch) []models.Swatch {
	analyses := AnalyzeAll(swatches)
	SortAnalyzed(analyses)

	sorted := make([]models.Swatch, len(analyses))
	for i, analysis := range analyses {
		sorted[i] = analysis.Swatch
	}
	return sorted
}

// SortByHue orders by HSL hue ascending.
func SortByHue(swatches []models.Swatch) []models.Swatch {
	return sortByHSL(swatches, func(a, b colorspace.HSL) int {
		return cmp.Compare(a.H, b.H)
	})
}

// SortBySaturation orders by HSL saturation descending.
func SortBySaturation(swatches []models.Swatch) []models.Swatch {
	return sortByHSL(swatches, func(a, b colorspace.HSL) int {
		return cmp.Compare(b.S, a.S)
	})
}

// SortByLightness orders by HSL lightness ascending.
func SortByLightness(swatches []models.Swatch) []models.Swatch {
	return sortByHSL(swatches, func(a, b colorspace.HSL) int {
		return cmp.Compare(a.L, b.L)
	})
}

type hslEntry struct {
	swatch models.Swatch
	hsl    colorspace.HSL
}

func sortByHSL(swatches []models.Swatch, compare func(a, b colorspace.HSL) int) []models.Swatch {
	entries := make([]hslEntry, len(swatches))
	for i, swatch := range swatches {
		// malformed hex sorts as 0,0,0
		hsl, _ := colorspace.HexToHSL(swatch.Hex)
		entries[i] = hslEntry{swatch: swatch, hsl: hsl}
	}

	slices.SortStableFunc(entries, func(a, b hslEntry) int {
		return compare(a.hsl, b.hsl)
	})

	sorted := make([]models.Swatch, len(entries))
	for i, entry := range entries {
		sorted[i] = entry.swatch
	}
	return sorted
}

// SortBy dispatches on mode. Unknown modes fall back to hue order.
func SortBy(mode models.SortMode, swatches []models.Swatch) []models.Swatch {
	switch mode {
	case models.SortChromatic:
		return SortChromatic(swatches)
	case models.SortSaturation:
		return SortBySaturation(swatches)
	case models.SortLightness:
		return SortByLightness(swatches)
	default:
		return SortByHue(swatches)
	}
}
