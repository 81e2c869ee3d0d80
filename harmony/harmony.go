// Package harmony retrieves color-theory groupings from an existing swatch
// collection. Every finder returns a subset of its input; none invents colors.
package harmony

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/luciasjperez85-svg/markersinorder/colorspace"
	"github.com/luciasjperez85-svg/markersinorder/models"
)

// Hue windows, in HSL degrees.
const (
	AnalogousWindow       = 60
	ComplementaryWindow   = 45
	ComplementaryPadding  = 30
	TriadicWindow         = 45
	MonochromaticWindow   = 15
	SplitComplementWindow = 30

	// paddingPenalty ranks near-base filler after every true complement.
	paddingPenalty = 1000
)

// Default result sizes used when a caller passes no count.
const (
	DefaultAnalogousCount     = 5
	DefaultComplementaryCount = 4
	DefaultTriadicCount       = 6
	DefaultMonochromaticCount = 5
	DefaultSplitCount         = 5
)

var ErrUnknownHarmony = errors.New("unknown harmony type")

// Finder is the shared signature of every harmony lookup.
type Finder func(collection []models.Swatch, baseHex string, count int) []models.Swatch

var finders = map[string]Finder{
	models.PaletteAnalogous:     FindAnalogous,
	models.PaletteComplementary: FindComplementary,
	models.PaletteTriadic:       FindTriadic,
	models.PaletteMonochromatic: FindMonochromatic,
	models.PaletteSplit:         FindSplitComplementary,
}

var defaultCounts = map[string]int{
	models.PaletteAnalogous:     DefaultAnalogousCount,
	models.PaletteComplementary: DefaultComplementaryCount,
	models.PaletteTriadic:       DefaultTriadicCount,
	models.PaletteMonochromatic: DefaultMonochromaticCount,
	models.PaletteSplit:         DefaultSplitCount,
}

// Types lists the supported harmony names.
func Types() []string {
	return []string{
		models.PaletteAnalogous,
		models.PaletteComplementary,
		models.PaletteTriadic,
		models.PaletteMonochromatic,
		models.PaletteSplit,
	}
}

// DefaultCount is the result size used for harmonyType when none is given.
func DefaultCount(harmonyType string) int {
	return defaultCounts[strings.ToLower(harmonyType)]
}

// Find dispatches to the finder registered for harmonyType.
func Find(harmonyType string, collection []models.Swatch, baseHex string, count int) ([]models.Swatch, error) {
	finder, ok := finders[strings.ToLower(harmonyType)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHarmony, harmonyType)
	}
	return finder(collection, baseHex, count), nil
}

type candidate struct {
	swatch models.Swatch
	score  float64
}

type member struct {
	swatch models.Swatch
	hsl    colorspace.HSL
	base   bool
}

// prepare resolves the base HSL and the collection's HSL values. Swatches
// with malformed hex are skipped. ok is false when nothing can match.
func prepare(collection []models.Swatch, baseHex string, count int) (colorspace.HSL, []member, bool) {
	if count <= 0 || len(collection) == 0 {
		return colorspace.HSL{}, nil, false
	}

	normalizedBase, err := colorspace.NormalizeHex(baseHex)
	if err != nil {
		return colorspace.HSL{}, nil, false
	}
	baseHSL, _ := colorspace.HexToHSL(normalizedBase)

	members := make([]member, 0, len(collection))
	for _, swatch := range collection {
		normalized, err := colorspace.NormalizeHex(swatch.Hex)
		if err != nil {
			continue
		}
		hsl, _ := colorspace.HexToHSL(normalized)
		members = append(members, member{swatch: swatch, hsl: hsl, base: normalized == normalizedBase})
	}
	return baseHSL, members, true
}

func hueDistance(a, b int) float64 {
	return colorspace.CircularHueDistance(float64(a), float64(b))
}

func rotate(hue, degrees int) int {
	return (hue + degrees) % 360
}

// rank orders candidates by ascending score, keeping input order on ties,
// and keeps at most count.
func rank(candidates []candidate, count int) []models.Swatch {
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		switch {
		case a.score < b.score:
			return -1
		case a.score > b.score:
			return 1
		}
		return 0
	})

	result := make([]models.Swatch, 0, min(count, len(candidates)))
	for _, c := range candidates {
		if len(result) == count {
			break
		}
		result = append(result, c.swatch)
	}
	return result
}

// withBaseFirst finds the first swatch carrying the base hex and scores it
// ahead of everything else.
func withBaseFirst(members []member) ([]candidate, bool) {
	for _, m := range members {
		if m.base {
			return []candidate{{swatch: m.swatch, score: -1}}, true
		}
	}
	return nil, false
}

// FindAnalogous returns swatches within 60 degrees of the base hue, closest
// first.
func FindAnalogous(collection []models.Swatch, baseHex string, count int) []models.Swatch {
	baseHSL, members, ok := prepare(collection, baseHex, count)
	if !ok {
		return []models.Swatch{}
	}

	var candidates []candidate
	for _, m := range members {
		distance := hueDistance(m.hsl.H, baseHSL.H)
		if distance <= AnalogousWindow {
			candidates = append(candidates, candidate{swatch: m.swatch, score: distance})
		}
	}
	return rank(candidates, count)
}

// FindComplementary returns the base swatch, then swatches near the
// opposite hue, then near-base swatches as low priority filler.
func FindComplementary(collection []models.Swatch, baseHex string, count int) []models.Swatch {
	baseHSL, members, ok := prepare(collection, baseHex, count)
	if !ok {
		return []models.Swatch{}
	}
	target := rotate(baseHSL.H, 180)

	candidates, _ := withBaseFirst(members)
	for _, m := range members {
		if m.base {
			continue
		}
		if distance := hueDistance(m.hsl.H, target); distance <= ComplementaryWindow {
			candidates = append(candidates, candidate{swatch: m.swatch, score: distance})
			continue
		}
		if distance := hueDistance(m.hsl.H, baseHSL.H); distance <= ComplementaryPadding {
			candidates = append(candidates, candidate{swatch: m.swatch, score: distance + paddingPenalty})
		}
	}
	return rank(candidates, count)
}

// FindTriadic returns the base swatch, then swatches whose hue is within 45
// degrees of base+120, base+240 or the base itself.
func FindTriadic(collection []models.Swatch, baseHex string, count int) []models.Swatch {
	baseHSL, members, ok := prepare(collection, baseHex, count)
	if !ok {
		return []models.Swatch{}
	}
	return nearestToTargets(members, baseHSL.H, TriadicWindow, count,
		rotate(baseHSL.H, 120), rotate(baseHSL.H, 240))
}

// FindSplitComplementary is FindTriadic with targets at base+150 and
// base+210 and a 30 degree window.
func FindSplitComplementary(collection []models.Swatch, baseHex string, count int) []models.Swatch {
	baseHSL, members, ok := prepare(collection, baseHex, count)
	if !ok {
		return []models.Swatch{}
	}
	return nearestToTargets(members, baseHSL.H, SplitComplementWindow, count,
		rotate(baseHSL.H, 150), rotate(baseHSL.H, 210))
}

func nearestToTargets(members []member, baseHue int, window float64, count int, targets ...int) []models.Swatch {
	candidates, _ := withBaseFirst(members)
	for _, m := range members {
		if m.base {
			continue
		}
		distance := hueDistance(m.hsl.H, baseHue)
		for _, target := range targets {
			distance = math.Min(distance, hueDistance(m.hsl.H, target))
		}
		if distance <= window {
			candidates = append(candidates, candidate{swatch: m.swatch, score: distance})
		}
	}
	return rank(candidates, count)
}

// FindMonochromatic returns swatches within 15 degrees of the base hue,
// ordered by how close their lightness is to the base.
func FindMonochromatic(collection []models.Swatch, baseHex string, count int) []models.Swatch {
	baseHSL, members, ok := prepare(collection, baseHex, count)
	if !ok {
		return []models.Swatch{}
	}

	var candidates []candidate
	for _, m := range members {
		if hueDistance(m.hsl.H, baseHSL.H) > MonochromaticWindow {
			continue
		}
		lightness := math.Abs(float64(m.hsl.L - baseHSL.L))
		candidates = append(candidates, candidate{swatch: m.swatch, score: lightness})
	}
	return rank(candidates, count)
}
