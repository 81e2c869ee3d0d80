package chromatic

import (
	"math/rand/v2"
	"testing"

	"github.com/luciasjperez85-svg/markersinorder/colorspace"
	"github.com/luciasjperez85-svg/markersinorder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swatchesOf(hexes ...string) []models.Swatch {
	swatches := make([]models.Swatch, len(hexes))
	for i, hex := range hexes {
		swatches[i] = models.Swatch{ID: hex, Hex: hex, Name: hex, Source: models.SourceManualHex}
	}
	return swatches
}

func hexesOf(swatches []models.Swatch) []string {
	hexes := make([]string, len(swatches))
	for i, swatch := range swatches {
		hexes[i] = swatch.Hex
	}
	return hexes
}

func TestClassify(t *testing.T) {
	tests := []struct {
		hex  string
		want Group
	}{
		{"#FF0000", Red},
		{"#FFC0CB", Red},
		{"#4682B4", Blue},
		{"#0000FF", VioletPurple},
		{"#1E90FF", VioletPurple},
		{"#9ACD32", YellowGreen},
		{"#00FF00", Green},
		{"#228B22", Green},
		{"#00FFFF", Turquoise},
		{"#40E0D0", Turquoise},
		{"#FF00FF", PinkMagenta},
		{"#800080", PinkMagenta},
		{"#FFA500", YellowOrange},
		{"#FFD700", Yellow},
		{"#FF8C00", Orange},
		{"#8B4513", Brown},
		{"#A0522D", Brown},
		{"#F5CBA7", SkinTone},
		{"#D2B48C", SkinTone},
		{"#000000", BlackNeutral},
		{"#2F2F2F", BlackNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			lab, err := colorspace.HexToLab(tt.hex)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Classify(lab))
		})
	}
}

func TestClassifyYellowLandsNearYellow(t *testing.T) {
	lab, err := colorspace.HexToLab("#FFFF00")
	require.NoError(t, err)
	assert.Contains(t, []Group{Yellow, YellowOrange, YellowGreen}, Classify(lab))
}

func TestClassifyGraysAreNeutral(t *testing.T) {
	for _, hex := range []string{"#808080", "#FFFFFF", "#EEEEEE"} {
		lab, err := colorspace.HexToLab(hex)
		require.NoError(t, err)
		group := Classify(lab)
		assert.Contains(t, []Group{WarmGray, CoolGray}, group, hex)
		assert.True(t, group.Neutral(), hex)
	}
}

func TestClassifyLChRules(t *testing.T) {
	// warm and cool grays are decided by the sign of a and b
	assert.Equal(t, WarmGray, ClassifyLCh(60, 1, -2, 300, 2.2))
	assert.Equal(t, CoolGray, ClassifyLCh(60, -1, -2, 240, 2.2))
	assert.Equal(t, BlackNeutral, ClassifyLCh(10, 3, 3, 45, 4.2))

	// dark low chroma
	assert.Equal(t, BlackNeutral, ClassifyLCh(22, 10, 10, 45, 14))

	// pale low chroma
	assert.Equal(t, CoolGray, ClassifyLCh(90, -6, -3, 206, 6.7))
	assert.Equal(t, WarmGray, ClassifyLCh(90, 6, 3, 26, 6.7))

	// band edges
	assert.Equal(t, Red, ClassifyLCh(50, 0, 0, 360, 60))
	assert.Equal(t, Red, ClassifyLCh(50, 0, 0, 345, 60))
	assert.Equal(t, PinkMagenta, ClassifyLCh(50, 0, 0, 344.9, 60))
	assert.Equal(t, Yellow, ClassifyLCh(90, 0, 0, 85, 60))
	assert.Equal(t, YellowGreen, ClassifyLCh(90, 0, 0, 100, 60))
	assert.Equal(t, Green, ClassifyLCh(50, 0, 0, 400, 60))
}

func TestGroupRanksAndNames(t *testing.T) {
	groups := Groups()
	require.Len(t, groups, 15)
	for i, group := range groups {
		assert.Equal(t, i, group.Rank())
	}

	assert.Equal(t, "YELLOW", Yellow.String())
	assert.Equal(t, "BLACK_NEUTRAL", BlackNeutral.String())
	assert.Equal(t, "UNKNOWN", Group(99).String())

	text, err := SkinTone.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "SKIN_TONE", string(text))
}

func TestSortChromaticOrdersByGroup(t *testing.T) {
	input := swatchesOf("#4682B4", "#000000", "#FF0000", "#8B4513", "#FFD700", "#228B22", "#FF8C00")

	sorted := SortChromatic(input)

	assert.Equal(t, []string{
		"#FFD700", // yellow
		"#FF8C00", // orange
		"#FF0000", // red
		"#4682B4", // blue
		"#228B22", // green
		"#8B4513", // brown
		"#000000", // black
	}, hexesOf(sorted))

	// input untouched
	assert.Equal(t, "#4682B4", input[0].Hex)
}

func TestSortChromaticRedBeforeBlue(t *testing.T) {
	sorted := SortChromatic(swatchesOf("#0000FF", "#4682B4", "#FF0000", "#CC0000"))

	lastRed, firstBlue := -1, len(sorted)
	for i, analysis := range AnalyzeAll(sorted) {
		switch analysis.Group {
		case Red:
			lastRed = i
		case Blue, VioletPurple:
			if i < firstBlue {
				firstBlue = i
			}
		}
	}
	assert.Less(t, lastRed, firstBlue)
}

func TestSortChromaticWithinGroup(t *testing.T) {
	sorted := SortChromatic(swatchesOf("#800000", "#CC0000", "#FF0000", "#DC143C", "#FF0040"))

	assert.Equal(t, []string{"#FF0040", "#DC143C", "#FF0000", "#CC0000", "#800000"}, hexesOf(sorted))
}

func TestSortChromaticIsIdempotent(t *testing.T) {
	once := SortChromatic(swatchesOf(
		"#FF00FF", "#40E0D0", "#FFA500", "#808080", "#9ACD32", "#F5CBA7",
		"#000000", "#FF0000", "#4682B4", "#8B4513", "#FFD700",
	))
	twice := SortChromatic(once)

	assert.Equal(t, hexesOf(once), hexesOf(twice))
}

func assertAdjacentInOrder(t *testing.T, sorted []models.Swatch) {
	t.Helper()
	analyses := AnalyzeAll(sorted)
	for i := 1; i < len(analyses); i++ {
		assert.LessOrEqual(t, compareAnalysis(analyses[i-1], analyses[i]), 0,
			"%s before %s", analyses[i-1].Swatch.Hex, analyses[i].Swatch.Hex)
	}
}

func TestSortChromaticIsIdempotentAcrossMergeBlocks(t *testing.T) {
	// 21 near-hue reds: one more than a single insertion-sort block
	input := swatchesOf(
		"#E0100C", "#D8160A", "#E61E10", "#DA0D14", "#D31A06", "#E3220B", "#CE0F0F",
		"#DD1812", "#D9230D", "#E50915", "#D0170B", "#E1140E", "#D61D03",
		"#DF1C09", "#D71A09", "#D41409", "#D50B11", "#CC0318", "#CF1520", "#CC231C", "#D41901",
	)
	require.Len(t, input, 21)

	once := SortChromatic(input)
	twice := SortChromatic(once)

	assert.Equal(t, hexesOf(once), hexesOf(twice))
	assertAdjacentInOrder(t, once)
}

func randomNearHueCollection(rng *rand.Rand, n int) []models.Swatch {
	hexes := make([]string, n)
	for i := range hexes {
		hexes[i] = colorspace.RGB{
			R: 200 + rng.IntN(56),
			G: rng.IntN(40),
			B: rng.IntN(40),
		}.Hex()
	}
	return swatchesOf(hexes...)
}

func TestSortChromaticIsIdempotentOnRandomCollections(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))

	for trial := 0; trial < 300; trial++ {
		input := randomNearHueCollection(rng, 25+rng.IntN(76))

		once := SortChromatic(input)
		twice := SortChromatic(once)

		require.Equal(t, hexesOf(once), hexesOf(twice), "trial %d, %d swatches", trial, len(input))
		assertAdjacentInOrder(t, once)
	}
}

func TestSortAnalyzedKeepsNearHueTiesInInputOrder(t *testing.T) {
	analyses := []Analysis{
		{Swatch: models.Swatch{ID: "first"}, Lab: colorspace.Lab{L: 50}, Hue: 32, Chroma: 40, Group: Red},
		{Swatch: models.Swatch{ID: "second"}, Lab: colorspace.Lab{L: 50}, Hue: 30, Chroma: 40, Group: Red},
	}

	SortAnalyzed(analyses)

	assert.Equal(t, "first", analyses[0].Swatch.ID)
	assert.Equal(t, "second", analyses[1].Swatch.ID)
}

func TestSortChromaticToleratesMalformedHex(t *testing.T) {
	input := swatchesOf("#FF0000", "nothex", "#FFD700")

	var sorted []models.Swatch
	require.NotPanics(t, func() {
		sorted = SortChromatic(input)
	})
	require.Len(t, sorted, len(input))
	assert.Equal(t, "nothex", sorted[len(sorted)-1].Hex)

	analysis := Analyze(models.Swatch{Hex: "nothex"})
	assert.False(t, analysis.Valid)
	assert.Equal(t, BlackNeutral, analysis.Group)
	assert.Equal(t, 50.0, analysis.Lab.L)
	assert.Zero(t, analysis.Chroma)
}

func TestSortChromaticEmpty(t *testing.T) {
	assert.Empty(t, SortChromatic(nil))
}

func TestHSLSorts(t *testing.T) {
	input := swatchesOf("#0000FF", "#008000", "#FF0000", "#336699", "#FFA500", "#808080")

	assert.Equal(t,
		[]string{"#FF0000", "#808080", "#FFA500", "#008000", "#336699", "#0000FF"},
		hexesOf(SortByHue(input)))

	assert.Equal(t,
		[]string{"#0000FF", "#008000", "#FF0000", "#FFA500", "#336699", "#808080"},
		hexesOf(SortBySaturation(input)))

	assert.Equal(t,
		[]string{"#008000", "#336699", "#0000FF", "#FF0000", "#FFA500", "#808080"},
		hexesOf(SortByLightness(input)))
}

func TestHSLSortsTreatMalformedAsZero(t *testing.T) {
	sorted := SortByLightness(swatchesOf("#FFFFFF", "bogus", "#000000"))
	assert.Equal(t, []string{"bogus", "#000000", "#FFFFFF"}, hexesOf(sorted))
}

func TestSortBy(t *testing.T) {
	input := swatchesOf("#4682B4", "#FF0000", "#FFD700")

	assert.Equal(t, hexesOf(SortChromatic(input)), hexesOf(SortBy(models.SortChromatic, input)))
	assert.Equal(t, hexesOf(SortByHue(input)), hexesOf(SortBy(models.SortHue, input)))
	assert.Equal(t, hexesOf(SortBySaturation(input)), hexesOf(SortBy(models.SortSaturation, input)))
	assert.Equal(t, hexesOf(SortByLightness(input)), hexesOf(SortBy(models.SortLightness, input)))
	assert.Equal(t, hexesOf(SortByHue(input)), hexesOf(SortBy("unknown", input)))
}

func TestDescribe(t *testing.T) {
	desc, err := Describe("ff0000")
	require.NoError(t, err)

	assert.Equal(t, "#FF0000", desc.Hex)
	assert.Equal(t, colorspace.RGB{R: 255, G: 0, B: 0}, desc.RGB)
	assert.Equal(t, colorspace.HSL{H: 0, S: 100, L: 50}, desc.HSL)
	assert.InDelta(t, 53.24, desc.Lab.L, 0.05)
	assert.Equal(t, Red, desc.Group)
	assert.Equal(t, "#00FFFF", desc.Complementary)
	assert.Equal(t, 76, desc.Brightness)

	_, err = Describe("#12345")
	assert.ErrorIs(t, err, colorspace.ErrInvalidHex)
}
