package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luciasjperez85-svg/markersinorder/chromatic"
	"github.com/luciasjperez85-svg/markersinorder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wheelFile = `[
  {"hex": "#0000FF", "name": "Blue"},
  {"hex": "#FF0000", "name": "Red"},
  {"hex": "nope"},
  {"hex": "#00FF00", "name": "Green"},
  {"hex": "#ffd700", "name": "Gold"}
]`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func hexesOf(swatches []models.Swatch) []string {
	hexes := make([]string, len(swatches))
	for i, swatch := range swatches {
		hexes[i] = swatch.Hex
	}
	return hexes
}

func TestSubcommands(t *testing.T) {
	found := map[string]bool{}
	for _, cmd := range newRootCmd().Commands() {
		found[cmd.Name()] = true
	}

	for _, name := range []string{"sort", "harmony", "suggest", "convert", "calibrate", "hash-password", "token", "version"} {
		assert.True(t, found[name], "missing subcommand %s", name)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "chromasort version dev\n", out)

	out, err = run(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "chromasort version dev\n", out)
}

func TestSortFromStdin(t *testing.T) {
	out, err := run(t, wheelFile, "sort", "--json", "--mode", "chromatic")
	require.NoError(t, err)

	var sorted []models.Swatch
	require.NoError(t, json.Unmarshal([]byte(out), &sorted))
	assert.Equal(t, []string{"#FFD700", "#FF0000", "#0000FF", "#00FF00"}, hexesOf(sorted))
}

func TestSortFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.json")
	require.NoError(t, os.WriteFile(path, []byte(wheelFile), 0o644))

	out, err := run(t, "", "sort", path, "--json")
	require.NoError(t, err)

	var sorted []models.Swatch
	require.NoError(t, json.Unmarshal([]byte(out), &sorted))
	assert.Equal(t, []string{"#FF0000", "#FFD700", "#00FF00", "#0000FF"}, hexesOf(sorted))
}

func TestSortRendered(t *testing.T) {
	out, err := run(t, wheelFile, "sort", "-", "--mode", "lightness")
	require.NoError(t, err)

	assert.Contains(t, out, "#FF0000")
	assert.Contains(t, out, "Gold")
	assert.Contains(t, out, "YELLOW")
	assert.Less(t, strings.Index(out, "#00FF00"), strings.Index(out, "#FFD700"))
}

func TestSortErrors(t *testing.T) {
	_, err := run(t, wheelFile, "sort", "--mode", "rainbow")
	assert.ErrorIs(t, err, models.ErrInvalidSortMode)

	_, err = run(t, "not json", "sort")
	assert.Error(t, err)

	_, err = run(t, "", "sort", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestHarmony(t *testing.T) {
	out, err := run(t, wheelFile, "harmony", "--json", "--type", "triadic", "--base", "ff0000")
	require.NoError(t, err)

	var matches []models.Swatch
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.NotEmpty(t, matches)
	assert.Equal(t, "#FF0000", matches[0].Hex)
	assert.ElementsMatch(t, []string{"#FF0000", "#00FF00", "#0000FF"}, hexesOf(matches))

	out, err = run(t, wheelFile, "harmony", "--json", "--type", "triadic", "--base", "#FF0000", "--count", "1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	assert.Equal(t, []string{"#FF0000"}, hexesOf(matches))

	_, err = run(t, wheelFile, "harmony", "--type", "tetradic", "--base", "#FF0000")
	assert.Error(t, err)

	_, err = run(t, wheelFile, "harmony", "--base", "red")
	assert.Error(t, err)

	_, err = run(t, wheelFile, "harmony")
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	out, err := run(t, `[{"hex":"#FF0000"},{"hex":"#00FF00"},{"hex":"#0000FF"}]`, "suggest", "--json")
	require.NoError(t, err)

	var palettes []models.Palette
	require.NoError(t, json.Unmarshal([]byte(out), &palettes))
	require.Len(t, palettes, 2)
	assert.Equal(t, models.PaletteTriadic, palettes[0].Type)

	out, err = run(t, `[{"hex":"#FF0000"}]`, "suggest")
	require.NoError(t, err)
	assert.Contains(t, out, "no suggestions")
}

func TestConvert(t *testing.T) {
	out, err := run(t, "", "convert", "--json", "ff0000", "#FFD700")
	require.NoError(t, err)

	var descriptions []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &descriptions))
	require.Len(t, descriptions, 2)
	assert.Equal(t, "#FF0000", descriptions[0]["hex"])
	assert.Equal(t, "RED", descriptions[0]["group"])

	out, err = run(t, "", "convert", "#4682B4")
	require.NoError(t, err)
	assert.Contains(t, out, "70, 130, 180")
	assert.Contains(t, out, chromatic.Blue.String())

	_, err = run(t, "", "convert", "#XYZXYZ")
	assert.Error(t, err)

	_, err = run(t, "", "convert")
	assert.Error(t, err)
}

func TestCalibrate(t *testing.T) {
	out, err := run(t, "", "calibrate", "--json", "--black", "10,10,10", "--white", "245, 245, 245", "#F5F5F5", "0a0a0a")
	require.NoError(t, err)

	var result calibrateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotNil(t, result.Matrix)
	assert.InDelta(t, 255.0/235.0, result.Matrix.PerChannel.R.Scale, 1e-9)
	assert.Equal(t, []string{"#FFFFFF", "#000000"}, result.Corrected)

	out, err = run(t, "", "calibrate", "--black", "0,0,0", "--white", "255,255,255", "#123456")
	require.NoError(t, err)
	assert.Contains(t, out, "#123456 -> #123456")

	_, err = run(t, "", "calibrate", "--black", "0,0", "--white", "255,255,255")
	assert.ErrorIs(t, err, errRGBFormat)

	_, err = run(t, "", "calibrate", "--black", "0,0,0", "--white", "255,256,255")
	assert.ErrorIs(t, err, errRGBFormat)
}

func TestParseRGB(t *testing.T) {
	rgb, err := parseRGB(" 1, 2 ,3")
	require.NoError(t, err)
	assert.Equal(t, 1, rgb.R)
	assert.Equal(t, 2, rgb.G)
	assert.Equal(t, 3, rgb.B)

	for _, bad := range []string{"", "1,2", "1,2,3,4", "a,b,c", "-1,0,0"} {
		_, err := parseRGB(bad)
		assert.ErrorIs(t, err, errRGBFormat, bad)
	}
}

func TestHashPasswordAndToken(t *testing.T) {
	out, err := run(t, "", "hash-password", "letmein")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, models.CheckPassword(hash, "letmein"))

	out, err = run(t, "", "token", "--secret", "s3cret", "--ttl", "5m")
	require.NoError(t, err)

	claims, err := models.ValidateJWTToken(strings.TrimSpace(out), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.OperatorSubject, claims.Subject)

	t.Setenv("JWT_SECRET", "")
	_, err = run(t, "", "token")
	assert.Error(t, err)
}
