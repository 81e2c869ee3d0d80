package models

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/luciasjperez85-svg/markersinorder/colorspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSwatch(t *testing.T) {
	swatch, err := NewSwatch("  ff5733", "", "")
	require.NoError(t, err)

	assert.Equal(t, "#FF5733", swatch.Hex)
	assert.Equal(t, "#FF5733", swatch.Name)
	assert.Equal(t, SourceManualHex, swatch.Source)
	_, err = uuid.Parse(swatch.ID)
	assert.NoError(t, err)

	other, err := NewSwatch("#FF5733", "Tomato", SourcePicker)
	require.NoError(t, err)
	assert.NotEqual(t, swatch.ID, other.ID)
	assert.Equal(t, "Tomato", other.Name)
}

func TestNewSwatchRejects(t *testing.T) {
	_, err := NewSwatch("#FFF", "short", SourcePicker)
	assert.ErrorIs(t, err, colorspace.ErrInvalidHex)

	_, err = NewSwatch("#FFFFFF", "white", "scanner")
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestBuildSwatchesFiltersInvalid(t *testing.T) {
	reqs := []SwatchRequest{
		{Hex: "#00ff00", Name: "green", Source: SourceCSV},
		{Hex: "zzzzzz", Name: "junk"},
		{ID: "keep-me", Hex: "0000FF", Source: SourceGridExtract, Position: GridPosition(1, 2)},
		{Hex: "#123456", Source: "nope"},
	}

	swatches, rejected := BuildSwatches(reqs)
	require.Len(t, swatches, 2)
	assert.Equal(t, "#00FF00", swatches[0].Hex)
	assert.Equal(t, "keep-me", swatches[1].ID)
	assert.Equal(t, 1, *swatches[1].Position.Row)
	assert.Equal(t, 2, *swatches[1].Position.Col)

	require.Len(t, rejected, 2)
	assert.Equal(t, 1, rejected[0].Index)
	assert.Equal(t, 3, rejected[1].Index)
}

func TestEncodeExport(t *testing.T) {
	swatches := []Swatch{
		{ID: "1", Hex: "#FF0000", Name: "Red", Source: SourcePicker, Position: PointPosition(4, 5)},
		{ID: "2", Hex: "#00FFFF", Name: "Cyan", Source: SourceFile},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeExport(&buf, swatches))

	want := `[
  {
    "hex": "#FF0000",
    "name": "Red",
    "source": "picker"
  },
  {
    "hex": "#00FFFF",
    "name": "Cyan",
    "source": "file"
  }
]
`
	assert.Equal(t, want, buf.String())
}

func TestEncodeExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeExport(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestDecodeSwatches(t *testing.T) {
	input := `[{"hex":"#ff0000","name":"Red"},{"hex":"nothex","name":"bad"},{"hex":"00ffff","name":"Cyan","source":"csv"}]`

	swatches, rejected, err := DecodeSwatches(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, swatches, 2)
	assert.Equal(t, SourceFile, swatches[0].Source)
	assert.Equal(t, "#00FFFF", swatches[1].Hex)
	assert.Equal(t, SourceCSV, swatches[1].Source)
	require.Len(t, rejected, 1)
	assert.Equal(t, "nothex", rejected[0].Hex)

	_, _, err = DecodeSwatches(strings.NewReader(`{"hex":"#FF0000"}`))
	assert.Error(t, err)
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		input   string
		want    SortMode
		wantErr bool
	}{
		{input: "", want: SortHue},
		{input: "hue", want: SortHue},
		{input: " Chromatic ", want: SortChromatic},
		{input: "SATURATION", want: SortSaturation},
		{input: "lightness", want: SortLightness},
		{input: "rainbow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortMode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSortMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperatorToken(t *testing.T) {
	now := time.Now()
	resp, err := NewOperatorToken(OperatorSubject, "secret", time.Hour, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), resp.Expiry, time.Second)

	claims, err := ValidateJWTToken(resp.Token, "secret")
	require.NoError(t, err)
	assert.Equal(t, OperatorSubject, claims.Subject)
	assert.Equal(t, OperatorScope, claims.Scope)

	_, err = ValidateJWTToken(resp.Token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewOperatorToken(OperatorSubject, "secret", time.Minute, now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = ValidateJWTToken(expired.Token, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewOperatorToken(OperatorSubject, "", time.Hour, now)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "hunter2"))
	assert.ErrorIs(t, CheckPassword(hash, "hunter3"), ErrPasswordMismatch)

	_, err = HashPassword("")
	assert.Error(t, err)
}
