package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/luciasjperez85-svg/markersinorder/colorspace"
)

// Swatch sources
const (
	SourceManualHex   = "manual-hex"
	SourceManualRGB   = "manual-rgb"
	SourcePicker      = "picker"
	SourceFile        = "file"
	SourceCSV         = "csv"
	SourceBulkText    = "bulk-text"
	SourceAutoExtract = "auto-extract"
	SourceGridExtract = "grid-extract"
	SourceManualPoint = "manual-point"
)

var validSources = map[string]bool{
	SourceManualHex:   true,
	SourceManualRGB:   true,
	SourcePicker:      true,
	SourceFile:        true,
	SourceCSV:         true,
	SourceBulkText:    true,
	SourceAutoExtract: true,
	SourceGridExtract: true,
	SourceManualPoint: true,
}

var ErrInvalidSource = errors.New("invalid swatch source")

// IsValidSource reports whether source is one of the known provenance tags.
func IsValidSource(source string) bool {
	return validSources[source]
}

// Position locates a swatch on the chart, either by grid cell or by pixel.
type Position struct {
	Row *int `json:"row,omitempty"`
	Col *int `json:"col,omitempty"`
	X   *int `json:"x,omitempty"`
	Y   *int `json:"y,omitempty"`
}

// GridPosition builds a {row,col} position.
func GridPosition(row, col int) *Position {
	return &Position{Row: &row, Col: &col}
}

// PointPosition builds an {x,y} position.
func PointPosition(x, y int) *Position {
	return &Position{X: &x, Y: &y}
}

// Swatch is one color sample in a collection. Hex is canonical.
type Swatch struct {
	ID        string    `json:"id"`
	Hex       string    `json:"hex"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	Frequency *int      `json:"frequency,omitempty"`
	Position  *Position `json:"position,omitempty"`
}

// SwatchRequest is the wire shape accepted when adding swatches.
type SwatchRequest struct {
	ID        string    `json:"id,omitempty"`
	Hex       string    `json:"hex"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	Frequency *int      `json:"frequency,omitempty"`
	Position  *Position `json:"position,omitempty"`
}

func (swatch Swatch) GenerateKey() string {
	return uuid.New().String()
}

// NewSwatch validates and normalises hex and assigns a fresh id.
func NewSwatch(hex, name, source string) (Swatch, error) {
	normalized, err := colorspace.NormalizeHex(hex)
	if err != nil {
		return Swatch{}, err
	}

	if source == "" {
		source = SourceManualHex
	}
	if !IsValidSource(source) {
		return Swatch{}, fmt.Errorf("%w: %q", ErrInvalidSource, source)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = normalized
	}

	var swatch Swatch
	swatch = Swatch{
		ID:     swatch.GenerateKey(),
		Hex:    normalized,
		Name:   name,
		Source: source,
	}
	return swatch, nil
}

// ToSwatch builds a Swatch from a request, keeping the caller's id if any.
func (req SwatchRequest) ToSwatch() (Swatch, error) {
	swatch, err := NewSwatch(req.Hex, req.Name, req.Source)
	if err != nil {
		return Swatch{}, err
	}
	if req.ID != "" {
		swatch.ID = req.ID
	}
	swatch.Frequency = req.Frequency
	swatch.Position = req.Position
	return swatch, nil
}

// Rejected describes an input entry that could not become a Swatch.
type Rejected struct {
	Index  int    `json:"index"`
	Hex    string `json:"hex"`
	Reason string `json:"reason"`
}

// BuildSwatches converts requests, filtering out invalid entries.
func BuildSwatches(reqs []SwatchRequest) ([]Swatch, []Rejected) {
	swatches := make([]Swatch, 0, len(reqs))
	var rejected []Rejected
	for i, req := range reqs {
		swatch, err := req.ToSwatch()
		if err != nil {
			rejected = append(rejected, Rejected{Index: i, Hex: req.Hex, Reason: err.Error()})
			continue
		}
		swatches = append(swatches, swatch)
	}
	return swatches, rejected
}
