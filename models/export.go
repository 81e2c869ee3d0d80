package models

import (
	"encoding/json"
	"fmt"
	"io"
)

// ExportSwatch is one entry of an exported palette or collection file.
type ExportSwatch struct {
	Hex    string `json:"hex"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// ToExport strips ids and annotations.
func ToExport(swatches []Swatch) []ExportSwatch {
	exported := make([]ExportSwatch, 0, len(swatches))
	for _, swatch := range swatches {
		exported = append(exported, ExportSwatch{Hex: swatch.Hex, Name: swatch.Name, Source: swatch.Source})
	}
	return exported
}

// EncodeExport writes swatches as a JSON array indented by two spaces.
func EncodeExport(w io.Writer, swatches []Swatch) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(ToExport(swatches)); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// DecodeSwatches reads a JSON array of swatch objects. Entries with malformed
// hex or an unknown source are dropped and reported.
func DecodeSwatches(r io.Reader) ([]Swatch, []Rejected, error) {
	var reqs []SwatchRequest
	if err := json.NewDecoder(r).Decode(&reqs); err != nil {
		return nil, nil, fmt.Errorf("decode swatches: %w", err)
	}

	for i := range reqs {
		if reqs[i].Source == "" {
			reqs[i].Source = SourceFile
		}
	}

	swatches, rejected := BuildSwatches(reqs)
	return swatches, rejected, nil
}
