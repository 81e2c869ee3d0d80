package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/luciasjperez85-svg/markersinorder/chromatic"
	"github.com/luciasjperez85-svg/markersinorder/colorspace"
	"github.com/luciasjperez85-svg/markersinorder/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	hexStyle   = lipgloss.NewStyle().Width(9)
	groupStyle = lipgloss.NewStyle().Width(15).Faint(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// chip is a solid block in the swatch color. Malformed hex renders blank.
func chip(hex string) string {
	style := lipgloss.NewStyle().Width(6)
	if normalized, err := colorspace.NormalizeHex(hex); err == nil {
		style = style.Background(lipgloss.Color(normalized))
	}
	return style.Render("")
}

func swatchLine(swatch models.Swatch) string {
	analysis := chromatic.Analyze(swatch)
	name := swatch.Name
	if name == swatch.Hex {
		name = ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		chip(swatch.Hex), " ",
		hexStyle.Render(swatch.Hex),
		groupStyle.Render(analysis.Group.String()),
		name,
	)
}

func renderSwatches(w io.Writer, title string, swatches []models.Swatch) {
	if title != "" {
		fmt.Fprintln(w, titleStyle.Render(title))
	}
	if len(swatches) == 0 {
		fmt.Fprintln(w, dimStyle.Render("(no colors)"))
		return
	}
	lines := make([]string, len(swatches))
	for i, swatch := range swatches {
		lines[i] = swatchLine(swatch)
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

func renderDescription(w io.Writer, desc chromatic.Description) {
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, chip(desc.Hex), " ", titleStyle.UnsetMarginTop().Render(desc.Hex)))
	rows := [][2]string{
		{"rgb", fmt.Sprintf("%d, %d, %d", desc.RGB.R, desc.RGB.G, desc.RGB.B)},
		{"hsl", fmt.Sprintf("%d°, %d%%, %d%%", desc.HSL.H, desc.HSL.S, desc.HSL.L)},
		{"lab", fmt.Sprintf("%.2f, %.2f, %.2f", desc.Lab.L, desc.Lab.A, desc.Lab.B)},
		{"lch", fmt.Sprintf("hue %.1f°, chroma %.2f", desc.LabHue, desc.Chroma)},
		{"group", desc.Group.String()},
		{"brightness", fmt.Sprintf("%d", desc.Brightness)},
		{"complement", desc.Complementary},
	}
	label := lipgloss.NewStyle().Width(12).Faint(true)
	for _, row := range rows {
		fmt.Fprintln(w, "  "+label.Render(row[0])+row[1])
	}
}
