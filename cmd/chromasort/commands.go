package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/luciasjperez85-svg/markersinorder/calibration"
	"github.com/luciasjperez85-svg/markersinorder/chromatic"
	"github.com/luciasjperez85-svg/markersinorder/colorspace"
	"github.com/luciasjperez85-svg/markersinorder/harmony"
	"github.com/luciasjperez85-svg/markersinorder/models"
	"github.com/spf13/cobra"
)

func newSortCmd(opts *options) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "sort [file]",
		Short: "Order a swatch file",
		Long: `Order swatches by hue, saturation, lightness or chromatic family.
The chromatic order walks the marker-chart wheel from yellow through the
neutrals.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sortMode, err := models.ParseSortMode(mode)
			if err != nil {
				return fmt.Errorf("%w: %q", err, mode)
			}

			swatches, err := readSwatches(cmd, opts, args)
			if err != nil {
				return err
			}

			sorted := chromatic.SortBy(sortMode, swatches)
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), sorted)
			}
			renderSwatches(cmd.OutOrStdout(), "", sorted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(models.DefaultSortMode), "hue, saturation, lightness or chromatic")
	return cmd
}

func newHarmonyCmd(opts *options) *cobra.Command {
	var (
		harmonyType string
		base        string
		count       int
	)

	cmd := &cobra.Command{
		Use:   "harmony [file]",
		Short: "Pick swatches that harmonize with a base color",
		Long: fmt.Sprintf(`Select colors from a swatch file that form a harmony with the base
color. Only colors present in the file are returned. Types: %s.`, strings.Join(harmony.Types(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized, err := colorspace.NormalizeHex(base)
			if err != nil {
				return fmt.Errorf("--base: %w", err)
			}

			swatches, err := readSwatches(cmd, opts, args)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("count") {
				count = harmony.DefaultCount(harmonyType)
			}
			matches, err := harmony.Find(harmonyType, swatches, normalized, count)
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), matches)
			}
			renderSwatches(cmd.OutOrStdout(), fmt.Sprintf("%s from %s", harmonyType, normalized), matches)
			return nil
		},
	}

	cmd.Flags().StringVarP(&harmonyType, "type", "t", models.PaletteAnalogous, "Harmony type")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base color hex")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Maximum colors to return (default depends on type)")
	cmd.MarkFlagRequired("base")
	return cmd
}

func newSuggestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [file]",
		Short: "Suggest palettes built from the first colors of a swatch file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			swatches, err := readSwatches(cmd, opts, args)
			if err != nil {
				return err
			}

			palettes := harmony.Suggest(swatches)
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), palettes)
			}
			if len(palettes) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no suggestions, at least %d colors are needed\n", harmony.MinSuggestionColors)
				return nil
			}
			for _, palette := range palettes {
				renderSwatches(cmd.OutOrStdout(), palette.Name, palette.Colors)
			}
			return nil
		},
	}
}

func newConvertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert HEX...",
		Short: "Show a color in RGB, HSL and CIELAB with its chromatic group",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptions := make([]chromatic.Description, 0, len(args))
			for _, hex := range args {
				desc, err := chromatic.Describe(hex)
				if err != nil {
					return err
				}
				descriptions = append(descriptions, desc)
			}

			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), descriptions)
			}
			for _, desc := range descriptions {
				renderDescription(cmd.OutOrStdout(), desc)
			}
			return nil
		},
	}
}

var errRGBFormat = errors.New("expected r,g,b with channels between 0 and 255")

func parseRGB(value string) (colorspace.RGB, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return colorspace.RGB{}, fmt.Errorf("%w: %q", errRGBFormat, value)
	}

	var channels [3]int
	for i, part := range parts {
		channel, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || channel < 0 || channel > 255 {
			return colorspace.RGB{}, fmt.Errorf("%w: %q", errRGBFormat, value)
		}
		channels[i] = channel
	}
	return colorspace.RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

type calibrateOutput struct {
	Matrix    *calibration.Matrix `json:"matrix"`
	Corrected []string            `json:"corrected"`
}

func newCalibrateCmd(opts *options) *cobra.Command {
	var black, white string

	cmd := &cobra.Command{
		Use:   "calibrate --black r,g,b --white r,g,b [HEX...]",
		Short: "Derive a correction from reference patches and apply it",
		RunE: func(cmd *cobra.Command, args []string) error {
			blackRGB, err := parseRGB(black)
			if err != nil {
				return fmt.Errorf("--black: %w", err)
			}
			whiteRGB, err := parseRGB(white)
			if err != nil {
				return fmt.Errorf("--white: %w", err)
			}

			out := calibrateOutput{Matrix: calibration.Compute(blackRGB, whiteRGB), Corrected: []string{}}
			for _, hex := range args {
				corrected, err := out.Matrix.ApplyHex(hex)
				if err != nil {
					return err
				}
				out.Corrected = append(out.Corrected, corrected)
			}

			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			for _, row := range []struct {
				name string
				c    calibration.ChannelCorrection
			}{
				{"r", out.Matrix.PerChannel.R},
				{"g", out.Matrix.PerChannel.G},
				{"b", out.Matrix.PerChannel.B},
			} {
				fmt.Fprintf(w, "%s  scale %.4f  offset %.4f\n", row.name, row.c.Scale, row.c.Offset)
			}
			for i, corrected := range out.Corrected {
				fmt.Fprintf(w, "%s -> %s\n", strings.ToUpper(args[i]), corrected)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&black, "black", "", "Sampled black reference as r,g,b")
	cmd.Flags().StringVar(&white, "white", "", "Sampled white reference as r,g,b")
	cmd.MarkFlagRequired("black")
	cmd.MarkFlagRequired("white")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password PASSWORD",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := models.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		secret string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an operator access token",
		Long: `Mint an operator access token signed with the service's JWT secret.
The secret defaults to the JWT_SECRET environment variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			token, err := models.NewOperatorToken(models.OperatorSubject, secret, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret (default $JWT_SECRET)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}
