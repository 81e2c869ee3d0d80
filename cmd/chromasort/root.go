package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/luciasjperez85-svg/markersinorder/models"
	"github.com/spf13/cobra"
)

var version = "dev"

type options struct {
	jsonOutput bool
	verbose    bool
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "chromasort",
		Short: "Sort, group and combine color swatches",
		Long: `chromasort works offline on JSON swatch files. It orders swatches
along a marker-chart color wheel, finds harmonies and palette suggestions,
converts between color spaces and corrects samples against black and white
reference patches.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
				Level:      level,
				TimeFormat: time.Kitchen,
			}))
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "chromasort version %s\n" .Version}}`)

	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Write JSON instead of rendered swatches")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(newSortCmd(opts))
	rootCmd.AddCommand(newHarmonyCmd(opts))
	rootCmd.AddCommand(newSuggestCmd(opts))
	rootCmd.AddCommand(newConvertCmd(opts))
	rootCmd.AddCommand(newCalibrateCmd(opts))
	rootCmd.AddCommand(newHashPasswordCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of chromasort",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chromasort version %s\n", version)
		},
	}
}

// readSwatches loads a swatch file. No argument or "-" reads stdin.
func readSwatches(cmd *cobra.Command, opts *options, args []string) ([]models.Swatch, error) {
	var r io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
		name = args[0]
	}

	swatches, rejected, err := models.DecodeSwatches(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	for _, entry := range rejected {
		opts.logger.Warn("skipping swatch", "index", entry.Index, "hex", entry.Hex, "reason", entry.Reason)
	}
	opts.logger.Debug("loaded swatches", "source", name, "count", len(swatches), "rejected", len(rejected))
	return swatches, nil
}

func writeJSON(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
