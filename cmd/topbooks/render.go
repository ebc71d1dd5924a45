package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"topbooks/internal/charts"
	"topbooks/internal/types"
	"topbooks/internal/validation"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var plotName, format, out string
	var count int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one chart to a file",
		Example: `  # Top 5 authors as png
  topbooks render --plot "Top Authors" --count 5 --out top5.png

  # All four charts as svg on stdout
  topbooks render --plot all-in-one --format svg > all.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plot, err := types.ParsePlotType(plotName, count)
			if err != nil {
				return err
			}

			// year is irrelevant to charts, only the plot part is checked
			if err = validation.New().Validate(types.Selection{Year: types.MinYear, Plot: plot}); err != nil {
				return err
			}

			ds, err := opts.load()
			if err != nil {
				return err
			}

			fig, err := charts.Build(ds, plot)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err = charts.Render(&buf, fig, format); err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating output: %w", err)
				}
				defer f.Close()
				w = f
			}

			if _, err = buf.WriteTo(w); err != nil {
				return fmt.Errorf("writing chart: %w", err)
			}

			slog.Debug("chart rendered", slog.String("plot", plot.String()), slog.String("format", format),
				slog.String("out", out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&plotName, "plot", "p", types.PlotAllInOne.String(), "Plot type: Average Rating, Rating Count, Shelvings, Top Authors or All in One")
	cmd.Flags().IntVarP(&count, "count", "n", types.DefaultTopAuthors, "Number of authors for Top Authors: 5, 10, 15 or 20")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "Image format: png or svg")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, stdout when empty")

	return cmd
}
