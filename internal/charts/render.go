package charts

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// ContentTypes lists the formats Render can produce.
var ContentTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
}

const (
	panelWidth  = 8 * vg.Inch
	panelHeight = 5 * vg.Inch
	barWidth    = 24
	boxWidth    = 28
)

var (
	panelBackground = color.RGBA{R: 0xeb, G: 0xeb, B: 0xeb, A: 0xff}
	gridColor       = color.White
	fillColor       = color.RGBA{R: 0xe2, G: 0x4a, B: 0x33, A: 0xff}
	lineColor       = color.RGBA{R: 0x34, G: 0x8a, B: 0xbd, A: 0xff}
)

// Render draws fig as a single image in the given format (png or svg).
func Render(w io.Writer, fig *Figure, format string) error {
	if _, ok := ContentTypes[format]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if fig.Rows <= 0 || fig.Cols <= 0 || len(fig.Panels) != fig.Rows*fig.Cols {
		return fmt.Errorf("figure has %d panels for a %dx%d grid", len(fig.Panels), fig.Rows, fig.Cols)
	}

	plots := make([][]*plot.Plot, fig.Rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, fig.Cols)
		for j := range plots[i] {
			p, err := newPlot(fig.Panels[i*fig.Cols+j])
			if err != nil {
				return fmt.Errorf("panel %d: %w", i*fig.Cols+j, err)
			}
			plots[i][j] = p
		}
	}

	c, err := draw.NewFormattedCanvas(panelWidth*vg.Length(fig.Cols), panelHeight*vg.Length(fig.Rows), format)
	if err != nil {
		return fmt.Errorf("creating canvas: %w", err)
	}
	dc := draw.New(c)

	if fig.Rows == 1 && fig.Cols == 1 {
		plots[0][0].Draw(dc)
	} else {
		tiles := draw.Tiles{
			Rows:      fig.Rows,
			Cols:      fig.Cols,
			PadX:      vg.Millimeter * 6,
			PadY:      vg.Millimeter * 6,
			PadTop:    vg.Millimeter * 2,
			PadBottom: vg.Millimeter * 2,
			PadLeft:   vg.Millimeter * 2,
			PadRight:  vg.Millimeter * 2,
		}

		canvases := plot.Align(plots, tiles, dc)
		for i := range plots {
			for j := range plots[i] {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}

	if _, err = c.WriteTo(w); err != nil {
		return fmt.Errorf("writing %s: %w", format, err)
	}

	return nil
}

func newPlot(panel Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel
	p.BackgroundColor = panelBackground

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	var err error
	switch panel.Kind {
	case PanelBox:
		err = addBoxes(p, panel)
	case PanelLine:
		err = addLine(p, panel)
	case PanelBar:
		err = addBars(p, panel)
	default:
		err = fmt.Errorf("unknown panel kind %d", panel.Kind)
	}
	if err != nil {
		return nil, err
	}

	if len(panel.Categories) > 0 {
		p.NominalX(panel.Categories...)
	}

	if panel.RotateX {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	return p, nil
}

func addBoxes(p *plot.Plot, panel Panel) error {
	for i, sample := range panel.Samples {
		if len(sample) == 0 {
			continue
		}

		b, err := plotter.NewBoxPlot(vg.Points(boxWidth), float64(i), plotter.Values(sample))
		if err != nil {
			return fmt.Errorf("box %s: %w", panel.Categories[i], err)
		}
		b.FillColor = fillColor
		p.Add(b)
	}

	return nil
}

func addLine(p *plot.Plot, panel Panel) error {
	if len(panel.Values) == 0 {
		return nil
	}

	xys := indexed(panel.Values)

	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.Color = lineColor
	l.Width = vg.Points(2)

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	s.Color = lineColor

	p.Add(l, s)

	return nil
}

func addBars(p *plot.Plot, panel Panel) error {
	if len(panel.Values) == 0 {
		return nil
	}

	bars, err := plotter.NewBarChart(plotter.Values(panel.Values), vg.Points(barWidth))
	if err != nil {
		return err
	}
	bars.Color = fillColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.Y.Min = 0

	if len(panel.Labels) == 0 {
		return nil
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    indexed(panel.Values),
		Labels: panel.Labels,
	})
	if err != nil {
		return fmt.Errorf("bar labels: %w", err)
	}
	labels.Offset = vg.Point{Y: vg.Points(4)}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
	}
	p.Add(labels)

	return nil
}

// indexed puts values on x = 0, 1, ... to line up with nominal ticks
func indexed(values []float64) plotter.XYs {
	xys := make(plotter.XYs, len(values))
	for i, v := range values {
		xys[i].X = float64(i)
		xys[i].Y = v
	}

	return xys
}
