package charts

import (
	"fmt"
	"strconv"

	"topbooks/internal/dataset"
	"topbooks/internal/types"
)

type PanelKind uint8

const (
	PanelBox  PanelKind = 1
	PanelLine PanelKind = 2
	PanelBar  PanelKind = 3
)

// Panel is a single chart, independent of the drawing backend.
type Panel struct {
	Kind   PanelKind
	Title  string
	XLabel string
	YLabel string

	// Categories are the x axis ticks, one per box, point or bar
	Categories []string
	// Values hold line points or bar heights (PanelLine, PanelBar)
	Values []float64
	// Samples hold the distribution behind every box (PanelBox)
	Samples [][]float64
	// Labels annotate bars, nil means no annotation
	Labels []string

	RotateX bool
}

// Figure is what one render call draws: a grid of Rows x Cols panels, row major.
type Figure struct {
	Rows   int
	Cols   int
	Panels []Panel
}

// Build maps a plot type onto the figure drawn for it.
func Build(repo dataset.Repository, p types.PlotType) (*Figure, error) {
	switch p.Kind {
	case types.PlotAverageRating:
		return single(averageRating(repo)), nil
	case types.PlotRatingCount:
		return single(ratingCount(repo)), nil
	case types.PlotShelvings:
		return single(shelvings(repo)), nil
	case types.PlotTopAuthors:
		return single(topAuthors(repo, p.Count)), nil
	case types.PlotAllInOne:
		return &Figure{
			Rows: 2,
			Cols: 2,
			Panels: []Panel{
				averageRating(repo),
				ratingCount(repo),
				shelvings(repo),
				topAuthors(repo, types.DefaultTopAuthors),
			},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownPlot, p.Kind)
	}
}

func single(p Panel) *Figure {
	return &Figure{Rows: 1, Cols: 1, Panels: []Panel{p}}
}

func averageRating(repo dataset.Repository) Panel {
	years := repo.Years()
	p := Panel{
		Kind:       PanelBox,
		Title:      "Average Rating",
		XLabel:     "Year",
		YLabel:     "Average Ratings per year",
		Categories: make([]string, 0, len(years)),
		Samples:    make([][]float64, 0, len(years)),
	}

	for _, y := range years {
		books := repo.BooksForYear(y)
		ratings := make([]float64, 0, len(books))
		for _, b := range books {
			ratings = append(ratings, b.AvgRating)
		}
		p.Categories = append(p.Categories, strconv.Itoa(y))
		p.Samples = append(p.Samples, ratings)
	}

	return p
}

func ratingCount(repo dataset.Repository) Panel {
	return yearly(repo, PanelLine, "Rating Count", func(s types.YearStats) float64 {
		return s.RatingCount
	})
}

func shelvings(repo dataset.Repository) Panel {
	return yearly(repo, PanelBar, "Shelvings", func(s types.YearStats) float64 {
		return s.Shelvings
	})
}

func yearly(repo dataset.Repository, kind PanelKind, name string, value func(types.YearStats) float64) Panel {
	rows := repo.YearlyAggregate()
	p := Panel{
		Kind:       kind,
		Title:      name,
		XLabel:     "Year",
		YLabel:     name,
		Categories: make([]string, 0, len(rows)),
		Values:     make([]float64, 0, len(rows)),
	}

	for _, r := range rows {
		p.Categories = append(p.Categories, strconv.Itoa(r.Year))
		p.Values = append(p.Values, value(r))
	}

	return p
}

func topAuthors(repo dataset.Repository, n int) Panel {
	if n <= 0 {
		n = types.DefaultTopAuthors
	}

	rows := repo.TopAuthors(n)
	p := Panel{
		Kind:       PanelBar,
		Title:      fmt.Sprintf("Top %d Authors", n),
		XLabel:     "Author",
		YLabel:     "Avg rating",
		Categories: make([]string, 0, len(rows)),
		Values:     make([]float64, 0, len(rows)),
		Labels:     make([]string, 0, len(rows)),
		RotateX:    true,
	}

	for _, r := range rows {
		p.Categories = append(p.Categories, r.Author)
		p.Values = append(p.Values, r.AvgRating)
		p.Labels = append(p.Labels, fmt.Sprintf("%.2f", r.AvgRating))
	}

	return p
}
