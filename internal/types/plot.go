package types

import (
	"errors"
	"fmt"
	"strings"
)

type PlotKind uint8

const (
	PlotAverageRating PlotKind = 1
	PlotRatingCount   PlotKind = 2
	PlotShelvings     PlotKind = 3
	PlotTopAuthors    PlotKind = 4
	PlotAllInOne      PlotKind = 5
)

const (
	MinYear = 2012
	MaxYear = 2021

	DefaultTopAuthors = 10
)

// TopAuthorCounts are the values offered by the author count slider.
var TopAuthorCounts = []int{5, 10, 15, 20}

var ErrUnknownPlot = errors.New("unknown plot type")

var plotLabels = map[PlotKind]string{
	PlotAverageRating: "Average Rating",
	PlotRatingCount:   "Rating Count",
	PlotShelvings:     "Shelvings",
	PlotTopAuthors:    "Top Authors",
	PlotAllInOne:      "All in One",
}

// PlotKinds lists every kind in sidebar order.
var PlotKinds = []PlotKind{PlotAverageRating, PlotRatingCount, PlotShelvings, PlotTopAuthors, PlotAllInOne}

func (k PlotKind) String() string {
	if l, ok := plotLabels[k]; ok {
		return l
	}

	return fmt.Sprintf("PlotKind(%d)", uint8(k))
}

// Slug is the url-friendly form of the label, e.g. "top-authors".
func (k PlotKind) Slug() string {
	return strings.ReplaceAll(strings.ToLower(k.String()), " ", "-")
}

// PlotType selects one rendering mode of the dashboard.
//
// To create a PlotType, use one of the following functions:
//   - MakeAverageRating
//   - MakeRatingCount
//   - MakeShelvings
//   - MakeTopAuthors
//   - MakeAllInOne
//
// or ParsePlotType. Direct construction of PlotType is discouraged.
type PlotType struct {
	Kind  PlotKind
	Count int `validate:"omitempty,oneof=5 10 15 20"` // only for Kind == PlotTopAuthors
}

func MakeAverageRating() PlotType {
	return PlotType{Kind: PlotAverageRating}
}

func MakeRatingCount() PlotType {
	return PlotType{Kind: PlotRatingCount}
}

func MakeShelvings() PlotType {
	return PlotType{Kind: PlotShelvings}
}

func MakeTopAuthors(count int) PlotType {
	return PlotType{Kind: PlotTopAuthors, Count: count}
}

func MakeAllInOne() PlotType {
	return PlotType{Kind: PlotAllInOne}
}

func (p PlotType) String() string {
	if p.Kind == PlotTopAuthors {
		return fmt.Sprintf("%s(%d)", p.Kind, p.Count)
	}

	return p.Kind.String()
}

// ParsePlotType accepts either a label ("Top Authors") or a slug ("top-authors").
// count is only used for top authors, non-positive values mean DefaultTopAuthors.
func ParsePlotType(name string, count int) (PlotType, error) {
	name = strings.TrimSpace(name)
	for _, k := range PlotKinds {
		if !strings.EqualFold(name, k.String()) && !strings.EqualFold(name, k.Slug()) {
			continue
		}

		if k == PlotTopAuthors {
			if count <= 0 {
				count = DefaultTopAuthors
			}
			return MakeTopAuthors(count), nil
		}

		return PlotType{Kind: k}, nil
	}

	return PlotType{}, fmt.Errorf("%w: %q", ErrUnknownPlot, name)
}

// Selection is the sidebar state of one dashboard request.
type Selection struct {
	Year int      `json:"year" validate:"gte=2012,lte=2021"`
	Plot PlotType `json:"plot"`
}

func AllYears() []int {
	years := make([]int, 0, MaxYear-MinYear+1)
	for y := MinYear; y <= MaxYear; y++ {
		years = append(years, y)
	}

	return years
}
