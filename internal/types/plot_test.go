package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlotType(t *testing.T) {
	tests := []struct {
		input    string
		count    int
		expected PlotType
	}{
		{input: "Average Rating", expected: MakeAverageRating()},
		{input: "average-rating", expected: MakeAverageRating()},
		{input: "Rating Count", expected: MakeRatingCount()},
		{input: "shelvings", expected: MakeShelvings()},
		{input: "Top Authors", count: 5, expected: MakeTopAuthors(5)},
		{input: "top-authors", expected: MakeTopAuthors(DefaultTopAuthors)},
		{input: "ALL IN ONE", count: 15, expected: MakeAllInOne()},
		{input: " all-in-one ", expected: MakeAllInOne()},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePlotType(tt.input, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParsePlotType_Unknown(t *testing.T) {
	_, err := ParsePlotType("pie", 0)
	require.ErrorIs(t, err, ErrUnknownPlot)
}

func TestPlotKind_Names(t *testing.T) {
	assert.Equal(t, "Top Authors", PlotTopAuthors.String())
	assert.Equal(t, "top-authors", PlotTopAuthors.Slug())
	assert.Equal(t, "all-in-one", PlotAllInOne.Slug())
	assert.Equal(t, "PlotKind(9)", PlotKind(9).String())
	assert.Equal(t, "Top Authors(5)", MakeTopAuthors(5).String())
}

func TestAllYears(t *testing.T) {
	years := AllYears()
	require.Len(t, years, 10)
	assert.Equal(t, 2012, years[0])
	assert.Equal(t, 2021, years[9])
}
