package dataset

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/montanaflynn/stats"

	"topbooks/internal/types"
)

// Column names of the source CSV.
const (
	ColYear        = "Year"
	ColAuthor      = "Author"
	ColTitle       = "Title"
	ColAvgRating   = "Avg rating"
	ColRatingCount = "Rating Count"
	ColShelvings   = "Shelvings"
	ColReview      = "Review"
)

// RequiredColumns must all be present, any other column is passed through.
var RequiredColumns = []string{ColYear, ColAuthor, ColAvgRating, ColRatingCount, ColShelvings, ColReview}

// ErrMissingColumn is returned by Read when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Dataset is the normalised book list with its derived views. It is never
// mutated after Read returns, so it is safe to share between goroutines.
type Dataset struct {
	columns []string
	books   []*types.Book
	yearly  []types.YearStats
	authors []types.AuthorStats
}

var _ Repository = (*Dataset)(nil)

// Load reads and normalises the CSV file at path.
func Load(path string, l *slog.Logger) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	l.Info("dataset loaded", slog.String("path", path), slog.Int("books", len(ds.books)),
		slog.Int("years", len(ds.yearly)), slog.Int("authors", len(ds.authors)))

	return ds, nil
}

// Read parses the CSV stream. Any malformed row fails the whole read.
func Read(r io.Reader) (*Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		// text cells like "NA" must not turn into NaN
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("reading csv: %w", df.Err)
	}

	columns := df.Names()
	for _, c := range RequiredColumns {
		if !slices.Contains(columns, c) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}

	records := df.Records()
	books := make([]*types.Book, 0, len(records))
	for i, rec := range records[1:] {
		cells := make(map[string]string, len(columns))
		for j, c := range columns {
			cells[c] = rec[j]
		}

		// header is line 1
		b, err := parseBook(cells)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		books = append(books, b)
	}

	return FromBooks(columns, books)
}

// FromBooks builds a dataset out of already normalised records.
func FromBooks(columns []string, books []*types.Book) (*Dataset, error) {
	yearly, err := yearlyAggregate(books)
	if err != nil {
		return nil, fmt.Errorf("yearly aggregate: %w", err)
	}

	authors, err := authorAggregate(books)
	if err != nil {
		return nil, fmt.Errorf("author aggregate: %w", err)
	}

	return &Dataset{
		columns: slices.Clone(columns),
		books:   books,
		yearly:  yearly,
		authors: authors,
	}, nil
}

func parseBook(cells map[string]string) (*types.Book, error) {
	year, err := strconv.Atoi(strings.TrimSpace(cells[ColYear]))
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", ColYear, err)
	}

	rating, err := strconv.ParseFloat(strings.TrimSpace(cells[ColAvgRating]), 64)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", ColAvgRating, err)
	}

	ratingCount, err := ParseScaledCount(cells[ColRatingCount])
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", ColRatingCount, err)
	}

	shelvings, err := ParseScaledCount(cells[ColShelvings])
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", ColShelvings, err)
	}

	return &types.Book{
		Year:        year,
		Author:      strings.TrimSpace(cells[ColAuthor]),
		Title:       strings.TrimSpace(cells[ColTitle]),
		AvgRating:   rating,
		RatingCount: ratingCount,
		Shelvings:   shelvings,
		Review:      cells[ColReview],
		Cells:       cells,
	}, nil
}

type sums struct {
	ratings, counts, shelvings stats.Float64Data
}

func (s *sums) add(b *types.Book) {
	s.ratings = append(s.ratings, b.AvgRating)
	s.counts = append(s.counts, float64(b.RatingCount))
	s.shelvings = append(s.shelvings, float64(b.Shelvings))
}

func (s *sums) means() (rating, count, shelvings float64, err error) {
	if rating, err = stats.Mean(s.ratings); err != nil {
		return
	}
	if count, err = stats.Mean(s.counts); err != nil {
		return
	}
	shelvings, err = stats.Mean(s.shelvings)
	return
}

func yearlyAggregate(books []*types.Book) ([]types.YearStats, error) {
	groups := make(map[int]*sums)
	for _, b := range books {
		g, ok := groups[b.Year]
		if !ok {
			g = &sums{}
			groups[b.Year] = g
		}
		g.add(b)
	}

	rows := make([]types.YearStats, 0, len(groups))
	for year, g := range groups {
		rating, count, shelvings, err := g.means()
		if err != nil {
			return nil, err
		}
		rows = append(rows, types.YearStats{
			Year:        year,
			Books:       len(g.ratings),
			AvgRating:   rating,
			RatingCount: count,
			Shelvings:   shelvings,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Year < rows[j].Year
	})

	return rows, nil
}

func authorAggregate(books []*types.Book) ([]types.AuthorStats, error) {
	groups := make(map[string]*sums)
	for _, b := range books {
		g, ok := groups[b.Author]
		if !ok {
			g = &sums{}
			groups[b.Author] = g
		}
		g.add(b)
	}

	rows := make([]types.AuthorStats, 0, len(groups))
	for author, g := range groups {
		rating, count, shelvings, err := g.means()
		if err != nil {
			return nil, err
		}
		rows = append(rows, types.AuthorStats{
			Author:      author,
			Books:       len(g.ratings),
			AvgRating:   rating,
			RatingCount: count,
			Shelvings:   shelvings,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AvgRating != rows[j].AvgRating {
			return rows[i].AvgRating > rows[j].AvgRating
		}
		return rows[i].Author < rows[j].Author
	})

	return rows, nil
}

func (d *Dataset) Columns() []string {
	return slices.Clone(d.columns)
}

func (d *Dataset) Books() []*types.Book {
	return slices.Clone(d.books)
}

func (d *Dataset) BooksForYear(year int) []*types.Book {
	var res []*types.Book
	for _, b := range d.books {
		if b.Year == year {
			res = append(res, b)
		}
	}

	return res
}

// Years returns the distinct years present, ascending.
func (d *Dataset) Years() []int {
	years := make([]int, 0, len(d.yearly))
	for _, y := range d.yearly {
		years = append(years, y.Year)
	}

	return years
}

func (d *Dataset) YearlyAggregate() []types.YearStats {
	return slices.Clone(d.yearly)
}

func (d *Dataset) AuthorAggregate() []types.AuthorStats {
	return slices.Clone(d.authors)
}

func (d *Dataset) TopAuthors(n int) []types.AuthorStats {
	if n < 0 {
		n = 0
	}
	if n > len(d.authors) {
		n = len(d.authors)
	}

	return slices.Clone(d.authors[:n])
}

// Table renders the books of a year with all columns except Review. Numeric
// columns show normalised values, the rest are passed through as read.
func (d *Dataset) Table(year int) types.Table {
	columns := make([]string, 0, len(d.columns))
	for _, c := range d.columns {
		if c != ColReview {
			columns = append(columns, c)
		}
	}

	rows := make([][]string, 0)
	for _, b := range d.BooksForYear(year) {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			row = append(row, displayCell(b, c))
		}
		rows = append(rows, row)
	}

	return types.Table{Columns: columns, Rows: rows}
}

func displayCell(b *types.Book, column string) string {
	switch column {
	case ColYear:
		return strconv.Itoa(b.Year)
	case ColAvgRating:
		return strconv.FormatFloat(b.AvgRating, 'f', -1, 64)
	case ColRatingCount:
		return strconv.FormatInt(b.RatingCount, 10)
	case ColShelvings:
		return strconv.FormatInt(b.Shelvings, 10)
	default:
		return b.Cells[column]
	}
}
