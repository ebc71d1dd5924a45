package dataset

import (
	"topbooks/internal/types"
)

type Repository interface {
	Years() []int
	BooksForYear(year int) []*types.Book
	// Table shall return non-nil Rows, even for a year without books
	Table(year int) types.Table

	YearlyAggregate() []types.YearStats
	// AuthorAggregate is ordered by mean rating, best first
	AuthorAggregate() []types.AuthorStats
	TopAuthors(n int) []types.AuthorStats
}
