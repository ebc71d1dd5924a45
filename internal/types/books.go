package types

type Book struct {
	Year        int     `json:"year"`
	Author      string  `json:"author"`
	Title       string  `json:"title"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int64   `json:"rating_count"`
	Shelvings   int64   `json:"shelvings"`
	Review      string  `json:"-"`
	// Cells keeps every raw value of the source row, keyed by column name
	Cells map[string]string `json:"-"`
}

type YearStats struct {
	Year        int     `json:"year"`
	Books       int     `json:"books"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount float64 `json:"rating_count"`
	Shelvings   float64 `json:"shelvings"`
}

type AuthorStats struct {
	Author      string  `json:"author"`
	Books       int     `json:"books"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount float64 `json:"rating_count"`
	Shelvings   float64 `json:"shelvings"`
}

// Table is a header plus rows of display cells, in header order.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
