package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"topbooks/internal/dataset"
	"topbooks/internal/types"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var year, authors int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the yearly means, the best authors or the books of one year",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.load()
			if err != nil {
				return err
			}

			switch {
			case year != 0:
				return writeTable(cmd.OutOrStdout(), ds.Table(year))
			case authors > 0:
				return writeAuthors(cmd.OutOrStdout(), ds.TopAuthors(authors))
			default:
				return writeYears(cmd.OutOrStdout(), ds)
			}
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Print the books of this year instead of the yearly means")
	cmd.Flags().IntVar(&authors, "authors", 0, "Print this many best rated authors")

	return cmd
}

func writeTable(w io.Writer, t types.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

func writeYears(w io.Writer, ds *dataset.Dataset) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tBooks\tAvg rating\tRating Count\tShelvings\t")
	for _, y := range ds.YearlyAggregate() {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.0f\t%.0f\t\n", y.Year, y.Books, y.AvgRating, y.RatingCount, y.Shelvings)
	}

	return tw.Flush()
}

func writeAuthors(w io.Writer, rows []types.AuthorStats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Author\tBooks\tAvg rating\tRating Count\tShelvings")
	for _, a := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.0f\t%.0f\n", a.Author, a.Books, a.AvgRating, a.RatingCount, a.Shelvings)
	}

	return tw.Flush()
}
