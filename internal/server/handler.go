package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"topbooks/internal/charts"
	"topbooks/internal/dataset"
	"topbooks/internal/response"
	"topbooks/internal/types"
	"topbooks/internal/validation"
)

//go:embed templates/*.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type plotOption struct {
	Slug    string
	Label   string
	Checked bool
}

type pageData struct {
	MinYear, MaxYear int
	Years            []int
	Year             int

	Plots     []plotOption
	PlotLabel string

	ShowCount                     bool
	Count                         int
	CountMin, CountMax, CountStep int

	Table types.Table
	// TableSpan counts the row index column too
	TableSpan int
	ChartURL  string
}

func Handler(repo dataset.Repository, v *validation.Validator, rr *response.Responder) http.Handler {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		sel, err := getSelection(r.URL.Query(), v)
		if err != nil {
			rr.RespondBadRequest(w, r.Context(), err)
			return
		}

		var buf bytes.Buffer
		if err = pageTemplate.Execute(&buf, newPageData(repo, sel)); err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		rr.SendBytes(w, r.Context(), "text/html; charset=utf-8", buf.Bytes())
	})

	r.Get("/chart.{format}", func(w http.ResponseWriter, r *http.Request) {
		format := chi.URLParam(r, "format")
		contentType, ok := charts.ContentTypes[format]
		if !ok {
			http.NotFound(w, r)
			return
		}

		sel, err := getSelection(r.URL.Query(), v)
		if err != nil {
			rr.RespondBadRequest(w, r.Context(), err)
			return
		}

		fig, err := charts.Build(repo, sel.Plot)
		if err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		var buf bytes.Buffer
		if err = charts.Render(&buf, fig, format); err != nil {
			rr.RespondAndLogError(w, r.Context(), err)
			return
		}

		rr.SendBytes(w, r.Context(), contentType, buf.Bytes())
	})

	r.Get("/api/books", func(w http.ResponseWriter, r *http.Request) {
		sel, err := getSelection(r.URL.Query(), v)
		if err != nil {
			rr.RespondBadRequest(w, r.Context(), err)
			return
		}

		rr.SendJson(w, r.Context(), struct {
			Year  int         `json:"year"`
			Table types.Table `json:"table"`
		}{Year: sel.Year, Table: repo.Table(sel.Year)})
	})

	r.Get("/api/years", func(w http.ResponseWriter, r *http.Request) {
		rr.SendJson(w, r.Context(), struct {
			Years []types.YearStats `json:"years"`
		}{Years: repo.YearlyAggregate()})
	})

	r.Get("/api/authors", func(w http.ResponseWriter, r *http.Request) {
		rows := repo.AuthorAggregate()
		if limit := getIntOrDefault("limit", r.URL.Query(), 0); limit > 0 {
			rows = repo.TopAuthors(limit)
		}

		rr.SendJson(w, r.Context(), struct {
			Authors []types.AuthorStats `json:"authors"`
		}{Authors: rows})
	})

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		rr.SendBytes(w, r.Context(), "text/plain; charset=utf-8", []byte("OK"))
	})

	return r
}

// getSelection reads year, plot and count with the sidebar defaults
func getSelection(q url.Values, v *validation.Validator) (types.Selection, error) {
	plotName := strings.TrimSpace(q.Get("plot"))
	if plotName == "" {
		plotName = types.PlotAverageRating.Slug()
	}

	plot, err := types.ParsePlotType(plotName, getIntOrDefault("count", q, types.DefaultTopAuthors))
	if err != nil {
		return types.Selection{}, err
	}

	sel := types.Selection{
		Year: getIntOrDefault("year", q, types.MinYear),
		Plot: plot,
	}

	if err = v.Validate(sel); err != nil {
		return types.Selection{}, err
	}

	return sel, nil
}

func newPageData(repo dataset.Repository, sel types.Selection) pageData {
	count := sel.Plot.Count
	if count == 0 {
		count = types.DefaultTopAuthors
	}

	data := pageData{
		MinYear:   types.MinYear,
		MaxYear:   types.MaxYear,
		Years:     types.AllYears(),
		Year:      sel.Year,
		PlotLabel: sel.Plot.Kind.String(),
		ShowCount: sel.Plot.Kind == types.PlotTopAuthors,
		Count:     count,
		CountMin:  types.TopAuthorCounts[0],
		CountMax:  types.TopAuthorCounts[len(types.TopAuthorCounts)-1],
		CountStep: types.TopAuthorCounts[1] - types.TopAuthorCounts[0],
		Table:     repo.Table(sel.Year),
		ChartURL:  chartURL(sel.Plot),
	}
	data.TableSpan = len(data.Table.Columns) + 1

	for _, k := range types.PlotKinds {
		data.Plots = append(data.Plots, plotOption{
			Slug:    k.Slug(),
			Label:   k.String(),
			Checked: k == sel.Plot.Kind,
		})
	}

	return data
}

func chartURL(p types.PlotType) string {
	q := url.Values{}
	q.Set("plot", p.Kind.Slug())
	if p.Kind == types.PlotTopAuthors {
		q.Set("count", strconv.Itoa(p.Count))
	}

	return "/chart.png?" + q.Encode()
}

func getIntOrDefault(key string, q url.Values, default_ int) int {
	if ls := q.Get(key); ls != "" {
		limit, err := strconv.Atoi(ls)
		if err == nil {
			return limit
		}
	}

	return default_
}
