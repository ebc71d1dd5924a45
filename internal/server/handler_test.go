package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topbooks/internal/dataset"
	"topbooks/internal/response"
	"topbooks/internal/types"
	"topbooks/internal/validation"
)

const sampleCSV = `Year,Title,Author,Avg rating,Rating Count,Shelvings,Review
2015,Red Queen,Victoria Aveyard,3.95,500.5k ratings,"1,000,000",Secret review
2015,The Nightingale,Kristin Hannah,4.60,1m ratings,2m shelvings,Sad
2016,The Girl on the Train,Paula Hawkins,3.94,2.1m,3.2m,Twisty
2017,Little Fires Everywhere,Celeste Ng,4.09,900k,1.1m,Quiet
2017,Origin,Dan Brown,3.88,400k,700k,Fast
2017,Artemis,Andy Weir,3.61,"12,345",300k,Meh
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ds, err := dataset.Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	srv := httptest.NewServer(Handler(ds, validation.New(), &response.Responder{}))
	t.Cleanup(srv.Close)

	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	return resp, buf.Bytes()
}

func TestPage_FiltersYearAndHidesReview(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/?year=2015")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	page := string(body)
	assert.Contains(t, page, "Red Queen")
	assert.Contains(t, page, "The Nightingale")
	assert.NotContains(t, page, "Origin")
	assert.NotContains(t, page, "Secret review")
	assert.NotContains(t, page, "<th>Review</th>")
	assert.Contains(t, page, `<option value="2015" selected>`)
	assert.NotContains(t, page, `type="range"`)
	assert.Contains(t, page, `/chart.png?plot=average-rating`)
}

func TestPage_TopAuthorsShowsSlider(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/?year=2017&plot=top-authors&count=15")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	page := string(body)
	assert.Contains(t, page, `type="range"`)
	assert.Contains(t, page, `value="15"`)
	assert.Contains(t, page, `count=15&amp;plot=top-authors`)
	assert.Contains(t, page, `value="top-authors" checked`)
}

func TestPage_EmptyYear(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/?year=2013")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := string(body)
	assert.Contains(t, page, "No books for 2013")
	// six data columns plus the row index
	assert.Contains(t, page, `<td colspan="7">No books for 2013</td>`)
}

func TestPage_BadSelection(t *testing.T) {
	srv := newTestServer(t)

	for _, q := range []string{"?year=2030", "?plot=pie", "?plot=top-authors&count=7"} {
		resp, _ := get(t, srv, "/"+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestChart(t *testing.T) {
	srv := newTestServer(t)

	for _, k := range types.PlotKinds {
		resp, body := get(t, srv, "/chart.png?plot="+k.Slug())
		require.Equal(t, http.StatusOK, resp.StatusCode, k.String())
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))
	}

	resp, body := get(t, srv, "/chart.svg?plot=top-authors&count=5")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "<svg")

	resp, _ = get(t, srv, "/chart.gif?plot=shelvings")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestApiBooks(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/api/books?year=2017")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res struct {
		Year  int         `json:"year"`
		Table types.Table `json:"table"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, 2017, res.Year)
	assert.NotContains(t, res.Table.Columns, "Review")
	require.Len(t, res.Table.Rows, 3)
	for _, row := range res.Table.Rows {
		assert.Equal(t, "2017", row[0])
	}
}

func TestApiYears(t *testing.T) {
	srv := newTestServer(t)

	_, body := get(t, srv, "/api/years")

	var res struct {
		Years []types.YearStats `json:"years"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	require.Len(t, res.Years, 3)
	assert.Equal(t, 2015, res.Years[0].Year)
	assert.InDelta(t, (3.95+4.60)/2, res.Years[0].AvgRating, 1e-9)
}

func TestApiAuthors(t *testing.T) {
	srv := newTestServer(t)

	for limit, want := range map[string]int{"": 6, "?limit=2": 2, "?limit=50": 6} {
		_, body := get(t, srv, "/api/authors"+limit)

		var res struct {
			Authors []types.AuthorStats `json:"authors"`
		}
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Len(t, res.Authors, want, fmt.Sprintf("limit %q", limit))
		assert.Equal(t, "Kristin Hannah", res.Authors[0].Author)
	}
}

func TestHealthcheck(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/healthcheck")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}
