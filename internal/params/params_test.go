package params

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Pagination
	}{
		{name: "defaults", query: "", want: Pagination{Limit: 10, Page: 1, Offset: 0}},
		{name: "page two", query: "page=2&limit=20", want: Pagination{Limit: 20, Page: 2, Offset: 20}},
		{name: "limit capped", query: "limit=1000", want: Pagination{Limit: 100, Page: 1, Offset: 0}},
		{name: "negative limit", query: "limit=-3", want: Pagination{Limit: 10, Page: 1, Offset: 0}},
		{name: "bad page", query: "page=abc", want: Pagination{Limit: 10, Page: 1, Offset: 0}},
		{name: "zero page", query: "page=0&limit=5", want: Pagination{Limit: 5, Page: 1, Offset: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ParsePagination(q))
		})
	}
}

func TestComputeMeta(t *testing.T) {
	p := Pagination{Limit: 10, Page: 2, Offset: 10}
	p.ComputeMeta(25)
	assert.Equal(t, 25, p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)

	p = Pagination{Limit: 10, Page: 1}
	p.ComputeMeta(0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestParseListQuery(t *testing.T) {
	q, _ := url.ParseQuery("sortBy=name&order=DESC&searchWord=%20lekki%20&fromDate=2024-01-01&toDate=2024-02-01T10:00:00Z")
	lq, err := ParseListQuery(q, "name", "address")
	require.NoError(t, err)

	assert.Equal(t, "name", lq.SortBy)
	assert.Equal(t, Desc, lq.Order)
	assert.Equal(t, "lekki", lq.SearchWord)
	require.NotNil(t, lq.From)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *lq.From)
	require.NotNil(t, lq.To)
	assert.Equal(t, 10, lq.To.Hour())
}

func TestParseListQuery_SortWhitelist(t *testing.T) {
	q := url.Values{"sortBy": {"name; DROP TABLE users"}, "order": {"sideways"}}
	lq, err := ParseListQuery(q, "name")
	require.NoError(t, err)
	assert.Equal(t, "created_at", lq.SortBy)
	assert.Equal(t, Asc, lq.Order)
}

func TestParseListQuery_BadDate(t *testing.T) {
	q, _ := url.ParseQuery("fromDate=yesterday")
	_, err := ParseListQuery(q)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestWhere(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lq := ListQuery{
		Pagination: Pagination{Limit: 10, Offset: 20},
		SortBy:     "name",
		Order:      Desc,
		From:       &from,
	}

	var w Where
	w.Search("ikeja", "name", "address")
	w.Dates(lq)
	w.Add("tenant_id = " + w.Arg("t-1"))

	assert.Equal(t, " WHERE (name::text ILIKE $1 OR address::text ILIKE $1) AND created_at >= $2 AND tenant_id = $3", w.SQL())
	assert.Equal(t, []any{"%ikeja%", from, "t-1"}, w.Args())

	assert.Equal(t, " ORDER BY name DESC, id DESC LIMIT $4 OFFSET $5", w.OrderLimit(lq))
	assert.Len(t, w.Args(), 5)
}

func TestWhere_Empty(t *testing.T) {
	var w Where
	w.Search("", "name")
	assert.Equal(t, "", w.SQL())
	assert.Empty(t, w.Args())
	assert.Equal(t, " ORDER BY created_at ASC, id ASC LIMIT $1 OFFSET $2", w.OrderLimit(ListQuery{Pagination: Pagination{Limit: 10}}))
}
