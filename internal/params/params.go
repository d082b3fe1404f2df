package params

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// URL: /rents?page=2&limit=20&sortBy=start_date&order=desc&searchWord=ikoyi
// → ParseListQuery() → ListQuery{Pagination{Limit:20, Page:2, Offset:20}, SortBy:"start_date", ...}
// → SQL: ... WHERE (... ILIKE $1) ORDER BY start_date DESC LIMIT 20 OFFSET 20
// → ComputeMeta(total) → fills TotalPages, HasNext, etc.
// Pagination holds pagination info and computed metadata.
type Pagination struct {
	Limit      int  `json:"limit"`       // items per page
	Offset     int  `json:"offset"`      // SQL OFFSET value
	Page       int  `json:"page"`        // Current Page number
	Total      int  `json:"total"`       //Total item in database
	TotalPages int  `json:"total_pages"` //Total pages available
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ParsePagination parses ?limit=...&page=... safely.  Careful key are case sensitive
func ParsePagination(q url.Values) Pagination {
	p := Pagination{
		Limit: DefaultLimit,
		Page:  1,
	}

	// --- Parse limit ---
	if limitStr := strings.TrimSpace(q.Get("limit")); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			switch {
			case limit <= 0:
				p.Limit = DefaultLimit
			case limit > MaxLimit:
				p.Limit = MaxLimit
			default:
				p.Limit = limit
			}
		}
	}

	// --- Parse page ---
	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	// --- Calculate offset ---
	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta updates pagination after fetching total count.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = (p.Page * p.Limit) < total
}

type Order string

const (
	Asc  Order = "ASC"
	Desc Order = "DESC"
)

// ListQuery is the common list/search/sort contract of every resource.
type ListQuery struct {
	Pagination
	SortBy     string
	Order      Order
	SearchWord string
	From       *time.Time // created_at >= From
	To         *time.Time // updated_at <= To
}

var ErrInvalidDate = errors.New("invalid date, use RFC3339 or YYYY-MM-DD")

// ParseListQuery reads page, limit, sortBy, order, searchWord, fromDate and
// toDate. sortBy must be one of sortable (column names); anything else
// falls back to created_at.
func ParseListQuery(q url.Values, sortable ...string) (ListQuery, error) {
	lq := ListQuery{
		Pagination: ParsePagination(q),
		SortBy:     "created_at",
		Order:      Asc,
		SearchWord: strings.TrimSpace(q.Get("searchWord")),
	}

	if sortBy := strings.TrimSpace(q.Get("sortBy")); sortBy != "" {
		for _, s := range sortable {
			if s == sortBy {
				lq.SortBy = s
				break
			}
		}
	}

	if strings.EqualFold(strings.TrimSpace(q.Get("order")), "desc") {
		lq.Order = Desc
	}

	from, err := parseDate(q.Get("fromDate"))
	if err != nil {
		return ListQuery{}, fmt.Errorf("fromDate: %w", err)
	}
	lq.From = from

	to, err := parseDate(q.Get("toDate"))
	if err != nil {
		return ListQuery{}, fmt.Errorf("toDate: %w", err)
	}
	lq.To = to

	return lq, nil
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	return nil, ErrInvalidDate
}

// Where collects SQL predicates and positional args ($1, $2, ...).
type Where struct {
	clauses []string
	args    []any
}

// Arg appends v and returns its placeholder.
func (w *Where) Arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *Where) Add(clause string) {
	w.clauses = append(w.clauses, clause)
}

// Search adds "(c1 ILIKE $n OR c2 ILIKE $n ...)" when word is non-empty.
func (w *Where) Search(word string, columns ...string) {
	if word == "" || len(columns) == 0 {
		return
	}
	ph := w.Arg("%" + word + "%")
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + "::text ILIKE " + ph
	}
	w.Add("(" + strings.Join(parts, " OR ") + ")")
}

// Dates applies the ListQuery date window.
func (w *Where) Dates(q ListQuery) {
	if q.From != nil {
		w.Add("created_at >= " + w.Arg(*q.From))
	}
	if q.To != nil {
		w.Add("updated_at <= " + w.Arg(*q.To))
	}
}

func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func (w *Where) Args() []any {
	return w.args
}

// OrderLimit renders ORDER BY / LIMIT / OFFSET, appending limit and offset
// as args. SortBy is trusted because ParseListQuery whitelists it.
func (w *Where) OrderLimit(q ListQuery) string {
	order := q.Order
	if order != Desc {
		order = Asc
	}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s LIMIT %s OFFSET %s",
		sortBy, order, order, w.Arg(q.Limit), w.Arg(q.Offset))
}
