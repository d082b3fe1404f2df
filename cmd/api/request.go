package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"estate/internal/params"

	"github.com/go-chi/chi/v5"
)

var errInvalidID = errors.New("invalid ID")

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// parseInt64Query reads an optional positive integer filter such as
// ?buildingId=3. Absent means 0.
func parseInt64Query(r *http.Request, key string) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return v, nil
}

// decodeAndValidate reads the JSON body into payload and validates it.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, payload any) error {
	if err := readJSON(w, r, payload); err != nil {
		return err
	}
	return Validate.Struct(payload)
}

// maxExportRows bounds a single CSV export.
const maxExportRows = 10_000

var errExportTooLarge = fmt.Errorf("export is limited to %d rows, narrow it with fromDate, toDate or searchWord", maxExportRows)

// collectAll pages through list with the largest page size, keeping the
// caller's sort, search and date window. It refuses exports above
// maxExportRows rather than returning a partial file.
func collectAll[T any](ctx context.Context, q params.ListQuery, list func(context.Context, params.ListQuery) ([]T, int, error)) ([]T, error) {
	q.Page = 1
	q.Limit = params.MaxLimit

	var all []T
	for len(all) < maxExportRows {
		q.Offset = (q.Page - 1) * q.Limit

		items, total, err := list(ctx, q)
		if err != nil {
			return nil, err
		}
		if total > maxExportRows {
			return nil, fmt.Errorf("%w: %d rows match", errExportTooLarge, total)
		}
		all = append(all, items...)

		if len(items) < q.Limit || len(all) >= total {
			break
		}
		q.Page++
	}
	return all, nil
}
