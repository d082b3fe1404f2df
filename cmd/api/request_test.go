package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"estate/internal/auth"
	"estate/internal/domain/lawfirms"
	"estate/internal/params"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedRows serves total rows in pages, like a repository List.
func pagedRows(total int, pages *int) func(context.Context, params.ListQuery) ([]int, int, error) {
	return func(_ context.Context, q params.ListQuery) ([]int, int, error) {
		*pages++
		var out []int
		for i := q.Offset; i < total && len(out) < q.Limit; i++ {
			out = append(out, i)
		}
		return out, total, nil
	}
}

func TestCollectAll(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		wantRows  int
		wantPages int
		wantErr   error
	}{
		{name: "empty", total: 0, wantRows: 0, wantPages: 1},
		{name: "partial page", total: 42, wantRows: 42, wantPages: 1},
		{name: "several pages", total: 250, wantRows: 250, wantPages: 3},
		{name: "exactly the cap", total: maxExportRows, wantRows: maxExportRows, wantPages: maxExportRows / params.MaxLimit},
		{name: "over the cap", total: 12345, wantErr: errExportTooLarge, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := 0
			rows, err := collectAll(context.Background(), params.ListQuery{}, pagedRows(tt.total, &pages))

			assert.Equal(t, tt.wantPages, pages)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rows)
				return
			}
			require.NoError(t, err)
			assert.Len(t, rows, tt.wantRows)
		})
	}
}

type crowdedLawFirms struct {
	stubLawFirms
	total int
}

func (s crowdedLawFirms) List(context.Context, params.ListQuery) ([]lawfirms.LawFirm, int, error) {
	s.hit()
	return make([]lawfirms.LawFirm, params.MaxLimit), s.total, nil
}

func TestExportRefusesOversizedResult(t *testing.T) {
	env := newTestEnv(t)
	env.app.store.LawFirms = crowdedLawFirms{stubLawFirms: stubLawFirms{env.calls}, total: maxExportRows + 1}
	mux := env.app.mount()

	req := httptest.NewRequest(http.MethodGet, "/v1/lawfirms/export.csv", nil)
	req.Header.Set("Authorization", "Bearer "+env.token(t, adminID, auth.RoleAdmin))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Empty(t, rr.Header().Get("Content-Disposition"))
	assert.Contains(t, decodeError(t, rr), "narrow it with fromDate")
}
