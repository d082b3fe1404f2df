package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// Page runs the count query and the page query and scans every row of the
// page with scan. On a pool both queries run concurrently; a transaction
// owns a single connection so they run one after the other there.
func Page[T any](
	ctx context.Context,
	q Querier,
	countSQL string, countArgs []any,
	pageSQL string, pageArgs []any,
	scan func(pgx.Rows) (T, error),
) ([]T, int, error) {
	var (
		total int
		items []T
	)

	count := func(ctx context.Context) error {
		return q.QueryRow(ctx, countSQL, countArgs...).Scan(&total)
	}

	fetch := func(ctx context.Context) error {
		rows, err := q.Query(ctx, pageSQL, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return rows.Err()
	}

	if _, ok := q.(*pgxpool.Pool); ok {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return count(gctx) })
		g.Go(func() error { return fetch(gctx) })
		if err := g.Wait(); err != nil {
			return nil, 0, err
		}
	} else {
		if err := count(ctx); err != nil {
			return nil, 0, err
		}
		if err := fetch(ctx); err != nil {
			return nil, 0, err
		}
	}

	if items == nil {
		items = []T{}
	}
	return items, total, nil
}
