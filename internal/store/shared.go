package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type sharedPathwayRepo struct {
	db *sql.DB
}

func (r *sharedPathwayRepo) Publish(ctx context.Context, id string, data []byte) error {
	query, args := builder().
		Insert(SharedPathwaysTable.Name).
		Columns("id", "data", "views", "created_at").
		Values(id, string(data), 0, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.DoNothing(),
		).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("publish pathway %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil || n > 0 {
		return nil
	}

	// The id is taken; only the identical content may be published again.
	sel, sargs := builder().
		Select("data").
		From(entsql.Table(SharedPathwaysTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()
	var existing string
	if err := r.db.QueryRowContext(ctx, sel, sargs...).Scan(&existing); err != nil {
		return fmt.Errorf("read published pathway %q: %w", id, err)
	}
	if existing != string(data) {
		return fmt.Errorf("publish pathway %q: %w", id, ErrConflict)
	}
	return nil
}

func (r *sharedPathwayRepo) Get(ctx context.Context, id string) (*SharedPathway, error) {
	update, uargs := builder().
		Update(SharedPathwaysTable.Name).
		Add("views", 1).
		Where(entsql.EQ("id", id)).
		Query()

	res, err := r.db.ExecContext(ctx, update, uargs...)
	if err != nil {
		return nil, fmt.Errorf("count view of %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, nil
	}

	query, args := builder().
		Select("id", "data", "views", "created_at").
		From(entsql.Table(SharedPathwaysTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	var (
		p    SharedPathway
		data string
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &data, &p.Views, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shared pathway %q: %w", id, err)
	}
	p.Data = []byte(data)
	return &p, nil
}
