package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type accountRepo struct {
	db *sql.DB
}

func (r *accountRepo) CreateAccount(ctx context.Context, a Account) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	query, args := builder().
		Insert(AccountsTable.Name).
		Columns("email", "name", "password_hash", "created_at").
		Values(a.Email, a.Name, a.PasswordHash, a.CreatedAt).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *accountRepo) GetAccount(ctx context.Context, email string) (*Account, error) {
	query, args := builder().
		Select("email", "name", "password_hash", "created_at").
		From(entsql.Table(AccountsTable.Name)).
		Where(entsql.EQ("email", email)).
		Query()

	var a Account
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&a.Email, &a.Name, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

func (r *accountRepo) SavePathway(ctx context.Context, email string, p SavedPathway) error {
	if p.SavedAt.IsZero() {
		p.SavedAt = time.Now().UTC()
	}

	query, args := builder().
		Insert(SavedPathwaysTable.Name).
		Columns("account_email", "pathway_id", "data", "saved_at").
		Values(email, p.PathwayID, string(p.Data), p.SavedAt).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("save pathway: %w", err)
	}
	return nil
}

func (r *accountRepo) SavedPathways(ctx context.Context, email string) ([]SavedPathway, error) {
	query, args := builder().
		Select("pathway_id", "data", "saved_at").
		From(entsql.Table(SavedPathwaysTable.Name)).
		Where(entsql.EQ("account_email", email)).
		OrderBy(entsql.Asc("id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query saved pathways: %w", err)
	}
	defer rows.Close()

	var out []SavedPathway
	for rows.Next() {
		var (
			p    SavedPathway
			data string
		)
		if err := rows.Scan(&p.PathwayID, &data, &p.SavedAt); err != nil {
			return nil, fmt.Errorf("scan saved pathway: %w", err)
		}
		p.Data = []byte(data)
		out = append(out, p)
	}
	return out, rows.Err()
}
