package requestrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
)

type Repo interface {
	Insert(ctx context.Context, req *model.Request) error
	ByID(ctx context.Context, id int64) (*model.Request, error)
	ListOpen(ctx context.Context) ([]model.Request, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const requestCols = `id, owner_id, hub_id, title, description, price_per_day,
	need_from, need_to, status, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, req *model.Request) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO requests (owner_id, hub_id, title, description, price_per_day, need_from, need_to, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,'OPEN')
		RETURNING id, status, created_at, updated_at`,
		req.OwnerID, req.HubID, req.Title, req.Description, req.PricePerDay, req.NeedFrom, req.NeedTo,
	).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Request, error) {
	req := &model.Request{}
	err := r.db.QueryRowContext(ctx, `
		SELECT `+requestCols+`
		FROM requests
		WHERE id = $1`,
		id,
	).Scan(&req.ID, &req.OwnerID, &req.HubID, &req.Title, &req.Description, &req.PricePerDay,
		&req.NeedFrom, &req.NeedTo, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) ListOpen(ctx context.Context) ([]model.Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+requestCols+`
		FROM requests
		WHERE status = 'OPEN'
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Request
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(&req.ID, &req.OwnerID, &req.HubID, &req.Title, &req.Description, &req.PricePerDay,
			&req.NeedFrom, &req.NeedTo, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *repo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		UPDATE requests
		SET status = 'EXPIRED',
		    updated_at = NOW()
		WHERE status = 'OPEN'
		AND need_to < $1`
	res, err := r.db.ExecContext(ctx, q, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
