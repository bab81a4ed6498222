package offerrepo

import (
	"context"
	"database/sql"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
)

type Repo interface {
	Insert(ctx context.Context, o *model.CounterOffer) error
	ByID(ctx context.Context, id int64) (*model.CounterOffer, error)
	ListByRequest(ctx context.Context, requestID int64) ([]model.CounterOffer, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, o *model.CounterOffer) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO counter_offers (request_id, user_id, price, message)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at, updated_at`,
		o.RequestID, o.UserID, o.Price, o.Message,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.CounterOffer, error) {
	o := &model.CounterOffer{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, request_id, user_id, price, message, created_at, updated_at
		FROM counter_offers
		WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.RequestID, &o.UserID, &o.Price, &o.Message, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repo) ListByRequest(ctx context.Context, requestID int64) ([]model.CounterOffer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, request_id, user_id, price, message, created_at, updated_at
		FROM counter_offers
		WHERE request_id = $1
		ORDER BY created_at ASC, id ASC`,
		requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CounterOffer
	for rows.Next() {
		var o model.CounterOffer
		if err := rows.Scan(&o.ID, &o.RequestID, &o.UserID, &o.Price, &o.Message, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
