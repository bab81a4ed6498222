package hubrepo

import (
	"context"
	"database/sql"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
)

type Repo interface {
	Insert(ctx context.Context, h *model.Hub) error
	ByName(ctx context.Context, name string) (*model.Hub, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]model.Hub, error)
	ListByGeohashPrefix(ctx context.Context, prefix string) ([]model.Hub, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const hubCols = `id, name, address, city, contact_phone, lat, lng, geohash, created_at`

func (r *repo) Insert(ctx context.Context, h *model.Hub) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO hubs (name, address, city, contact_phone, lat, lng, geohash)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at`,
		h.Name, h.Address, h.City, h.ContactPhone, h.Lat, h.Lng, h.Geohash,
	).Scan(&h.ID, &h.CreatedAt)
}

func (r *repo) ByName(ctx context.Context, name string) (*model.Hub, error) {
	h := &model.Hub{}
	err := r.db.QueryRowContext(ctx, `
		SELECT `+hubCols+`
		FROM hubs
		WHERE name = $1`,
		name,
	).Scan(&h.ID, &h.Name, &h.Address, &h.City, &h.ContactPhone, &h.Lat, &h.Lng, &h.Geohash, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *repo) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM hubs WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *repo) List(ctx context.Context) ([]model.Hub, error) {
	return r.scanMany(ctx, `SELECT `+hubCols+` FROM hubs ORDER BY name`)
}

func (r *repo) ListByGeohashPrefix(ctx context.Context, prefix string) ([]model.Hub, error) {
	return r.scanMany(ctx, `
		SELECT `+hubCols+`
		FROM hubs
		WHERE geohash LIKE $1 || '%'
		ORDER BY name`, prefix)
}

func (r *repo) scanMany(ctx context.Context, q string, args ...any) ([]model.Hub, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Hub
	for rows.Next() {
		var h model.Hub
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.City, &h.ContactPhone, &h.Lat, &h.Lng, &h.Geohash, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
