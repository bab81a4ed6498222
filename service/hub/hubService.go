package hubsvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mmcloughlin/geohash"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	hubrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/hub"
)

// ~20km cells; coarse on purpose, hubs are sparse.
const nearPrecision = 4

type Service interface {
	List(ctx context.Context) ([]model.Hub, error)
	Near(ctx context.Context, lat, lng float64) ([]model.Hub, error)

	// Ensure is the idempotent seed upsert: insert by name if absent,
	// no-op otherwise. Reports whether a row was created.
	Ensure(ctx context.Context, h *model.Hub) (bool, error)
}

type service struct {
	hr hubrepo.Repo
}

func New(hr hubrepo.Repo) Service { return &service{hr: hr} }

func (s *service) List(ctx context.Context) ([]model.Hub, error) {
	return s.hr.List(ctx)
}

func (s *service) Near(ctx context.Context, lat, lng float64) ([]model.Hub, error) {
	prefix := geohash.EncodeWithPrecision(lat, lng, nearPrecision)
	return s.hr.ListByGeohashPrefix(ctx, prefix)
}

func (s *service) Ensure(ctx context.Context, h *model.Hub) (bool, error) {
	_, err := s.hr.ByName(ctx, h.Name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	h.Geohash = geohash.Encode(h.Lat, h.Lng)
	if err := s.hr.Insert(ctx, h); err != nil {
		return false, err
	}
	return true, nil
}
