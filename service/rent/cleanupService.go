package rentsvc

import (
	"context"
	"time"

	rentrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/rent"
)

// Cleaner cancels rents whose payment window lapsed without a
// confirming callback.
type Cleaner interface {
	ReleaseExpired(ctx context.Context) (int64, error)
}

type cleaner struct {
	rr rentrepo.Repo
}

func NewCleaner(rr rentrepo.Repo) Cleaner { return &cleaner{rr: rr} }

func (c *cleaner) ReleaseExpired(ctx context.Context) (int64, error) {
	return c.rr.CancelExpiredPending(ctx, time.Now().UTC())
}
