package requestsvc

import (
	"context"
	"time"

	requestrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/request"
)

// Cleaner closes requests whose need window has passed without an
// accepted offer.
type Cleaner interface {
	ExpireOverdue(ctx context.Context) (int64, error)
}

type cleaner struct {
	rr requestrepo.Repo
}

func NewCleaner(rr requestrepo.Repo) Cleaner { return &cleaner{rr: rr} }

func (c *cleaner) ExpireOverdue(ctx context.Context) (int64, error) {
	return c.rr.ExpireOverdue(ctx, time.Now().UTC())
}
