package authsvc

import (
	"context"
	"time"

	tempuserrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/tempuser"
)

// Cleaner sweeps signups that never completed verification. Backed by
// an indexed expires_at column; runs periodically from main.
type Cleaner interface {
	PurgeExpiredSignups(ctx context.Context) (int64, error)
}

type cleaner struct {
	tr tempuserrepo.Repo
}

func NewCleaner(tr tempuserrepo.Repo) Cleaner { return &cleaner{tr: tr} }

func (c *cleaner) PurgeExpiredSignups(ctx context.Context) (int64, error) {
	return c.tr.PurgeExpired(ctx, time.Now().UTC())
}
