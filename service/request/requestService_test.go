package requestsvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	hubrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/hub"
	requestrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/request"
	requestsvc "github.com/Aashutosh1201/rentall-web-sub001/service/request"
)

type reqRepoMock struct {
	inserted *model.Request
	byIDFn   func(ctx context.Context, id int64) (*model.Request, error)
}

var _ requestrepo.Repo = (*reqRepoMock)(nil)

func (m *reqRepoMock) Insert(ctx context.Context, r *model.Request) error {
	r.ID = 50
	r.Status = model.RequestOpen
	m.inserted = r
	return nil
}

func (m *reqRepoMock) ByID(ctx context.Context, id int64) (*model.Request, error) {
	if m.byIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *reqRepoMock) ListOpen(ctx context.Context) ([]model.Request, error) { return nil, nil }

func (m *reqRepoMock) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	return 2, nil
}

type hubRepoMock struct {
	exists bool
}

var _ hubrepo.Repo = (*hubRepoMock)(nil)

func (m *hubRepoMock) Insert(ctx context.Context, h *model.Hub) error { return nil }
func (m *hubRepoMock) ByName(ctx context.Context, name string) (*model.Hub, error) {
	return nil, sql.ErrNoRows
}
func (m *hubRepoMock) Exists(ctx context.Context, id int64) (bool, error) { return m.exists, nil }
func (m *hubRepoMock) List(ctx context.Context) ([]model.Hub, error)      { return nil, nil }
func (m *hubRepoMock) ListByGeohashPrefix(ctx context.Context, prefix string) ([]model.Hub, error) {
	return nil, nil
}

func validReq() model.CreateRequestReq {
	now := time.Now().UTC()
	return model.CreateRequestReq{
		Title:       "DSLR camera for the weekend",
		PricePerDay: 1000,
		NeedFrom:    now.Add(24 * time.Hour).Format(time.RFC3339),
		NeedTo:      now.Add(72 * time.Hour).Format(time.RFC3339),
		HubID:       1,
	}
}

// --- tests ---

func TestCreate_Success(t *testing.T) {
	rr := &reqRepoMock{}
	svc := requestsvc.New(rr, &hubRepoMock{exists: true})

	out, err := svc.Create(context.Background(), 1, validReq())
	require.NoError(t, err)
	require.Equal(t, int64(50), out.ID)
	require.Equal(t, model.RequestOpen, out.Status)
	require.Equal(t, int64(1), out.OwnerID)
	require.NotNil(t, rr.inserted)
}

func TestCreate_HubMissing(t *testing.T) {
	svc := requestsvc.New(&reqRepoMock{}, &hubRepoMock{exists: false})

	_, err := svc.Create(context.Background(), 1, validReq())
	require.Error(t, err)
	require.Equal(t, requestsvc.ErrHubNotFound, requestsvc.Code(err))
}

func TestCreate_BadWindow(t *testing.T) {
	svc := requestsvc.New(&reqRepoMock{}, &hubRepoMock{exists: true})
	now := time.Now().UTC()

	cases := []model.CreateRequestReq{
		// unparseable dates
		func() model.CreateRequestReq { r := validReq(); r.NeedFrom = "tomorrow"; return r }(),
		func() model.CreateRequestReq { r := validReq(); r.NeedTo = "2026-13-45"; return r }(),
		// window ends before it starts
		func() model.CreateRequestReq {
			r := validReq()
			r.NeedFrom = now.Add(72 * time.Hour).Format(time.RFC3339)
			r.NeedTo = now.Add(24 * time.Hour).Format(time.RFC3339)
			return r
		}(),
		// window entirely in the past
		func() model.CreateRequestReq {
			r := validReq()
			r.NeedFrom = now.Add(-72 * time.Hour).Format(time.RFC3339)
			r.NeedTo = now.Add(-24 * time.Hour).Format(time.RFC3339)
			return r
		}(),
	}

	for _, c := range cases {
		_, err := svc.Create(context.Background(), 1, c)
		require.Error(t, err)
		require.Equal(t, requestsvc.ErrBadWindow, requestsvc.Code(err))
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := requestsvc.New(&reqRepoMock{}, &hubRepoMock{})

	_, err := svc.Get(context.Background(), 404)
	require.Error(t, err)
	require.Equal(t, requestsvc.ErrNotFound, requestsvc.Code(err))
}

func TestCleaner_ExpireOverdue(t *testing.T) {
	n, err := requestsvc.NewCleaner(&reqRepoMock{}).ExpireOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}
