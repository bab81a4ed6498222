package hubsvc_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	hubrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/hub"
	hubsvc "github.com/Aashutosh1201/rentall-web-sub001/service/hub"
)

type hubRepoMock struct {
	byName     map[string]*model.Hub
	inserted   []*model.Hub
	lastPrefix string
}

var _ hubrepo.Repo = (*hubRepoMock)(nil)

func (m *hubRepoMock) Insert(ctx context.Context, h *model.Hub) error {
	h.ID = int64(len(m.inserted) + 1)
	m.inserted = append(m.inserted, h)
	return nil
}

func (m *hubRepoMock) ByName(ctx context.Context, name string) (*model.Hub, error) {
	if h, ok := m.byName[name]; ok {
		return h, nil
	}
	return nil, sql.ErrNoRows
}

func (m *hubRepoMock) Exists(ctx context.Context, id int64) (bool, error) { return false, nil }
func (m *hubRepoMock) List(ctx context.Context) ([]model.Hub, error)      { return nil, nil }

func (m *hubRepoMock) ListByGeohashPrefix(ctx context.Context, prefix string) ([]model.Hub, error) {
	m.lastPrefix = prefix
	return nil, nil
}

// --- tests ---

func TestEnsure_InsertsWhenAbsent(t *testing.T) {
	repo := &hubRepoMock{byName: map[string]*model.Hub{}}
	svc := hubsvc.New(repo)

	created, err := svc.Ensure(context.Background(), &model.Hub{
		Name: "Kathmandu", Lat: 27.7172, Lng: 85.3240,
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Len(t, repo.inserted, 1)
	require.NotEmpty(t, repo.inserted[0].Geohash)
}

func TestEnsure_NoOpWhenPresent(t *testing.T) {
	repo := &hubRepoMock{byName: map[string]*model.Hub{
		"Kathmandu": {ID: 7, Name: "Kathmandu"},
	}}
	svc := hubsvc.New(repo)

	created, err := svc.Ensure(context.Background(), &model.Hub{
		Name: "Kathmandu", Lat: 27.7172, Lng: 85.3240,
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Empty(t, repo.inserted)
}

func TestEnsure_Idempotent(t *testing.T) {
	repo := &hubRepoMock{byName: map[string]*model.Hub{}}
	svc := hubsvc.New(repo)
	hub := func() *model.Hub {
		return &model.Hub{Name: "Pokhara", Lat: 28.2096, Lng: 83.9856}
	}

	created, err := svc.Ensure(context.Background(), hub())
	require.NoError(t, err)
	require.True(t, created)
	repo.byName["Pokhara"] = repo.inserted[0]

	created, err = svc.Ensure(context.Background(), hub())
	require.NoError(t, err)
	require.False(t, created)
	require.Len(t, repo.inserted, 1)
}

func TestNear_UsesCoarsePrefix(t *testing.T) {
	repo := &hubRepoMock{}
	svc := hubsvc.New(repo)

	_, err := svc.Near(context.Background(), 27.7172, 85.3240)
	require.NoError(t, err)
	require.Len(t, repo.lastPrefix, 4)
}
