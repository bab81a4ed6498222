package echoServer_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Aashutosh1201/rentall-web-sub001/app/echoServer"
	"github.com/Aashutosh1201/rentall-web-sub001/model"
	userrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/user"
)

type userRepoMock struct {
	status model.KYCStatus
	err    error
}

var _ userrepo.Repo = (*userRepoMock)(nil)

func (m *userRepoMock) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, sql.ErrNoRows
}
func (m *userRepoMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	return nil, sql.ErrNoRows
}
func (m *userRepoMock) KYCStatus(ctx context.Context, id int64) (model.KYCStatus, error) {
	return m.status, m.err
}
func (m *userRepoMock) SetKYCPending(ctx context.Context, id int64, docURL string) (bool, error) {
	return false, nil
}
func (m *userRepoMock) SetKYCDecision(ctx context.Context, id int64, to model.KYCStatus) (bool, error) {
	return false, nil
}

func gateRequest(t *testing.T, repo userrepo.Repo, uid any) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/requests", nil), rec)
	if uid != nil {
		c.Set("user_id", uid)
	}

	reached := false
	h := echoServer.KYCGate(repo)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusCreated)
	})
	require.NoError(t, h(c))
	return rec, reached
}

func TestKYCGate_VerifiedPasses(t *testing.T) {
	rec, reached := gateRequest(t, &userRepoMock{status: model.KYCVerified}, int64(1))
	require.True(t, reached)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestKYCGate_UnverifiedBlocked(t *testing.T) {
	for _, status := range []model.KYCStatus{model.KYCUnverified, model.KYCPending, model.KYCRejected} {
		rec, reached := gateRequest(t, &userRepoMock{status: status}, int64(1))
		require.False(t, reached, "handler must not run for %s", status)
		require.Equal(t, http.StatusForbidden, rec.Code)

		var body struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.False(t, body.Success)
		require.Equal(t, "KYC_REQUIRED", body.Code)
		require.NotEmpty(t, body.Message)
	}
}

func TestKYCGate_NoIdentity(t *testing.T) {
	rec, reached := gateRequest(t, &userRepoMock{status: model.KYCVerified}, nil)
	require.False(t, reached)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestKYCGate_LookupFailure(t *testing.T) {
	rec, reached := gateRequest(t, &userRepoMock{err: sql.ErrConnDone}, int64(1))
	require.False(t, reached)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
