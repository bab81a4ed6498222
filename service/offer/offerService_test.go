package offersvc_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	offerrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/offer"
	paymentrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/payment"
	rentrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/rent"
	requestrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/request"
	userrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/user"
	offersvc "github.com/Aashutosh1201/rentall-web-sub001/service/offer"
)

const (
	borrowerID = int64(1)
	lenderA    = int64(2)
	lenderB    = int64(3)
)

func openRequest() *model.Request {
	return &model.Request{
		ID:          50,
		OwnerID:     borrowerID,
		HubID:       1,
		Title:       "DSLR camera for the weekend",
		PricePerDay: 1000,
		Status:      model.RequestOpen,
	}
}

type reqRepoMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.Request, error)
}

var _ requestrepo.Repo = (*reqRepoMock)(nil)

func (m *reqRepoMock) Insert(ctx context.Context, r *model.Request) error { return nil }
func (m *reqRepoMock) ByID(ctx context.Context, id int64) (*model.Request, error) {
	if m.byIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}
func (m *reqRepoMock) ListOpen(ctx context.Context) ([]model.Request, error) { return nil, nil }
func (m *reqRepoMock) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// offerRepoMock stores inserted offers in memory.
type offerRepoMock struct {
	offers []model.CounterOffer
}

var _ offerrepo.Repo = (*offerRepoMock)(nil)

func (m *offerRepoMock) Insert(ctx context.Context, o *model.CounterOffer) error {
	o.ID = int64(len(m.offers) + 1)
	o.CreatedAt = time.Now().UTC()
	m.offers = append(m.offers, *o)
	return nil
}

func (m *offerRepoMock) ByID(ctx context.Context, id int64) (*model.CounterOffer, error) {
	for i := range m.offers {
		if m.offers[i].ID == id {
			cp := m.offers[i]
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *offerRepoMock) ListByRequest(ctx context.Context, requestID int64) ([]model.CounterOffer, error) {
	var out []model.CounterOffer
	for _, o := range m.offers {
		if o.RequestID == requestID {
			out = append(out, o)
		}
	}
	return out, nil
}

type rentRepoMock struct {
	createFn func(ctx context.Context, r *model.Rent) (int64, error)
}

var _ rentrepo.Repo = (*rentRepoMock)(nil)

func (m *rentRepoMock) CreateAccepted(ctx context.Context, r *model.Rent) (int64, error) {
	if m.createFn == nil {
		return 0, sql.ErrNoRows
	}
	return m.createFn(ctx, r)
}
func (m *rentRepoMock) ByID(ctx context.Context, id int64) (*model.Rent, error) {
	return nil, sql.ErrNoRows
}
func (m *rentRepoMock) ListByUser(ctx context.Context, userID int64) ([]model.Rent, error) {
	return nil, nil
}
func (m *rentRepoMock) FindByPaymentID(ctx context.Context, paymentID string) (*model.Rent, error) {
	return nil, sql.ErrNoRows
}
func (m *rentRepoMock) Confirm(ctx context.Context, id int64, transactionID, method string) (bool, error) {
	return false, nil
}
func (m *rentRepoMock) Activate(ctx context.Context, id int64) (bool, error) { return false, nil }
func (m *rentRepoMock) Complete(ctx context.Context, id int64) (bool, error) { return false, nil }
func (m *rentRepoMock) Cancel(ctx context.Context, id int64) (bool, error)   { return false, nil }
func (m *rentRepoMock) CancelExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type userRepoMock struct{}

var _ userrepo.Repo = (*userRepoMock)(nil)

func (m *userRepoMock) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, sql.ErrNoRows
}
func (m *userRepoMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	return &model.User{ID: id, Email: "borrower@example.com", KYCStatus: model.KYCVerified}, nil
}
func (m *userRepoMock) KYCStatus(ctx context.Context, id int64) (model.KYCStatus, error) {
	return model.KYCVerified, nil
}
func (m *userRepoMock) SetKYCPending(ctx context.Context, id int64, docURL string) (bool, error) {
	return false, nil
}
func (m *userRepoMock) SetKYCDecision(ctx context.Context, id int64, to model.KYCStatus) (bool, error) {
	return false, nil
}

type payRepoMock struct {
	invoices []paymentrepo.CreateInvoiceReq
}

var _ paymentrepo.Repo = (*payRepoMock)(nil)

func (m *payRepoMock) CreateInvoice(ctx context.Context, req paymentrepo.CreateInvoiceReq) (*paymentrepo.CreateInvoiceResp, error) {
	m.invoices = append(m.invoices, req)
	return &paymentrepo.CreateInvoiceResp{
		InvoiceID:  "inv-123",
		InvoiceURL: "https://pay.example.com/inv-123",
		ExpiresAt:  time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339),
	}, nil
}

func (m *payRepoMock) VerifyCallbackToken(tokenHeader string) error { return nil }

func newService(rq *reqRepoMock, of *offerRepoMock, rt *rentRepoMock, pay *payRepoMock) offersvc.Service {
	return offersvc.New(rq, of, rt, &userRepoMock{}, pay)
}

// --- tests ---

func TestSubmit_BadPrice(t *testing.T) {
	svc := newService(&reqRepoMock{}, &offerRepoMock{}, &rentRepoMock{}, &payRepoMock{})

	for _, price := range []float64{0, -50} {
		_, err := svc.Submit(context.Background(), lenderA, 50, price, "")
		require.Error(t, err)
		require.Equal(t, offersvc.ErrBadPrice, offersvc.Code(err))
	}
}

func TestSubmit_RequestNotFound(t *testing.T) {
	svc := newService(&reqRepoMock{}, &offerRepoMock{}, &rentRepoMock{}, &payRepoMock{})

	_, err := svc.Submit(context.Background(), lenderA, 404, 900, "")
	require.Error(t, err)
	require.Equal(t, offersvc.ErrRequestNotFound, offersvc.Code(err))
}

func TestSubmit_RequestClosed(t *testing.T) {
	rq := &reqRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Request, error) {
		r := openRequest()
		r.Status = model.RequestClosed
		return r, nil
	}}
	svc := newService(rq, &offerRepoMock{}, &rentRepoMock{}, &payRepoMock{})

	_, err := svc.Submit(context.Background(), lenderA, 50, 900, "")
	require.Error(t, err)
	require.Equal(t, offersvc.ErrRequestClosed, offersvc.Code(err))
}

func TestSubmit_OwnRequestForbidden(t *testing.T) {
	rq := &reqRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Request, error) {
		return openRequest(), nil
	}}
	svc := newService(rq, &offerRepoMock{}, &rentRepoMock{}, &payRepoMock{})

	_, err := svc.Submit(context.Background(), borrowerID, 50, 900, "")
	require.Error(t, err)
	require.Equal(t, offersvc.ErrOwnOffer, offersvc.Code(err))
}

func TestSubmit_TwoLendersCoexist(t *testing.T) {
	ctx := context.Background()
	rq := &reqRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Request, error) {
		return openRequest(), nil
	}}
	of := &offerRepoMock{}
	svc := newService(rq, of, &rentRepoMock{}, &payRepoMock{})

	a, err := svc.Submit(ctx, lenderA, 50, 900, "mine is newer")
	require.NoError(t, err)
	b, err := svc.Submit(ctx, lenderB, 50, 950, "")
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	rows, err := svc.ListByRequest(ctx, 50)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, float64(900), rows[0].Price)
	require.Equal(t, float64(950), rows[1].Price)
	require.NotNil(t, rows[0].Message)
	require.Nil(t, rows[1].Message)
}

func TestAccept_Success(t *testing.T) {
	ctx := context.Background()
	rq := &reqRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Request, error) {
		return openRequest(), nil
	}}
	of := &offerRepoMock{}
	pay := &payRepoMock{}

	var created *model.Rent
	rt := &rentRepoMock{createFn: func(ctx context.Context, r *model.Rent) (int64, error) {
		created = r
		return 77, nil
	}}
	svc := newService(rq, of, rt, pay)

	o, err := svc.Submit(ctx, lenderA, 50, 900, "")
	require.NoError(t, err)

	out, err := svc.Accept(ctx, borrowerID, o.ID)
	require.NoError(t, err)
	require.Equal(t, int64(77), out.RentID)
	require.Equal(t, "https://pay.example.com/inv-123", out.PaymentLink)

	require.NotNil(t, created)
	require.Equal(t, borrowerID, created.BorrowerID)
	require.Equal(t, lenderA, created.LenderID)
	require.Equal(t, float64(900), created.Price)
	require.Equal(t, "inv-123", *created.PaymentID)

	require.Len(t, pay.invoices, 1)
	require.Equal(t, float64(900), pay.invoices[0].Amount)
	require.True(t, strings.HasPrefix(pay.invoices[0].ExternalID, "rent:"))
}

func TestAccept_NotOwner(t *testing.T) {
	ctx := context.Background()
	rq := &reqRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Request, error) {
		return openRequest(), nil
	}}
	of := &offerRepoMock{}
	svc := newService(rq, of, &rentRepoMock{}, &payRepoMock{})

	o, err := svc.Submit(ctx, lenderA, 50, 900, "")
	require.NoError(t, err)

	_, err = svc.Accept(ctx, lenderB, o.ID)
	require.Error(t, err)
	require.Equal(t, offersvc.ErrNotOwner, offersvc.Code(err))
}

func TestAccept_OfferNotFound(t *testing.T) {
	svc := newService(&reqRepoMock{}, &offerRepoMock{}, &rentRepoMock{}, &payRepoMock{})

	_, err := svc.Accept(context.Background(), borrowerID, 404)
	require.Error(t, err)
	require.Equal(t, offersvc.ErrOfferNotFound, offersvc.Code(err))
}

func TestAccept_LosesCloseRace(t *testing.T) {
	ctx := context.Background()
	rq := &reqRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Request, error) {
		return openRequest(), nil
	}}
	of := &offerRepoMock{}
	rt := &rentRepoMock{createFn: func(ctx context.Context, r *model.Rent) (int64, error) {
		return 0, rentrepo.ErrRequestTaken
	}}
	svc := newService(rq, of, rt, &payRepoMock{})

	o, err := svc.Submit(ctx, lenderA, 50, 900, "")
	require.NoError(t, err)

	_, err = svc.Accept(ctx, borrowerID, o.ID)
	require.Error(t, err)
	require.Equal(t, offersvc.ErrRequestClosed, offersvc.Code(err))
}
