package paymentsvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	paymentrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/payment"
	rentrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/rent"
	paymentsvc "github.com/Aashutosh1201/rentall-web-sub001/service/payment"
)

type gatewayMock struct {
	verifyErr error
}

var _ paymentrepo.Repo = (*gatewayMock)(nil)

func (m *gatewayMock) CreateInvoice(ctx context.Context, req paymentrepo.CreateInvoiceReq) (*paymentrepo.CreateInvoiceResp, error) {
	return nil, errors.New("not used")
}

func (m *gatewayMock) VerifyCallbackToken(tokenHeader string) error { return m.verifyErr }

// rentsMock tracks conditional transitions against a single rent.
type rentsMock struct {
	rent *model.Rent

	confirmCalls int
	cancelCalls  int
}

var _ rentrepo.Repo = (*rentsMock)(nil)

func (m *rentsMock) CreateAccepted(ctx context.Context, r *model.Rent) (int64, error) {
	return 0, errors.New("not used")
}

func (m *rentsMock) ByID(ctx context.Context, id int64) (*model.Rent, error) {
	return nil, sql.ErrNoRows
}

func (m *rentsMock) ListByUser(ctx context.Context, userID int64) ([]model.Rent, error) {
	return nil, nil
}

func (m *rentsMock) FindByPaymentID(ctx context.Context, paymentID string) (*model.Rent, error) {
	if m.rent == nil || m.rent.PaymentID == nil || *m.rent.PaymentID != paymentID {
		return nil, sql.ErrNoRows
	}
	cp := *m.rent
	return &cp, nil
}

func (m *rentsMock) Confirm(ctx context.Context, id int64, transactionID, method string) (bool, error) {
	m.confirmCalls++
	if m.rent == nil || m.rent.ID != id || m.rent.Status != model.RentPendingPayment {
		return false, nil
	}
	m.rent.Status = model.RentConfirmed
	m.rent.TransactionID = &transactionID
	return true, nil
}

func (m *rentsMock) Activate(ctx context.Context, id int64) (bool, error) { return false, nil }
func (m *rentsMock) Complete(ctx context.Context, id int64) (bool, error) { return false, nil }

func (m *rentsMock) Cancel(ctx context.Context, id int64) (bool, error) {
	m.cancelCalls++
	if m.rent == nil || m.rent.ID != id {
		return false, nil
	}
	if m.rent.Status != model.RentPendingPayment && m.rent.Status != model.RentConfirmed {
		return false, nil
	}
	m.rent.Status = model.RentCancelled
	return true, nil
}

func (m *rentsMock) CancelExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func pendingRent(invoiceID string) *rentsMock {
	inv := invoiceID
	return &rentsMock{rent: &model.Rent{
		ID:         10,
		BorrowerID: 1,
		LenderID:   2,
		Price:      900,
		Status:     model.RentPendingPayment,
		PaymentID:  &inv,
	}}
}

// --- tests ---

func TestCallback_PaidConfirms(t *testing.T) {
	rents := pendingRent("inv-1")
	svc := paymentsvc.New(&gatewayMock{}, rents)

	raw := []byte(`{"id":"inv-1","status":"PAID","external_id":"rent:30:x","payment_id":"TX1","payment_method":"EWALLET"}`)
	require.NoError(t, svc.HandleCallback(context.Background(), "tok", raw))

	require.Equal(t, model.RentConfirmed, rents.rent.Status)
	require.Equal(t, 1, rents.confirmCalls)
	require.Equal(t, "TX1", *rents.rent.TransactionID)
}

func TestCallback_DuplicateDeliveryIsNoop(t *testing.T) {
	rents := pendingRent("inv-1")
	svc := paymentsvc.New(&gatewayMock{}, rents)

	raw := []byte(`{"id":"inv-1","status":"PAID","payment_id":"TX1"}`)
	require.NoError(t, svc.HandleCallback(context.Background(), "tok", raw))
	require.NoError(t, svc.HandleCallback(context.Background(), "tok", raw))

	// Second delivery short-circuits on status; no second transition.
	require.Equal(t, model.RentConfirmed, rents.rent.Status)
	require.Equal(t, 1, rents.confirmCalls)
}

func TestCallback_BadToken(t *testing.T) {
	rents := pendingRent("inv-1")
	svc := paymentsvc.New(&gatewayMock{verifyErr: errors.New("invalid callback token")}, rents)

	err := svc.HandleCallback(context.Background(), "bad", []byte(`{"id":"inv-1","status":"PAID"}`))
	require.Error(t, err)
	require.Equal(t, 0, rents.confirmCalls)
	require.Equal(t, model.RentPendingPayment, rents.rent.Status)
}

func TestCallback_BadJSON(t *testing.T) {
	svc := paymentsvc.New(&gatewayMock{}, pendingRent("inv-1"))

	require.Error(t, svc.HandleCallback(context.Background(), "tok", []byte("{nope")))
	require.Error(t, svc.HandleCallback(context.Background(), "tok", []byte(`{"id":"","status":""}`)))
}

func TestCallback_UnknownInvoice(t *testing.T) {
	svc := paymentsvc.New(&gatewayMock{}, pendingRent("inv-1"))

	err := svc.HandleCallback(context.Background(), "tok", []byte(`{"id":"other","status":"PAID"}`))
	require.Error(t, err)
}

func TestCallback_PaidAfterCancellation(t *testing.T) {
	rents := pendingRent("inv-1")
	rents.rent.Status = model.RentCancelled
	svc := paymentsvc.New(&gatewayMock{}, rents)

	err := svc.HandleCallback(context.Background(), "tok", []byte(`{"id":"inv-1","status":"PAID"}`))
	require.Error(t, err)
	require.Equal(t, model.RentCancelled, rents.rent.Status)
}

func TestCallback_ExpiredCancelsPendingOnly(t *testing.T) {
	rents := pendingRent("inv-1")
	svc := paymentsvc.New(&gatewayMock{}, rents)

	raw := []byte(`{"id":"inv-1","status":"EXPIRED"}`)
	require.NoError(t, svc.HandleCallback(context.Background(), "tok", raw))
	require.Equal(t, model.RentCancelled, rents.rent.Status)

	// Already confirmed rents are untouched by a late expiry event.
	rents = pendingRent("inv-1")
	rents.rent.Status = model.RentConfirmed
	svc = paymentsvc.New(&gatewayMock{}, rents)
	require.NoError(t, svc.HandleCallback(context.Background(), "tok", raw))
	require.Equal(t, model.RentConfirmed, rents.rent.Status)
	require.Equal(t, 0, rents.cancelCalls)
}

func TestCallback_IgnoresOtherStatuses(t *testing.T) {
	rents := pendingRent("inv-1")
	svc := paymentsvc.New(&gatewayMock{}, rents)

	require.NoError(t, svc.HandleCallback(context.Background(), "tok", []byte(`{"id":"inv-1","status":"SETTLING"}`)))
	require.Equal(t, model.RentPendingPayment, rents.rent.Status)
}
