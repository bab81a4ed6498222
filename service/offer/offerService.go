package offersvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	offerrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/offer"
	paymentrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/payment"
	rentrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/rent"
	requestrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/request"
	userrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/user"
)

// errors used by controllers

type ErrCode string

const (
	ErrRequestNotFound ErrCode = "REQUEST_NOT_FOUND"
	ErrRequestClosed   ErrCode = "REQUEST_CLOSED"
	ErrOfferNotFound   ErrCode = "OFFER_NOT_FOUND"
	ErrOwnOffer        ErrCode = "OWN_OFFER"
	ErrNotOwner        ErrCode = "NOT_OWNER"
	ErrBadPrice        ErrCode = "BAD_PRICE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Accepted is what the borrower gets back after accepting an offer.
type Accepted struct {
	RentID       int64  `json:"rent_id"`
	PaymentLink  string `json:"payment_link"`
	PaymentDueAt string `json:"payment_due_at"`
}

type Service interface {
	// Submit records a counter-offer against an open request. Several
	// offers per (request, user) pair are allowed; each is immutable.
	Submit(ctx context.Context, userID, requestID int64, price float64, message string) (*model.CounterOffer, error)

	ListByRequest(ctx context.Context, requestID int64) ([]model.CounterOffer, error)

	// Accept closes the request, opens a rent in pending_payment and
	// issues a payment invoice for it.
	Accept(ctx context.Context, borrowerID, offerID int64) (*Accepted, error)
}

type service struct {
	reqs   requestrepo.Repo
	offers offerrepo.Repo
	rents  rentrepo.Repo
	users  userrepo.Repo
	pay    paymentrepo.Repo
}

func New(reqs requestrepo.Repo, offers offerrepo.Repo, rents rentrepo.Repo, users userrepo.Repo, pay paymentrepo.Repo) Service {
	return &service{reqs: reqs, offers: offers, rents: rents, users: users, pay: pay}
}

func (s *service) Submit(ctx context.Context, userID, requestID int64, price float64, message string) (*model.CounterOffer, error) {
	if price <= 0 {
		return nil, makeErr(ErrBadPrice)
	}

	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != model.RequestOpen {
		return nil, makeErr(ErrRequestClosed)
	}
	if req.OwnerID == userID {
		return nil, makeErr(ErrOwnOffer)
	}

	o := &model.CounterOffer{
		RequestID: requestID,
		UserID:    userID,
		Price:     price,
	}
	if message != "" {
		o.Message = &message
	}
	if err := s.offers.Insert(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ListByRequest(ctx context.Context, requestID int64) ([]model.CounterOffer, error) {
	if _, err := s.getRequest(ctx, requestID); err != nil {
		return nil, err
	}
	return s.offers.ListByRequest(ctx, requestID)
}

func (s *service) Accept(ctx context.Context, borrowerID, offerID int64) (*Accepted, error) {
	o, err := s.offers.ByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrOfferNotFound)
		}
		return nil, err
	}

	req, err := s.getRequest(ctx, o.RequestID)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != borrowerID {
		return nil, makeErr(ErrNotOwner)
	}
	if req.Status != model.RequestOpen {
		return nil, makeErr(ErrRequestClosed)
	}

	borrower, err := s.users.ByID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}

	// Invoice first; if closing the request races and loses, the
	// unpaid invoice just expires on the provider side.
	exp := 24 * time.Hour
	due := time.Now().UTC().Add(exp)
	inv, err := s.pay.CreateInvoice(ctx, paymentrepo.CreateInvoiceReq{
		ExternalID:  fmt.Sprintf("rent:%d:%s", o.ID, uuid.NewString()),
		Amount:      o.Price,
		PayerEmail:  borrower.Email,
		Description: "Rental payment",
		ExpirySec:   int(exp.Seconds()),
	})
	if err != nil {
		return nil, err
	}

	rent := &model.Rent{
		RequestID:    req.ID,
		OfferID:      o.ID,
		BorrowerID:   req.OwnerID,
		LenderID:     o.UserID,
		Price:        o.Price,
		PaymentID:    &inv.InvoiceID,
		PaymentLink:  &inv.InvoiceURL,
		PaymentDueAt: &due,
	}
	rentID, err := s.rents.CreateAccepted(ctx, rent)
	if err != nil {
		if errors.Is(err, rentrepo.ErrRequestTaken) {
			return nil, makeErr(ErrRequestClosed)
		}
		return nil, err
	}

	return &Accepted{
		RentID:       rentID,
		PaymentLink:  inv.InvoiceURL,
		PaymentDueAt: due.Format(time.RFC3339),
	}, nil
}

func (s *service) getRequest(ctx context.Context, id int64) (*model.Request, error) {
	req, err := s.reqs.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrRequestNotFound)
		}
		return nil, err
	}
	return req, nil
}
