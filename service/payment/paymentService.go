package paymentsvc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	paymentrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/payment"
	rentrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/rent"
)

type Service interface {
	HandleCallback(ctx context.Context, tokenHeader string, raw []byte) error
}

type service struct {
	pv    paymentrepo.Repo
	rents rentrepo.Repo
}

func New(pv paymentrepo.Repo, rents rentrepo.Repo) Service {
	return &service{pv: pv, rents: rents}
}

type invoiceEvent struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	ExternalID    string `json:"external_id"`
	PaymentID     string `json:"payment_id"`
	PaymentMethod string `json:"payment_method"`
}

func (s *service) HandleCallback(ctx context.Context, tokenHeader string, raw []byte) error {
	if err := s.pv.VerifyCallbackToken(tokenHeader); err != nil {
		return err
	}

	var ev invoiceEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("bad webhook json: %w", err)
	}
	if ev.ID == "" || ev.Status == "" {
		return errors.New("missing invoice fields")
	}

	switch ev.Status {
	case "PAID":
		return s.onPaid(ctx, ev)
	case "EXPIRED":
		return s.onExpired(ctx, ev)
	default:
		return nil
	}
}

func (s *service) onPaid(ctx context.Context, ev invoiceEvent) error {
	rent, err := s.rents.FindByPaymentID(ctx, ev.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("invoice %s not mapped to a rent", ev.ID)
		}
		return err
	}

	switch rent.Status {
	case model.RentConfirmed, model.RentActive, model.RentCompleted:
		// Retried delivery; the payment already took effect.
		return nil
	case model.RentCancelled:
		return fmt.Errorf("invoice %s paid for cancelled rent %d", ev.ID, rent.ID)
	}

	txID := ev.PaymentID
	if txID == "" {
		txID = ev.ID
	}
	ok, err := s.rents.Confirm(ctx, rent.ID, txID, ev.PaymentMethod)
	if err != nil {
		return err
	}
	if !ok {
		// Concurrent duplicate already applied the transition.
		return nil
	}
	return nil
}

func (s *service) onExpired(ctx context.Context, ev invoiceEvent) error {
	rent, err := s.rents.FindByPaymentID(ctx, ev.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	if rent.Status != model.RentPendingPayment {
		return nil
	}
	_, err = s.rents.Cancel(ctx, rent.ID)
	return err
}
