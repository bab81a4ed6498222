package rentsvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	rentrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/rent"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound          ErrCode = "RENT_NOT_FOUND"
	ErrNotParty          ErrCode = "NOT_PARTY"
	ErrNotLender         ErrCode = "NOT_LENDER"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
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

type Service interface {
	Get(ctx context.Context, userID, rentID int64) (*model.Rent, error)
	My(ctx context.Context, userID int64) ([]model.Rent, error)

	// Lender confirms pickup: confirmed → active.
	Activate(ctx context.Context, userID, rentID int64) error
	// Lender confirms the item came back: active → completed.
	Complete(ctx context.Context, userID, rentID int64) error
	// Either party backs out before the rental period starts.
	Cancel(ctx context.Context, userID, rentID int64) error
}

type service struct {
	rr rentrepo.Repo
}

func New(rr rentrepo.Repo) Service { return &service{rr: rr} }

func (s *service) Get(ctx context.Context, userID, rentID int64) (*model.Rent, error) {
	rent, err := s.byID(ctx, rentID)
	if err != nil {
		return nil, err
	}
	if rent.BorrowerID != userID && rent.LenderID != userID {
		return nil, makeErr(ErrNotParty)
	}
	return rent, nil
}

func (s *service) My(ctx context.Context, userID int64) ([]model.Rent, error) {
	return s.rr.ListByUser(ctx, userID)
}

func (s *service) Activate(ctx context.Context, userID, rentID int64) error {
	return s.transition(ctx, userID, rentID, model.RentActive, s.rr.Activate)
}

func (s *service) Complete(ctx context.Context, userID, rentID int64) error {
	return s.transition(ctx, userID, rentID, model.RentCompleted, s.rr.Complete)
}

func (s *service) Cancel(ctx context.Context, userID, rentID int64) error {
	return s.transition(ctx, userID, rentID, model.RentCancelled, s.rr.Cancel)
}

func (s *service) transition(ctx context.Context, userID, rentID int64, to model.RentStatus,
	apply func(context.Context, int64) (bool, error)) error {

	rent, err := s.byID(ctx, rentID)
	if err != nil {
		return err
	}
	if err := authorize(rent, userID, to); err != nil {
		return err
	}
	if !model.CanTransition(rent.Status, to) {
		return makeErr(ErrInvalidTransition)
	}

	ok, err := apply(ctx, rentID)
	if err != nil {
		return err
	}
	if !ok {
		// Lost a race; the row moved since we read it.
		return makeErr(ErrInvalidTransition)
	}
	return nil
}

// Physical handover events come from the lender; cancellation is open
// to both parties.
func authorize(rent *model.Rent, userID int64, to model.RentStatus) error {
	switch to {
	case model.RentActive, model.RentCompleted:
		if rent.LenderID != userID {
			if rent.BorrowerID == userID {
				return makeErr(ErrNotLender)
			}
			return makeErr(ErrNotParty)
		}
	case model.RentCancelled:
		if rent.BorrowerID != userID && rent.LenderID != userID {
			return makeErr(ErrNotParty)
		}
	}
	return nil
}

func (s *service) byID(ctx context.Context, rentID int64) (*model.Rent, error) {
	rent, err := s.rr.ByID(ctx, rentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return rent, nil
}
