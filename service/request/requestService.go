package requestsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	hubrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/hub"
	requestrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/request"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound    ErrCode = "REQUEST_NOT_FOUND"
	ErrHubNotFound ErrCode = "HUB_NOT_FOUND"
	ErrBadWindow   ErrCode = "BAD_WINDOW"
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
	Create(ctx context.Context, ownerID int64, req model.CreateRequestReq) (*model.Request, error)
	ListOpen(ctx context.Context) ([]model.Request, error)
	Get(ctx context.Context, id int64) (*model.Request, error)
}

type service struct {
	rr requestrepo.Repo
	hr hubrepo.Repo
}

func New(rr requestrepo.Repo, hr hubrepo.Repo) Service {
	return &service{rr: rr, hr: hr}
}

func (s *service) Create(ctx context.Context, ownerID int64, req model.CreateRequestReq) (*model.Request, error) {
	from, err := time.Parse(time.RFC3339, req.NeedFrom)
	if err != nil {
		return nil, makeErr(ErrBadWindow)
	}
	to, err := time.Parse(time.RFC3339, req.NeedTo)
	if err != nil {
		return nil, makeErr(ErrBadWindow)
	}
	if !to.After(from) || to.Before(time.Now().UTC()) {
		return nil, makeErr(ErrBadWindow)
	}

	ok, err := s.hr.Exists(ctx, req.HubID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrHubNotFound)
	}

	out := &model.Request{
		OwnerID:     ownerID,
		HubID:       req.HubID,
		Title:       req.Title,
		Description: req.Description,
		PricePerDay: req.PricePerDay,
		NeedFrom:    from.UTC(),
		NeedTo:      to.UTC(),
	}
	if err := s.rr.Insert(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) ListOpen(ctx context.Context) ([]model.Request, error) {
	return s.rr.ListOpen(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Request, error) {
	req, err := s.rr.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return req, nil
}
