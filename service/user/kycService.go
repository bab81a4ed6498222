package usersvc

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	storagerepo "github.com/Aashutosh1201/rentall-web-sub001/repository/storage"
	userrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/user"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound      ErrCode = "USER_NOT_FOUND"
	ErrBadDocument   ErrCode = "BAD_DOCUMENT"
	ErrKYCTransition ErrCode = "KYC_TRANSITION"
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

const kycFolder = "kyc"

type Service interface {
	Me(ctx context.Context, userID int64) (*model.User, error)

	// SubmitKYC uploads the identity document and moves the account
	// from unverified to pending.
	SubmitKYC(ctx context.Context, userID int64, filename string, data io.Reader) (*model.User, error)

	// DecideKYC resolves a pending submission to verified or rejected.
	DecideKYC(ctx context.Context, userID int64, approve bool) error
}

type service struct {
	ur userrepo.Repo
	st storagerepo.Repo
}

func New(ur userrepo.Repo, st storagerepo.Repo) Service {
	return &service{ur: ur, st: st}
}

func (s *service) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) SubmitKYC(ctx context.Context, userID int64, filename string, data io.Reader) (*model.User, error) {
	if !storagerepo.AllowedImage(filename) {
		return nil, makeErr(ErrBadDocument)
	}

	u, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.KYCStatus != model.KYCUnverified {
		return nil, makeErr(ErrKYCTransition)
	}

	res, err := s.st.UploadImage(ctx, kycFolder, filename, data)
	if err != nil {
		return nil, err
	}

	ok, err := s.ur.SetKYCPending(ctx, userID, res.URL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrKYCTransition)
	}

	u.KYCStatus = model.KYCPending
	u.KYCDocumentURL = &res.URL
	return u, nil
}

func (s *service) DecideKYC(ctx context.Context, userID int64, approve bool) error {
	to := model.KYCRejected
	if approve {
		to = model.KYCVerified
	}

	ok, err := s.ur.SetKYCDecision(ctx, userID, to)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	// Distinguish a missing account from an account not in pending.
	if _, err := s.ur.ByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	return makeErr(ErrKYCTransition)
}
