package userrepo

import (
	"context"
	"database/sql"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
)

type Repo interface {
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	KYCStatus(ctx context.Context, id int64) (model.KYCStatus, error)

	// Conditional KYC moves; false means the row was not in the
	// required source status (or does not exist).
	SetKYCPending(ctx context.Context, id int64, docURL string) (bool, error)
	SetKYCDecision(ctx context.Context, id int64, to model.KYCStatus) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, full_name, email, phone, password_hash, kyc_status, kyc_document_url, created_at
        FROM users
        WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash, &u.KYCStatus, &u.KYCDocumentURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, full_name, email, phone, password_hash, kyc_status, kyc_document_url, created_at
        FROM users
        WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash, &u.KYCStatus, &u.KYCDocumentURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) KYCStatus(ctx context.Context, id int64) (model.KYCStatus, error) {
	var st model.KYCStatus
	err := r.db.QueryRowContext(ctx, `SELECT kyc_status FROM users WHERE id = $1`, id).Scan(&st)
	return st, err
}

func (r *repo) SetKYCPending(ctx context.Context, id int64, docURL string) (bool, error) {
	const q = `
		UPDATE users
		SET kyc_status = 'pending',
		    kyc_document_url = $2
		WHERE id = $1
		AND kyc_status = 'unverified'`
	res, err := r.db.ExecContext(ctx, q, id, docURL)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) SetKYCDecision(ctx context.Context, id int64, to model.KYCStatus) (bool, error) {
	const q = `
		UPDATE users
		SET kyc_status = $2
		WHERE id = $1
		AND kyc_status = 'pending'`
	res, err := r.db.ExecContext(ctx, q, id, to)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
