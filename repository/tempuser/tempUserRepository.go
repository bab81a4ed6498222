package tempuserrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
)

type Repo interface {
	Create(ctx context.Context, t *model.TempUser) error
	ByEmail(ctx context.Context, email string) (*model.TempUser, error)

	// Verification marks also push expires_at out so a signup in
	// progress does not hit the 24h purge boundary.
	MarkEmailVerified(ctx context.Context, id int64, extendTo time.Time) error
	MarkPhoneVerified(ctx context.Context, id int64, extendTo time.Time) error
	IncrementAttempts(ctx context.Context, id int64) (int, error)

	// Promote moves a dual-verified signup into users and removes the
	// temp row, in one transaction.
	Promote(ctx context.Context, t *model.TempUser) (*model.User, error)

	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, t *model.TempUser) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO temp_users
			(full_name, email, phone, password_hash,
			 email_otp, email_otp_expires_at, phone_otp, phone_otp_expires_at,
			 expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at`,
		t.FullName, t.Email, t.Phone, t.PasswordHash,
		t.EmailOTP, t.EmailOTPExpiresAt, t.PhoneOTP, t.PhoneOTPExpiresAt,
		t.ExpiresAt,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.TempUser, error) {
	t := &model.TempUser{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, email, phone, password_hash,
		       email_otp, email_otp_expires_at, phone_otp, phone_otp_expires_at,
		       email_verified, phone_verified, otp_attempts, expires_at, created_at
		FROM temp_users
		WHERE lower(email) = lower($1)`,
		email,
	).Scan(&t.ID, &t.FullName, &t.Email, &t.Phone, &t.PasswordHash,
		&t.EmailOTP, &t.EmailOTPExpiresAt, &t.PhoneOTP, &t.PhoneOTPExpiresAt,
		&t.EmailVerified, &t.PhoneVerified, &t.OTPAttempts, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repo) MarkEmailVerified(ctx context.Context, id int64, extendTo time.Time) error {
	const q = `
		UPDATE temp_users
		SET email_verified = TRUE,
		    expires_at = $2
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, extendTo)
	return err
}

func (r *repo) MarkPhoneVerified(ctx context.Context, id int64, extendTo time.Time) error {
	const q = `
		UPDATE temp_users
		SET phone_verified = TRUE,
		    expires_at = $2
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, extendTo)
	return err
}

func (r *repo) IncrementAttempts(ctx context.Context, id int64) (int, error) {
	const q = `
		UPDATE temp_users
		SET otp_attempts = otp_attempts + 1
		WHERE id = $1
		RETURNING otp_attempts`
	var n int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&n)
	return n, err
}

func (r *repo) Promote(ctx context.Context, t *model.TempUser) (*model.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	u := &model.User{
		FullName:     t.FullName,
		Email:        t.Email,
		Phone:        t.Phone,
		PasswordHash: t.PasswordHash,
		KYCStatus:    model.KYCUnverified,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (full_name, email, phone, password_hash, kyc_status)
		VALUES ($1,$2,$3,$4,'unverified')
		RETURNING id, created_at`,
		u.FullName, u.Email, u.Phone, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM temp_users WHERE id = $1`, t.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM temp_users WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
