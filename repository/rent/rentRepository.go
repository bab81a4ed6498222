package rentrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
)

// ErrRequestTaken means the request was no longer OPEN when the accept
// transaction ran; the caller lost the race.
var ErrRequestTaken = errors.New("request already closed")

type Repo interface {
	// CreateAccepted closes the parent request and inserts the rent in
	// one transaction. Returns ErrRequestTaken if the request is not
	// OPEN anymore.
	CreateAccepted(ctx context.Context, r *model.Rent) (int64, error)

	ByID(ctx context.Context, id int64) (*model.Rent, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Rent, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*model.Rent, error)

	// Conditional transitions; false means the row was not in the
	// required source status.
	Confirm(ctx context.Context, id int64, transactionID, method string) (bool, error)
	Activate(ctx context.Context, id int64) (bool, error)
	Complete(ctx context.Context, id int64) (bool, error)
	Cancel(ctx context.Context, id int64) (bool, error)

	CancelExpiredPending(ctx context.Context, now time.Time) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const rentCols = `id, request_id, offer_id, borrower_id, lender_id, price, status,
	payment_id, transaction_id, payment_method, payment_link, payment_due_at,
	confirmed_at, activated_at, completed_at, cancelled_at, created_at, updated_at`

func scanRent(row interface{ Scan(...any) error }, rent *model.Rent) error {
	return row.Scan(&rent.ID, &rent.RequestID, &rent.OfferID, &rent.BorrowerID, &rent.LenderID,
		&rent.Price, &rent.Status,
		&rent.PaymentID, &rent.TransactionID, &rent.PaymentMethod, &rent.PaymentLink, &rent.PaymentDueAt,
		&rent.ConfirmedAt, &rent.ActivatedAt, &rent.CompletedAt, &rent.CancelledAt,
		&rent.CreatedAt, &rent.UpdatedAt)
}

func (r *repo) CreateAccepted(ctx context.Context, rent *model.Rent) (id int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE requests
		SET status = 'CLOSED',
		    updated_at = NOW()
		WHERE id = $1
		AND status = 'OPEN'`,
		rent.RequestID)
	if err != nil {
		return 0, err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		err = ErrRequestTaken
		return 0, err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO rents
			(request_id, offer_id, borrower_id, lender_id, price, status,
			 payment_id, payment_link, payment_due_at)
		VALUES ($1,$2,$3,$4,$5,'pending_payment',$6,$7,$8)
		RETURNING id`,
		rent.RequestID, rent.OfferID, rent.BorrowerID, rent.LenderID, rent.Price,
		rent.PaymentID, rent.PaymentLink, rent.PaymentDueAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	rent.ID = id
	rent.Status = model.RentPendingPayment
	return id, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Rent, error) {
	rent := &model.Rent{}
	row := r.db.QueryRowContext(ctx, `SELECT `+rentCols+` FROM rents WHERE id = $1`, id)
	if err := scanRent(row, rent); err != nil {
		return nil, err
	}
	return rent, nil
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Rent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+rentCols+`
		FROM rents
		WHERE borrower_id = $1 OR lender_id = $1
		ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rent
	for rows.Next() {
		var rent model.Rent
		if err := scanRent(rows, &rent); err != nil {
			return nil, err
		}
		out = append(out, rent)
	}
	return out, rows.Err()
}

func (r *repo) FindByPaymentID(ctx context.Context, paymentID string) (*model.Rent, error) {
	rent := &model.Rent{}
	row := r.db.QueryRowContext(ctx, `SELECT `+rentCols+` FROM rents WHERE payment_id = $1`, paymentID)
	if err := scanRent(row, rent); err != nil {
		return nil, err
	}
	return rent, nil
}

func (r *repo) Confirm(ctx context.Context, id int64, transactionID, method string) (bool, error) {
	const q = `
		UPDATE rents
		SET status = 'confirmed',
		    transaction_id = $2,
		    payment_method = $3,
		    confirmed_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
		AND status = 'pending_payment'`
	return r.exec(ctx, q, id, transactionID, method)
}

func (r *repo) Activate(ctx context.Context, id int64) (bool, error) {
	const q = `
		UPDATE rents
		SET status = 'active',
		    activated_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
		AND status = 'confirmed'`
	return r.exec(ctx, q, id)
}

func (r *repo) Complete(ctx context.Context, id int64) (bool, error) {
	const q = `
		UPDATE rents
		SET status = 'completed',
		    completed_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
		AND status = 'active'`
	return r.exec(ctx, q, id)
}

func (r *repo) Cancel(ctx context.Context, id int64) (bool, error) {
	const q = `
		UPDATE rents
		SET status = 'cancelled',
		    cancelled_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
		AND status IN ('pending_payment','confirmed')`
	return r.exec(ctx, q, id)
}

func (r *repo) CancelExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		UPDATE rents
		SET status = 'cancelled',
		    cancelled_at = NOW(),
		    updated_at = NOW()
		WHERE status = 'pending_payment'
		AND payment_due_at < $1`
	res, err := r.db.ExecContext(ctx, q, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repo) exec(ctx context.Context, q string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
