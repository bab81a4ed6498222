package model

import "time"

type RentStatus string

const (
	RentPendingPayment RentStatus = "pending_payment"
	RentConfirmed      RentStatus = "confirmed"
	RentActive         RentStatus = "active"
	RentCompleted      RentStatus = "completed"
	RentCancelled      RentStatus = "cancelled"
)

// Rent is the transactional record created when a counter-offer is
// accepted. Status only moves along the edges in RentEdges.
type Rent struct {
	ID            int64      `json:"id"`
	RequestID     int64      `json:"request_id"`
	OfferID       int64      `json:"offer_id"`
	BorrowerID    int64      `json:"borrower_id"`
	LenderID      int64      `json:"lender_id"`
	Price         float64    `json:"price"`
	Status        RentStatus `json:"status"`
	PaymentID     *string    `json:"payment_id,omitempty"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	PaymentLink   *string    `json:"payment_link,omitempty"`
	PaymentDueAt  *time.Time `json:"payment_due_at,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RentEdges is the allowed transition table. Cancellation is only
// reachable before the rental period starts.
var RentEdges = map[RentStatus][]RentStatus{
	RentPendingPayment: {RentConfirmed, RentCancelled},
	RentConfirmed:      {RentActive, RentCancelled},
	RentActive:         {RentCompleted},
}

// CanTransition reports whether from→to is a declared edge.
func CanTransition(from, to RentStatus) bool {
	for _, n := range RentEdges[from] {
		if n == to {
			return true
		}
	}
	return false
}
