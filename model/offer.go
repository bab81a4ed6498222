package model

import "time"

// CounterOffer is a lender's proposed price against an open Request.
// Offers are immutable once created; a user may submit several to the
// same request (renegotiation).
type CounterOffer struct {
	ID        int64     `json:"id"`
	RequestID int64     `json:"request_id"`
	UserID    int64     `json:"user_id"`
	Price     float64   `json:"price"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateOfferReq represents a counter-offer submission
// swagger:model CreateOfferReq
type CreateOfferReq struct {
	Price   float64 `json:"price" validate:"required,gt=0"`
	Message string  `json:"message"`
}
