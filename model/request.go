package model

import "time"

type RequestStatus string

const (
	RequestOpen    RequestStatus = "OPEN"
	RequestClosed  RequestStatus = "CLOSED"
	RequestExpired RequestStatus = "EXPIRED"
)

// Request is a borrower's posted need, open for counter-offers until
// one is accepted or the need window passes.
type Request struct {
	ID          int64         `json:"id"`
	OwnerID     int64         `json:"owner_id"`
	HubID       int64         `json:"hub_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	PricePerDay float64       `json:"price_per_day"`
	NeedFrom    time.Time     `json:"need_from"`
	NeedTo      time.Time     `json:"need_to"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CreateRequestReq represents a new rental need
// swagger:model CreateRequestReq
type CreateRequestReq struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	PricePerDay float64 `json:"price_per_day" validate:"required,gt=0"`
	NeedFrom    string  `json:"need_from" validate:"required"`
	NeedTo      string  `json:"need_to" validate:"required"`
	HubID       int64   `json:"hub_id" validate:"required,gt=0"`
}
