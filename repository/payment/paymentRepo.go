package paymentrepo

import "context"

type CreateInvoiceReq struct {
	ExternalID  string
	Amount      float64
	PayerEmail  string
	Description string
	ExpirySec   int
}

type CreateInvoiceResp struct {
	InvoiceID  string
	InvoiceURL string
	ExpiresAt  string
}

type Repo interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceReq) (*CreateInvoiceResp, error)
	VerifyCallbackToken(tokenHeader string) error
}
