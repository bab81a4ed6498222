package paymentrepo

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Aashutosh1201/rentall-web-sub001/util/httpx"
)

const invoiceEndpoint = "https://api.xendit.co/v2/invoices"

type httpRepo struct {
	apiKey        string
	callbackToken string
	client        *http.Client
}

func NewHTTP(apiKey, callbackToken string) Repo {
	return &httpRepo{apiKey: apiKey, callbackToken: callbackToken, client: httpx.Client()}
}

func (r *httpRepo) CreateInvoice(ctx context.Context, req CreateInvoiceReq) (*CreateInvoiceResp, error) {
	body := map[string]any{
		"external_id":      req.ExternalID,
		"amount":           req.Amount,
		"description":      req.Description,
		"payer_email":      req.PayerEmail,
		"invoice_duration": req.ExpirySec,
	}
	b, _ := json.Marshal(body)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, invoiceEndpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("create invoice failed: %s", resp.Status)
	}

	var out struct {
		ID         string `json:"id"`
		InvoiceURL string `json:"invoice_url"`
		ExpiryDate string `json:"expiry_date"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("payment gateway: empty invoice id")
	}

	return &CreateInvoiceResp{InvoiceID: out.ID, InvoiceURL: out.InvoiceURL, ExpiresAt: out.ExpiryDate}, nil
}

// VerifyCallbackToken checks the X-Callback-Token header against the
// configured shared secret.
func (r *httpRepo) VerifyCallbackToken(tokenHeader string) error {
	if r.callbackToken == "" {
		return errors.New("callback token not configured")
	}
	if subtle.ConstantTimeCompare([]byte(tokenHeader), []byte(r.callbackToken)) != 1 {
		return errors.New("invalid callback token")
	}
	return nil
}
