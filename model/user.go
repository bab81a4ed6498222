package model

import "time"

type KYCStatus string

const (
	KYCUnverified KYCStatus = "unverified"
	KYCPending    KYCStatus = "pending"
	KYCVerified   KYCStatus = "verified"
	KYCRejected   KYCStatus = "rejected"
)

type User struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	PasswordHash   string    `json:"-"`
	KYCStatus      KYCStatus `json:"kyc_status"`
	KYCDocumentURL *string   `json:"kyc_document_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TempUser holds a signup until both OTPs are verified. Rows expire
// 24h after creation unless verification progresses.
type TempUser struct {
	ID                int64     `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	PasswordHash      string    `json:"-"`
	EmailOTP          string    `json:"-"`
	EmailOTPExpiresAt time.Time `json:"-"`
	PhoneOTP          string    `json:"-"`
	PhoneOTPExpiresAt time.Time `json:"-"`
	EmailVerified     bool      `json:"email_verified"`
	PhoneVerified     bool      `json:"phone_verified"`
	OTPAttempts       int       `json:"-"`
	ExpiresAt         time.Time `json:"expires_at"`
	CreatedAt         time.Time `json:"created_at"`
}

// RegisterReq represents signup payload
// swagger:model RegisterReq
type RegisterReq struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=8"`
	Password string `json:"password" validate:"required,min=6"`
}

// VerifyOTPReq verifies one of the two signup OTP channels
// swagger:model VerifyOTPReq
type VerifyOTPReq struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// KYCDecisionReq moves a pending KYC submission to a terminal status.
// swagger:model KYCDecisionReq
type KYCDecisionReq struct {
	Approve bool `json:"approve"`
}
