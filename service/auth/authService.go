package authsvc

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	tempuserrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/tempuser"
	userrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/user"
	"github.com/Aashutosh1201/rentall-web-sub001/util/hash"
	jwtutil "github.com/Aashutosh1201/rentall-web-sub001/util/jwt"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrPhoneTaken      = errors.New("phone already registered")
	ErrBadInput        = errors.New("bad input")
	ErrInvalidCreds    = errors.New("invalid credentials")
	ErrSignupNotFound  = errors.New("signup not found")
	ErrSignupExpired   = errors.New("signup expired")
	ErrOTPInvalid      = errors.New("invalid code")
	ErrOTPExpired      = errors.New("code expired")
	ErrTooManyAttempts = errors.New("too many attempts")
)

const (
	signupTTL     = 24 * time.Hour
	otpTTL        = 10 * time.Minute
	maxOTPTries   = 5
	tokenTTLHours = 24
)

// VerifyResult reports one OTP check. User and Token are set only once
// both channels are verified and the signup has been promoted.
type VerifyResult struct {
	EmailVerified bool         `json:"email_verified"`
	PhoneVerified bool         `json:"phone_verified"`
	Promoted      bool         `json:"promoted"`
	User          *model.User  `json:"user,omitempty"`
	Token         string       `json:"token,omitempty"`
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.TempUser, error)
	VerifyEmail(ctx context.Context, req model.VerifyOTPReq) (*VerifyResult, error)
	VerifyPhone(ctx context.Context, req model.VerifyOTPReq) (*VerifyResult, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
}

type service struct {
	tr     tempuserrepo.Repo
	ur     userrepo.Repo
	secret string
}

func New(tr tempuserrepo.Repo, ur userrepo.Repo, secret string) Service {
	return &service{tr: tr, ur: ur, secret: secret}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.TempUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	if email == "" || phone == "" || req.Password == "" {
		return nil, ErrBadInput
	}

	// A promoted account already holding the email wins over any
	// in-flight signup.
	if _, err := s.ur.ByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &model.TempUser{
		FullName:          strings.TrimSpace(req.FullName),
		Email:             email,
		Phone:             phone,
		PasswordHash:      hashed,
		EmailOTP:          newOTP(),
		EmailOTPExpiresAt: now.Add(otpTTL),
		PhoneOTP:          newOTP(),
		PhoneOTPExpiresAt: now.Add(otpTTL),
		ExpiresAt:         now.Add(signupTTL),
	}

	if err := s.tr.Create(ctx, t); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return t, nil
}

func (s *service) VerifyEmail(ctx context.Context, req model.VerifyOTPReq) (*VerifyResult, error) {
	return s.verify(ctx, req, false)
}

func (s *service) VerifyPhone(ctx context.Context, req model.VerifyOTPReq) (*VerifyResult, error) {
	return s.verify(ctx, req, true)
}

func (s *service) verify(ctx context.Context, req model.VerifyOTPReq, phoneChannel bool) (*VerifyResult, error) {
	t, err := s.tr.ByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSignupNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	if t.ExpiresAt.Before(now) {
		return nil, ErrSignupExpired
	}

	tries, err := s.tr.IncrementAttempts(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if tries > maxOTPTries {
		return nil, ErrTooManyAttempts
	}

	code, codeExpiry := t.EmailOTP, t.EmailOTPExpiresAt
	if phoneChannel {
		code, codeExpiry = t.PhoneOTP, t.PhoneOTPExpiresAt
	}
	if codeExpiry.Before(now) {
		return nil, ErrOTPExpired
	}
	if req.Code != code {
		return nil, ErrOTPInvalid
	}

	// Partial progress extends the purge boundary.
	extendTo := now.Add(signupTTL)
	if phoneChannel {
		if err := s.tr.MarkPhoneVerified(ctx, t.ID, extendTo); err != nil {
			return nil, err
		}
		t.PhoneVerified = true
	} else {
		if err := s.tr.MarkEmailVerified(ctx, t.ID, extendTo); err != nil {
			return nil, err
		}
		t.EmailVerified = true
	}

	res := &VerifyResult{EmailVerified: t.EmailVerified, PhoneVerified: t.PhoneVerified}
	if !t.EmailVerified || !t.PhoneVerified {
		return res, nil
	}

	u, err := s.tr.Promote(ctx, t)
	if err != nil {
		return nil, err
	}
	token, err := jwtutil.Issue(s.secret, u.ID, "user", tokenTTLHours)
	if err != nil {
		return nil, err
	}
	res.Promoted = true
	res.User = u
	res.Token = token
	return res, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	u, err := s.ur.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", ErrInvalidCreds
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCreds
	}
	token, err := jwtutil.Issue(s.secret, u.ID, "user", tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "phone") || strings.Contains(msg, "phone") {
			return ErrPhoneTaken
		}
		if strings.Contains(cn, "email") || strings.Contains(msg, "email") {
			return ErrEmailTaken
		}
		return ErrBadInput
	}
	return nil
}

func newOTP() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000)
}
