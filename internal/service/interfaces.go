package service

import (
	"context"

	"github.com/livetracker/account-service/internal/domain"
	"github.com/livetracker/account-service/internal/dto"
)

// VerificationStatus is the outcome of consuming a verification token
type VerificationStatus string

const (
	StatusVerified        VerificationStatus = "verified"
	StatusAlreadyVerified VerificationStatus = "already_verified"
)

// RegistrationResult carries the created account and the email delivery outcome
type RegistrationResult struct {
	Account   *domain.Account
	EmailSent bool
}

// AccountService defines the account lifecycle operations
type AccountService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*RegistrationResult, error)
	VerifyEmail(ctx context.Context, token string) (VerificationStatus, error)
	ResendVerification(ctx context.Context, email string) (bool, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.Account, error)
}
