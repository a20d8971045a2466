package repository

import (
	"context"

	"github.com/livetracker/account-service/internal/domain"
)

// AccountRepository defines methods for account persistence
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// GetByVerificationToken matches the stored token by exact equality only.
	GetByVerificationToken(ctx context.Context, token string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	UpdateLastLogin(ctx context.Context, accountID string) error
}
