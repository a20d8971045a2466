package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/livetracker/account-service/internal/domain"
	"github.com/livetracker/account-service/internal/dto"
	"github.com/livetracker/account-service/internal/mailer"
	"github.com/livetracker/account-service/internal/repository"
	"github.com/livetracker/account-service/internal/utils"
	"go.uber.org/zap"
)

// accountService implements AccountService interface
type accountService struct {
	accountRepo     repository.AccountRepository
	mailer          mailer.Mailer
	logger          *zap.Logger
	bcryptCost      int
	verificationTTL time.Duration
	baseURL         string
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo repository.AccountRepository,
	m mailer.Mailer,
	logger *zap.Logger,
	bcryptCost int,
	verificationTTL time.Duration,
	baseURL string,
) AccountService {
	return &accountService{
		accountRepo:     accountRepo,
		mailer:          m,
		logger:          logger,
		bcryptCost:      bcryptCost,
		verificationTTL: verificationTTL,
		baseURL:         strings.TrimRight(baseURL, "/"),
	}
}

// Register creates a new unverified account and dispatches a verification email.
// A delivery failure is reported through the EmailSent flag and never rolls back
// the created account.
func (s *accountService) Register(ctx context.Context, req *dto.RegisterRequest) (*RegistrationResult, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := utils.SanitizeEmail(req.Email)
	phoneNumber := strings.TrimSpace(req.PhoneNumber)

	if firstName == "" || lastName == "" || email == "" || req.Password == "" {
		return nil, NewValidationError("Missing required fields: first_name, last_name, email, password")
	}

	if !utils.ValidateEmail(email) {
		return nil, NewValidationError("Invalid email format")
	}

	if ok, message := utils.ValidatePassword(req.Password); !ok {
		return nil, NewValidationError(message)
	}

	// Check if an account already exists
	_, err := s.accountRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := utils.GenerateVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	account := &domain.Account{
		Email:         email,
		FirstName:     firstName,
		LastName:      lastName,
		PasswordHash:  passwordHash,
		EmailVerified: false,
	}
	if phoneNumber != "" {
		account.PhoneNumber = &phoneNumber
	}
	account.SetVerificationToken(token, time.Now().Add(s.verificationTTL))

	if err := s.accountRepo.Create(ctx, account); err != nil {
		// The store enforces email uniqueness; a concurrent registration with
		// the same email surfaces here as a duplicate, not as a race.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &RegistrationResult{
		Account:   account,
		EmailSent: s.dispatchVerificationEmail(ctx, account, token),
	}, nil
}

// VerifyEmail consumes a verification token
func (s *accountService) VerifyEmail(ctx context.Context, token string) (VerificationStatus, error) {
	account, err := s.accountRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to get account by verification token: %w", err)
	}

	if account.VerificationExpired(time.Now()) {
		return "", ErrTokenExpired
	}

	if account.EmailVerified {
		return StatusAlreadyVerified, nil
	}

	account.MarkVerified(time.Now())
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return "", fmt.Errorf("failed to mark account verified: %w", err)
	}

	s.logger.Info("Email verified",
		zap.String("account_id", account.ID),
		zap.String("email", account.Email),
	)

	return StatusVerified, nil
}

// ResendVerification rotates the verification token and dispatches a fresh
// email. The previous token is superseded by the rotation. A send failure after
// the rotation is persisted is reported as ErrEmailDelivery.
func (s *accountService) ResendVerification(ctx context.Context, email string) (bool, error) {
	email = utils.SanitizeEmail(email)
	if email == "" {
		return false, NewValidationError("Email is required")
	}

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrAccountNotFound
		}
		return false, fmt.Errorf("failed to get account: %w", err)
	}

	if account.EmailVerified {
		return false, ErrAlreadyVerified
	}

	token, err := utils.GenerateVerificationToken()
	if err != nil {
		return false, fmt.Errorf("failed to generate verification token: %w", err)
	}
	account.SetVerificationToken(token, time.Now().Add(s.verificationTTL))

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return false, fmt.Errorf("failed to rotate verification token: %w", err)
	}

	if !s.dispatchVerificationEmail(ctx, account, token) {
		return false, ErrEmailDelivery
	}

	return true, nil
}

// Login authenticates an account by email and password
func (s *accountService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.Account, error) {
	email := utils.SanitizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, NewValidationError("Email and password are required")
	}

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same error as a wrong password so callers cannot probe for accounts
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !account.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	now := time.Now()
	if err := s.accountRepo.UpdateLastLogin(ctx, account.ID); err != nil {
		s.logger.Error("Failed to update last login",
			zap.Error(err),
			zap.String("account_id", account.ID),
		)
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	account.LastLogin = &now

	return account, nil
}

// dispatchVerificationEmail performs the single delivery attempt and converts
// the outcome to a boolean. The account mutation is already committed at this
// point.
func (s *accountService) dispatchVerificationEmail(ctx context.Context, account *domain.Account, token string) bool {
	verificationURL := fmt.Sprintf("%s/verify-email/%s", s.baseURL, token)

	if err := s.mailer.SendVerificationEmail(ctx, account.Email, account.FirstName, verificationURL); err != nil {
		s.logger.Error("Email sending error",
			zap.Error(err),
			zap.String("email", account.Email),
		)
		return false
	}

	return true
}
