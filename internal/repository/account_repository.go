package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/livetracker/account-service/internal/domain"
	"github.com/livetracker/account-service/pkg/database"
)

// accountRepository implements AccountRepository interface
type accountRepository struct {
	db *database.Postgres
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.Postgres) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, email, first_name, last_name, phone_number, password_hash,
		email_verified, verified_at, verification_token, verification_token_expires,
		last_login, created_at, updated_at`

// emailUniqueConstraint is the name postgres assigns to the UNIQUE constraint
// on accounts.email. The verification_token column carries its own UNIQUE
// constraint, so a bare 23505 check is not specific enough.
const emailUniqueConstraint = "accounts_email_key"

// isEmailConflict reports whether err is a unique violation on the email column.
func isEmailConflict(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) &&
		pqErr.Code == "23505" && // unique_violation
		pqErr.Constraint == emailUniqueConstraint
}

// Create creates a new account in the database
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, email, first_name, last_name, phone_number, password_hash,
			email_verified, verified_at, verification_token, verification_token_expires,
			last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	// Generate UUID if not provided
	if account.ID == "" {
		account.ID = uuid.New().String()
	}

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.FirstName,
		account.LastName,
		account.PhoneNumber,
		account.PasswordHash,
		account.EmailVerified,
		account.VerifiedAt,
		account.VerificationToken,
		account.VerificationTokenExpires,
		account.LastLogin,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		if isEmailConflict(err) {
			return fmt.Errorf("account with email %s already exists: %w", account.Email, ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account by email
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE email = $1`, accountColumns)

	account, err := r.scanAccount(r.db.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

// GetByVerificationToken retrieves an account by its outstanding verification token
func (r *accountRepository) GetByVerificationToken(ctx context.Context, token string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE verification_token = $1`, accountColumns)

	account, err := r.scanAccount(r.db.DB.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account with verification token not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by verification token: %w", err)
	}

	return account, nil
}

// Update updates an existing account
func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET email = $2, first_name = $3, last_name = $4, phone_number = $5,
			password_hash = $6, email_verified = $7, verified_at = $8,
			verification_token = $9, verification_token_expires = $10, updated_at = $11
		WHERE id = $1
	`

	account.UpdatedAt = time.Now()

	result, err := r.db.DB.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.FirstName,
		account.LastName,
		account.PhoneNumber,
		account.PasswordHash,
		account.EmailVerified,
		account.VerifiedAt,
		account.VerificationToken,
		account.VerificationTokenExpires,
		account.UpdatedAt,
	)

	if err != nil {
		if isEmailConflict(err) {
			return fmt.Errorf("account with email %s already exists: %w", account.Email, ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("account with id %s not found: %w", account.ID, ErrNotFound)
	}

	return nil
}

// UpdateLastLogin updates the last login timestamp for an account
func (r *accountRepository) UpdateLastLogin(ctx context.Context, accountID string) error {
	query := `
		UPDATE accounts
		SET last_login = $1, updated_at = $1
		WHERE id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, time.Now(), accountID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("account with id %s not found: %w", accountID, ErrNotFound)
	}

	return nil
}

// scanAccount scans a single account row, converting nullable columns
func (r *accountRepository) scanAccount(row *sql.Row) (*domain.Account, error) {
	account := &domain.Account{}
	var phoneNumber sql.NullString
	var verifiedAt, tokenExpires, lastLogin sql.NullTime
	var verificationToken sql.NullString

	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.FirstName,
		&account.LastName,
		&phoneNumber,
		&account.PasswordHash,
		&account.EmailVerified,
		&verifiedAt,
		&verificationToken,
		&tokenExpires,
		&lastLogin,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if phoneNumber.Valid {
		account.PhoneNumber = &phoneNumber.String
	}
	if verifiedAt.Valid {
		account.VerifiedAt = &verifiedAt.Time
	}
	if verificationToken.Valid {
		account.VerificationToken = &verificationToken.String
	}
	if tokenExpires.Valid {
		account.VerificationTokenExpires = &tokenExpires.Time
	}
	if lastLogin.Valid {
		account.LastLogin = &lastLogin.Time
	}

	return account, nil
}
