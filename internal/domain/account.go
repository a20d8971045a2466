package domain

import "time"

// Account represents a registered user account
type Account struct {
	ID                       string     `json:"id" db:"id"`
	Email                    string     `json:"email" db:"email"`
	FirstName                string     `json:"first_name" db:"first_name"`
	LastName                 string     `json:"last_name" db:"last_name"`
	PhoneNumber              *string    `json:"phone_number" db:"phone_number"`
	PasswordHash             string     `json:"-" db:"password_hash"`
	EmailVerified            bool       `json:"email_verified" db:"email_verified"`
	VerifiedAt               *time.Time `json:"verified_at" db:"verified_at"`
	VerificationToken        *string    `json:"-" db:"verification_token"`
	VerificationTokenExpires *time.Time `json:"-" db:"verification_token_expires"`
	LastLogin                *time.Time `json:"last_login" db:"last_login"`
	CreatedAt                time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at" db:"updated_at"`
}

// VerificationExpired reports whether the outstanding token has passed its deadline
func (a *Account) VerificationExpired(now time.Time) bool {
	return a.VerificationTokenExpires != nil && !now.Before(*a.VerificationTokenExpires)
}

// SetVerificationToken records a new outstanding token with its absolute deadline
func (a *Account) SetVerificationToken(token string, expires time.Time) {
	a.VerificationToken = &token
	a.VerificationTokenExpires = &expires
}

// MarkVerified marks the email as verified and clears the outstanding token
func (a *Account) MarkVerified(now time.Time) {
	a.EmailVerified = true
	a.VerifiedAt = &now
	a.VerificationToken = nil
	a.VerificationTokenExpires = nil
}
