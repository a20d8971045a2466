package dto

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FirstName   string `json:"first_name" binding:"required" validate:"required"`
	LastName    string `json:"last_name" binding:"required" validate:"required"`
	Email       string `json:"email" binding:"required" validate:"required"`
	Password    string `json:"password" binding:"required" validate:"required"`
	PhoneNumber string `json:"phone_number"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// ResendVerificationRequest represents a request for a fresh verification email
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required" validate:"required"`
}

// AccountSummary represents the externally visible subset of an account.
// It never carries the password hash or the verification token.
type AccountSummary struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	EmailVerified bool   `json:"email_verified"`
}

// RegisterResponse represents a successful registration response
type RegisterResponse struct {
	Message   string         `json:"message"`
	User      AccountSummary `json:"user"`
	EmailSent bool           `json:"email_sent"`
	NextStep  string         `json:"next_step"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Message string         `json:"message"`
	User    AccountSummary `json:"user"`
	Token   string         `json:"token"`
}

// ResendVerificationResponse represents the outcome of a resend request
type ResendVerificationResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error      string      `json:"error"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	CanResend  bool        `json:"can_resend,omitempty"`
	IsVerified *bool       `json:"email_verified,omitempty"`
}
