package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/livetracker/account-service/internal/domain"
	"github.com/livetracker/account-service/internal/dto"
	"github.com/livetracker/account-service/internal/service"
	"go.uber.org/zap"
)

// TODO: replace with real session issuance once the credential design lands.
// The frontend currently ignores the value.
const placeholderLoginToken = "jwt_token_here"

// AccountHandler handles account lifecycle requests
type AccountHandler struct {
	accountService service.AccountService
	logger         *zap.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService service.AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Register handles user registration
// @Summary Register a new user account
// @Description Create an unverified account and dispatch a verification email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "Missing required fields: first_name, last_name, email, password",
		})
		return
	}

	result, err := h.accountService.Register(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message:   "User registered successfully",
		User:      summarize(result.Account),
		EmailSent: result.EmailSent,
		NextStep:  "Please check your email and click the verification link to activate your account",
	})
}

// Login handles user login
// @Summary Login
// @Description Authenticate with email and password; requires a verified email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "Email and password are required",
		})
		return
	}

	account, err := h.accountService.Login(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		User:    summarize(account),
		Token:   placeholderLoginToken,
	})
}

// ResendVerification handles verification email resend requests
// @Summary Resend verification email
// @Description Rotate the verification token and send a fresh email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResendVerificationRequest true "Resend request"
// @Success 200 {object} dto.ResendVerificationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/resend-verification [post]
func (h *AccountHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: "Email is required",
		})
		return
	}

	if _, err := h.accountService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResendVerificationResponse{
		Message: "Verification email sent successfully",
	})
}

// respondError maps lifecycle errors to HTTP responses in one place. Internal
// failures are logged with full context and surfaced without detail.
func (h *AccountHandler) respondError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: vErr.Message,
		})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Conflict",
			Message: "User with this email already exists",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Invalid email or password",
		})
	case errors.Is(err, service.ErrEmailNotVerified):
		verified := false
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error:      "Forbidden",
			Message:    "Please verify your email address before logging in",
			CanResend:  true,
			IsVerified: &verified,
		})
	case errors.Is(err, service.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: "User not found",
		})
	case errors.Is(err, service.ErrAlreadyVerified):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: "Email already verified",
		})
	case errors.Is(err, service.ErrEmailDelivery):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Email delivery failed",
			Message: "Failed to send verification email",
		})
	default:
		h.logger.Error("Unexpected error", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "An unexpected error occurred. Please try again.",
		})
	}
}

func summarize(account *domain.Account) dto.AccountSummary {
	return dto.AccountSummary{
		ID:            account.ID,
		Email:         account.Email,
		FirstName:     account.FirstName,
		LastName:      account.LastName,
		EmailVerified: account.EmailVerified,
	}
}
