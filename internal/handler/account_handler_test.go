package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/livetracker/account-service/internal/domain"
	"github.com/livetracker/account-service/internal/dto"
	"github.com/livetracker/account-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAccountService returns canned results for handler mapping tests
type stubAccountService struct {
	registerResult *service.RegistrationResult
	registerErr    error
	verifyStatus   service.VerificationStatus
	verifyErr      error
	resendSent     bool
	resendErr      error
	loginAccount   *domain.Account
	loginErr       error
}

func (s *stubAccountService) Register(context.Context, *dto.RegisterRequest) (*service.RegistrationResult, error) {
	return s.registerResult, s.registerErr
}

func (s *stubAccountService) VerifyEmail(context.Context, string) (service.VerificationStatus, error) {
	return s.verifyStatus, s.verifyErr
}

func (s *stubAccountService) ResendVerification(context.Context, string) (bool, error) {
	return s.resendSent, s.resendErr
}

func (s *stubAccountService) Login(context.Context, *dto.LoginRequest) (*domain.Account, error) {
	return s.loginAccount, s.loginErr
}

func newTestRouter(svc service.AccountService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAccountHandler(svc, zap.NewNop())

	router := gin.New()
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	router.POST("/api/auth/resend-verification", h.ResendVerification)
	router.GET("/verify-email/:token", h.VerifyEmail)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testAccount() *domain.Account {
	return &domain.Account{
		ID:        "acc-1",
		Email:     "a@b.com",
		FirstName: "Alice",
		LastName:  "Smith",
	}
}

func TestRegister_Created(t *testing.T) {
	svc := &stubAccountService{
		registerResult: &service.RegistrationResult{Account: testAccount(), EmailSent: true},
	}
	router := newTestRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register",
		`{"first_name":"Alice","last_name":"Smith","email":"a@b.com","password":"Secret123"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.EmailSent)
	assert.Equal(t, "a@b.com", resp.User.Email)
	assert.False(t, resp.User.EmailVerified)

	// The raw payload must never leak credential material
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "verification_token")
}

func TestRegister_MissingBody(t *testing.T) {
	router := newTestRouter(&stubAccountService{})

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", service.NewValidationError("Invalid email format"), http.StatusBadRequest},
		{"conflict", service.ErrEmailTaken, http.StatusConflict},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubAccountService{registerErr: tt.err})
			w := doJSON(t, router, http.MethodPost, "/api/auth/register",
				`{"first_name":"A","last_name":"B","email":"a@b.com","password":"Secret123"}`)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestRegister_InternalErrorHidesDetail(t *testing.T) {
	router := newTestRouter(&stubAccountService{registerErr: context.DeadlineExceeded})

	w := doJSON(t, router, http.MethodPost, "/api/auth/register",
		`{"first_name":"A","last_name":"B","email":"a@b.com","password":"Secret123"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), context.DeadlineExceeded.Error())
}

func TestLogin_Success(t *testing.T) {
	account := testAccount()
	account.EmailVerified = true
	router := newTestRouter(&stubAccountService{loginAccount: account})

	w := doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"a@b.com","password":"Secret123"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jwt_token_here", resp.Token)
	assert.True(t, resp.User.EmailVerified)
}

func TestLogin_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unverified", service.ErrEmailNotVerified, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubAccountService{loginErr: tt.err})
			w := doJSON(t, router, http.MethodPost, "/api/auth/login",
				`{"email":"a@b.com","password":"Secret123"}`)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestLogin_UnverifiedOffersResend(t *testing.T) {
	router := newTestRouter(&stubAccountService{loginErr: service.ErrEmailNotVerified})

	w := doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"a@b.com","password":"Secret123"}`)

	require.Equal(t, http.StatusForbidden, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.CanResend)
	require.NotNil(t, resp.IsVerified)
	assert.False(t, *resp.IsVerified)
}

func TestResendVerification_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"sent", nil, http.StatusOK},
		{"unknown email", service.ErrAccountNotFound, http.StatusNotFound},
		{"already verified", service.ErrAlreadyVerified, http.StatusBadRequest},
		{"delivery failed", service.ErrEmailDelivery, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubAccountService{resendSent: tt.err == nil, resendErr: tt.err})
			w := doJSON(t, router, http.MethodPost, "/api/auth/resend-verification",
				`{"email":"a@b.com"}`)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestVerifyEmail_Pages(t *testing.T) {
	tests := []struct {
		name     string
		status   service.VerificationStatus
		err      error
		code     int
		contains string
	}{
		{"verified", service.StatusVerified, nil, http.StatusOK, "Email Verified Successfully"},
		{"already verified", service.StatusAlreadyVerified, nil, http.StatusOK, "Already Verified"},
		{"invalid token", "", service.ErrTokenNotFound, http.StatusNotFound, "Invalid Verification Token"},
		{"expired token", "", service.ErrTokenExpired, http.StatusGone, "Token Expired"},
		{"internal", "", context.DeadlineExceeded, http.StatusInternalServerError, "Verification Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubAccountService{verifyStatus: tt.status, verifyErr: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/verify-email/sometoken", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}
