package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/livetracker/account-service/internal/dto"
)

func (s *Suite) register(email, password string) *http.Response {
	reqBody := dto.RegisterRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     email,
		Password:  password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(
		s.App.BaseURL+"/api/auth/register",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) login(email, password string) *http.Response {
	body, _ := json.Marshal(dto.LoginRequest{Email: email, Password: password})

	resp, err := http.Post(
		s.App.BaseURL+"/api/auth/login",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) resend(email string) *http.Response {
	body, _ := json.Marshal(dto.ResendVerificationRequest{Email: email})

	resp, err := http.Post(
		s.App.BaseURL+"/api/auth/resend-verification",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) verify(token string) *http.Response {
	resp, err := http.Get(s.App.BaseURL + "/verify-email/" + token)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) TestRegister_Success() {
	resp := s.register("test@example.com", "Password123")
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var regResp dto.RegisterResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&regResp))

	s.Equal("User registered successfully", regResp.Message)
	s.True(regResp.EmailSent)
	s.False(regResp.User.EmailVerified)
	s.Equal("test@example.com", regResp.User.Email)
	s.Equal("Alice", regResp.User.FirstName)
	s.NotEmpty(regResp.User.ID)

	s.NotEmpty(s.App.Mailer.LastToken("test@example.com"))
}

func (s *Suite) TestRegister_DuplicateEmailCaseInsensitive() {
	resp1 := s.register("duplicate@example.com", "Password123")
	resp1.Body.Close()
	s.Equal(http.StatusCreated, resp1.StatusCode)

	resp2 := s.register("DUPLICATE@Example.COM", "Password123")
	defer resp2.Body.Close()

	s.Equal(http.StatusConflict, resp2.StatusCode)

	var errResp dto.ErrorResponse
	json.NewDecoder(resp2.Body).Decode(&errResp)
	s.Equal("Conflict", errResp.Error)
}

func (s *Suite) TestRegister_InvalidEmail() {
	resp := s.register("invalid-email", "Password123")
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRegister_WeakPassword() {
	resp := s.register("weak@example.com", "abcdefgh")
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	s.Equal("Password must contain at least one number", errResp.Message)
}

func (s *Suite) TestRegister_EmailFailureStillCreatesAccount() {
	s.App.Mailer.SetFailing(true)

	resp := s.register("nodelivery@example.com", "Password123")
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var regResp dto.RegisterResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&regResp))
	s.False(regResp.EmailSent)

	// Account exists despite the failed delivery
	s.App.Mailer.SetFailing(false)
	resend := s.resend("nodelivery@example.com")
	defer resend.Body.Close()
	s.Equal(http.StatusOK, resend.StatusCode)
}

func (s *Suite) TestLogin_InvalidCredentials() {
	resp := s.login("nonexistent@example.com", "wrongpassword1")
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	s.Equal("Unauthorized", errResp.Error)
}

func (s *Suite) TestLogin_UnverifiedEmail() {
	reg := s.register("unverified@example.com", "Password123")
	reg.Body.Close()

	resp := s.login("unverified@example.com", "Password123")
	defer resp.Body.Close()

	s.Equal(http.StatusForbidden, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.True(errResp.CanResend)
	s.Require().NotNil(errResp.IsVerified)
	s.False(*errResp.IsVerified)
}

func (s *Suite) TestVerifyEmail_UnknownToken() {
	resp := s.verify("definitely-not-a-token")
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestResendVerification_UnknownEmail() {
	resp := s.resend("nobody@example.com")
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestResendVerification_RotatesToken() {
	reg := s.register("rotate@example.com", "Password123")
	reg.Body.Close()
	firstToken := s.App.Mailer.LastToken("rotate@example.com")
	s.Require().NotEmpty(firstToken)

	resend := s.resend("rotate@example.com")
	resend.Body.Close()
	s.Equal(http.StatusOK, resend.StatusCode)

	secondToken := s.App.Mailer.LastToken("rotate@example.com")
	s.NotEqual(firstToken, secondToken)
	s.Equal(2, s.App.Mailer.SentCount("rotate@example.com"))

	// Superseded token is dead, fresh one works
	old := s.verify(firstToken)
	old.Body.Close()
	s.Equal(http.StatusNotFound, old.StatusCode)

	fresh := s.verify(secondToken)
	fresh.Body.Close()
	s.Equal(http.StatusOK, fresh.StatusCode)
}

func (s *Suite) TestResendVerification_AlreadyVerified() {
	reg := s.register("verified@example.com", "Password123")
	reg.Body.Close()

	verify := s.verify(s.App.Mailer.LastToken("verified@example.com"))
	verify.Body.Close()
	s.Equal(http.StatusOK, verify.StatusCode)

	resp := s.resend("verified@example.com")
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestCompleteLifecycle() {
	email := "complete@example.com"
	password := "Password123"

	reg := s.register(email, password)
	defer reg.Body.Close()
	s.Equal(http.StatusCreated, reg.StatusCode)

	// Login before verification is rejected
	forbidden := s.login(email, password)
	forbidden.Body.Close()
	s.Equal(http.StatusForbidden, forbidden.StatusCode)

	// Follow the emailed link
	token := s.App.Mailer.LastToken(email)
	s.Require().NotEmpty(token)

	verify := s.verify(token)
	verify.Body.Close()
	s.Equal(http.StatusOK, verify.StatusCode)

	// Single use: the consumed token is gone
	replay := s.verify(token)
	replay.Body.Close()
	s.Equal(http.StatusNotFound, replay.StatusCode)

	// Login now succeeds
	login := s.login(email, password)
	defer login.Body.Close()
	s.Equal(http.StatusOK, login.StatusCode)

	var loginResp dto.LoginResponse
	s.Require().NoError(json.NewDecoder(login.Body).Decode(&loginResp))
	s.Equal("Login successful", loginResp.Message)
	s.True(loginResp.User.EmailVerified)
	s.NotEmpty(loginResp.Token)
}
