package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/livetracker/account-service/internal/service"
	"go.uber.org/zap"
)

const verifyPageTemplate = `<html><body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">
<h2 style="color: %s;">%s</h2>
<p>%s</p>
<a href="/" style="background: #2563eb; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Go to App</a>
</body></html>
`

func verifyPage(color, heading, body string) []byte {
	return []byte(fmt.Sprintf(verifyPageTemplate, color, heading, body))
}

// VerifyEmail consumes a verification token from the emailed link and renders
// a small result page, since the request comes from a browser, not the API
// client.
// @Summary Verify email address
// @Description Consume a verification token from an emailed link
// @Tags auth
// @Produce html
// @Param token path string true "Verification token"
// @Router /verify-email/{token} [get]
func (h *AccountHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	status, err := h.accountService.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		h.renderVerifyError(c, err)
		return
	}

	if status == service.StatusAlreadyVerified {
		c.Data(http.StatusOK, "text/html; charset=utf-8", verifyPage(
			"#16a34a",
			"Already Verified",
			"Your email has already been verified. You can now log in to your account.",
		))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", verifyPage(
		"#16a34a",
		"Email Verified Successfully!",
		"Your email has been verified. You can now log in to your Live Location Tracker account.",
	))
}

func (h *AccountHandler) renderVerifyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTokenNotFound):
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", verifyPage(
			"#dc2626",
			"Invalid Verification Token",
			"The verification link is invalid or has been used already.",
		))
	case errors.Is(err, service.ErrTokenExpired):
		c.Data(http.StatusGone, "text/html; charset=utf-8", verifyPage(
			"#dc2626",
			"Token Expired",
			"The verification link has expired. Please request a new verification email.",
		))
	default:
		h.logger.Error("Email verification error", zap.Error(err))
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", verifyPage(
			"#dc2626",
			"Verification Error",
			"An error occurred during verification. Please try again or contact support.",
		))
	}
}
