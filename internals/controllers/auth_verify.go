package controllers

import (
	"errors"
	"net/http"

	"go-job/internals/verification"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CodeSender delivers a verification code to an address. Satisfied by
// utils.EmailManager.
type CodeSender interface {
	SendVerificationCode(toEmail string, code string) error
}

type VerificationController struct {
	Codes verification.Store
	Email CodeSender
}

func NewVerificationController(codes verification.Store, email CodeSender) *VerificationController {
	return &VerificationController{
		Codes: codes,
		Email: email,
	}
}

type sendVerificationBody struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyCodeBody struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// SendVerification issues a fresh code for the email and dispatches it over
// SMTP. The code itself stays server-side.
func (v *VerificationController) SendVerification(c *gin.Context) {
	var body sendVerificationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid email address"})
		return
	}

	code, err := v.Codes.Issue(c.Request.Context(), body.Email)
	if err != nil {
		if errors.Is(err, verification.ErrResendCooldown) {
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Please wait a minute before requesting a new code"})
			return
		}
		log.Error().Err(err).Msg("Failed to issue verification code")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send email"})
		return
	}

	// Send in a background goroutine so the response isn't slow
	go func() {
		if err := v.Email.SendVerificationCode(body.Email, code); err != nil {
			log.Error().Err(err).Str("email", body.Email).Msg("Failed to send verification email")
		}
	}()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "A verification code has been sent to your email"})
}

// VerifyCode checks the entered code; success consumes it and unlocks
// registration for the email.
func (v *VerificationController) VerifyCode(c *gin.Context) {
	var body verifyCodeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if err := v.Codes.Verify(c.Request.Context(), body.Email, body.Code); err != nil {
		switch {
		case errors.Is(err, verification.ErrCodeExpired):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Code expired, please request a new one"})
		case errors.Is(err, verification.ErrTooManyAttempts):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Too many failed attempts. Please request a new code."})
		case errors.Is(err, verification.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid code"})
		default:
			log.Error().Err(err).Msg("Code verification failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified successfully"})
}
