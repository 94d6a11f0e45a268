package controllers

import (
	"errors"
	"net/http"

	"go-job/internals/middleware"
	"go-job/internals/models"
	"go-job/internals/services"
	"go-job/internals/utils"
	"go-job/internals/verification"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AuthController struct {
	DB          *gorm.DB
	Auth        *services.Auth
	Provisioner *services.Provisioner
	Codes       verification.Store
	Limiter     *middleware.LoginLimiter
	Sessions    *utils.SessionManager
}

func NewAuthController(db *gorm.DB, auth *services.Auth, provisioner *services.Provisioner, codes verification.Store, limiter *middleware.LoginLimiter, sessions *utils.SessionManager) *AuthController {
	return &AuthController{
		DB:          db,
		Auth:        auth,
		Provisioner: provisioner,
		Codes:       codes,
		Limiter:     limiter,
		Sessions:    sessions,
	}
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (a *AuthController) Login(c *gin.Context) {
	var body loginBody
	if c.ShouldBindJSON(&body) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to read body"})
		return
	}

	if body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email and password are required"})
		return
	}

	limiterKey := a.Limiter.Key(body.Email, c.ClientIP())
	if !a.Limiter.Allow(limiterKey) {
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Too many login attempts. Please try again later."})
		return
	}

	account, err := a.Auth.Login(c.Request.Context(), body.Email, body.Password, body.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email and password are required"})
		case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrRoleMismatch):
			// Role mismatches look identical to bad credentials on purpose.
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
		default:
			log.Error().Err(err).Msg("Login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	a.Limiter.Reset(limiterKey)

	if _, err := a.Sessions.IssueSession(c, account, http.SameSiteStrictMode); err != nil {
		log.Error().Err(err).Uint("account_id", account.ID).Msg("Failed to issue session")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":    account.ID,
			"email": account.Email,
			"role":  account.Role,
		},
	})
}

type registerBody struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`
	Address    struct {
		Street   string `json:"street"`
		Barangay string `json:"barangay"`
		City     string `json:"city"`
		Province string `json:"province"`
	} `json:"address"`
}

func (a *AuthController) Register(c *gin.Context) {
	var body registerBody
	if c.ShouldBindJSON(&body) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to read body"})
		return
	}

	if body.Email == "" || body.Password == "" || body.FirstName == "" || body.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}
	if body.Address.Street == "" || body.Address.Barangay == "" || body.Address.City == "" || body.Address.Province == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required address fields"})
		return
	}
	if len(body.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Password must be at least 8 characters"})
		return
	}
	if body.Role != "" && body.Role != models.RoleEmployee && body.Role != models.RoleEmployer {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid role"})
		return
	}

	// The email must have passed the verification code step first.
	verified, err := a.Codes.ConsumeVerified(c.Request.Context(), body.Email)
	if err != nil {
		log.Error().Err(err).Msg("Verification lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}
	if !verified {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Email not verified"})
		return
	}

	accountID, err := a.Provisioner.Register(c.Request.Context(), services.RegisterInput{
		Email:      body.Email,
		Password:   body.Password,
		Role:       body.Role,
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		MiddleName: body.MiddleName,
		Address: services.AddressInput{
			Street:   body.Address.Street,
			Barangay: body.Address.Barangay,
			City:     body.Address.City,
			Province: body.Address.Province,
		},
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "This email is already registered. Please log in."})
			return
		}
		log.Error().Err(err).Msg("Registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User registered successfully",
		"userId":  accountID,
	})
}

func (a *AuthController) ForgotPassword(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if c.ShouldBindJSON(&body) != nil || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email is required"})
		return
	}

	// Always answer with the same shape whether or not the account exists.
	var account models.Account
	err := a.DB.WithContext(c.Request.Context()).Where("account_email = ?", body.Email).First(&account).Error
	if err == nil {
		log.Info().Str("email", body.Email).Msg("Password reset requested")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("Forgot password lookup failed")
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If your email is registered, you will receive password reset instructions.",
	})
}

func (a *AuthController) Logout(c *gin.Context) {
	a.Sessions.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// Me returns the session claims set by the RequireAuth middleware.
func (a *AuthController) Me(c *gin.Context) {
	user, _ := c.Get("user")
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
