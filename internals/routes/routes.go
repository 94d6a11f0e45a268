package routes

import (
	"go-job/internals/config"
	"go-job/internals/controllers"
	"go-job/internals/middleware"
	"go-job/internals/services"
	"go-job/internals/utils"
	"go-job/internals/verification"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, codes verification.Store) *gin.Engine {
	r := gin.Default()

	sessionManager := utils.NewSessionManager(cfg.CookieConfig(), cfg.JWTSecret, cfg.SessionMaxAge)
	emailManager := utils.NewEmailManager(&cfg.SMTP, cfg.AppName, cfg.Verification.CodeExpMinutes)
	loginLimiter := middleware.NewLoginLimiter(middleware.DefaultLoginLimiterConfig())

	authService := services.NewAuth(db)
	provisioner := services.NewProvisioner(db)
	ssoAccounts := services.NewSSOAccounts(db)

	// Instantiate the "Class"
	authMiddleware := middleware.NewRequireAuthMiddleware(sessionManager)
	authCtrl := controllers.NewAuthController(db, authService, provisioner, codes, loginLimiter, sessionManager)
	verifyCtrl := controllers.NewVerificationController(codes, emailManager)
	googleAuthCtrl := controllers.NewGoogleAuthController(cfg.Google, ssoAccounts, sessionManager)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":      "active",
			"environment": cfg.AppEnv,
			"message":     cfg.AppName + " API is running",
		})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authCtrl.Login)
		auth.POST("/register", authCtrl.Register)
		auth.POST("/forgot-password", authCtrl.ForgotPassword)

		auth.POST("/send-verification", verifyCtrl.SendVerification)
		auth.POST("/verify-code", verifyCtrl.VerifyCode)

		auth.GET("/google", googleAuthCtrl.Login)
		auth.GET("/google/callback", googleAuthCtrl.Callback)

		protected := auth.Group("/")
		protected.Use(authMiddleware.RequireAuth)
		{
			protected.GET("/me", authCtrl.Me)
			protected.POST("/logout", authCtrl.Logout)
		}
	}

	return r
}
