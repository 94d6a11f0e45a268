package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-job/internals/config"
	"go-job/internals/middleware"
	"go-job/internals/models"
	"go-job/internals/services"
	"go-job/internals/utils"
	"go-job/internals/verification"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	codes    *verification.MemoryStore
	sessions *utils.SessionManager
	sender   *fakeSender
}

// fakeSender captures outgoing verification emails instead of talking SMTP.
type fakeSender struct {
	emails chan string
	codes  chan string
}

func newFakeSender() *fakeSender {
	return &fakeSender{emails: make(chan string, 8), codes: make(chan string, 8)}
}

func (f *fakeSender) SendVerificationCode(toEmail, code string) error {
	f.emails <- toEmail
	f.codes <- code
	return nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Address{}, &models.Account{}, &models.Employee{}))

	codes := verification.NewMemoryStore(verification.Options{ResendCooldown: time.Nanosecond})
	t.Cleanup(codes.Stop)

	sessions := utils.NewSessionManager(&config.CookieConfig{HttpOnly: true}, "test-secret", 604800)
	limiter := middleware.NewLoginLimiter(middleware.LoginLimiterConfig{
		Burst:           5,
		Refill:          time.Hour,
		CleanupInterval: time.Hour,
	})
	t.Cleanup(limiter.Stop)

	sender := newFakeSender()

	authCtrl := NewAuthController(db, services.NewAuth(db), services.NewProvisioner(db), codes, limiter, sessions)
	verifyCtrl := NewVerificationController(codes, sender)
	authMw := middleware.NewRequireAuthMiddleware(sessions)

	r := gin.New()
	r.POST("/api/auth/login", authCtrl.Login)
	r.POST("/api/auth/register", authCtrl.Register)
	r.POST("/api/auth/forgot-password", authCtrl.ForgotPassword)
	r.POST("/api/auth/send-verification", verifyCtrl.SendVerification)
	r.POST("/api/auth/verify-code", verifyCtrl.VerifyCode)
	r.GET("/api/auth/me", authMw.RequireAuth, authCtrl.Me)
	r.POST("/api/auth/logout", authMw.RequireAuth, authCtrl.Logout)

	return &testEnv{router: r, db: db, codes: codes, sessions: sessions, sender: sender}
}

func (e *testEnv) postJSON(t *testing.T, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// markVerified puts the email through the verification flow so registration
// is unlocked.
func (e *testEnv) markVerified(t *testing.T, email string) {
	t.Helper()
	code, err := e.codes.Issue(context.Background(), email)
	require.NoError(t, err)
	require.NoError(t, e.codes.Verify(context.Background(), email, code))
}

func registerPayload(email string) map[string]any {
	return map[string]any{
		"email":     email,
		"password":  "correct-horse",
		"role":      "employee",
		"firstName": "Juan",
		"lastName":  "Dela Cruz",
		"address": map[string]any{
			"street":   "123 Mabini St",
			"barangay": "Poblacion",
			"city":     "Davao City",
			"province": "Davao del Sur",
		},
	}
}
