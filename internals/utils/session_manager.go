package utils

import (
	"fmt"
	"net/http"
	"time"

	"go-job/internals/config"
	"go-job/internals/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Cookie names shared between the session manager, the auth middleware and
// the OAuth flow.
const (
	SessionCookie    = "session_id"
	UserDataCookie   = "user_data"
	OAuthStateCookie = "google_oauth_state"
)

// OAuthStateMaxAge bounds how long an initiated OAuth flow stays valid.
const OAuthStateMaxAge = 10 * time.Minute

// UserClaims is the account snapshot carried inside the signed user_data
// cookie.
type UserClaims struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionManager mints and clears the session cookie pair: an opaque
// session_id plus a signed user_data token holding the account snapshot.
// Sessions are stateless; nothing is persisted server-side.
type SessionManager struct {
	// CookieConfig holds the shared security baseline for all cookies issued by the server
	CookieConfig *config.CookieConfig
	// JWTSecret signs the user_data cookie
	JWTSecret string
	// MaxAge is the session lifetime in seconds
	MaxAge int
}

func NewSessionManager(cookieConfig *config.CookieConfig, jwtSecret string, maxAge int) *SessionManager {
	return &SessionManager{
		CookieConfig: cookieConfig,
		JWTSecret:    jwtSecret,
		MaxAge:       maxAge,
	}
}

// IssueSession sets the session_id and user_data cookies for the account.
// Password logins use SameSite=Strict; the OAuth callback has to use Lax so
// the cookies survive the cross-site redirect from the provider.
func (sm *SessionManager) IssueSession(c *gin.Context, account *models.Account, sameSite http.SameSite) (string, error) {
	sessionID := uuid.New().String()
	expiresAt := time.Now().Add(time.Duration(sm.MaxAge) * time.Second)

	userData := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"role":  account.Role,
		"jti":   sessionID,
		"exp":   expiresAt.Unix(),
	})
	userDataStr, err := userData.SignedString([]byte(sm.JWTSecret))
	if err != nil {
		sm.ClearSession(c)
		return "", fmt.Errorf("signing user data: %w", err)
	}

	c.SetSameSite(sameSite)
	c.SetCookie(SessionCookie, sessionID, sm.MaxAge, "/", sm.CookieConfig.Domain, sm.CookieConfig.IsSecure, sm.CookieConfig.HttpOnly)
	c.SetCookie(UserDataCookie, userDataStr, sm.MaxAge, "/", sm.CookieConfig.Domain, sm.CookieConfig.IsSecure, sm.CookieConfig.HttpOnly)

	return sessionID, nil
}

// ClearSession removes both session cookies from the client.
func (sm *SessionManager) ClearSession(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", sm.CookieConfig.Domain, sm.CookieConfig.IsSecure, sm.CookieConfig.HttpOnly)
	c.SetCookie(UserDataCookie, "", -1, "/", sm.CookieConfig.Domain, sm.CookieConfig.IsSecure, sm.CookieConfig.HttpOnly)
}

// ParseUserData validates the signature and expiry of a user_data cookie
// value and returns the embedded claims.
func (sm *SessionManager) ParseUserData(tokenStr string) (*UserClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(sm.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid user data token")
	}

	sub, ok := claims["sub"].(float64) // jwt-go parses numbers as float64
	if !ok {
		return nil, fmt.Errorf("missing subject claim")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &UserClaims{ID: uint(sub), Email: email, Role: role}, nil
}

// SetOAuthState stores the anti-CSRF state token in a short-lived cookie
// ahead of the redirect to the provider.
func (sm *SessionManager) SetOAuthState(c *gin.Context, state string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(OAuthStateCookie, state, int(OAuthStateMaxAge.Seconds()), "/", sm.CookieConfig.Domain, sm.CookieConfig.IsSecure, sm.CookieConfig.HttpOnly)
}

// OAuthState returns the stored state token, if any.
func (sm *SessionManager) OAuthState(c *gin.Context) (string, error) {
	return c.Cookie(OAuthStateCookie)
}

// ClearOAuthState discards the state cookie; the token is single-use.
func (sm *SessionManager) ClearOAuthState(c *gin.Context) {
	c.SetCookie(OAuthStateCookie, "", -1, "/", sm.CookieConfig.Domain, sm.CookieConfig.IsSecure, sm.CookieConfig.HttpOnly)
}
