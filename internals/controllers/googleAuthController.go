package controllers

import (
	"encoding/json"
	"net/http"

	"go-job/internals/config"
	"go-job/internals/services"
	"go-job/internals/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	loginPath     = "/Login"
	dashboardPath = "/Dashboard"

	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleAuthController handles only Google-specific OAuth logic
type GoogleAuthController struct {
	Config      *oauth2.Config
	UserInfoURL string
	SSO         *services.SSOAccounts
	Sessions    *utils.SessionManager
}

// NewGoogleAuthController initializes the oauth2 config once at startup. The
// auth/token/userinfo URLs can be overridden through the config for tests
// against a fake provider.
func NewGoogleAuthController(cfg config.GoogleConfig, sso *services.SSOAccounts, sessions *utils.SessionManager) *GoogleAuthController {
	endpoint := google.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = defaultUserInfoURL
	}

	return &GoogleAuthController{
		Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		},
		UserInfoURL: userInfoURL,
		SSO:         sso,
		Sessions:    sessions,
	}
}

// loginRedirect sends the browser back to the login page with a short
// machine-readable error code; provider detail stays in the server log.
func (g *GoogleAuthController) loginRedirect(c *gin.Context, errCode string) {
	c.Redirect(http.StatusTemporaryRedirect, loginPath+"?error="+errCode)
}

// Login generates the anti-CSRF state, stores it in a short-lived cookie and
// redirects the user to Google's consent page.
func (g *GoogleAuthController) Login(c *gin.Context) {
	if g.Config.ClientID == "" {
		log.Error().Msg("Missing Google client ID")
		g.loginRedirect(c, "configuration_error")
		return
	}

	state, err := utils.GenerateStateToken()
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate OAuth state")
		g.loginRedirect(c, "server_error")
		return
	}

	g.Sessions.SetOAuthState(c, state)
	c.Redirect(http.StatusTemporaryRedirect, g.Config.AuthCodeURL(state))
}

// Callback handles the redirect back from Google. The state check runs
// before anything touches the network.
func (g *GoogleAuthController) Callback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		log.Warn().Str("provider_error", errParam).Msg("Google OAuth error")
		g.loginRedirect(c, "oauth_error")
		return
	}

	storedState, err := g.Sessions.OAuthState(c)
	if err != nil || storedState == "" || c.Query("state") != storedState {
		log.Warn().Msg("Invalid OAuth state")
		g.loginRedirect(c, "invalid_state")
		return
	}

	code := c.Query("code")
	if code == "" {
		log.Warn().Msg("No authorization code")
		g.loginRedirect(c, "no_code")
		return
	}

	ctx := c.Request.Context()
	token, err := g.Config.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("Token exchange failed")
		g.loginRedirect(c, "token_exchange")
		return
	}

	googleUser, err := g.fetchUserInfo(c, token.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch user info")
		g.loginRedirect(c, "user_info")
		return
	}

	account, err := g.SSO.ResolveGoogleUser(ctx, *googleUser, token.AccessToken, token.Expiry)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve Google user")
		g.loginRedirect(c, "user_creation")
		return
	}

	// SameSite=Lax here: Strict would drop the cookies on the cross-site
	// redirect from the provider.
	if _, err := g.Sessions.IssueSession(c, account, http.SameSiteLaxMode); err != nil {
		log.Error().Err(err).Msg("Failed to issue session")
		g.loginRedirect(c, "server_error")
		return
	}

	// The state token is single-use.
	g.Sessions.ClearOAuthState(c)

	c.Redirect(http.StatusTemporaryRedirect, dashboardPath)
}

func (g *GoogleAuthController) fetchUserInfo(c *gin.Context, accessToken string) (*services.GoogleUser, error) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, g.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &userInfoError{status: resp.StatusCode}
	}

	var googleUser services.GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, err
	}
	return &googleUser, nil
}

type userInfoError struct {
	status int
}

func (e *userInfoError) Error() string {
	return http.StatusText(e.status) + " from userinfo endpoint"
}
