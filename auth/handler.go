package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/casting-agency/api/auth0"
	"github.com/casting-agency/api/config"
	"github.com/casting-agency/api/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// StateCookieName is the cookie name for OAuth state (CSRF)
	StateCookieName = "oauth_state"
	// SessionCookieName is the cookie name for the session token
	SessionCookieName = "session"

	stateCookieMaxAge   = 600
	sessionCookieMaxAge = 86400
)

// TokenExchanger exchanges OAuth2 authorization codes for tokens via the
// provider's token endpoint.
type TokenExchanger interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (accessToken string, err error)
}

// TokenVerifier validates JWT tokens and returns verified claims.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, rawToken string) (*auth0.Claims, error)
}

// Handler handles the browser login, callback, and logout flow against
// the Auth0 hosted authorization endpoint.
type Handler struct {
	cfg       config.Auth0Config
	exchanger TokenExchanger
	verifier  TokenVerifier
	logger    *zap.Logger
}

// NewHandler creates a new auth handler
func NewHandler(cfg config.Auth0Config, exchanger TokenExchanger, verifier TokenVerifier, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		exchanger: exchanger,
		verifier:  verifier,
		logger:    logger,
	}
}

// HandleLogin redirects to the Auth0 authorize endpoint
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Domain == "" || h.cfg.ClientID == "" {
		h.logger.Error("auth0 login not configured")
		_ = utils.WriteInternalServerError(w, "authentication not configured")
		return
	}

	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   stateCookieMaxAge,
		HttpOnly: true,
		Secure:   strings.HasPrefix(h.cfg.CallbackURL, "https"),
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.buildAuthURL(state), http.StatusFound)
}

// HandleCallback exchanges the authorization code for an access token,
// verifies it, and sets the session cookie
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	if code == "" {
		_ = utils.WriteBadRequest(w, "missing authorization code")
		return
	}
	if state == "" {
		_ = utils.WriteBadRequest(w, "missing state parameter")
		return
	}

	stateCookie, err := r.Cookie(StateCookieName)
	if err != nil || stateCookie.Value != state {
		_ = utils.WriteBadRequest(w, "invalid or expired state")
		return
	}

	h.clearCookie(w, StateCookieName)

	accessToken, err := h.exchanger.ExchangeCode(r.Context(), code, h.cfg.CallbackURL)
	if err != nil {
		h.logger.Warn("token exchange failed", zap.Error(err))
		_ = utils.WriteUnauthorized(w, "authentication failed")
		return
	}

	if _, err := h.verifier.VerifyToken(r.Context(), accessToken); err != nil {
		h.logger.Warn("token verification failed after exchange", zap.Error(err))
		_ = utils.WriteUnauthorized(w, "invalid token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		Secure:   strings.HasPrefix(h.cfg.CallbackURL, "https"),
		SameSite: http.SameSiteLaxMode,
	})

	redirectURL := h.cfg.FrontEndURL
	if redirectURL == "" {
		redirectURL = "/"
	}
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// HandleLogout clears the session cookie and redirects to the Auth0 logout endpoint
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, SessionCookieName)
	http.Redirect(w, r, h.buildLogoutURL(), http.StatusFound)
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   strings.HasPrefix(h.cfg.CallbackURL, "https"),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) buildAuthURL(state string) string {
	params := url.Values{
		"response_type": {"code"},
		"client_id":     {h.cfg.ClientID},
		"redirect_uri":  {h.cfg.CallbackURL},
		"audience":      {h.cfg.Audience},
		"state":         {state},
		"scope":         {"openid profile email"},
	}
	return "https://" + h.cfg.Domain + "/authorize?" + params.Encode()
}

func (h *Handler) buildLogoutURL() string {
	returnTo := h.cfg.FrontEndURL
	if returnTo == "" || strings.HasPrefix(returnTo, "/") {
		parsed, err := url.Parse(h.cfg.CallbackURL)
		if err == nil {
			returnTo = parsed.Scheme + "://" + parsed.Host
		}
	}
	params := url.Values{
		"client_id": {h.cfg.ClientID},
		"returnTo":  {returnTo},
	}
	return "https://" + h.cfg.Domain + "/v2/logout?" + params.Encode()
}
