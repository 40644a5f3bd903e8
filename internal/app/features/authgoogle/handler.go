// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/researchhub/internal/app/system/auditlog"
	"github.com/dalemusser/researchhub/internal/app/system/auth"
	"github.com/dalemusser/researchhub/internal/app/system/normalize"
	"github.com/dalemusser/researchhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	stateCookie = "researchhub_oauth_state"
	stateTTL    = 10 * time.Minute

	// DefaultUserInfoURL is Google's v2 userinfo endpoint.
	DefaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Handler handles Google OAuth sign-in for allowlisted admins.
type Handler struct {
	Log         *zap.Logger
	SessionMgr  *auth.SessionManager
	AdminEmails []string
	Audit       *auditlog.Logger

	// OAuth configuration
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "https://research.example.edu/auth/google/callback"

	// Overridable for tests.
	Endpoint    oauth2.Endpoint
	UserInfoURL string

	cookies *securecookie.SecureCookie
	secure  bool
}

// NewHandler creates a new Google OAuth handler. sessionKey signs the
// short-lived state cookie.
func NewHandler(
	sessionMgr *auth.SessionManager,
	adminEmails []string,
	clientID, clientSecret, baseURL, sessionKey string,
	secure bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:          logger,
		SessionMgr:   sessionMgr,
		AdminEmails:  adminEmails,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  strings.TrimRight(baseURL, "/") + "/auth/google/callback",
		Endpoint:     google.Endpoint,
		UserInfoURL:  DefaultUserInfoURL,
		cookies:      securecookie.New([]byte(sessionKey), nil).MaxAge(int(stateTTL.Seconds())),
		secure:       secure,
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: h.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

type oauthState struct {
	State  string
	Return string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                             |
| Redirects to Google's consent screen.                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	returnURL := safeReturn(query.Get(r, "return"))
	encoded, err := h.cookies.Encode(stateCookie, oauthState{State: state, Return: returnURL})
	if err != nil {
		h.Log.Error("failed to encode OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    encoded,
		Path:     "/auth/google",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	url := h.oauth2Config().AuthCodeURL(state)
	h.Log.Debug("initiating Google OAuth flow", zap.String("return_url", returnURL))
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                                    |
| Exchanges the code, fetches the profile and signs in allowlisted admins.    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	saved, ok := h.readState(r)
	h.clearState(w)
	if !ok || saved.State == "" || saved.State != r.URL.Query().Get("state") {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Fetch())
	defer cancel()

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	gu, err := h.fetchUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	email := normalize.Email(gu.Email)
	if !gu.VerifiedEmail || !h.isAdmin(email) {
		h.Log.Info("Google OAuth: account not allowed",
			zap.String("email", email),
			zap.Bool("verified", gu.VerifiedEmail))
		h.Audit.LoginFailed(r.Context(), r, email, "google", "not allowlisted or unverified")
		http.Redirect(w, r, "/login?error=not_allowed", http.StatusSeeOther)
		return
	}

	name := gu.Name
	if name == "" {
		name = email
	}
	u := auth.SessionUser{
		ID:         "google:" + gu.ID,
		Name:       name,
		LoginID:    email,
		Role:       auth.RoleAdmin,
		AuthMethod: "google",
	}
	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	h.Log.Info("login succeeded", zap.String("login_id", email), zap.String("method", "google"))
	h.Audit.LoginSuccess(r.Context(), r, email, "google")

	dest := saved.Return
	if dest == "" {
		dest = "/"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (h *Handler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := h.oauth2Config().Client(ctx, token)
	resp, err := client.Get(h.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}
	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("userinfo decode: %w", err)
	}
	return &info, nil
}

func (h *Handler) readState(r *http.Request) (oauthState, bool) {
	var st oauthState
	c, err := r.Cookie(stateCookie)
	if err != nil {
		return st, false
	}
	if err := h.cookies.Decode(stateCookie, c.Value, &st); err != nil {
		h.Log.Debug("OAuth state cookie rejected", zap.Error(err))
		return st, false
	}
	return st, true
}

func (h *Handler) clearState(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    "",
		Path:     "/auth/google",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) isAdmin(email string) bool {
	if email == "" {
		return false
	}
	for _, e := range h.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}

// safeReturn keeps only same-site absolute paths.
func safeReturn(s string) string {
	if !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/\\") {
		return ""
	}
	return s
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
