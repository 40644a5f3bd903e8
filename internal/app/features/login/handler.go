// internal/app/features/login/handler.go
package login

import (
	"encoding/json"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/researchhub/internal/app/features/errors"
	"github.com/dalemusser/researchhub/internal/app/system/auditlog"
	"github.com/dalemusser/researchhub/internal/app/system/auth"
	"github.com/dalemusser/researchhub/internal/app/system/authutil"
	"github.com/dalemusser/researchhub/internal/app/system/normalize"
	"github.com/dalemusser/researchhub/internal/app/system/ratelimit"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler signs in the local admin account. Any address in AdminEmails may
// sign in with the one configured password hash.
type Handler struct {
	SessionMgr    *auth.SessionManager
	Limiter       *ratelimit.LoginLimiter
	AdminEmails   []string
	PasswordHash  string
	GoogleEnabled bool
	Log           *zap.Logger
	Audit         *auditlog.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, adminEmails []string, passwordHash string, googleEnabled bool, logger *zap.Logger) *Handler {
	return &Handler{
		SessionMgr:    sessionMgr,
		Limiter:       limiter,
		AdminEmails:   adminEmails,
		PasswordHash:  passwordHash,
		GoogleEnabled: googleEnabled,
		Log:           logger,
	}
}

type methodsResponse struct {
	Password bool `json:"password"`
	Google   bool `json:"google"`
}

// ServeLogin handles GET /login: the sign-in methods that are configured.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, methodsResponse{
		Password: h.PasswordHash != "" && len(h.AdminEmails) > 0,
		Google:   h.GoogleEnabled,
	})
}

type userResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LoginID string `json:"login_id"`
	Role    string `json:"role"`
}

// HandleLoginPost handles POST /login with form fields login_id and
// password.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uierrors.BadRequest(w, "Invalid form data.")
		return
	}
	loginID := normalize.Email(r.FormValue("login_id"))
	password := r.FormValue("password")

	if ok, msg := h.Limiter.Check(r, loginID); !ok {
		h.Log.Warn("login rate limited", zap.String("login_id", loginID), zap.String("ip", ratelimit.ClientIP(r)))
		h.Audit.LoginFailed(r.Context(), r, loginID, "password", "rate limit exceeded")
		uierrors.Write(w, http.StatusTooManyRequests, "rate_limited", msg)
		return
	}
	if loginID == "" || password == "" {
		uierrors.BadRequest(w, "Please enter your login ID and password.")
		return
	}
	if h.PasswordHash == "" {
		uierrors.Write(w, http.StatusForbidden, "forbidden", "Password sign-in is not enabled.")
		return
	}

	if !h.isAdmin(loginID) || !authutil.CheckPassword(password, h.PasswordHash) {
		h.Log.Info("login failed", zap.String("login_id", loginID), zap.String("ip", ratelimit.ClientIP(r)))
		h.Audit.LoginFailed(r.Context(), r, loginID, "password", "wrong credentials")
		uierrors.Write(w, http.StatusUnauthorized, "unauthorized", "Incorrect login ID or password.")
		return
	}

	u := auth.SessionUser{
		ID:         uuid.NewString(),
		Name:       displayName(loginID),
		LoginID:    loginID,
		Role:       auth.RoleAdmin,
		AuthMethod: "password",
	}
	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		uierrors.Write(w, http.StatusInternalServerError, "server_error", "Could not sign in.")
		return
	}
	h.Limiter.ResetAccount(loginID)
	h.Log.Info("login succeeded", zap.String("login_id", loginID), zap.String("method", "password"))
	h.Audit.LoginSuccess(r.Context(), r, loginID, "password")

	writeJSON(w, http.StatusOK, userResponse{ID: u.ID, Name: u.Name, LoginID: u.LoginID, Role: u.Role})
}

func (h *Handler) isAdmin(loginID string) bool {
	for _, e := range h.AdminEmails {
		if e == loginID {
			return true
		}
	}
	return false
}

// displayName is the local part of an email address.
func displayName(loginID string) string {
	if i := strings.IndexByte(loginID, '@'); i > 0 {
		return loginID[:i]
	}
	return loginID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
