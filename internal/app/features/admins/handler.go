// internal/app/features/admins/handler.go
package admins

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	adminstore "github.com/brightevents/gatepass/internal/app/store/admins"
	"github.com/brightevents/gatepass/internal/app/system/activitylog"
	"github.com/brightevents/gatepass/internal/app/system/auth"
	"github.com/brightevents/gatepass/internal/app/system/identity"
	"github.com/brightevents/gatepass/internal/app/system/inputval"
	"github.com/brightevents/gatepass/internal/app/system/mailer"
	"github.com/brightevents/gatepass/internal/app/system/normalize"
	"github.com/brightevents/gatepass/internal/app/system/ratelimit"
	"github.com/brightevents/gatepass/internal/app/system/response"
	"github.com/brightevents/gatepass/internal/app/system/sanitize"
	"github.com/brightevents/gatepass/internal/app/system/timeouts"
	"github.com/brightevents/gatepass/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minPasswordLen = 8

// Directory is the subset of the admin store this feature needs.
type Directory interface {
	Insert(ctx context.Context, a *models.AdminUser) error
	Get(ctx context.Context, id string) (models.AdminUser, error)
	List(ctx context.Context) ([]models.AdminUser, error)
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

// IdentityProvider is the credential side of account management.
// *identity.Provider satisfies it.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	IssueToken(subject, email, name string) (string, error)
}

// Handler owns the admin directory and login endpoints.
type Handler struct {
	Directory Directory
	Identity  IdentityProvider
	Activity  *activitylog.Logger
	Mail      mailer.Sender
	Event     mailer.EventDetails
	PortalURL string
	Limiter   *ratelimit.LoginLimiter // nil disables throttling
	Log       *zap.Logger
}

// NewHandler creates a new admins Handler.
func NewHandler(directory Directory, provider IdentityProvider, activity *activitylog.Logger, mail mailer.Sender, event mailer.EventDetails, portalURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Directory: directory,
		Identity:  provider,
		Activity:  activity,
		Mail:      mail,
		Event:     event,
		PortalURL: portalURL,
		Log:       logger,
	}
}

// Login handles POST /api/admin/login.
//
// Exchange email and password for a bearer token. The response carries
// the directory record so clients know the caller's role without a
// second request.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "request body is not valid JSON")
		return
	}

	email := normalize.Email(req.Email)
	if email == "" || req.Password == "" {
		response.BadRequest(w, "email and password are required")
		return
	}

	if h.Limiter != nil {
		if allowed, reason := h.Limiter.Check(r, email); !allowed {
			response.TooManyRequests(w, reason)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subject, err := h.Identity.Authenticate(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			response.WriteError(w, http.StatusUnauthorized, "invalid email or password", response.CodeInvalidCredentials)
			return
		}
		h.Log.Error("admins: authenticate failed", zap.Error(err))
		response.InternalError(w, "login is temporarily unavailable")
		return
	}

	admin, err := h.Directory.Get(ctx, subject)
	if err != nil {
		if errors.Is(err, adminstore.ErrNotFound) {
			// Credential without a directory record; treat as a bad login.
			response.WriteError(w, http.StatusUnauthorized, "invalid email or password", response.CodeInvalidCredentials)
			return
		}
		h.Log.Error("admins: directory lookup failed", zap.Error(err))
		response.InternalError(w, "login is temporarily unavailable")
		return
	}

	token, err := h.Identity.IssueToken(admin.ID, admin.Email, admin.DisplayName)
	if err != nil {
		h.Log.Error("admins: token issue failed", zap.Error(err))
		response.InternalError(w, "login is temporarily unavailable")
		return
	}

	if err := h.Directory.RecordLogin(ctx, admin.ID, time.Now().UTC()); err != nil {
		h.Log.Warn("admins: record login failed", zap.String("admin_id", admin.ID), zap.Error(err))
	}

	if h.Limiter != nil {
		h.Limiter.ResetEmail(email)
	}

	h.Activity.AdminLogin(ctx, admin.Email, admin.DisplayName)

	response.WriteJSON(w, http.StatusOK, loginResponse{Token: token, Admin: admin})
}

// Create handles POST /api/admin/users. Super admin only.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "request body is not valid JSON")
		return
	}

	email := normalize.Email(sanitize.Text(req.Email))
	displayName := normalize.Name(sanitize.Text(req.DisplayName))
	role := sanitize.Text(req.Role)

	if !inputval.IsValidEmail(email) {
		response.BadRequest(w, "email is not a valid address")
		return
	}
	if displayName == "" {
		response.BadRequest(w, "displayName is required")
		return
	}
	if !models.IsValidRole(role) {
		response.WriteError(w, http.StatusBadRequest, "role must be admin or super_admin", response.CodeInvalidRole)
		return
	}

	password := req.Password
	tempPassword := ""
	if password == "" {
		tempPassword = uuid.NewString()
		password = tempPassword
	} else if len(password) < minPasswordLen {
		response.BadRequest(w, "password must be at least 8 characters")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subject, err := h.Identity.CreateAccount(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			response.WriteError(w, http.StatusConflict, "an account with this email already exists", response.CodeEmailExists)
			return
		}
		h.Log.Error("admins: create account failed", zap.Error(err))
		response.InternalError(w, "account creation is temporarily unavailable")
		return
	}

	actor := auth.ActorEmail(r)
	admin := models.AdminUser{
		ID:          subject,
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   actor,
	}
	if err := h.Directory.Insert(ctx, &admin); err != nil {
		h.Log.Error("admins: directory insert failed", zap.Error(err))
		response.InternalError(w, "account creation is temporarily unavailable")
		return
	}

	h.Activity.AdminCreated(ctx, actor, role, displayName, email)

	go h.sendWelcome(admin, tempPassword)

	response.WriteJSON(w, http.StatusCreated, admin)
}

// List handles GET /api/admin/users. Super admin only.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	admins, err := h.Directory.List(ctx)
	if err != nil {
		h.Log.Error("admins: list failed", zap.Error(err))
		response.InternalError(w, "admin directory is temporarily unavailable")
		return
	}
	if admins == nil {
		admins = []models.AdminUser{}
	}
	response.WriteJSON(w, http.StatusOK, listResponse{Admins: admins})
}

// Profile handles GET /api/admin/profile. Returns the caller's own
// directory record.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		response.Unauthorized(w, "sign in required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	admin, err := h.Directory.Get(ctx, u.ID)
	if err != nil {
		if errors.Is(err, adminstore.ErrNotFound) {
			response.NotFound(w, "account not found")
			return
		}
		h.Log.Error("admins: profile lookup failed", zap.Error(err))
		response.InternalError(w, "profile is temporarily unavailable")
		return
	}
	response.WriteJSON(w, http.StatusOK, admin)
}

func (h *Handler) sendWelcome(admin models.AdminUser, tempPassword string) {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
	defer cancel()

	email := mailer.BuildAdminWelcomeEmail(mailer.AdminWelcomeEmailData{
		AdminName:    admin.DisplayName,
		Role:         admin.Role,
		PortalURL:    h.PortalURL,
		TempPassword: tempPassword,
		Event:        h.Event,
	})
	email.To = admin.Email
	email.ToName = admin.DisplayName

	if err := h.Mail.Send(ctx, email); err != nil {
		h.Log.Warn("admins: welcome email failed",
			zap.String("email", admin.Email),
			zap.Error(err),
		)
	}
}
