// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	adminstore "github.com/brightevents/gatepass/internal/app/store/admins"
	"github.com/brightevents/gatepass/internal/app/system/identity"
	"github.com/brightevents/gatepass/internal/app/system/response"
	"github.com/brightevents/gatepass/internal/domain/models"
)

// DefaultActor is the attribution used for staff actions performed
// without a signed-in identity (shared check-in stations).
const DefaultActor = "Staff"

// Identity is the verified caller injected into r.Context().
// Role comes from the admin directory, not the token, so role changes
// take effect on the next request rather than at token expiry.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// Verifier validates a bearer token. *identity.Provider satisfies it.
type Verifier interface {
	Verify(tokenString string) (*identity.Claims, error)
}

// Directory resolves a token subject to its admin record.
// *adminstore.Store satisfies it.
type Directory interface {
	Get(ctx context.Context, id string) (models.AdminUser, error)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the identity and a "found?" flag.
func CurrentUser(r *http.Request) (*Identity, bool) {
	u, ok := r.Context().Value(currentUserKey).(*Identity)
	return u, ok
}

// ActorEmail returns the signed-in identity's email for audit
// attribution, or DefaultActor when the request is anonymous.
func ActorEmail(r *http.Request) string {
	if u, ok := CurrentUser(r); ok && u.Email != "" {
		return u.Email
	}
	return DefaultActor
}

// WithIdentity injects an identity into the request context.
// Exported for handler tests.
func WithIdentity(r *http.Request, u *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// Middleware verifies bearer tokens and resolves them against the
// admin directory.
type Middleware struct {
	verifier  Verifier
	directory Directory
}

// NewMiddleware constructs the auth Middleware.
func NewMiddleware(v Verifier, d Directory) *Middleware {
	return &Middleware{verifier: v, directory: d}
}

// LoadIdentity injects the caller's identity into context when a valid
// bearer token is presented. Requests without an Authorization header
// continue anonymously; a malformed or invalid token is rejected.
func (m *Middleware) LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(w, "invalid authorization header")
			return
		}

		claims, err := m.verifier.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Unauthorized(w, "invalid or expired token")
			return
		}

		// Fetch the directory record on every request so role and
		// name changes apply without waiting for token expiry.
		admin, err := m.directory.Get(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, adminstore.ErrNotFound) {
				response.Unauthorized(w, "unknown account")
				return
			}
			response.InternalError(w, "failed to resolve account")
			return
		}

		next.ServeHTTP(w, WithIdentity(r, &Identity{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.DisplayName,
			Role:  admin.Role,
		}))
	})
}

// RequireSignedIn ensures there is an identity in context
// (set by LoadIdentity).
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			response.Unauthorized(w, "sign in required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the caller is signed in with one of the allowed
// roles. Missing identity is 401, wrong role is 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				response.Unauthorized(w, "sign in required")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				response.Forbidden(w, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
