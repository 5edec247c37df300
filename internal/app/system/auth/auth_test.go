package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	adminstore "github.com/brightevents/gatepass/internal/app/store/admins"
	"github.com/brightevents/gatepass/internal/app/system/auth"
	"github.com/brightevents/gatepass/internal/app/system/identity"
	"github.com/brightevents/gatepass/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
)

type fakeVerifier struct {
	claims *identity.Claims
	err    error
}

func (f *fakeVerifier) Verify(string) (*identity.Claims, error) {
	return f.claims, f.err
}

type fakeDirectory struct {
	admins map[string]models.AdminUser
}

func (f *fakeDirectory) Get(_ context.Context, id string) (models.AdminUser, error) {
	a, ok := f.admins[id]
	if !ok {
		return models.AdminUser{}, adminstore.ErrNotFound
	}
	return a, nil
}

func okHandler(captured **auth.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := auth.CurrentUser(r); ok {
			*captured = u
		}
		w.WriteHeader(http.StatusOK)
	})
}

func claimsFor(subject string) *identity.Claims {
	return &identity.Claims{
		Email:            "grace@example.com",
		Name:             "Grace Hopper",
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
	}
}

func TestLoadIdentity_NoHeader_Anonymous(t *testing.T) {
	mw := auth.NewMiddleware(&fakeVerifier{}, &fakeDirectory{})

	var captured *auth.Identity
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	mw.LoadIdentity(okHandler(&captured)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured != nil {
		t.Error("expected no identity for anonymous request")
	}
}

func TestLoadIdentity_MalformedHeader(t *testing.T) {
	mw := auth.NewMiddleware(&fakeVerifier{}, &fakeDirectory{})

	var captured *auth.Identity
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	mw.LoadIdentity(okHandler(&captured)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoadIdentity_InvalidToken(t *testing.T) {
	mw := auth.NewMiddleware(&fakeVerifier{err: identity.ErrInvalidToken}, &fakeDirectory{})

	var captured *auth.Identity
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	mw.LoadIdentity(okHandler(&captured)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoadIdentity_UnknownAccount(t *testing.T) {
	mw := auth.NewMiddleware(
		&fakeVerifier{claims: claimsFor("ghost")},
		&fakeDirectory{admins: map[string]models.AdminUser{}},
	)

	var captured *auth.Identity
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	mw.LoadIdentity(okHandler(&captured)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoadIdentity_RoleComesFromDirectory(t *testing.T) {
	mw := auth.NewMiddleware(
		&fakeVerifier{claims: claimsFor("admin-1")},
		&fakeDirectory{admins: map[string]models.AdminUser{
			"admin-1": {
				ID:          "admin-1",
				Email:       "grace@example.com",
				DisplayName: "Grace Hopper",
				Role:        models.RoleSuperAdmin,
			},
		}},
	)

	var captured *auth.Identity
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	mw.LoadIdentity(okHandler(&captured)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured == nil {
		t.Fatal("expected identity in context")
	}
	if captured.Role != models.RoleSuperAdmin {
		t.Errorf("expected role from directory, got %s", captured.Role)
	}
	if captured.Name != "Grace Hopper" {
		t.Errorf("expected name Grace Hopper, got %s", captured.Name)
	}
}

func TestRequireSignedIn_Anonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	auth.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSignedIn_SignedIn(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = auth.WithIdentity(req, &auth.Identity{ID: "admin-1", Role: models.RoleAdmin})

	auth.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_WrongRole(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = auth.WithIdentity(req, &auth.Identity{ID: "admin-1", Role: models.RoleAdmin})

	auth.RequireRole(models.RoleSuperAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_Allowed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = auth.WithIdentity(req, &auth.Identity{ID: "admin-1", Role: models.RoleSuperAdmin})

	auth.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Anonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	auth.RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestActorEmail_FallsBackToStaff(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := auth.ActorEmail(req); got != auth.DefaultActor {
		t.Errorf("expected %q, got %q", auth.DefaultActor, got)
	}

	req = auth.WithIdentity(req, &auth.Identity{Name: "Grace Hopper", Email: "grace@example.com"})
	if got := auth.ActorEmail(req); got != "grace@example.com" {
		t.Errorf("expected grace@example.com, got %q", got)
	}
}
