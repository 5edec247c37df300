package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/brightevents/gatepass/internal/app/system/auth"
	"github.com/brightevents/gatepass/internal/domain/models"
	"github.com/google/uuid"
)

// TestIdentity represents caller data for testing HTTP handlers.
type TestIdentity struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// AdminIdentity returns a TestIdentity with the admin role.
func AdminIdentity() TestIdentity {
	return TestIdentity{
		ID:    uuid.NewString(),
		Name:  "Test Admin",
		Email: "admin@test.com",
		Role:  models.RoleAdmin,
	}
}

// SuperAdminIdentity returns a TestIdentity with the super_admin role.
func SuperAdminIdentity() TestIdentity {
	return TestIdentity{
		ID:    uuid.NewString(),
		Name:  "Test Super Admin",
		Email: "superadmin@test.com",
		Role:  models.RoleSuperAdmin,
	}
}

// WithIdentity adds a caller to the request context for testing
// authenticated handlers. This bypasses the auth middleware and injects
// the identity directly.
func WithIdentity(r *http.Request, id TestIdentity) *http.Request {
	return auth.WithIdentity(r, &auth.Identity{
		ID:    id.ID,
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
	})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with an identity in context.
func NewAuthenticatedRequest(method, target string, id TestIdentity) *http.Request {
	return WithIdentity(httptest.NewRequest(method, target, nil), id)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	body := r.Body.String()
	if !contains(body, expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 || findSubstring(s, substr))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
