// internal/app/features/admins/types.go
package admins

import "github.com/brightevents/gatepass/internal/domain/models"

// createRequest is the JSON body for POST /api/admin/users.
// Password is optional; when omitted a temporary one is generated and
// included in the welcome email.
type createRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Password    string `json:"password,omitempty"`
}

// loginRequest is the JSON body for POST /api/admin/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the JSON body returned on successful login.
type loginResponse struct {
	Token string           `json:"token"`
	Admin models.AdminUser `json:"admin"`
}

// listResponse is the JSON body for GET /api/admin/users.
type listResponse struct {
	Admins []models.AdminUser `json:"admins"`
}
